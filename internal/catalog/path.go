package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
)

// HasParentSegment reports whether a slash or backslash separated path
// contains a ".." segment.
func HasParentSegment(rel string) bool {
	for _, seg := range strings.FieldsFunc(rel, func(r rune) bool { return r == '/' || r == '\\' }) {
		if seg == ".." {
			return true
		}
	}
	return false
}

// SafeJoin joins rel beneath root and refuses results that escape root.
func SafeJoin(root, rel string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", fmt.Errorf("no library root configured")
	}
	if HasParentSegment(rel) {
		return "", fmt.Errorf("path %q leaves the library root", rel)
	}
	cleanRoot := filepath.Clean(root)
	joined := filepath.Join(cleanRoot, filepath.FromSlash(strings.TrimLeft(rel, "/\\")))
	within, err := filepath.Rel(cleanRoot, joined)
	if err != nil || within == ".." || strings.HasPrefix(within, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q leaves the library root", rel)
	}
	return joined, nil
}
