package tmux

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/atomicstack/assetgrid/internal/catalog"
	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

// Opened describes how a directory was revealed.
type Opened struct {
	Path    string
	Session string
	Via     string
}

var sessionNameCleaner = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// OpenDirectory reveals relDir beneath root. Inside tmux it switches the
// client to a session started in that directory, creating the session when
// needed; otherwise it hands the path to the desktop file manager.
func OpenDirectory(socketPath, root, relDir string) (Opened, error) {
	rel := catalog.NormalizeDir(relDir)
	if rel == "" {
		return Opened{}, errors.New("item has no directory")
	}
	path, err := catalog.SafeJoin(root, rel)
	if err != nil {
		return Opened{}, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return Opened{}, fmt.Errorf("open %s: %w", rel, err)
	}
	if !info.IsDir() {
		return Opened{}, fmt.Errorf("open %s: not a directory", rel)
	}
	if InsideTmux() {
		name, err := openInTmux(socketPath, path)
		if err != nil {
			return Opened{}, err
		}
		return Opened{Path: path, Session: name, Via: "tmux"}, nil
	}
	via, err := openWithDesktop(path)
	if err != nil {
		return Opened{}, err
	}
	return Opened{Path: path, Via: via}, nil
}

// SessionName derives a tmux-safe session name from a directory.
func SessionName(path string) string {
	base := filepath.Base(filepath.Clean(path))
	name := strings.Trim(sessionNameCleaner.ReplaceAllString(base, "-"), "-")
	if name == "" {
		name = "library"
	}
	return "assetgrid-" + name
}

func openInTmux(socketPath, path string) (string, error) {
	client, err := newTmux(socketPath)
	if err != nil {
		return "", fmt.Errorf("connect to tmux: %w", err)
	}
	defer client.Close()
	name := SessionName(path)
	if existing, err := client.GetSessionByName(name); err != nil || existing == nil {
		if _, err := client.NewSession(&gotmux.SessionOptions{Name: name, StartDirectory: path}); err != nil {
			return "", fmt.Errorf("tmux new-session %s: %w", name, err)
		}
	}
	if err := client.SwitchClient(&gotmux.SwitchClientOptions{TargetSession: name}); err != nil {
		return "", fmt.Errorf("tmux switch-client %s: %w", name, err)
	}
	return name, nil
}

func desktopOpeners() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"open"}
	case "windows":
		return []string{"explorer"}
	default:
		return []string{"xdg-open", "gio", "open"}
	}
}

func openWithDesktop(path string) (string, error) {
	for _, name := range desktopOpeners() {
		if _, err := lookPath(name); err != nil {
			continue
		}
		args := []string{path}
		if name == "gio" {
			args = []string{"open", path}
		}
		if err := runExecCommand(name, args...).Start(); err != nil {
			return "", fmt.Errorf("%s %s: %w", name, path, err)
		}
		return name, nil
	}
	return "", errors.New("no file manager opener found")
}
