package tmux

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
)

// ResolveSocketPath returns the socket folders are revealed through. An
// explicit value wins, then the socket of the enclosing tmux client, then
// the per-user default server under TMUX_TMPDIR.
func ResolveSocketPath(explicit string) (string, error) {
	if s := strings.TrimSpace(explicit); s != "" {
		return s, nil
	}
	if socket, ok := clientSocket(); ok {
		return socket, nil
	}
	baseDir := getenv("TMUX_TMPDIR")
	if baseDir == "" {
		baseDir = "/tmp"
	}
	u, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("default tmux socket: %w", err)
	}
	return filepath.Join(baseDir, "tmux-"+u.Uid, "default"), nil
}

// InsideTmux reports whether the process runs inside a tmux client.
func InsideTmux() bool {
	_, ok := clientSocket()
	return ok
}

// clientSocket reads the socket from $TMUX, which tmux sets to
// "socket,pid,session" for every pane.
func clientSocket() (string, bool) {
	socket, _, _ := strings.Cut(getenv("TMUX"), ",")
	socket = strings.TrimSpace(socket)
	return socket, socket != ""
}
