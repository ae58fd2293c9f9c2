package tmux

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	gotmux "github.com/atomicstack/gotmuxcc/gotmuxcc"
)

type fakeClient struct {
	existing *gotmux.Session
	created  []*gotmux.SessionOptions
	switched []string
}

func (f *fakeClient) SwitchClient(opts *gotmux.SwitchClientOptions) error {
	f.switched = append(f.switched, opts.TargetSession)
	return nil
}

func (f *fakeClient) GetSessionByName(string) (*gotmux.Session, error) {
	if f.existing == nil {
		return nil, errors.New("session not found")
	}
	return f.existing, nil
}

func (f *fakeClient) NewSession(opts *gotmux.SessionOptions) (*gotmux.Session, error) {
	f.created = append(f.created, opts)
	return &gotmux.Session{Name: opts.Name}, nil
}

func (f *fakeClient) Close() error { return nil }

type fakeCommander struct {
	started *[]string
	name    string
	args    []string
}

func (f fakeCommander) Start() error {
	*f.started = append(*f.started, f.name)
	*f.started = append(*f.started, f.args...)
	return nil
}

func stubEnv(t *testing.T, env map[string]string) {
	t.Helper()
	orig := getenv
	getenv = func(key string) string { return env[key] }
	t.Cleanup(func() { getenv = orig })
}

func libraryRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "props", "old crate"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return root
}

func TestOpenDirectoryInsideTmuxCreatesSession(t *testing.T) {
	root := libraryRoot(t)
	stubEnv(t, map[string]string{"TMUX": "/tmp/tmux-1000/default,1,0"})
	client := &fakeClient{}
	origTmux := newTmux
	newTmux = func(string) (tmuxClient, error) { return client, nil }
	t.Cleanup(func() { newTmux = origTmux })

	opened, err := OpenDirectory("", root, "props/old crate")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if opened.Via != "tmux" || opened.Session != "assetgrid-old-crate" {
		t.Fatalf("expected tmux session assetgrid-old-crate, got %#v", opened)
	}
	if len(client.created) != 1 || client.created[0].StartDirectory != filepath.Join(root, "props", "old crate") {
		t.Fatalf("expected session started in item directory, got %#v", client.created)
	}
	if len(client.switched) != 1 || client.switched[0] != "assetgrid-old-crate" {
		t.Fatalf("expected switch to new session, got %v", client.switched)
	}
}

func TestOpenDirectoryReusesExistingSession(t *testing.T) {
	root := libraryRoot(t)
	stubEnv(t, map[string]string{"TMUX": "sock,1,0"})
	client := &fakeClient{existing: &gotmux.Session{Name: "assetgrid-props"}}
	origTmux := newTmux
	newTmux = func(string) (tmuxClient, error) { return client, nil }
	t.Cleanup(func() { newTmux = origTmux })

	if _, err := OpenDirectory("", root, "props"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(client.created) != 0 {
		t.Fatalf("expected no new session, got %d", len(client.created))
	}
}

func TestOpenDirectoryOutsideTmuxUsesDesktopOpener(t *testing.T) {
	root := libraryRoot(t)
	stubEnv(t, map[string]string{})
	var started []string
	origRun, origLook := runExecCommand, lookPath
	runExecCommand = func(name string, args ...string) commander {
		return fakeCommander{started: &started, name: name, args: args}
	}
	lookPath = func(name string) (string, error) { return "/usr/bin/" + name, nil }
	t.Cleanup(func() { runExecCommand, lookPath = origRun, origLook })

	opened, err := OpenDirectory("", root, "props")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if opened.Via == "" || len(started) != 2 || started[1] != filepath.Join(root, "props") {
		t.Fatalf("expected opener invocation, got %#v %v", opened, started)
	}
}

func TestOpenDirectoryRejectsEscapes(t *testing.T) {
	root := libraryRoot(t)
	stubEnv(t, map[string]string{})
	for _, rel := range []string{"../etc", "props/../../x", ""} {
		if _, err := OpenDirectory("", root, rel); err == nil {
			t.Fatalf("expected error for %q", rel)
		}
	}
}

func TestOpenDirectoryRequiresExistingDirectory(t *testing.T) {
	root := libraryRoot(t)
	stubEnv(t, map[string]string{})
	if _, err := OpenDirectory("", root, "props/missing"); err == nil {
		t.Fatalf("expected error for missing directory")
	}
}

func TestResolveSocketPath(t *testing.T) {
	stubEnv(t, map[string]string{"TMUX": "/tmp/tmux-1/custom,123,0"})
	got, err := ResolveSocketPath("")
	if err != nil || got != "/tmp/tmux-1/custom" {
		t.Fatalf("expected socket from TMUX, got %q (%v)", got, err)
	}
	got, _ = ResolveSocketPath(" /explicit ")
	if got != "/explicit" {
		t.Fatalf("expected flag value, got %q", got)
	}

	stubEnv(t, map[string]string{"TMUX_TMPDIR": "/run/tmux"})
	got, err = ResolveSocketPath("")
	if err != nil {
		t.Fatalf("ResolveSocketPath: %v", err)
	}
	if filepath.Dir(filepath.Dir(got)) != "/run/tmux" || filepath.Base(got) != "default" {
		t.Fatalf("expected per-user default under TMUX_TMPDIR, got %q", got)
	}
}

func TestInsideTmux(t *testing.T) {
	stubEnv(t, map[string]string{"TMUX": ",123,0"})
	if InsideTmux() {
		t.Fatalf("expected a TMUX value without a socket to be ignored")
	}
	stubEnv(t, map[string]string{"TMUX": "/tmp/tmux-1/default,1,0"})
	if !InsideTmux() {
		t.Fatalf("expected tmux client detected")
	}
}

func TestSessionName(t *testing.T) {
	if got := SessionName("/lib/props/Old Crate.v2"); got != "assetgrid-Old-Crate-v2" {
		t.Fatalf("expected sanitized name, got %q", got)
	}
}
