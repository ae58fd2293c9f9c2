package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/assetgrid/internal/app"
	"github.com/atomicstack/assetgrid/internal/config"
	"github.com/atomicstack/assetgrid/internal/testutil"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			SocketPath: "socket-path",
			Width:      80,
			Height:     24,
			ShowFooter: true,
			Verbose:    true,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"socket":  "socket-path",
			"width":   "80",
			"height":  "24",
			"footer":  "true",
			"verbose": "true",
		},
		Args: []string{"--socket", "socket-path"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["socket"] != "socket-path" {
		t.Fatalf("expected socket flag %q, got %v", "socket-path", flagsValue["socket"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["height"] != "24" {
		t.Fatalf("expected height 24, got %v", flagsValue["height"])
	}
	if flagsValue["footer"] != "true" {
		t.Fatalf("expected footer flag true, got %v", flagsValue["footer"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["verbose"] != "true" {
		t.Fatalf("expected verbose flag true, got %v", flagsValue["verbose"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	source := testutil.WriteCatalog(t, dir, testutil.Document(testutil.SampleItems()...))
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	full := append([]string{}, args...)
	full = append(full, "--source", source, "--log-file", filepath.Join(dir, "assetgrid.log"))
	cmd.SetArgs(full)
	err := cmd.Execute()
	return out.String(), err
}

func TestQueryCommandPrintsTable(t *testing.T) {
	out, err := runCommand(t, "query", "--type", "asset")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "NAME"))
	require.Contains(t, lines[1], "Old Crate")
	require.Contains(t, lines[1], "props/crates/old_crate")
	require.Contains(t, lines[2], "Rusty Barrel")
	require.Equal(t, "2 items", lines[3])
}

func TestQueryCommandMatchesEveryTerm(t *testing.T) {
	out, err := runCommand(t, "query", "--format", "yaml", "wood", "box")
	require.NoError(t, err)
	var items []map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &items))
	require.Len(t, items, 1)
	require.Equal(t, "Old Crate", items[0]["displayName"])
}

func TestQueryCommandSortsDescending(t *testing.T) {
	out, err := runCommand(t, "query", "--folder", "props", "--desc")
	require.NoError(t, err)
	require.Less(t, strings.Index(out, "Rusty Barrel"), strings.Index(out, "Old Crate"))
}

func TestQueryCommandRejectsBadOptions(t *testing.T) {
	_, err := runCommand(t, "query", "--sort", "size")
	require.ErrorContains(t, err, "unknown sort key")

	_, err = runCommand(t, "query", "--format", "csv")
	require.ErrorContains(t, err, "unknown format")
}

func TestTreeCommandPrintsOutline(t *testing.T) {
	out, err := runCommand(t, "tree")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7)
	require.True(t, strings.HasPrefix(lines[0], "materials"))
	require.True(t, strings.HasPrefix(lines[2], "props "))
	require.True(t, strings.HasSuffix(lines[2], "2"))
	require.True(t, strings.HasPrefix(lines[3], "  barrels"))
}

func TestTreeCommandYAML(t *testing.T) {
	out, err := runCommand(t, "tree", "--format", "yaml")
	require.NoError(t, err)
	require.Contains(t, out, "name: props")
	require.Contains(t, out, "path: props/crates")
}

func TestVersionCommand(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	require.True(t, strings.HasPrefix(out.String(), "assetgrid "))
}

func TestMissingSourceIsConfigurationError(t *testing.T) {
	t.Setenv(config.EnvKey("source"), "")
	cmd := newRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"query", "--log-file", filepath.Join(t.TempDir(), "assetgrid.log")})
	err := cmd.Execute()
	require.Error(t, err)
	require.Equal(t, 2, exitCode(err))
	require.Equal(t, 1, exitCode(errors.New("boom")))
}
