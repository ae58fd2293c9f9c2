package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/assetgrid/internal/testutil"
)

func TestTypingDebouncesQuery(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("/")
	if tm.Model().focus != paneSearch {
		t.Fatalf("expected search focus, got %s", tm.Model().focus)
	}

	tm.typeText("wood")
	if len(tm.pending) != 4 {
		t.Fatalf("expected one timer per keystroke, got %d", len(tm.pending))
	}
	if got := tm.Model().Filter().Query; got != "" {
		t.Fatalf("query must wait for the debounce, got %q", got)
	}
	if len(tm.Model().Visible()) != 4 {
		t.Fatalf("grid must not change before the debounce fires")
	}

	tm.settle()
	if got := tm.Model().Filter().Query; got != "wood" {
		t.Fatalf("expected query wood, got %q", got)
	}
	assertNames(t, tm.Model().Visible(), "Oak Bark", "Old Crate")
}

func TestSupersededDebounceTokenIsIgnored(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("/")
	tm.typeText("re")
	first := tm.pending[0]

	tm.clock.Advance(defaultQueryDelay)
	tm.Send(first)
	if got := tm.Model().Filter().Query; got != "" {
		t.Fatalf("stale token applied query %q", got)
	}

	tm.Send(tm.pending[1])
	if got := tm.Model().Filter().Query; got != "re" {
		t.Fatalf("expected query re, got %q", got)
	}
}

func TestEarlyDebounceTokenIsRescheduled(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("/")
	tm.typeText("oak")
	count := len(tm.pending)

	tm.Send(tm.pending[count-1])
	if len(tm.pending) != count+1 {
		t.Fatalf("expected early token to be rescheduled")
	}
	if got := tm.Model().Filter().Query; got != "" {
		t.Fatalf("early token applied query %q", got)
	}

	tm.settle()
	assertNames(t, tm.Model().Visible(), "Oak Bark")
}

func TestEnterFlushesPendingQuery(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("/")
	tm.typeText("brick")
	tm.press("enter")

	m := tm.Model()
	if m.focus != paneGrid {
		t.Fatalf("expected grid focus after commit, got %s", m.focus)
	}
	assertNames(t, m.Visible(), "Red Brick")

	tm.settle()
	if _, ok := m.queryDebounce.Pending(); ok {
		t.Fatalf("expected no pending query after commit")
	}
	assertNames(t, m.Visible(), "Red Brick")
}

func TestQueryMatchesEveryToken(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("/")
	tm.typeText("crate wood")
	tm.settle()
	assertNames(t, tm.Model().Visible(), "Old Crate")

	tm.press("backspace", "backspace", "backspace", "backspace")
	tm.settle()
	if got := tm.Model().Filter().Query; got != "crate " {
		t.Fatalf("expected trailing-space query, got %q", got)
	}
	assertNames(t, tm.Model().Visible(), "Old Crate")
}

func TestEscLeavesSearchWithoutFlushing(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("/")
	tm.typeText("oak")
	tm.press("esc")
	if tm.Model().focus != paneGrid {
		t.Fatalf("expected grid focus, got %s", tm.Model().focus)
	}
	if got := tm.Model().Filter().Query; got != "" {
		t.Fatalf("esc must not flush, got %q", got)
	}
	if got := tm.Model().search.Value; got != "oak" {
		t.Fatalf("expected search text to survive, got %q", got)
	}
}

func TestFolderJumpSearch(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("tab", "/")
	if tm.Model().searchTarget != paneFolders {
		t.Fatalf("expected folder search, got %s", tm.Model().searchTarget)
	}
	tm.typeText("mat")
	if got := tm.Model().folders.Jump(); got != "mat" {
		t.Fatalf("expected jump query, got %q", got)
	}
	if len(tm.pending) != 0 {
		t.Fatalf("folder jump must not touch the grid query")
	}
	tm.press("enter")
	if tm.Model().focus != paneFolders {
		t.Fatalf("expected folder focus, got %s", tm.Model().focus)
	}
	tm.press("enter")
	if got := tm.Model().Filter().FolderPrefix; got != "materials" {
		t.Fatalf("expected materials folder, got %q", got)
	}
	assertNames(t, tm.Model().Visible(), "Oak Bark")
}

func TestFilterPromptPlaceholders(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	if got := tm.Model().filterPrompt(); !strings.Contains(got, "(press / to search)") {
		t.Fatalf("unexpected idle prompt %q", got)
	}
	tm.press("tab", "/")
	label, _ := tm.Model().activePrompt()
	if label != "folders » " {
		t.Fatalf("unexpected folder prompt label %q", label)
	}
}
