package ui

import (
	"fmt"
	"testing"
	"time"

	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/debounce"
	"github.com/atomicstack/assetgrid/internal/filter"
	"github.com/atomicstack/assetgrid/internal/menu"
	"github.com/atomicstack/assetgrid/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func manyItems(n int) []*catalog.Item {
	items := make([]*catalog.Item, n)
	for i := range items {
		items[i] = testutil.Item(
			fmt.Sprintf("item-%02d", i),
			fmt.Sprintf("Item %02d", i),
			"asset", "props",
			fmt.Sprintf("props/item_%02d", i),
		)
	}
	return items
}

func TestGridCursorFollowsColumns(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	m := tm.Model()
	if cols := m.grid.Geometry().Columns; cols != 2 {
		t.Fatalf("expected 2 columns in a 67 cell pane, got %d", cols)
	}

	steps := []struct {
		key  string
		want int
	}{
		{"j", 2},
		{"l", 3},
		{"right", 3},
		{"k", 1},
		{"h", 0},
		{"G", 3},
		{"g", 0},
		{"down", 2},
		{"up", 0},
	}
	for _, step := range steps {
		tm.press(step.key)
		if got := m.gridCursor.Index; got != step.want {
			t.Fatalf("after %q expected cursor %d, got %d", step.key, step.want, got)
		}
	}
	if item := m.currentItem(); item == nil || item.DisplayName != "Oak Bark" {
		t.Fatalf("unexpected current item %#v", item)
	}
}

func TestPageDownScrollsCursorIntoView(t *testing.T) {
	tm := newTestModel(t, newStubSource(manyItems(20)...))
	m := tm.Model()

	tm.press("pgdown")
	if got := m.gridCursor.Index; got != 6 {
		t.Fatalf("expected a page of three rows, cursor=%d", got)
	}
	if m.grid.ScrollOffset() == 0 {
		t.Fatalf("expected the grid to scroll to the cursor")
	}

	tm.press("g")
	if m.grid.ScrollOffset() != 0 {
		t.Fatalf("expected home to scroll back, offset=%d", m.grid.ScrollOffset())
	}
}

func TestMouseWheelScrollsByRow(t *testing.T) {
	tm := newTestModel(t, newStubSource(manyItems(20)...))
	m := tm.Model()
	row := m.grid.Geometry().RowHeight()

	tm.Send(tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress})
	if got := m.grid.ScrollOffset(); got != row {
		t.Fatalf("expected offset %d, got %d", row, got)
	}
	tm.Send(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	tm.Send(tea.MouseMsg{Button: tea.MouseButtonWheelUp, Action: tea.MouseActionPress})
	if got := m.grid.ScrollOffset(); got != 0 {
		t.Fatalf("expected scroll clamped at zero, got %d", got)
	}
}

func TestWindowResizeIsDebouncedAfterFirstSize(t *testing.T) {
	tm := &testModel{clock: debounce.NewManualClock(time.Unix(1700000000, 0))}
	m := NewModel(Options{Grid: TerminalGridOptions(), Clock: tm.clock})
	tm.capture(m)
	tm.Harness = NewHarness(m)

	tm.Send(tea.WindowSizeMsg{Width: 100, Height: 30})
	if w, h := m.grid.Viewport(); w != 67 || h != 27 {
		t.Fatalf("expected first size applied at once, got %dx%d", w, h)
	}

	tm.Send(tea.WindowSizeMsg{Width: 60, Height: 30})
	if w, _ := m.grid.Viewport(); w != 67 {
		t.Fatalf("expected later resize to wait, got width %d", w)
	}
	if len(tm.pending) != 1 || tm.pending[0].token.Channel != "resize" {
		t.Fatalf("expected one resize timer, got %#v", tm.pending)
	}

	tm.clock.Advance(defaultResizeDelay)
	tm.Send(tm.pending[0])
	if w, _ := m.grid.Viewport(); w != 39 {
		t.Fatalf("expected resized grid pane, got width %d", w)
	}
}

func TestFocusCycle(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	want := []pane{paneFolders, paneFacets, paneGrid}
	for _, p := range want {
		tm.press("tab")
		if got := tm.Model().focus; got != p {
			t.Fatalf("expected %s, got %s", p, got)
		}
	}
	tm.press("shift+tab")
	if got := tm.Model().focus; got != paneFacets {
		t.Fatalf("expected facets, got %s", got)
	}
}

func TestFolderSelectFiltersAndToggles(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("tab")
	m := tm.Model()

	// rows: All folders, materials, props, textures
	tm.press("j", "j", "enter")
	if got := m.Filter().FolderPrefix; got != "props" {
		t.Fatalf("expected props folder, got %q", got)
	}
	assertNames(t, m.Visible(), "Old Crate", "Rusty Barrel")
	if m.gridCursor.Index != 0 {
		t.Fatalf("expected cursor reset on new results")
	}

	tm.press("space")
	if !m.folders.Expanded("props") {
		t.Fatalf("expected props to expand")
	}
	tm.press("j", "enter")
	if got := m.Filter().FolderPrefix; got != "props/barrels" {
		t.Fatalf("expected props/barrels, got %q", got)
	}
	assertNames(t, m.Visible(), "Rusty Barrel")

	tm.press("enter")
	if got := m.Filter().FolderPrefix; got != "" {
		t.Fatalf("selecting the active folder again must clear it, got %q", got)
	}
	if len(m.Visible()) != 4 {
		t.Fatalf("expected every item back")
	}

	tm.press("esc")
	if m.focus != paneGrid {
		t.Fatalf("expected esc to return to the grid, got %s", m.focus)
	}
}

func TestFacetToggleCrossesSections(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("tab", "tab")
	m := tm.Model()
	for i := 0; i < len(menu.QuickFilters()); i++ {
		tm.press("j")
	}
	if current := m.currentSection(); current == nil || current.ID != "type" {
		t.Fatalf("expected the type section after the quick filters")
	}

	tm.press("space")
	assertNames(t, m.Visible(), "Old Crate", "Rusty Barrel")
	if !m.Filter().HasType("asset") {
		t.Fatalf("expected asset type selected")
	}
	if got := menu.ActiveQuickFilter(m.Filter()); got != "assets" {
		t.Fatalf("expected the assets chip to light up, got %q", got)
	}

	tm.press("space")
	if len(m.Visible()) != 4 {
		t.Fatalf("expected toggle off to restore the catalog")
	}
}

func TestQuickFilterKeys(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	m := tm.Model()

	tm.press("2")
	assertNames(t, m.Visible(), "Old Crate", "Rusty Barrel")
	tm.press("3")
	assertNames(t, m.Visible(), "Oak Bark")
	tm.press("4")
	assertNames(t, m.Visible(), "Red Brick")
	tm.press("1")
	if len(m.Visible()) != 4 {
		t.Fatalf("expected All to clear facets")
	}
	tm.press("5")
	if m.Filter().SortKey != filter.SortUpdated || !m.Filter().Descending {
		t.Fatalf("expected recent to sort by updated descending")
	}
	if got := menu.ActiveQuickFilter(m.Filter()); got != "recent" {
		t.Fatalf("expected recent chip, got %q", got)
	}
}

func TestSortKeys(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	m := tm.Model()

	tm.press("r")
	assertNames(t, m.Visible(), "Rusty Barrel", "Red Brick", "Old Crate", "Oak Bark")
	if got := m.currentInfo(); got != "Sorted by name ↓" {
		t.Fatalf("unexpected info %q", got)
	}

	tm.press("s")
	if m.Filter().SortKey != filter.SortUpdated {
		t.Fatalf("expected sort to cycle to updated, got %s", m.Filter().SortKey)
	}

	tm.press("S")
	if !m.Filter().Semantic {
		t.Fatalf("expected semantic toggle")
	}
}

func TestCardResizeChangesColumns(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	m := tm.Model()

	tm.press("-", "-")
	if got := m.grid.Options().ItemMinWidth; got != 16 {
		t.Fatalf("expected min width 16, got %d", got)
	}
	if cols := m.grid.Geometry().Columns; cols != 4 {
		t.Fatalf("expected 4 columns, got %d", cols)
	}

	for i := 0; i < 20; i++ {
		tm.press("+")
	}
	if got := m.grid.Options().ItemMinWidth; got != maxCardWidth {
		t.Fatalf("expected width clamped to %d, got %d", maxCardWidth, got)
	}
	if cols := m.grid.Geometry().Columns; cols != 1 {
		t.Fatalf("expected a single column, got %d", cols)
	}
}

func TestQuitKey(t *testing.T) {
	m := NewModel(Options{})
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok && len(batch) == 1 {
		msg = batch[0]()
	}
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestVerboseShowsActionInfo(t *testing.T) {
	tm := newTestModel(t, newStubSource(testutil.SampleItems()...))
	tm.press("3")
	if got := tm.Model().currentInfo(); got != "" {
		t.Fatalf("expected quiet quick filter, got %q", got)
	}

	tm.Model().verbose = true
	tm.press("4")
	if got := tm.Model().currentInfo(); got != "Textures" {
		t.Fatalf("expected quick filter info, got %q", got)
	}
}
