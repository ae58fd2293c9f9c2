package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/assetgrid/internal/debounce"
	"github.com/atomicstack/assetgrid/internal/filter"
	"github.com/atomicstack/assetgrid/internal/grid"
	"github.com/atomicstack/assetgrid/internal/logging"
	"github.com/atomicstack/assetgrid/internal/logging/events"
	"github.com/atomicstack/assetgrid/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
)

const (
	minCardWidth  = 12
	maxCardWidth  = 80
	cardWidthStep = 4
)

// debounceMsg is delivered when a debounced channel's token may be due.
type debounceMsg struct {
	token debounce.Token
}

func (m *Model) channelFor(name string) *debounce.Channel {
	switch name {
	case m.queryDebounce.Name():
		return m.queryDebounce
	case m.resizeDebounce.Name():
		return m.resizeDebounce
	}
	return nil
}

func (m *Model) scheduleDebounce(ch *debounce.Channel) tea.Cmd {
	tok := ch.Trigger()
	return m.schedule(ch.Delay(), debounceMsg{token: tok})
}

func (m *Model) handleDebounceMsg(msg tea.Msg) tea.Cmd {
	fired, ok := msg.(debounceMsg)
	if !ok {
		return nil
	}
	tok := fired.token
	ch := m.channelFor(tok.Channel)
	if ch == nil {
		return nil
	}
	if ch.Stale(tok) {
		events.Filter.Debounce(tok.Channel, tok.Seq, true)
		return nil
	}
	if remaining := ch.Remaining(tok); remaining > 0 {
		return m.schedule(remaining, fired)
	}
	if !ch.Fire(tok) {
		return nil
	}
	events.Filter.Debounce(tok.Channel, tok.Seq, false)
	switch ch {
	case m.queryDebounce:
		m.flushQuery()
	case m.resizeDebounce:
		m.resizeGrid()
	}
	return nil
}

// flushQuery copies the search text into the filter state and re-runs the
// pipeline.
func (m *Model) flushQuery() {
	m.queryDebounce.Cancel()
	if m.filter.Query == m.search.Value {
		return
	}
	m.filter.Query = m.search.Value
	events.Filter.Query(m.filter.Query)
	m.applyFilters()
}

// applyFilters runs the pipeline over the loaded catalog and hands the
// result to the grid with the cursor back on the first card.
func (m *Model) applyFilters() {
	all := m.catalog.Items()
	items := filter.Apply(all, m.filter)
	m.noteGridErr(m.grid.SetItemsAt(items, 0))
	m.gridCursor.Reset(len(items))
	m.closeDetail()
	m.folders.SetActive(m.filter.FolderPrefix)
	m.syncSections()
	events.Filter.Applied(len(all), len(items), m.filter.Summary())
	m.status = fmt.Sprintf("%s results", humanize.Comma(int64(len(items))))
}

func (m *Model) noteGridErr(err error) {
	if err == nil {
		m.renderErr = ""
		return
	}
	var renderErr *grid.RenderError
	if errors.As(err, &renderErr) {
		events.Grid.RenderFailed(renderErr.ID, renderErr.Err)
	}
	logging.Error(err)
	m.renderErr = err.Error()
}

func (m *Model) cycleSort() {
	key := m.filter.CycleSort()
	events.Filter.Sort(string(key), m.filter.Descending)
	m.applyFilters()
	m.setInfo(fmt.Sprintf("Sorted by %s", sortLabel(m.filter)))
}

func (m *Model) toggleDescending() {
	m.filter.Descending = !m.filter.Descending
	events.Filter.Sort(string(m.filter.SortKey), m.filter.Descending)
	m.applyFilters()
	m.setInfo(fmt.Sprintf("Sorted by %s", sortLabel(m.filter)))
}

func (m *Model) toggleSemantic() {
	m.filter.Semantic = !m.filter.Semantic
	m.applyFilters()
	if m.filter.Semantic {
		m.setInfo("Semantic search on")
	} else {
		m.setInfo("Semantic search off")
	}
}

func (m *Model) applyQuickFilter(n int) {
	qf, ok := menu.QuickFilterByNumber(n)
	if !ok {
		return
	}
	node, ok := m.registry.Find("quick")
	if !ok || node.Action == nil {
		return
	}
	m.runSectionAction(node, menu.Item{ID: qf.ID, Label: qf.Label})
}

func (m *Model) runSectionAction(node *menu.Node, item menu.Item) {
	result := node.Action(m.menuContext(), item)
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		m.forceClearInfo()
		events.Action.Error(result.Err)
		return
	}
	m.errMsg = ""
	events.Action.Success(result.Info)
	m.applyFilters()
	if m.verbose && result.Info != "" {
		m.setInfo(result.Info)
	}
}

func (m *Model) selectFolder(path string) {
	m.filter.SetFolder(path)
	events.Folder.Select(path)
	m.applyFilters()
	if path == "" {
		m.setInfo("Showing all folders")
	} else {
		m.setInfo(fmt.Sprintf("Folder %s", path))
	}
}

func (m *Model) resizeCards(delta int) {
	width := m.grid.Options().ItemMinWidth + delta
	if width < minCardWidth {
		width = minCardWidth
	}
	if width > maxCardWidth {
		width = maxCardWidth
	}
	if width == m.grid.Options().ItemMinWidth {
		return
	}
	m.noteGridErr(m.grid.SetItemMinWidth(width))
	m.ensureCursorVisible()
	m.setInfo(fmt.Sprintf("Card width %d", width))
}

func sortLabel(s *filter.State) string {
	dir := "↑"
	if s.Descending {
		dir = "↓"
	}
	return fmt.Sprintf("%s %s", s.SortKey, dir)
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
