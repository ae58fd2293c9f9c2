package ui

import (
	"strconv"

	"github.com/atomicstack/assetgrid/internal/logging/events"
	uistate "github.com/atomicstack/assetgrid/internal/ui/state"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var focusOrder = []pane{paneGrid, paneFolders, paneFacets}

func (m *Model) setFocus(p pane) {
	if m.focus == p {
		return
	}
	m.focus = p
	events.UI.Focus(p.String())
}

func (m *Model) cycleFocus(delta int) {
	idx := 0
	for i, p := range focusOrder {
		if p == m.focus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(focusOrder)) % len(focusOrder)
	m.setFocus(focusOrder[idx])
}

func (m *Model) quit(reason string) tea.Cmd {
	events.App.Quit(reason)
	return tea.Quit
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	events.UI.Key(keyMsg.String(), m.focus.String())
	m.clearInfo()
	if m.focus == paneSearch {
		return m.handleSearchKey(keyMsg)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.quit(keyMsg.String())
	case key.Matches(keyMsg, m.keys.Search):
		m.beginSearch()
		return nil
	case key.Matches(keyMsg, m.keys.NextPane):
		m.cycleFocus(1)
		return nil
	case key.Matches(keyMsg, m.keys.PrevPane):
		m.cycleFocus(-1)
		return nil
	case key.Matches(keyMsg, m.keys.Reload):
		return m.startLoad("manual")
	case key.Matches(keyMsg, m.keys.Quick):
		if n, err := strconv.Atoi(keyMsg.String()); err == nil {
			m.applyQuickFilter(n)
		}
		return nil
	}
	switch m.focus {
	case paneFolders:
		return m.handleFolderKey(keyMsg)
	case paneFacets:
		return m.handleFacetKey(keyMsg)
	default:
		return m.handleGridKey(keyMsg)
	}
}

func (m *Model) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveGridCursor(uistate.GridUp)
	case key.Matches(msg, m.keys.Down):
		m.moveGridCursor(uistate.GridDown)
	case key.Matches(msg, m.keys.Left):
		m.moveGridCursor(uistate.GridLeft)
	case key.Matches(msg, m.keys.Right):
		m.moveGridCursor(uistate.GridRight)
	case key.Matches(msg, m.keys.Home):
		m.moveGridCursor(uistate.GridHome)
	case key.Matches(msg, m.keys.End):
		m.moveGridCursor(uistate.GridEnd)
	case key.Matches(msg, m.keys.PageUp):
		m.moveGridCursor(uistate.GridPageUp)
	case key.Matches(msg, m.keys.PageDown):
		m.moveGridCursor(uistate.GridPageDown)
	case key.Matches(msg, m.keys.Open):
		return m.openDetail()
	case key.Matches(msg, m.keys.Reveal):
		return m.revealCurrent()
	case key.Matches(msg, m.keys.Sort):
		m.cycleSort()
	case key.Matches(msg, m.keys.Descending):
		m.toggleDescending()
	case key.Matches(msg, m.keys.Semantic):
		m.toggleSemantic()
	case key.Matches(msg, m.keys.Larger):
		m.resizeCards(cardWidthStep)
	case key.Matches(msg, m.keys.Smaller):
		m.resizeCards(-cardWidthStep)
	case key.Matches(msg, m.keys.Back):
		if m.detail != nil {
			m.closeDetail()
			return nil
		}
		m.errMsg = ""
		m.forceClearInfo()
	}
	return nil
}

func (m *Model) handleFolderKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.folders.Move(-1)
	case key.Matches(msg, m.keys.Down):
		m.folders.Move(1)
	case key.Matches(msg, m.keys.Home):
		m.folders.Move(-len(m.folders.Rows()))
	case key.Matches(msg, m.keys.End):
		m.folders.Move(len(m.folders.Rows()))
	case key.Matches(msg, m.keys.Right):
		m.folders.Expand()
	case key.Matches(msg, m.keys.Left):
		m.folders.Collapse()
	case key.Matches(msg, m.keys.Toggle):
		m.toggleFolder()
	case key.Matches(msg, m.keys.Open):
		if path, ok := m.folders.Select(); ok {
			m.selectFolder(path)
		}
	case key.Matches(msg, m.keys.Back):
		if m.folders.Jump() != "" {
			m.folderJump.Clear()
			m.folders.SetJump("")
			return nil
		}
		m.setFocus(paneGrid)
	}
	return nil
}

func (m *Model) handleFacetKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveFacetCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveFacetCursor(1)
	case key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Toggle):
		m.activateFacet()
	case key.Matches(msg, m.keys.Back):
		if current := m.currentSection(); current != nil && current.Filter.Value != "" {
			current.SetFilter("", 0)
			events.Filter.Cleared()
			return nil
		}
		m.setFocus(paneGrid)
	}
	return nil
}

func (m *Model) moveGridCursor(move uistate.GridMove) {
	g := m.grid.Geometry()
	_, height := m.grid.Viewport()
	pageRows := 1
	if rh := g.RowHeight(); rh > 0 && height > rh {
		pageRows = height / rh
	}
	if !m.gridCursor.Move(move, g.Columns, pageRows) {
		return
	}
	events.Grid.Cursor(m.gridCursor.Index)
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	if m.gridCursor.Index < 0 {
		return
	}
	m.noteGridErr(m.grid.EnsureVisible(m.gridCursor.Index))
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	step := m.grid.Geometry().RowHeight()
	if step < 1 {
		step = 1
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		m.noteGridErr(m.grid.ScrollBy(-step))
	case tea.MouseButtonWheelDown:
		m.noteGridErr(m.grid.ScrollBy(step))
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.help.Width = m.width
	if !m.sized {
		m.sized = true
		m.resizeGrid()
		return nil
	}
	return m.scheduleDebounce(m.resizeDebounce)
}

// resizeGrid hands the grid pane's current size to the controller.
func (m *Model) resizeGrid() {
	width, height := m.gridViewport()
	m.noteGridErr(m.grid.Resize(width, height))
	m.ensureCursorVisible()
}
