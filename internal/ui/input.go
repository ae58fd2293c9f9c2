package ui

import (
	"unicode"

	"github.com/atomicstack/assetgrid/internal/logging/events"
	uistate "github.com/atomicstack/assetgrid/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// beginSearch moves key input to the prompt for the focused pane.
func (m *Model) beginSearch() {
	target := m.focus
	if target == paneSearch {
		return
	}
	m.searchTarget = target
	m.setFocus(paneSearch)
	m.filterCursorDirty = true
}

// endSearch leaves the prompt. Committing flushes a pending grid query.
func (m *Model) endSearch(commit bool) {
	if m.focus != paneSearch {
		return
	}
	if commit && m.searchTarget == paneGrid {
		m.flushQuery()
	}
	m.setFocus(m.searchTarget)
}

// activePrompt returns the prompt shown on the input line.
func (m *Model) activePrompt() (label string, prompt uistate.Prompt) {
	target := m.searchTarget
	if m.focus != paneSearch {
		target = paneGrid
	}
	switch target {
	case paneFolders:
		return "folders » ", m.folderJump
	case paneFacets:
		if current := m.currentSection(); current != nil {
			return current.Title + " » ", current.Filter
		}
	}
	return "» ", m.search
}

// editSearch applies edit to the prompt of the search target.
func (m *Model) editSearch(edit func(*uistate.Prompt) bool) (bool, tea.Cmd) {
	_, before := m.activePrompt()
	var cmd tea.Cmd
	switch m.searchTarget {
	case paneFolders:
		p := m.folderJump
		if !edit(&p) {
			return false, nil
		}
		m.folderJump = p
		if p.Value != before.Value {
			m.folders.SetJump(p.Value)
		}
	case paneFacets:
		current := m.currentSection()
		if current == nil || !current.EditFilter(edit) {
			return false, nil
		}
		current.EnsureCursorVisible(sectionMaxVisible)
	default:
		if !edit(&m.search) {
			return false, nil
		}
		if m.search.Value != before.Value {
			events.Filter.Query(m.search.Value)
			cmd = m.scheduleDebounce(m.queryDebounce)
		}
	}
	_, after := m.activePrompt()
	if after.Pos() != before.Pos() {
		events.Filter.Cursor(after.Pos())
		m.filterCursorDirty = true
	}
	if after.Value != before.Value {
		m.forceClearInfo()
		m.errMsg = ""
		if after.Value == "" {
			events.Filter.Cleared()
		}
	}
	return true, cmd
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return m.quit("ctrl+c")
	case "esc":
		m.endSearch(false)
		return nil
	case "enter":
		m.endSearch(true)
		return nil
	case "tab":
		m.endSearch(true)
		m.cycleFocus(1)
		return nil
	case "up", "down":
		return m.forwardSearchNavigation(msg)
	}
	_, cmd := m.handleTextInput(msg)
	return cmd
}

// forwardSearchNavigation lets up and down move the list being filtered
// without leaving the prompt.
func (m *Model) forwardSearchNavigation(msg tea.KeyMsg) tea.Cmd {
	delta := 1
	if msg.Type == tea.KeyUp {
		delta = -1
	}
	switch m.searchTarget {
	case paneFolders:
		m.folders.Move(delta)
	case paneFacets:
		if current := m.currentSection(); current != nil {
			current.Step(delta)
			current.EnsureCursorVisible(sectionMaxVisible)
		}
	}
	return nil
}

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+u":
		return m.editSearch((*uistate.Prompt).Clear)
	case "ctrl+w", "alt+backspace":
		return m.editSearch((*uistate.Prompt).DeleteWordBackward)
	case "ctrl+a":
		return m.editSearch((*uistate.Prompt).Home)
	case "ctrl+e":
		return m.editSearch((*uistate.Prompt).End)
	case "alt+b":
		return m.editSearch((*uistate.Prompt).WordLeft)
	case "alt+f":
		return m.editSearch((*uistate.Prompt).WordRight)
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.editSearch((*uistate.Prompt).DeleteRuneBackward)
	case tea.KeyDelete:
		return m.editSearch((*uistate.Prompt).DeleteRuneForward)
	case tea.KeyHome:
		return m.editSearch((*uistate.Prompt).Home)
	case tea.KeyEnd:
		return m.editSearch((*uistate.Prompt).End)
	case tea.KeyLeft:
		return m.editSearch((*uistate.Prompt).Left)
	case tea.KeyRight:
		return m.editSearch((*uistate.Prompt).Right)
	case tea.KeySpace:
		return m.editSearch(insertText(" "))
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
		}
		return m.editSearch(insertText(string(msg.Runes)))
	}
	return false, nil
}

func insertText(text string) func(*uistate.Prompt) bool {
	return func(p *uistate.Prompt) bool {
		return p.Insert(text)
	}
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	label, current := m.activePrompt()
	prompt := render(styles.FilterPrompt, label)
	searching := m.focus == paneSearch
	text := current.Value
	if text == "" {
		placeholder := "(type to search)"
		if !searching {
			placeholder = "(press / to search)"
		}
		runes := []rune(placeholder)
		if !searching {
			return prompt + render(styles.FilterPlaceholder, placeholder)
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(runes[1:]))
	}
	if !searching {
		return prompt + render(styles.Filter, text)
	}
	runes := []rune(text)
	pos := current.Pos()
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
