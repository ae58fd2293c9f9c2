package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/assetgrid/internal/folder"
	"github.com/atomicstack/assetgrid/internal/logging"
	"github.com/atomicstack/assetgrid/internal/logging/events"
	"github.com/atomicstack/assetgrid/internal/menu"
	uistate "github.com/atomicstack/assetgrid/internal/ui/state"
)

const (
	sidebarMaxWidth   = 32
	sidebarMinTotal   = 60
	sectionMaxVisible = 6
)

func (m *Model) menuContext() menu.Context {
	items := m.catalog.Items()
	categoryCounts, typeCounts := menu.FacetCounts(items)
	return menu.Context{
		Categories:     m.catalog.Categories(),
		Types:          m.catalog.Types(),
		CategoryCounts: categoryCounts,
		TypeCounts:     typeCounts,
		Filter:         m.filter,
	}
}

// buildSections creates one sidebar level per registry section.
func (m *Model) buildSections() {
	ctx := m.menuContext()
	sections := make([]*level, 0, len(m.registry.Sections()))
	for _, node := range m.registry.Sections() {
		var items []menu.Item
		if node.Loader != nil {
			loaded, err := node.Loader(ctx)
			if err != nil {
				logging.Error(err)
			}
			items = loaded
		}
		sections = append(sections, uistate.NewLevel(node.ID, sectionTitle(node.ID), items, node))
	}
	m.sections = sections
	m.syncSelections()
}

// syncSections reloads section items from the catalog and mirrors the facet
// selections of the filter state.
func (m *Model) syncSections() {
	ctx := m.menuContext()
	for _, lvl := range m.sections {
		if lvl.Node == nil || lvl.Node.Loader == nil {
			continue
		}
		items, err := lvl.Node.Loader(ctx)
		if err != nil {
			logging.Error(err)
			continue
		}
		lvl.UpdateItems(items)
	}
	m.syncSelections()
}

func (m *Model) syncSelections() {
	for _, lvl := range m.sections {
		switch lvl.ID {
		case "type":
			lvl.Mark(m.filter.TypeList())
		case "category":
			lvl.Mark(m.filter.CategoryList())
		}
	}
}

func sectionTitle(id string) string {
	for _, item := range menu.RootItems() {
		if item.ID == id {
			return item.Label
		}
	}
	return id
}

func (m *Model) currentSection() *level {
	if len(m.sections) == 0 {
		return nil
	}
	if m.facetSection < 0 || m.facetSection >= len(m.sections) {
		m.facetSection = 0
	}
	return m.sections[m.facetSection]
}

// moveFacetCursor moves within the focused section and steps into the
// neighbouring section at its edges.
func (m *Model) moveFacetCursor(delta int) {
	current := m.currentSection()
	if current == nil {
		return
	}
	if !current.Step(delta) {
		next := m.facetSection + delta
		for next >= 0 && next < len(m.sections) && len(m.sections[next].Items) == 0 {
			next += delta
		}
		if next >= 0 && next < len(m.sections) {
			m.facetSection = next
			current = m.sections[next]
			current.Enter(delta < 0)
		}
	}
	current.EnsureCursorVisible(sectionMaxVisible)
}

func (m *Model) activateFacet() {
	current := m.currentSection()
	if current == nil || current.Node == nil || current.Node.Action == nil {
		return
	}
	item, ok := current.Current()
	if !ok {
		return
	}
	m.runSectionAction(current.Node, item)
}

func (m *Model) sidebarWidth() int {
	return sidebarWidthOf(m.width)
}

func sidebarWidthOf(total int) int {
	if total < sidebarMinTotal {
		return 0
	}
	w := total / 3
	if w > sidebarMaxWidth {
		w = sidebarMaxWidth
	}
	return w
}

func (m *Model) sidebarLines(width, height int) []styledLine {
	lines := make([]styledLine, 0, height)
	activeQuick := menu.ActiveQuickFilter(m.filter)
	for i, lvl := range m.sections {
		focused := m.focus == paneFacets && i == m.facetSection ||
			m.focus == paneSearch && m.searchTarget == paneFacets && i == m.facetSection
		lines = append(lines, sectionHeader(lvl.Title, focused))
		if len(lvl.Items) == 0 {
			msg := "(none)"
			if lvl.Filter.Value != "" {
				msg = fmt.Sprintf("No matches for %q", lvl.Filter.Value)
			}
			lines = append(lines, styledLine{text: "  " + msg, style: styles.Info})
			continue
		}
		lvl.EnsureCursorVisible(sectionMaxVisible)
		end := lvl.ViewportOffset + sectionMaxVisible
		if end > len(lvl.Items) {
			end = len(lvl.Items)
		}
		for idx := lvl.ViewportOffset; idx < end; idx++ {
			item := lvl.Items[idx]
			marked := lvl.Marked(item.ID) || lvl.ID == "quick" && item.ID == activeQuick
			lines = append(lines, buildItemLine(item, marked, lvl.MultiSelect, focused && idx == lvl.Cursor, width))
		}
	}
	lines = append(lines, sectionHeader("folders", m.focus == paneFolders || m.focus == paneSearch && m.searchTarget == paneFolders))
	lines = append(lines, m.folderLines(width, height-len(lines))...)
	return lines
}

func sectionHeader(title string, focused bool) styledLine {
	style := styles.SectionTitle
	if focused {
		style = styles.FocusedSectionTitle
	}
	return styledLine{text: strings.ToUpper(title), style: style}
}

// buildItemLine constructs a sidebar row. width pads the text so the cursor
// highlight spans the column.
func buildItemLine(item menu.Item, marked, multi, cursor bool, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	var mark string
	switch {
	case multi && marked:
		mark = "[✓] "
	case multi:
		mark = "[ ] "
	case marked:
		mark = "● "
	default:
		mark = "  "
	}
	if marked {
		lineStyle = styles.ActiveItem
	}
	if cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := indicator + " " + mark + item.Label
	if item.Count > 0 {
		text += fmt.Sprintf(" (%d)", item.Count)
	}
	if width > 0 {
		if pad := width - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) folderLines(width, height int) []styledLine {
	if height <= 0 {
		return nil
	}
	rows := m.folders.Rows()
	if len(rows) == 0 {
		msg := "(no folders)"
		if jump := m.folders.Jump(); jump != "" {
			msg = fmt.Sprintf("No folders match %q", jump)
		}
		return []styledLine{{text: "  " + msg, style: styles.Info}}
	}
	cursor := m.folders.Cursor()
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := start + height
	if end > len(rows) {
		end = len(rows)
	}
	focused := m.focus == paneFolders || m.focus == paneSearch && m.searchTarget == paneFolders
	lines := make([]styledLine, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, folderLine(rows[i], focused && i == cursor, m.folders.Jump() != "", width))
	}
	return lines
}

func folderLine(row folder.Row, cursor, fullPath bool, width int) styledLine {
	glyph := "  "
	switch {
	case row.HasChildren && row.Expanded:
		glyph = "▾ "
	case row.HasChildren:
		glyph = "▸ "
	}
	name := row.Node.Name
	if fullPath {
		name = row.Node.Path
	}
	if row.Node.Path == "" {
		name = "All folders"
	}
	lineStyle := styles.Item
	if row.Active {
		lineStyle = styles.ActiveItem
	}
	indicatorStyle := styles.ItemIndicator
	if cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	text := "▌" + " " + strings.Repeat("  ", row.Depth) + glyph + fmt.Sprintf("%s (%d)", name, row.Node.Count)
	if width > 0 {
		if pad := width - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{text: text, style: lineStyle, prefixStyle: indicatorStyle, highlightFrom: 1}
}

func (m *Model) toggleFolder() {
	if path, expanded, ok := m.folders.Toggle(); ok {
		events.Folder.Toggle(path, expanded)
	}
}
