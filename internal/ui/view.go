package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/menu"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	fallbackWidth     = 80
	fallbackHeight    = 24
	headerRows        = 1
	bottomBarRows     = 2
	detailMinWidth    = 30
	detailMaxWidth    = 60
	detailMaxValueLen = 200
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	width, height := m.width, m.height
	if width <= 0 {
		width = fallbackWidth
	}
	if height <= 0 {
		height = fallbackHeight
	}
	bodyH := m.bodyHeight(height)
	sideW := sidebarWidthOf(width)
	gridW := width
	if sideW > 0 {
		gridW = width - sideW - 1
	}

	out := make([]string, 0, height)
	out = append(out, fitLine(m.headerLine(), width))

	gridRows := m.gridLines(gridW, bodyH)
	if m.detail != nil {
		gridRows = m.overlayDetail(gridRows, gridW, bodyH)
	}
	var sideRows []string
	if sideW > 0 {
		sideRows = fitLines(renderLines(applyWidth(limitHeight(m.sidebarLines(sideW, bodyH), bodyH, sideW), sideW)), sideW, bodyH)
	}
	sep := renderStyled(styles.Separator, "│")
	for i := 0; i < bodyH; i++ {
		row := gridRows[i]
		if sideW > 0 {
			row = sideRows[i] + sep + row
		}
		out = append(out, row)
	}

	out = append(out, fitLine(m.statusLine(), width))
	out = append(out, fitLine(m.filterPrompt(), width))
	if m.showFooter {
		out = append(out, fitLine(renderStyled(styles.Footer, m.help.View(m.keys)), width))
	}
	return strings.Join(out, "\n")
}

func (m *Model) bodyHeight(height int) int {
	used := headerRows + bottomBarRows
	if m.showFooter {
		used++
	}
	if h := height - used; h > 0 {
		return h
	}
	return 0
}

// gridViewport returns the size of the grid pane in cells.
func (m *Model) gridViewport() (width, height int) {
	width = m.width
	if side := m.sidebarWidth(); side > 0 {
		width -= side + 1
	}
	if width < 0 {
		width = 0
	}
	return width, m.bodyHeight(m.height)
}

func (m *Model) headerLine() string {
	active := menu.ActiveQuickFilter(m.filter)
	chips := make([]string, 0, len(menu.QuickFilters())+1)
	for i, qf := range menu.QuickFilters() {
		style := styles.Chip
		if qf.ID == active {
			style = styles.ActiveChip
		}
		chips = append(chips, renderStyled(style, fmt.Sprintf("%d %s", i+1, qf.Label)))
	}
	parts := []string{strings.Join(chips, " ")}
	meta := []string{"sort: " + sortLabel(m.filter)}
	if m.filter.Semantic {
		meta = append(meta, "semantic")
	}
	if types := m.filter.TypeList(); len(types) > 0 {
		meta = append(meta, "type: "+strings.Join(types, ","))
	}
	if cats := m.filter.CategoryList(); len(cats) > 0 {
		meta = append(meta, "category: "+strings.Join(cats, ","))
	}
	if m.filter.FolderPrefix != "" {
		meta = append(meta, "in: "+m.filter.FolderPrefix)
	}
	parts = append(parts, renderStyled(styles.Header, strings.Join(meta, "  ")))
	return strings.Join(parts, "  ")
}

func (m *Model) statusLine() string {
	switch {
	case m.errMsg != "":
		return renderStyled(styles.Error, m.errMsg)
	case m.loading:
		return m.spinner.View() + " " + renderStyled(styles.Loading, "Loading catalog…")
	case m.renderErr != "":
		return renderStyled(styles.Error, "Render failed: "+m.renderErr)
	}
	if info := m.currentInfo(); info != "" {
		return renderStyled(styles.Info, info)
	}
	return renderStyled(styles.Status, m.status)
}

// gridLines composes the placed cards into exactly height lines of width
// cells. Cards are drawn at their offset from the scroll position and
// clipped at the viewport edges.
func (m *Model) gridLines(width, height int) []string {
	rows := make([]string, height)
	if len(m.grid.Items()) == 0 {
		msg := m.emptyGridMessage()
		if height > 0 {
			rows[0] = renderStyled(styles.Info, msg)
		}
		return fitLines(strings.Join(rows, "\n"), width, height)
	}
	g := m.grid.Geometry()
	scroll := m.grid.ScrollOffset()
	for _, placed := range m.grid.Nodes() {
		if placed.Node == nil {
			continue
		}
		lines := placed.Node.Render(g.CardWidth, g.ItemHeight, placed.Index == m.gridCursor.Index)
		top := placed.Y - scroll
		for i, line := range lines {
			y := top + i
			if y < 0 || y >= height {
				continue
			}
			if pad := placed.X - ansi.StringWidth(rows[y]); pad > 0 {
				rows[y] += strings.Repeat(" ", pad)
			}
			rows[y] += line
		}
	}
	return fitLines(strings.Join(rows, "\n"), width, height)
}

func (m *Model) emptyGridMessage() string {
	switch {
	case m.loading:
		return "Loading catalog…"
	case !m.catalog.Loaded():
		return "No catalog loaded"
	case len(m.catalog.Items()) == 0:
		return "The catalog is empty"
	default:
		return "No items match the current filters"
	}
}

func (m *Model) detailWidth(gridW int) int {
	w := gridW * 6 / 10
	if w > detailMaxWidth {
		w = detailMaxWidth
	}
	if w < detailMinWidth {
		w = detailMinWidth
	}
	if w > gridW {
		w = gridW
	}
	return w
}

// overlayDetail draws the detail panel over the right side of the grid rows.
func (m *Model) overlayDetail(rows []string, gridW, height int) []string {
	panelW := m.detailWidth(gridW)
	if panelW < 4 || height < 3 {
		return rows
	}
	panel := strings.Split(m.renderDetailPanel(m.detail, panelW, height), "\n")
	leftW := gridW - panelW
	out := make([]string, len(rows))
	for i, row := range rows {
		left := ansi.Truncate(row, leftW, "")
		if pad := leftW - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		if i < len(panel) {
			out[i] = left + fitLine(panel[i], panelW)
		} else {
			out[i] = left
		}
	}
	return out
}

// renderDetailPanel builds the bordered metadata box as a string with
// exactly height rows and totalWidth columns.
func (m *Model) renderDetailPanel(d *detailView, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	border := styles.DetailBorder

	titleSeg := " Details "
	if d != nil && d.item != nil {
		titleSeg = " " + d.item.DisplayName + " "
	}
	if w := len([]rune(titleSeg)); w > totalWidth-4 {
		titleSeg = truncateText(titleSeg, totalWidth-4)
	}
	dashes := totalWidth - 4 - len([]rune(titleSeg))
	if dashes < 0 {
		dashes = 0
	}
	topLine := renderStyled(border, tlc+hz) +
		renderStyled(styles.DetailTitle, titleSeg) +
		renderStyled(border, strings.Repeat(hz, dashes)+hz+trc)
	bottomLine := renderStyled(border, blc+strings.Repeat(hz, innerW)+brc)

	content := detailContent(d)
	rows := make([]string, 0, height)
	rows = append(rows, topLine)
	for i := 0; i < innerH; i++ {
		var line styledLine
		if i < len(content) {
			line = content[i]
		}
		text := truncate.StringWithTail(line.text, uint(innerW), "…")
		if w := ansi.StringWidth(text); w < innerW {
			text += strings.Repeat(" ", innerW-w)
		}
		if !line.raw {
			text = renderStyled(line.style, text)
		}
		rows = append(rows, renderStyled(border, vt)+text+renderStyled(border, vt))
	}
	rows = append(rows, bottomLine)
	return strings.Join(rows, "\n")
}

func detailContent(d *detailView) []styledLine {
	if d == nil || d.item == nil {
		return nil
	}
	it := d.item
	lines := make([]styledLine, 0, 16)
	field := func(name, value string) {
		if value == "" {
			return
		}
		lines = append(lines, styledLine{
			text: renderStyled(styles.DetailKey, name+": ") + renderStyled(styles.DetailBody, value),
			raw:  true,
		})
	}
	field("id", it.ID)
	field("type", it.Type)
	field("category", it.Category)
	field("folder", it.RelDir)
	field("version", versionSummary(it))
	field("updated", it.Updated)
	field("tags", strings.Join(it.Tags, ", "))
	field("auto tags", strings.Join(it.AutoTags, ", "))
	switch {
	case d.loading:
		lines = append(lines, styledLine{}, styledLine{text: "Loading metadata…", style: styles.Loading})
	case d.err != nil:
		lines = append(lines, styledLine{}, styledLine{text: d.err.Error(), style: styles.DetailError})
	case len(d.detail) > 0:
		lines = append(lines, styledLine{})
		keys := make([]string, 0, len(d.detail))
		for k := range d.detail {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			field(k, detailValue(d.detail[k]))
		}
	}
	return lines
}

func versionSummary(it *catalog.Item) string {
	if it.LatestVersion == "" {
		return ""
	}
	if n := len(it.Versions); n > 1 {
		return fmt.Sprintf("%s (%d versions)", it.LatestVersion, n)
	}
	return it.LatestVersion
}

func detailValue(v interface{}) string {
	var text string
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		text = value
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(value)
		if err != nil {
			text = fmt.Sprint(value)
		} else {
			text = string(data)
		}
	default:
		text = fmt.Sprint(value)
	}
	text = strings.Join(strings.Fields(text), " ")
	return truncateText(text, detailMaxValueLen)
}

// fitLines splits rendered text into exactly height rows of width cells.
func fitLines(text string, width, height int) []string {
	rows := strings.Split(text, "\n")
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i, row := range rows {
		rows[i] = fitLine(row, width)
	}
	return rows
}

// fitLine pads or truncates an ANSI string to exactly width cells.
func fitLine(row string, width int) string {
	if width <= 0 {
		return ""
	}
	w := ansi.StringWidth(row)
	if w > width {
		row = ansi.Truncate(row, width-1, "") + "…"
		w = width
	}
	if w < width {
		row += strings.Repeat(" ", width-w)
	}
	return row
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if ansi.StringWidth(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
