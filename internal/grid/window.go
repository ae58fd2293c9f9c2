package grid

// Window is the inclusive range of rows kept rendered plus the layout needed
// to position them. It is empty when LastRow < FirstRow.
type Window struct {
	FirstRow   int
	LastRow    int
	Columns    int
	CardWidth  int
	ItemHeight int
	Gap        int
}

// Empty reports whether the window renders nothing.
func (w Window) Empty() bool {
	return w.LastRow < w.FirstRow
}

// Span returns the absolute item index range covered by the window for a
// list of n items. An empty span is returned as (0, -1).
func (w Window) Span(n int) (start, end int) {
	if w.Empty() || n <= 0 || w.Columns < 1 {
		return 0, -1
	}
	start = w.FirstRow * w.Columns
	end = (w.LastRow+1)*w.Columns - 1
	if end > n-1 {
		end = n - 1
	}
	if start > end {
		return 0, -1
	}
	return start, end
}

// Capacity is the number of slots the window spans.
func (w Window) Capacity() int {
	if w.Empty() {
		return 0
	}
	return w.Columns * (w.LastRow - w.FirstRow + 1)
}

// ResolveRows computes the inclusive row range for a scroll position. It
// returns (0, -1) when there are no rows.
func ResolveRows(scrollOffset, viewportHeight, rowHeight, overscanRows, totalRows int) (firstRow, lastRow int) {
	if totalRows <= 0 {
		return 0, -1
	}
	if rowHeight < 1 {
		rowHeight = 1
	}
	if scrollOffset < 0 {
		scrollOffset = 0
	}
	if viewportHeight < 0 {
		viewportHeight = 0
	}
	if overscanRows < 0 {
		overscanRows = 0
	}
	firstRow = scrollOffset/rowHeight - overscanRows
	if firstRow < 0 {
		firstRow = 0
	}
	if firstRow > totalRows-1 {
		firstRow = totalRows - 1
	}
	lastRow = (scrollOffset+viewportHeight+rowHeight-1)/rowHeight + overscanRows
	if lastRow > totalRows-1 {
		lastRow = totalRows - 1
	}
	return firstRow, lastRow
}

// ResolveWindow resolves the visible window for a geometry.
func ResolveWindow(g Geometry, scrollOffset, viewportHeight, overscanRows int) Window {
	first, last := ResolveRows(scrollOffset, viewportHeight, g.RowHeight(), overscanRows, g.TotalRows)
	return Window{
		FirstRow:   first,
		LastRow:    last,
		Columns:    g.Columns,
		CardWidth:  g.CardWidth,
		ItemHeight: g.ItemHeight,
		Gap:        g.Gap,
	}
}
