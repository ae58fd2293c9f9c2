package state

// GridMove is a cursor movement within the card grid.
type GridMove int

const (
	GridLeft GridMove = iota
	GridRight
	GridUp
	GridDown
	GridHome
	GridEnd
	GridPageUp
	GridPageDown
)

// GridCursor tracks the focused card by absolute index. Index is -1 when
// nothing is focused.
type GridCursor struct {
	Index int
	Total int
}

// NewGridCursor returns a cursor with no focused card.
func NewGridCursor() GridCursor {
	return GridCursor{Index: -1}
}

// SetTotal updates the item count and keeps the index in range.
func (g *GridCursor) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	g.Total = total
	switch {
	case total == 0:
		g.Index = -1
	case g.Index >= total:
		g.Index = total - 1
	}
}

// Reset drops focus, as after a new result list.
func (g *GridCursor) Reset(total int) {
	g.Index = -1
	g.SetTotal(total)
	if g.Total > 0 {
		g.Index = 0
	}
}

// Move applies m on a grid with the given column count. pageRows is the
// number of rows a page movement skips. The first movement of an unfocused
// cursor lands on the first card.
func (g *GridCursor) Move(m GridMove, columns, pageRows int) bool {
	if g.Total == 0 {
		return false
	}
	if columns < 1 {
		columns = 1
	}
	if pageRows < 1 {
		pageRows = 1
	}
	idx := g.Index
	last := g.Total - 1
	next := idx
	switch m {
	case GridRight:
		next = clampLast(idx+1, last)
		if idx < 0 {
			next = 0
		}
	case GridLeft:
		next = clampLast(idx-1, last)
	case GridDown:
		next = clampLast(idx+columns, last)
		if idx < 0 {
			next = 0
		}
	case GridUp:
		next = clampLast(idx-columns, last)
	case GridPageDown:
		next = clampLast(idx+columns*pageRows, last)
		if idx < 0 {
			next = 0
		}
	case GridPageUp:
		next = clampLast(idx-columns*pageRows, last)
	case GridHome:
		next = 0
	case GridEnd:
		next = last
	}
	g.Index = next
	return next != idx
}

func clampLast(i, last int) int {
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}
