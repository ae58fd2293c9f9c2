// Package grid implements the windowed rendering engine: grid geometry, the
// visible row window and an identity keyed node recycler driven by a
// Controller.
package grid

// Options control geometry and how many rows are rendered beyond the
// viewport.
type Options struct {
	ItemMinWidth int  `json:"itemMinWidth" yaml:"itemMinWidth"`
	ItemHeight   int  `json:"itemHeight" yaml:"itemHeight"`
	Gap          int  `json:"gap" yaml:"gap"`
	OverscanRows int  `json:"overscanRows" yaml:"overscanRows"`
	Square       bool `json:"square" yaml:"square"`
}

// DefaultOptions mirrors the web viewer's pixel defaults.
func DefaultOptions() Options {
	return Options{
		ItemMinWidth: 200,
		ItemHeight:   240,
		Gap:          6,
		OverscanRows: 2,
	}
}

// Normalize clamps negative values to zero and the minimum item width to 1.
func (o Options) Normalize() Options {
	if o.ItemMinWidth < 1 {
		o.ItemMinWidth = 1
	}
	if o.ItemHeight < 0 {
		o.ItemHeight = 0
	}
	if o.Gap < 0 {
		o.Gap = 0
	}
	if o.OverscanRows < 0 {
		o.OverscanRows = 0
	}
	return o
}

// Geometry is the derived layout for a viewport width and item count.
type Geometry struct {
	Columns          int
	CardWidth        int
	ItemHeight       int
	Gap              int
	TotalRows        int
	ScrollableHeight int
}

// RowHeight is the vertical distance between the tops of adjacent rows.
func (g Geometry) RowHeight() int {
	return g.ItemHeight + g.Gap
}

// ComputeGeometry lays out n items across viewportWidth. It never fails:
// there is always at least one column and widths are clamped at zero.
func ComputeGeometry(viewportWidth, n int, opts Options) Geometry {
	opts = opts.Normalize()
	if viewportWidth < 0 {
		viewportWidth = 0
	}
	if n < 0 {
		n = 0
	}
	columns := (viewportWidth + opts.Gap) / (opts.ItemMinWidth + opts.Gap)
	if columns < 1 {
		columns = 1
	}
	cardWidth := (viewportWidth - opts.Gap*(columns-1)) / columns
	if cardWidth < 0 {
		cardWidth = 0
	}
	itemHeight := opts.ItemHeight
	if opts.Square {
		itemHeight = cardWidth
	}
	totalRows := (n + columns - 1) / columns
	scrollable := 0
	if totalRows > 0 {
		scrollable = totalRows*(itemHeight+opts.Gap) - opts.Gap
	}
	return Geometry{
		Columns:          columns,
		CardWidth:        cardWidth,
		ItemHeight:       itemHeight,
		Gap:              opts.Gap,
		TotalRows:        totalRows,
		ScrollableHeight: scrollable,
	}
}
