package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeGeometry(t *testing.T) {
	g := ComputeGeometry(1000, 10, DefaultOptions())
	assert.Equal(t, 4, g.Columns)
	assert.Equal(t, 245, g.CardWidth)
	assert.Equal(t, 240, g.ItemHeight)
	assert.Equal(t, 3, g.TotalRows)
	assert.Equal(t, 3*(240+6)-6, g.ScrollableHeight)
	assert.Equal(t, 246, g.RowHeight())
}

func TestComputeGeometrySquare(t *testing.T) {
	opts := DefaultOptions()
	opts.Square = true
	g := ComputeGeometry(1000, 10, opts)
	assert.Equal(t, g.CardWidth, g.ItemHeight)
}

func TestComputeGeometryNoItems(t *testing.T) {
	g := ComputeGeometry(1000, 0, DefaultOptions())
	assert.Equal(t, 0, g.TotalRows)
	assert.Equal(t, 0, g.ScrollableHeight)
}

func TestComputeGeometryNarrowViewport(t *testing.T) {
	g := ComputeGeometry(120, 5, DefaultOptions())
	assert.Equal(t, 1, g.Columns)
	assert.Equal(t, 120, g.CardWidth)

	g = ComputeGeometry(0, 5, DefaultOptions())
	assert.Equal(t, 1, g.Columns)
	assert.Equal(t, 0, g.CardWidth)
}

func TestComputeGeometryColumnBound(t *testing.T) {
	for _, gap := range []int{0, 1, 6, 13} {
		for minWidth := 1; minWidth <= 64; minWidth += 7 {
			for width := minWidth; width <= 2048; width += 37 {
				opts := Options{ItemMinWidth: minWidth, ItemHeight: 10, Gap: gap}
				g := ComputeGeometry(width, 100, opts)
				if g.Columns < 1 {
					t.Fatalf("expected at least one column for width=%d min=%d gap=%d", width, minWidth, gap)
				}
				if g.Columns*(minWidth+gap)-gap > width {
					t.Fatalf("expected columns to fit: width=%d min=%d gap=%d columns=%d", width, minWidth, gap, g.Columns)
				}
			}
		}
	}
}

func TestComputeGeometryIsPure(t *testing.T) {
	opts := Options{ItemMinWidth: 24, ItemHeight: 6, Gap: 1, OverscanRows: 2}
	assert.Equal(t, ComputeGeometry(143, 999, opts), ComputeGeometry(143, 999, opts))
}

func TestOptionsNormalize(t *testing.T) {
	got := Options{ItemMinWidth: -5, ItemHeight: -1, Gap: -2, OverscanRows: -3}.Normalize()
	assert.Equal(t, Options{ItemMinWidth: 1}, got)
}
