package grid

import (
	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/logging/events"
)

type geometryKey struct {
	width int
	n     int
	opts  Options
}

// Controller owns the viewport, scroll offset and item list and drives the
// recycler whenever any of them change.
type Controller[N any] struct {
	opts     Options
	width    int
	height   int
	scroll   int
	items    []*catalog.Item
	recycler *Recycler[N]

	geometry Geometry
	geoKey   geometryKey
	geoValid bool
	window   Window
	stats    Stats
}

// NewController returns a controller with no items and a zero viewport.
func NewController[N any](opts Options, render RenderFunc[N], release ReleaseFunc[N]) *Controller[N] {
	return &Controller[N]{
		opts:     opts.Normalize(),
		recycler: NewRecycler(render, release),
		window:   Window{FirstRow: 0, LastRow: -1},
	}
}

// SetItems replaces the ordered item list and re-renders at the current
// scroll offset.
func (c *Controller[N]) SetItems(items []*catalog.Item) error {
	return c.SetItemsAt(items, c.scroll)
}

// SetItemsAt replaces the item list and moves to offset in a single pass.
func (c *Controller[N]) SetItemsAt(items []*catalog.Item, offset int) error {
	c.items = items
	c.scroll = offset
	c.recycler.Invalidate()
	return c.RefreshLayout()
}

// Items returns the current ordered item list.
func (c *Controller[N]) Items() []*catalog.Item {
	return c.items
}

// Resize updates the viewport dimensions.
func (c *Controller[N]) Resize(width, height int) error {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	c.width, c.height = width, height
	return c.RefreshLayout()
}

// Viewport returns the current viewport size.
func (c *Controller[N]) Viewport() (width, height int) {
	return c.width, c.height
}

// SetItemMinWidth changes the minimum card width.
func (c *Controller[N]) SetItemMinWidth(width int) error {
	c.opts.ItemMinWidth = width
	c.opts = c.opts.Normalize()
	return c.RefreshLayout()
}

// SetOptions replaces every layout option.
func (c *Controller[N]) SetOptions(opts Options) error {
	c.opts = opts.Normalize()
	return c.RefreshLayout()
}

// Options returns the normalised layout options.
func (c *Controller[N]) Options() Options {
	return c.opts
}

// ScrollTo moves the scroll offset, clamped to the scrollable range.
func (c *Controller[N]) ScrollTo(offset int) error {
	c.scroll = offset
	return c.RefreshLayout()
}

// ScrollBy moves the scroll offset relative to its current value.
func (c *Controller[N]) ScrollBy(delta int) error {
	return c.ScrollTo(c.scroll + delta)
}

// ScrollOffset returns the clamped scroll offset.
func (c *Controller[N]) ScrollOffset() int {
	return c.scroll
}

// MaxScroll is the largest valid scroll offset.
func (c *Controller[N]) MaxScroll() int {
	limit := c.geometry.ScrollableHeight - c.height
	if limit < 0 {
		return 0
	}
	return limit
}

// EnsureVisible scrolls the minimum distance needed to show the item at index.
func (c *Controller[N]) EnsureVisible(index int) error {
	if index < 0 || index >= len(c.items) {
		return nil
	}
	g := c.Geometry()
	row := index / g.Columns
	top := row * g.RowHeight()
	bottom := top + g.ItemHeight
	switch {
	case top < c.scroll:
		c.scroll = top
	case bottom > c.scroll+c.height:
		c.scroll = bottom - c.height
	default:
		return nil
	}
	return c.RefreshLayout()
}

// RefreshLayout recomputes geometry and the visible window and reconciles the
// node pool. Render failures are returned but never leave the grid
// inconsistent.
func (c *Controller[N]) RefreshLayout() error {
	prevColumns := c.geometry.Columns
	g := c.Geometry()
	if g.Columns != prevColumns {
		c.recycler.Invalidate()
		events.Grid.Layout(c.width, c.height, g.Columns, g.CardWidth, g.ItemHeight)
	}
	c.clampScroll()
	c.window = ResolveWindow(g, c.scroll, c.height, c.opts.OverscanRows)
	stats, err := c.recycler.Reconcile(c.window, c.items)
	c.stats = stats
	if !stats.Skipped {
		events.Grid.Reconcile(c.window.FirstRow, c.window.LastRow, stats.Created, stats.Reused, stats.Released, stats.Failed)
	}
	return err
}

// Geometry returns the layout for the current width and items, recomputing
// only when an input changed.
func (c *Controller[N]) Geometry() Geometry {
	key := geometryKey{width: c.width, n: len(c.items), opts: c.opts}
	if c.geoValid && key == c.geoKey {
		return c.geometry
	}
	c.geometry = ComputeGeometry(c.width, len(c.items), c.opts)
	c.geoKey = key
	c.geoValid = true
	return c.geometry
}

// Window returns the window resolved by the last layout pass.
func (c *Controller[N]) Window() Window {
	return c.window
}

// Nodes returns the placed nodes in index order.
func (c *Controller[N]) Nodes() []Placed[N] {
	return c.recycler.Placed()
}

// Stats returns the counters of the last reconciliation pass.
func (c *Controller[N]) Stats() Stats {
	return c.stats
}

// PoolSize returns the number of live nodes.
func (c *Controller[N]) PoolSize() int {
	return c.recycler.Len()
}

// ResetNodes releases every node so the next pass renders from scratch.
func (c *Controller[N]) ResetNodes() error {
	c.recycler.Reset()
	return c.RefreshLayout()
}

func (c *Controller[N]) clampScroll() {
	if c.scroll > c.MaxScroll() {
		c.scroll = c.MaxScroll()
	}
	if c.scroll < 0 {
		c.scroll = 0
	}
}
