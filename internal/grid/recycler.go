package grid

import (
	"errors"
	"fmt"

	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/logging"
	"github.com/atomicstack/assetgrid/internal/logging/events"
)

// RenderFunc creates the node for an item. The recycler never inspects the
// node beyond storing it under the item's identity.
type RenderFunc[N any] func(item *catalog.Item) (N, error)

// ReleaseFunc returns a node's resources to the environment.
type ReleaseFunc[N any] func(id string, node N)

// ErrDuplicateIdentity is reported when two items in the same window share an
// identity.
var ErrDuplicateIdentity = errors.New("duplicate item identity")

// RenderError reports an item whose node could not be created. The item is
// skipped for the pass and retried on the next one.
type RenderError struct {
	ID    string
	Index int
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render item %q at %d: %v", e.ID, e.Index, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Placed is a pooled node positioned at an absolute index.
type Placed[N any] struct {
	Index int
	Row   int
	Col   int
	X     int
	Y     int
	Item  *catalog.Item
	Node  N
}

// Stats summarises one reconciliation pass.
type Stats struct {
	Skipped  bool
	Start    int
	End      int
	Created  int
	Reused   int
	Released int
	Failed   int
}

type passKey struct {
	start      int
	end        int
	columns    int
	cardWidth  int
	itemHeight int
	gap        int
}

// Recycler keeps one node per item identity inside the visible window.
// It is not safe for concurrent use.
type Recycler[N any] struct {
	render  RenderFunc[N]
	release ReleaseFunc[N]

	pool   map[string]N
	owners map[string]*catalog.Item
	placed []Placed[N]

	last     passKey
	hasLast  bool
	failures int
}

// NewRecycler returns an empty recycler. release may be nil.
func NewRecycler[N any](render RenderFunc[N], release ReleaseFunc[N]) *Recycler[N] {
	return &Recycler[N]{
		render:  render,
		release: release,
		pool:    make(map[string]N),
		owners:  make(map[string]*catalog.Item),
	}
}

// Reconcile brings the pool in line with the window over items. A repeated
// call with an unchanged range is a no-op unless the previous pass had render
// failures. Render failures are returned joined and never abort the pass.
func (r *Recycler[N]) Reconcile(w Window, items []*catalog.Item) (Stats, error) {
	start, end := w.Span(len(items))
	key := passKey{
		start:      start,
		end:        end,
		columns:    w.Columns,
		cardWidth:  w.CardWidth,
		itemHeight: w.ItemHeight,
		gap:        w.Gap,
	}
	if r.hasLast && key == r.last && r.failures == 0 {
		return Stats{Skipped: true, Start: start, End: end}, nil
	}

	stats := Stats{Start: start, End: end}
	var errs []error
	inUse := make(map[string]struct{}, end-start+1)
	placed := make([]Placed[N], 0, end-start+1)
	for idx := start; idx <= end; idx++ {
		it := items[idx]
		if it == nil {
			errs = append(errs, &RenderError{Index: idx, Err: errors.New("nil item")})
			continue
		}
		if _, dup := inUse[it.ID]; dup {
			errs = append(errs, &RenderError{ID: it.ID, Index: idx, Err: ErrDuplicateIdentity})
			continue
		}
		node, ok := r.pool[it.ID]
		if ok && r.owners[it.ID] != it {
			// same identity, new record: the node shows stale fields
			r.drop(it.ID, node)
			stats.Released++
			ok = false
		}
		if ok {
			stats.Reused++
		} else {
			created, err := r.render(it)
			if err != nil {
				errs = append(errs, &RenderError{ID: it.ID, Index: idx, Err: err})
				continue
			}
			node = created
			r.pool[it.ID] = node
			r.owners[it.ID] = it
			stats.Created++
		}
		inUse[it.ID] = struct{}{}
		row, col := idx/w.Columns, idx%w.Columns
		placed = append(placed, Placed[N]{
			Index: idx,
			Row:   row,
			Col:   col,
			X:     col * (w.CardWidth + w.Gap),
			Y:     row * (w.ItemHeight + w.Gap),
			Item:  it,
			Node:  node,
		})
	}

	for id, node := range r.pool {
		if _, keep := inUse[id]; keep {
			continue
		}
		r.drop(id, node)
		stats.Released++
	}

	stats.Failed = len(errs)
	for _, err := range errs {
		var renderErr *RenderError
		if errors.As(err, &renderErr) {
			events.Grid.RenderFailed(renderErr.ID, renderErr.Err)
		}
		logging.Warn("grid render failed", map[string]interface{}{"error": err.Error()})
	}

	r.placed = placed
	r.last = key
	r.hasLast = true
	r.failures = stats.Failed
	return stats, errors.Join(errs...)
}

// Invalidate forgets the previous range so the next Reconcile runs in full.
// Pooled nodes are kept and reused where identities remain in range and
// still point at the same item record.
func (r *Recycler[N]) Invalidate() {
	r.hasLast = false
}

// Reset releases every pooled node.
func (r *Recycler[N]) Reset() {
	for id, node := range r.pool {
		r.drop(id, node)
	}
	r.placed = nil
	r.hasLast = false
	r.failures = 0
}

func (r *Recycler[N]) drop(id string, node N) {
	delete(r.pool, id)
	delete(r.owners, id)
	if r.release != nil {
		r.release(id, node)
	}
}

// Len returns the number of pooled nodes.
func (r *Recycler[N]) Len() int {
	return len(r.pool)
}

// Node returns the pooled node for an identity.
func (r *Recycler[N]) Node(id string) (N, bool) {
	node, ok := r.pool[id]
	return node, ok
}

// Placed returns the nodes positioned by the last full pass in index order.
func (r *Recycler[N]) Placed() []Placed[N] {
	return r.placed
}
