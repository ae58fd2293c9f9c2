package events

import "github.com/atomicstack/assetgrid/internal/logging"

type GridTracer struct{}

var Grid = GridTracer{}

func (GridTracer) Layout(width, height, columns, cardWidth, itemHeight int) {
	logging.Trace("grid.layout", map[string]interface{}{
		"width":      width,
		"height":     height,
		"columns":    columns,
		"cardWidth":  cardWidth,
		"itemHeight": itemHeight,
	})
}

func (GridTracer) Reconcile(first, last, created, reused, released, failed int) {
	logging.Trace("grid.reconcile", map[string]interface{}{
		"first":    first,
		"last":     last,
		"created":  created,
		"reused":   reused,
		"released": released,
		"failed":   failed,
	})
}

func (GridTracer) RenderFailed(id string, err error) {
	if err == nil {
		return
	}
	logging.Trace("grid.render.error", map[string]interface{}{"id": id, "error": err.Error()})
}

func (GridTracer) Cursor(index int) {
	logging.Trace("grid.cursor", map[string]interface{}{"index": index})
}
