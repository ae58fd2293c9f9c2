package dispatcher

import (
	"github.com/atomicstack/assetgrid/internal/backend"
	"github.com/atomicstack/assetgrid/internal/logging"
	"github.com/atomicstack/assetgrid/internal/logging/events"
	"github.com/atomicstack/assetgrid/internal/state"
)

// Result reports what a handled event changed.
type Result struct {
	// CatalogUpdated is set when a new catalog replaced the stored one.
	CatalogUpdated bool
	// ReloadNeeded is set when the source fingerprint moved away from the
	// loaded catalog's.
	ReloadNeeded bool
	// Err carries the error of a failed poll or load.
	Err error
}

type Dispatcher struct {
	catalog state.CatalogStore
}

func New(c state.CatalogStore) *Dispatcher {
	return &Dispatcher{catalog: c}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		logging.Warn("backend event failed", map[string]interface{}{"kind": evt.Kind.String(), "error": evt.Err.Error()})
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindFingerprint:
		fp, ok := evt.Data.(string)
		if !ok || fp == "" || !d.catalog.Loaded() {
			return res
		}
		if fp != d.catalog.Fingerprint() {
			events.Catalog.Changed(d.catalog.Source(), fp)
			res.ReloadNeeded = true
		}
	case backend.KindCatalog:
		if snap, ok := evt.Data.(backend.CatalogSnapshot); ok && snap.Document != nil {
			d.catalog.SetCatalog(snap.Document, snap.Source, snap.Fingerprint, snap.Elapsed, snap.LoadedAt)
			res.CatalogUpdated = true
		}
	}
	return res
}
