package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/assetgrid/internal/catalog"
	"github.com/atomicstack/assetgrid/internal/logging/events"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	// KindFingerprint carries the source fingerprint observed by a poll.
	KindFingerprint Kind = iota
	// KindCatalog carries a freshly loaded CatalogSnapshot.
	KindCatalog
)

func (k Kind) String() string {
	switch k {
	case KindFingerprint:
		return "fingerprint"
	case KindCatalog:
		return "catalog"
	default:
		return "unknown"
	}
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind Kind
	Data interface{}
	Err  error
}

// Source is the catalog location the watcher polls.
type Source interface {
	Source() string
	Fingerprint(ctx context.Context) (string, error)
	Load(ctx context.Context) (*catalog.Document, error)
}

// CatalogSnapshot is one successfully loaded catalog.
type CatalogSnapshot struct {
	Document    *catalog.Document
	Source      string
	Fingerprint string
	Elapsed     time.Duration
	LoadedAt    time.Time
}

// LoadSnapshot fetches the current fingerprint and document from src.
func LoadSnapshot(ctx context.Context, src Source) (CatalogSnapshot, error) {
	events.Catalog.Request(src.Source(), "load")
	start := time.Now()
	fp, err := src.Fingerprint(ctx)
	if err != nil {
		// a missing fingerprint only weakens change detection
		fp = ""
	}
	doc, err := src.Load(ctx)
	elapsed := time.Since(start)
	if err != nil {
		events.Catalog.Failed(src.Source(), err)
		return CatalogSnapshot{}, err
	}
	events.Catalog.Loaded(src.Source(), len(doc.Items), elapsed)
	return CatalogSnapshot{
		Document:    doc,
		Source:      src.Source(),
		Fingerprint: fp,
		Elapsed:     elapsed,
		LoadedAt:    time.Now(),
	}, nil
}

// Watcher polls a catalog source at a fixed interval and publishes
// fingerprint events.
type Watcher struct {
	source   Source
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher creates a backend watcher that polls src every interval. A
// non-positive interval yields a watcher that emits nothing.
func NewWatcher(src Source, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   src,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	if src != nil && interval > 0 {
		w.startFingerprintPoller()
	}

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) startFingerprintPoller() {
	gate := newSpacer(w.interval / 2)
	w.wg.Add(1)
	go w.poll(KindFingerprint, func(ctx context.Context) (interface{}, error) {
		if err := gate.wait(ctx); err != nil {
			return nil, err
		}
		return w.source.Fingerprint(ctx)
	})
}

func (w *Watcher) poll(kind Kind, fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	emit := func() bool {
		data, err := fetch(w.ctx)
		evt := Event{Kind: kind, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
