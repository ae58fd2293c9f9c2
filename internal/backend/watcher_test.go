package backend

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atomicstack/assetgrid/internal/catalog"
)

type fakeSource struct {
	fingerprints atomic.Int32
	loadErr      error
}

func (f *fakeSource) Source() string { return "fake://catalog" }

func (f *fakeSource) Fingerprint(context.Context) (string, error) {
	n := f.fingerprints.Add(1)
	if n == 1 {
		return "v1", nil
	}
	return "v2", nil
}

func (f *fakeSource) Load(context.Context) (*catalog.Document, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	doc := &catalog.Document{Items: []*catalog.Item{{ID: "a", DisplayName: "A"}}}
	doc.Prepare()
	return doc, nil
}

func TestWatcherEmitsFingerprints(t *testing.T) {
	src := &fakeSource{}
	w := NewWatcher(src, 20*time.Millisecond)
	defer func() {
		w.Stop()
		w.Wait()
	}()

	seen := map[string]bool{}
	timeout := time.After(2 * time.Second)
	for len(seen) < 2 {
		select {
		case evt := <-w.Events():
			if evt.Kind != KindFingerprint {
				t.Fatalf("expected fingerprint event, got %v", evt.Kind)
			}
			if evt.Err != nil {
				t.Fatalf("unexpected error: %v", evt.Err)
			}
			seen[evt.Data.(string)] = true
		case <-timeout:
			t.Fatalf("timed out waiting for fingerprints, saw %v", seen)
		}
	}
}

func TestWatcherDisabledClosesImmediately(t *testing.T) {
	w := NewWatcher(&fakeSource{}, 0)
	select {
	case _, ok := <-w.Events():
		if ok {
			t.Fatalf("expected closed channel for disabled watcher")
		}
	case <-time.After(time.Second):
		t.Fatalf("expected events channel to close")
	}
}

func TestWatcherStopClosesChannel(t *testing.T) {
	w := NewWatcher(&fakeSource{}, 10*time.Millisecond)
	<-w.Events()
	w.Stop()
	w.Wait()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-w.Events():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("expected events channel to close after stop")
		}
	}
}

func TestLoadSnapshot(t *testing.T) {
	snap, err := LoadSnapshot(context.Background(), &fakeSource{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if snap.Fingerprint != "v1" || len(snap.Document.Items) != 1 || snap.Source != "fake://catalog" {
		t.Fatalf("unexpected snapshot %#v", snap)
	}
	if snap.LoadedAt.IsZero() {
		t.Fatalf("expected load time to be recorded")
	}
}

func TestLoadSnapshotError(t *testing.T) {
	want := errors.New("boom")
	if _, err := LoadSnapshot(context.Background(), &fakeSource{loadErr: want}); !errors.Is(err, want) {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestSpacerKeepsProbesApart(t *testing.T) {
	gate := newSpacer(30 * time.Millisecond)
	ctx := context.Background()
	start := time.Now()
	if err := gate.wait(ctx); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Fatalf("expected the first probe to pass at once, took %v", elapsed)
	}
	if err := gate.wait(ctx); err != nil {
		t.Fatalf("second wait: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Fatalf("expected the second probe to be delayed, elapsed %v", elapsed)
	}
}

func TestSpacerStopsOnCancel(t *testing.T) {
	gate := newSpacer(time.Hour)
	if err := gate.wait(context.Background()); err != nil {
		t.Fatalf("first wait: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := gate.wait(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	var nilGate *spacer
	if err := nilGate.wait(context.Background()); err != nil {
		t.Fatalf("nil spacer must not block: %v", err)
	}
}
