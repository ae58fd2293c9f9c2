package backend

import (
	"context"
	"sync"
	"time"
)

// spacer keeps successive catalog probes at least gap apart so a slow
// remote never sees back-to-back requests when ticks pile up.
type spacer struct {
	gap time.Duration

	mu   sync.Mutex
	last time.Time
}

func newSpacer(gap time.Duration) *spacer {
	return &spacer{gap: gap}
}

// wait blocks until the gap since the previous probe has elapsed or ctx is
// done. A nil spacer or a non-positive gap never blocks.
func (s *spacer) wait(ctx context.Context) error {
	if s == nil || s.gap <= 0 {
		return ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if delay := s.gap - time.Since(s.last); delay > 0 && !s.last.IsZero() {
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	s.last = time.Now()
	return nil
}
