// Package debounce models debounced event channels as explicit pending
// tokens so callers can schedule their own timers and ignore stale ones.
package debounce

import (
	"sync"
	"time"
)

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a Clock advanced explicitly by tests.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock frozen at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Token identifies one scheduled firing of a channel.
type Token struct {
	Channel string
	Seq     uint64
	Due     time.Time
}

// Channel tracks the single pending firing of a debounced event class. Each
// Trigger supersedes the previous token.
type Channel struct {
	name    string
	delay   time.Duration
	clock   Clock
	seq     uint64
	pending *Token
}

// NewChannel returns a channel that fires delay after the last trigger.
func NewChannel(name string, delay time.Duration, clock Clock) *Channel {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Channel{name: name, delay: delay, clock: clock}
}

// Name returns the channel name.
func (c *Channel) Name() string { return c.name }

// Delay returns the quiet period.
func (c *Channel) Delay() time.Duration { return c.delay }

// Trigger cancels any pending token and schedules a new one.
func (c *Channel) Trigger() Token {
	c.seq++
	tok := Token{Channel: c.name, Seq: c.seq, Due: c.clock.Now().Add(c.delay)}
	c.pending = &tok
	return tok
}

// Cancel drops the pending token.
func (c *Channel) Cancel() {
	c.pending = nil
}

// Pending returns the scheduled token, if any.
func (c *Channel) Pending() (Token, bool) {
	if c.pending == nil {
		return Token{}, false
	}
	return *c.pending, true
}

// Stale reports whether tok was superseded or cancelled.
func (c *Channel) Stale(tok Token) bool {
	return c.pending == nil || c.pending.Seq != tok.Seq || tok.Channel != c.name
}

// Remaining returns how long until tok is due. Zero means it is due now.
func (c *Channel) Remaining(tok Token) time.Duration {
	d := tok.Due.Sub(c.clock.Now())
	if d < 0 {
		return 0
	}
	return d
}

// Fire consumes tok when it is current and due. A token that is current but
// early stays pending so the caller can wait Remaining and retry.
func (c *Channel) Fire(tok Token) bool {
	if c.Stale(tok) {
		return false
	}
	if c.Remaining(tok) > 0 {
		return false
	}
	c.pending = nil
	return true
}
