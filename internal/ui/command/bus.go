package command

import (
	"context"
	"fmt"
	"time"

	"github.com/atomicstack/assetgrid/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs an effect off the event loop and reports its outcome as a
// message.
type Handler func(ctx context.Context) tea.Msg

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Bus coordinates the execution of effects requested by the UI.
type Bus struct {
	ctx     context.Context
	timeout time.Duration
}

// New initialises a command bus. Each handler runs under a context derived
// from ctx, bounded by timeout when it is positive.
func New(ctx context.Context, timeout time.Duration) *Bus {
	if ctx == nil {
		ctx = context.Background()
	}
	return &Bus{ctx: ctx, timeout: timeout}
}

// Execute wraps a handler into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		ctx, cancel := b.context()
		defer cancel()
		msg := req.Handler(ctx)
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}

func (b *Bus) context() (context.Context, context.CancelFunc) {
	if b.timeout > 0 {
		return context.WithTimeout(b.ctx, b.timeout)
	}
	return context.WithCancel(b.ctx)
}
