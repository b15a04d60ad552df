package notification

import (
	"context"
	"sync"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
)

// Notifier holds one selected handler and delegates every send to it.
// It starts unconfigured when built with nil; once a handler is selected
// there is no way back.
type Notifier struct {
	mu      sync.RWMutex
	handler Handler
	inst    instrumentation
}

// NewNotifier creates a notifier holding handler, which may be nil.
func NewNotifier(handler Handler, opts ...Option) *Notifier {
	return &Notifier{
		handler: handler,
		inst:    newInstrumentation(opts),
	}
}

// Select replaces the held handler. Selecting nil panics.
func (n *Notifier) Select(handler Handler) {
	if handler == nil {
		panic("notification: nil handler selected")
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handler = handler
}

// Selected reports whether a handler is held.
func (n *Notifier) Selected() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.handler != nil
}

// Send delivers through the most recently selected handler, or fails with
// ErrNoStrategySelected when there is none.
func (n *Notifier) Send(ctx context.Context, message, recipient string) error {
	n.mu.RLock()
	h := n.handler
	n.mu.RUnlock()

	kind := unknownKind
	if h != nil {
		kind = kindOf(h)
	}

	return n.inst.run(ctx, "notification.send", kind, recipient, func(ctx context.Context) error {
		if h == nil {
			return apperrors.NewNoStrategySelectedError()
		}
		return h.Deliver(ctx, message, recipient)
	})
}
