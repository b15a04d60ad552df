package notification

import (
	"context"
	"io"
	"sort"
	"sync"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
)

// Registry maps channel kinds to handlers. New kinds are added with
// Register; Dispatch never changes when they are.
type Registry struct {
	mu       sync.RWMutex
	handlers map[Kind]Handler
	inst     instrumentation
}

// NewRegistry creates an empty registry. Every kind must be registered explicitly.
func NewRegistry(opts ...Option) *Registry {
	return &Registry{
		handlers: make(map[Kind]Handler),
		inst:     newInstrumentation(opts),
	}
}

// NewDefaultRegistry creates a registry seeded with the mail, SMS and push
// handlers, all writing to out.
func NewDefaultRegistry(out io.Writer, opts ...Option) *Registry {
	r := NewRegistry(opts...)
	r.Register(KindMail, NewMailHandler(out))
	r.Register(KindSMS, NewSMSHandler(out))
	r.Register(KindPush, NewPushHandler(out))
	return r
}

// Register inserts or replaces the handler for kind. It panics on a nil
// handler, like http.Handle.
func (r *Registry) Register(kind Kind, handler Handler) {
	if handler == nil {
		panic("notification: nil handler for kind " + string(kind))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[kind] = handler
}

// Lookup returns the handler registered for kind.
func (r *Registry) Lookup(kind Kind) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[kind]
	return h, ok
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	kinds := make([]Kind, 0, len(r.handlers))
	for k := range r.handlers {
		kinds = append(kinds, k)
	}
	r.mu.RUnlock()

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Dispatch delivers message to recipient through the handler registered for
// kind. An unregistered kind fails with ErrUnsupportedChannel and nothing is delivered.
func (r *Registry) Dispatch(ctx context.Context, kind Kind, message, recipient string) error {
	return r.inst.run(ctx, "notification.dispatch", kind, recipient, func(ctx context.Context) error {
		h, ok := r.Lookup(kind)
		if !ok {
			return apperrors.NewUnsupportedChannelError(string(kind))
		}
		return h.Deliver(ctx, message, recipient)
	})
}
