package notification

import (
	"context"
)

// Handler is the delivery capability every channel implements.
// Message and recipient are opaque and must be passed on unchanged.
type Handler interface {
	Deliver(ctx context.Context, message, recipient string) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, message, recipient string) error

// Deliver calls f.
func (f HandlerFunc) Deliver(ctx context.Context, message, recipient string) error {
	return f(ctx, message, recipient)
}

// kinded is implemented by handlers that know which channel they serve.
type kinded interface {
	Kind() Kind
}

func kindOf(h Handler) Kind {
	if k, ok := h.(kinded); ok {
		return k.Kind()
	}
	return unknownKind
}
