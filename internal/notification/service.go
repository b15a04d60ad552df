package notification

import (
	"context"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
)

// Service depends only on the Handler it was constructed with; the caller
// chooses the concrete channel.
type Service struct {
	handler Handler
	inst    instrumentation
}

// NewService creates a service bound to handler.
func NewService(handler Handler, opts ...Option) *Service {
	return &Service{
		handler: handler,
		inst:    newInstrumentation(opts),
	}
}

// Notify delivers through the injected handler. A service built with a nil
// handler fails with ErrNoStrategySelected.
func (s *Service) Notify(ctx context.Context, message, recipient string) error {
	kind := unknownKind
	if s.handler != nil {
		kind = kindOf(s.handler)
	}

	return s.inst.run(ctx, "notification.notify", kind, recipient, func(ctx context.Context) error {
		if s.handler == nil {
			return apperrors.NewNoStrategySelectedError()
		}
		return s.handler.Deliver(ctx, message, recipient)
	})
}
