// Package walkthrough replays the evolution of the notification dispatcher,
// from a hard-coded switch to a swappable strategy, printing each step.
package walkthrough

import (
	"context"
	"errors"
	"fmt"
	"io"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
	"github.com/meetsmatch/notifykit/internal/notification"
	"github.com/meetsmatch/notifykit/internal/telemetry"
)

const (
	orderConfirmed = "Your order was confirmed!"
	verification   = "Your verification code: 1234"
	promotion      = "Hi! We have a promotion for you!"
	taskAssigned   = "New task assigned to you!"

	customerEmail = "cliente@exemplo.com"
	customerPhone = "+5511999999999"
	chatUser      = "@usuario"
)

// Stage is one revision of the dispatcher.
type Stage struct {
	Title   string
	Summary string
	Run     func(ctx context.Context, w *Walkthrough) error
}

// Walkthrough prints narration and deliveries to the same writer.
type Walkthrough struct {
	out  io.Writer
	opts []notification.Option
}

// New creates a walkthrough writing to out. opts are passed to every
// registry, service and notifier it builds.
func New(out io.Writer, opts ...notification.Option) *Walkthrough {
	return &Walkthrough{out: out, opts: opts}
}

// Stages returns the revisions in the order they are replayed.
func Stages() []Stage {
	return []Stage{
		{"Stage 1: Initial code", "One manager knows every channel inline.", conditionalStage},
		{"Stage 2: Single responsibility", "Each channel gets its own handler; a switch still picks it.", delegatingStage},
		{"Stage 3: Open for extension", "A registry maps kinds to handlers; new kinds need no edits.", registryStage},
		{"Stage 4: Dependency inversion", "The caller injects the handler the service depends on.", serviceStage},
		{"Stage 5: Strategy", "A notifier holds one handler that can be swapped at any time.", strategyStage},
	}
}

// Run replays every stage and prints the conclusion. Expected failures
// (unsupported channel, no strategy) are narrated; anything else stops the run.
func (w *Walkthrough) Run(ctx context.Context) error {
	ctx = telemetry.EnsureCorrelationID(ctx)
	logger := telemetry.LogFromContext(ctx).WithField("operation", "walkthrough")

	w.printf("# Example: notification system\n")
	for i, stage := range Stages() {
		w.printf("\n%s\n%s\n", stage.Title, stage.Summary)
		if err := stage.Run(ctx, w); err != nil {
			logger.WithError(err).WithField("stage", i+1).Error("Walkthrough stopped")
			return apperrors.NewInternalError(stage.Title+" failed", err).
				WithCorrelationID(telemetry.GetCorrelationID(ctx))
		}
	}
	w.printf("\n%s", conclusion)
	logger.Debug("Walkthrough finished")
	return nil
}

const conclusion = `Conclusion:
1. The initial manager had many responsibilities.
2. Splitting each channel into its own handler gave one reason to change per type.
3. A registry made the system open to new channels without edits.
4. Injecting the handler inverted the dependency.
5. The result is the Strategy pattern, reached by applying the principles one at a time.
`

func (w *Walkthrough) printf(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// expect narrates errors the stage is meant to show and passes the rest up.
func (w *Walkthrough) expect(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrUnsupportedChannel) || errors.Is(err, apperrors.ErrNoStrategySelected) {
		w.printf("  rejected: %v\n", err)
		return nil
	}
	return err
}

type dispatcher interface {
	Dispatch(ctx context.Context, kind notification.Kind, message, recipient string) error
}

func dispatchAll(ctx context.Context, w *Walkthrough, d dispatcher) error {
	if err := d.Dispatch(ctx, notification.KindMail, orderConfirmed, customerEmail); err != nil {
		return err
	}
	if err := d.Dispatch(ctx, notification.KindSMS, verification, customerPhone); err != nil {
		return err
	}
	return w.expect(d.Dispatch(ctx, notification.KindWhatsApp, promotion, customerPhone))
}

func conditionalStage(ctx context.Context, w *Walkthrough) error {
	return dispatchAll(ctx, w, notification.NewConditionalDispatcher(w.out))
}

func delegatingStage(ctx context.Context, w *Walkthrough) error {
	return dispatchAll(ctx, w, notification.NewDelegatingDispatcher(w.out))
}

func registryStage(ctx context.Context, w *Walkthrough) error {
	reg := notification.NewDefaultRegistry(w.out, w.opts...)
	if err := reg.Dispatch(ctx, notification.KindMail, orderConfirmed, customerEmail); err != nil {
		return err
	}
	if err := w.expect(reg.Dispatch(ctx, notification.KindWhatsApp, promotion, customerPhone)); err != nil {
		return err
	}

	w.printf("  registering %s\n", notification.KindWhatsApp)
	reg.Register(notification.KindWhatsApp, notification.NewWhatsAppHandler(w.out))
	return reg.Dispatch(ctx, notification.KindWhatsApp, promotion, customerPhone)
}

func serviceStage(ctx context.Context, w *Walkthrough) error {
	email := notification.NewService(notification.NewMailHandler(w.out), w.opts...)
	if err := email.Notify(ctx, orderConfirmed, customerEmail); err != nil {
		return err
	}
	sms := notification.NewService(notification.NewSMSHandler(w.out), w.opts...)
	return sms.Notify(ctx, verification, customerPhone)
}

func strategyStage(ctx context.Context, w *Walkthrough) error {
	n := notification.NewNotifier(nil, w.opts...)
	if err := w.expect(n.Send(ctx, orderConfirmed, customerEmail)); err != nil {
		return err
	}

	steps := []struct {
		handler   notification.Handler
		message   string
		recipient string
	}{
		{notification.NewMailHandler(w.out), orderConfirmed, customerEmail},
		{notification.NewSMSHandler(w.out), verification, customerPhone},
		{notification.NewWebhookHandler(w.out), taskAssigned, chatUser},
	}
	for _, s := range steps {
		n.Select(s.handler)
		if err := n.Send(ctx, s.message, s.recipient); err != nil {
			return err
		}
	}
	return nil
}
