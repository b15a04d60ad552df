package notification

import (
	"context"
	"fmt"
	"io"
	"os"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
)

// ConditionalDispatcher knows every channel inline. Adding a channel means
// editing Dispatch. Kept for comparison with Registry.
type ConditionalDispatcher struct {
	out io.Writer
}

// NewConditionalDispatcher creates a dispatcher printing to out (stdout when nil).
func NewConditionalDispatcher(out io.Writer) *ConditionalDispatcher {
	if out == nil {
		out = os.Stdout
	}
	return &ConditionalDispatcher{out: out}
}

// Dispatch supports email, sms and push only.
func (d *ConditionalDispatcher) Dispatch(_ context.Context, kind Kind, message, recipient string) error {
	var err error
	switch kind {
	case KindMail:
		_, err = fmt.Fprintf(d.out, "Sending email to %s: %s\n", recipient, message)
	case KindSMS:
		_, err = fmt.Fprintf(d.out, "Sending SMS to %s: %s\n", recipient, message)
	case KindPush:
		_, err = fmt.Fprintf(d.out, "Sending push notification to %s: %s\n", recipient, message)
	default:
		return apperrors.NewUnsupportedChannelError(string(kind))
	}
	if err != nil {
		return apperrors.NewDeliveryError(string(kind), err)
	}
	return nil
}

// DelegatingDispatcher moves each channel into its own handler but still
// picks the handler with a switch.
type DelegatingDispatcher struct {
	out io.Writer
}

// NewDelegatingDispatcher creates a dispatcher whose handlers print to out.
func NewDelegatingDispatcher(out io.Writer) *DelegatingDispatcher {
	if out == nil {
		out = os.Stdout
	}
	return &DelegatingDispatcher{out: out}
}

// Dispatch supports email, sms and push only.
func (d *DelegatingDispatcher) Dispatch(ctx context.Context, kind Kind, message, recipient string) error {
	var h Handler
	switch kind {
	case KindMail:
		h = NewMailHandler(d.out)
	case KindSMS:
		h = NewSMSHandler(d.out)
	case KindPush:
		h = NewPushHandler(d.out)
	default:
		return apperrors.NewUnsupportedChannelError(string(kind))
	}
	return h.Deliver(ctx, message, recipient)
}
