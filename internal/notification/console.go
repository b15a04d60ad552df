package notification

import (
	"context"
	"fmt"
	"io"
	"os"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
)

// ConsoleHandler simulates a delivery by writing one confirmation line.
type ConsoleHandler struct {
	kind   Kind
	action string // e.g. "Sending SMS to"
	out    io.Writer
}

// NewConsoleHandler creates a handler for kind that prints
// "<action> <recipient>: <message>" to out (stdout when nil).
func NewConsoleHandler(kind Kind, action string, out io.Writer) *ConsoleHandler {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleHandler{kind: kind, action: action, out: out}
}

// NewMailHandler creates the electronic mail handler.
func NewMailHandler(out io.Writer) *ConsoleHandler {
	return NewConsoleHandler(KindMail, "Sending email to", out)
}

// NewSMSHandler creates the short message handler.
func NewSMSHandler(out io.Writer) *ConsoleHandler {
	return NewConsoleHandler(KindSMS, "Sending SMS to", out)
}

// NewPushHandler creates the push alert handler.
func NewPushHandler(out io.Writer) *ConsoleHandler {
	return NewConsoleHandler(KindPush, "Sending push notification to", out)
}

// NewWhatsAppHandler creates the WhatsApp handler.
func NewWhatsAppHandler(out io.Writer) *ConsoleHandler {
	return NewConsoleHandler(KindWhatsApp, "Sending WhatsApp to", out)
}

// NewWebhookHandler creates the chat webhook handler.
func NewWebhookHandler(out io.Writer) *ConsoleHandler {
	return NewConsoleHandler(KindWebhook, "Sending chat message to", out)
}

// Kind returns the channel this handler serves.
func (h *ConsoleHandler) Kind() Kind {
	if h == nil {
		return unknownKind
	}
	return h.kind
}

// Deliver prints the confirmation line. A nil *ConsoleHandler stored in a
// Handler delivers nothing and reports ErrNoStrategySelected.
func (h *ConsoleHandler) Deliver(_ context.Context, message, recipient string) error {
	if h == nil {
		return apperrors.NewNoStrategySelectedError()
	}
	if _, err := fmt.Fprintf(h.out, "%s %s: %s\n", h.action, recipient, message); err != nil {
		return apperrors.NewDeliveryError(string(h.kind), err)
	}
	return nil
}
