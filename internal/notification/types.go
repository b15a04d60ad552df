// Package notification delivers a message to a recipient over a pluggable
// channel handler, and keeps the successive dispatch designs side by side:
//
//	ConditionalDispatcher  switch over the kind, prints inline
//	DelegatingDispatcher   switch over the kind, one handler type per kind
//	Registry               kind → Handler map, open for new kinds
//	Service                one Handler injected by the caller
//	Notifier               one swappable Handler selected at runtime
//
// Every delivery is simulated: handlers print a confirmation line.
//
// Usage:
//
//	reg := notification.NewDefaultRegistry(os.Stdout)
//	reg.Register(notification.KindWhatsApp, notification.NewWhatsAppHandler(os.Stdout))
//	err := reg.Dispatch(ctx, notification.KindMail, "Your order was confirmed!", "customer@example.com")
//
//	n := notification.NewNotifier(nil)
//	n.Select(notification.NewPushHandler(os.Stdout))
//	err = n.Send(ctx, "hello", "dev123")
package notification

// Kind identifies a delivery medium.
type Kind string

const (
	KindMail     Kind = "email"
	KindSMS      Kind = "sms"
	KindPush     Kind = "push"
	KindWhatsApp Kind = "whatsapp"
	KindWebhook  Kind = "webhook" // chat webhook (Slack style)
)

// unknownKind labels deliveries whose handler does not report a kind.
const unknownKind Kind = "unknown"

func (k Kind) String() string {
	return string(k)
}
