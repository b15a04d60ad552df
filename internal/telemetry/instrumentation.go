package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans and instruments produced by the dispatch layers.
const InstrumentationName = "github.com/meetsmatch/notifykit/internal/notification"

// Attribute keys attached to dispatch spans and counters.
const (
	AttrChannel   = attribute.Key("notification.channel")
	AttrRecipient = attribute.Key("notification.recipient")
	AttrErrorCode = attribute.Key("notification.error_code")
)

// Tracer returns the tracer from the global provider.
func Tracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}

// Meter returns the meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// DeliveryMetrics counts delivered and failed notifications per channel.
type DeliveryMetrics struct {
	delivered metric.Int64Counter
	failed    metric.Int64Counter
}

// NewDeliveryMetrics registers the delivery counters on meter.
func NewDeliveryMetrics(meter metric.Meter) (*DeliveryMetrics, error) {
	delivered, err := meter.Int64Counter("notifications.delivered",
		metric.WithDescription("Notifications handed to a channel handler successfully"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	failed, err := meter.Int64Counter("notifications.failed",
		metric.WithDescription("Notifications that could not be delivered"),
		metric.WithUnit("{notification}"),
	)
	if err != nil {
		return nil, err
	}

	return &DeliveryMetrics{delivered: delivered, failed: failed}, nil
}

// DefaultDeliveryMetrics builds counters on the global meter. The global
// meter never rejects these instruments, so a failure falls back to nil,
// which the Record methods accept.
func DefaultDeliveryMetrics() *DeliveryMetrics {
	m, err := NewDeliveryMetrics(Meter())
	if err != nil {
		return nil
	}
	return m
}

// RecordDelivered counts one successful delivery.
func (m *DeliveryMetrics) RecordDelivered(ctx context.Context, channel string) {
	if m == nil {
		return
	}
	m.delivered.Add(ctx, 1, metric.WithAttributes(AttrChannel.String(channel)))
}

// RecordFailed counts one failed delivery with the error code that caused it.
func (m *DeliveryMetrics) RecordFailed(ctx context.Context, channel, code string) {
	if m == nil {
		return
	}
	m.failed.Add(ctx, 1, metric.WithAttributes(
		AttrChannel.String(channel),
		AttrErrorCode.String(code),
	))
}
