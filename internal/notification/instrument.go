package notification

import (
	"context"
	stderrors "errors"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
	"github.com/meetsmatch/notifykit/internal/telemetry"
)

// Option configures the observability of a Registry, Service or Notifier.
type Option func(*instrumentation)

// WithTracer sets the tracer used for dispatch spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(in *instrumentation) { in.tracer = tracer }
}

// WithMetrics sets the delivery counters.
func WithMetrics(metrics *telemetry.DeliveryMetrics) Option {
	return func(in *instrumentation) { in.metrics = metrics }
}

// WithLogger sets the logger; the global logger is used otherwise.
func WithLogger(logger *telemetry.Logger) Option {
	return func(in *instrumentation) { in.logger = logger }
}

type instrumentation struct {
	tracer  trace.Tracer
	metrics *telemetry.DeliveryMetrics
	logger  *telemetry.Logger
}

func newInstrumentation(opts []Option) instrumentation {
	var in instrumentation
	for _, opt := range opts {
		opt(&in)
	}
	if in.tracer == nil {
		in.tracer = telemetry.Tracer()
	}
	if in.metrics == nil {
		in.metrics = telemetry.DefaultDeliveryMetrics()
	}
	return in
}

func (in instrumentation) log(ctx context.Context) *telemetry.ContextualLogger {
	if in.logger != nil {
		return in.logger.WithContext(ctx)
	}
	return telemetry.LogFromContext(ctx)
}

// run wraps one delivery in a span, a counter and a log line.
func (in instrumentation) run(ctx context.Context, operation string, kind Kind, recipient string, deliver func(context.Context) error) error {
	ctx = telemetry.EnsureCorrelationID(ctx)
	ctx, span := in.tracer.Start(ctx, operation, trace.WithAttributes(
		telemetry.AttrChannel.String(kind.String()),
		telemetry.AttrRecipient.String(recipient),
	))
	defer span.End()

	logger := in.log(ctx).WithFields(logrus.Fields{
		"operation": operation,
		"channel":   kind,
		"recipient": recipient,
	})

	if err := deliver(ctx); err != nil {
		stampCorrelationID(ctx, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		in.metrics.RecordFailed(ctx, kind.String(), errorCode(err))
		logger.WithError(err).Warn("Notification not delivered")
		return err
	}

	in.metrics.RecordDelivered(ctx, kind.String())
	logger.Debug("Notification delivered")
	return nil
}

// stampCorrelationID ties a returned AppError to the delivery's log lines.
func stampCorrelationID(ctx context.Context, err error) {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) && appErr.CorrelationID == "" {
		appErr.WithCorrelationID(telemetry.GetCorrelationID(ctx))
	}
}

func errorCode(err error) string {
	var appErr *apperrors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return "UNKNOWN"
}
