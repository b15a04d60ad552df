package walkthrough

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
	"github.com/meetsmatch/notifykit/internal/notification"
)

func TestRun_ReplaysEveryStage(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, New(&out).Run(context.Background()))

	text := out.String()
	for _, stage := range Stages() {
		assert.Contains(t, text, stage.Title)
	}

	expectedInOrder := []string{
		"Stage 1: Initial code",
		"Sending email to cliente@exemplo.com: Your order was confirmed!",
		"Sending SMS to +5511999999999: Your verification code: 1234",
		"rejected: UNSUPPORTED_CHANNEL: Unsupported notification channel: whatsapp",
		"Stage 3: Open for extension",
		"registering whatsapp",
		"Sending WhatsApp to +5511999999999: Hi! We have a promotion for you!",
		"Stage 5: Strategy",
		"rejected: NO_STRATEGY_SELECTED: No notification strategy selected",
		"Sending chat message to @usuario: New task assigned to you!",
		"Conclusion:",
	}
	pos := 0
	for _, want := range expectedInOrder {
		idx := strings.Index(text[pos:], want)
		require.GreaterOrEqual(t, idx, 0, "missing or out of order: %q", want)
		pos += idx + len(want)
	}
}

func TestRun_StopsOnDeliveryFailure(t *testing.T) {
	err := New(brokenWriter{}).Run(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInternal))
	assert.Contains(t, err.Error(), "Stage 1")
	assert.NotEmpty(t, apperrors.GetCorrelationID(err))
	assert.True(t, errors.Is(err, io.ErrClosedPipe))

	var appErr *apperrors.AppError
	require.True(t, errors.As(errors.Unwrap(err), &appErr))
	assert.Equal(t, apperrors.ErrorTypeDelivery, appErr.Type)
}

func TestRun_PassesOptionsToDispatchers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	err := New(io.Discard, notification.WithTracer(provider.Tracer("test"))).Run(context.Background())
	require.NoError(t, err)

	names := map[string]int{}
	for _, span := range recorder.Ended() {
		names[span.Name()]++
	}
	// registry: email, whatsapp rejected, whatsapp; services: 2; notifier: rejected + 3
	assert.Equal(t, 3, names["notification.dispatch"])
	assert.Equal(t, 2, names["notification.notify"])
	assert.Equal(t, 4, names["notification.send"])
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}
