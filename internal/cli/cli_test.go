package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetsmatch/notifykit/internal/config"
	apperrors "github.com/meetsmatch/notifykit/internal/errors"
	"github.com/meetsmatch/notifykit/internal/telemetry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_OUTPUT", "stderr")
	t.Setenv("OTEL_ENABLED", "false")

	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestRoot_RunsWalkthrough(t *testing.T) {
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Stage 5: Strategy")
	assert.Contains(t, out, "Conclusion:")
}

func TestSend(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{"email default", []string{"send", "--to", "a@b.com", "hi"}, "Sending email to a@b.com: hi\n"},
		{"sms", []string{"send", "-c", "sms", "-t", "+5511999999999", "code", "1234"}, "Sending SMS to +5511999999999: code 1234\n"},
		{"webhook", []string{"send", "-c", "webhook", "-t", "@usuario", "New task"}, "Sending chat message to @usuario: New task\n"},
		{"whatsapp", []string{"send", "-c", "whatsapp", "-t", "+1", "promo"}, "Sending WhatsApp to +1: promo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestSend_UnsupportedChannel(t *testing.T) {
	out, err := run(t, "send", "-c", "fax", "-t", "x", "hi")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnsupportedChannel))
	assert.Empty(t, out)
}

func TestShutdown_RunsWhenCommandFails(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_OUTPUT", "stderr")

	tests := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{"unsupported channel", []string{"send", "-c", "fax", "-t", "x", "hi"}, true},
		{"missing recipient", []string{"send", "hi"}, true},
		{"successful send", []string{"send", "-t", "a@b.com", "hi"}, false},
		{"channels", []string{"channels"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shutdowns := 0
			a := &app{initTelemetry: func(context.Context, *telemetry.Config) (func(), error) {
				return func() { shutdowns++ }, nil
			}}

			var stdout, stderr bytes.Buffer
			cmd := newRootCommand(a)
			cmd.SetOut(&stdout)
			cmd.SetErr(&stderr)
			cmd.SetArgs(tt.args)

			err := cmd.ExecuteContext(context.Background())
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, 1, shutdowns)
		})
	}
}

func TestErrorLine(t *testing.T) {
	_, err := run(t, "send", "-c", "fax", "-t", "x", "hi")
	require.Error(t, err)

	id := apperrors.GetCorrelationID(err)
	require.NotEmpty(t, id)

	text := &app{cfg: config.Config{LogFormat: "text"}}
	assert.Equal(t, "Error: "+err.Error()+" (correlation_id: "+id+")", text.errorLine(err))

	plain := apperrors.NewValidationError("to", "recipient is required")
	assert.Equal(t, "Error: "+plain.Error(), text.errorLine(plain))

	jsonApp := &app{cfg: config.Config{LogFormat: "json"}}
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(jsonApp.errorLine(err)), &decoded))
	assert.Equal(t, apperrors.CodeUnsupportedChannel, decoded["code"])
	assert.Equal(t, id, decoded["correlation_id"])

	assert.Equal(t, "Error: boom", jsonApp.errorLine(errors.New("boom")))
}

func TestSend_MissingRecipient(t *testing.T) {
	_, err := run(t, "send", "hi")
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeValidation))
}

func TestSend_InvalidConfig(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")

	var stdout bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"channels"})

	err := cmd.ExecuteContext(context.Background())
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfiguration))
}

func TestChannels(t *testing.T) {
	out, err := run(t, "channels")
	require.NoError(t, err)
	assert.Equal(t, "email\npush\nsms\nwebhook\nwhatsapp\n", out)
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev (commit: none, built: unknown)\n", out)

	out, err = run(t, "version", "--short-commit")
	require.NoError(t, err)
	assert.Equal(t, "none", out)
}
