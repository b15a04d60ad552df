package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/meetsmatch/notifykit/internal/config"
	apperrors "github.com/meetsmatch/notifykit/internal/errors"
	"github.com/meetsmatch/notifykit/internal/notification"
	"github.com/meetsmatch/notifykit/internal/telemetry"
	"github.com/meetsmatch/notifykit/internal/walkthrough"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// app carries what PersistentPreRunE sets up for the subcommands.
type app struct {
	cfg           config.Config
	initTelemetry func(context.Context, *telemetry.Config) (func(), error)
	shutdown      func()
}

// NewRootCommand builds the notifykit command tree. Without a subcommand it
// replays the walkthrough.
func NewRootCommand() *cobra.Command {
	return newRootCommand(newApp())
}

func newApp() *app {
	return &app{initTelemetry: telemetry.InitializeOpenTelemetry}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "notifykit",
		Short:         "notifykit delivers notifications through pluggable channels",
		Long:          `Replays how a notification dispatcher evolves from a switch into a swappable strategy, and sends simulated notifications.`,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: a.withShutdown(func(cmd *cobra.Command, args []string) error {
			return walkthrough.New(cmd.OutOrStdout()).Run(cmd.Context())
		}),
	}

	root.AddCommand(newSendCommand(a), newChannelsCommand(a), newVersionCommand(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	a.cfg = config.Load()
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logConfig := a.cfg.LogConfig()
	if a.cfg.LogOutput == "stderr" {
		logConfig.Writer = cmd.ErrOrStderr()
	}
	if err := telemetry.InitGlobalLogger(logConfig); err != nil {
		return err
	}

	shutdown, err := a.initTelemetry(cmd.Context(), a.cfg.Telemetry)
	if err != nil {
		return err
	}
	a.shutdown = shutdown
	return nil
}

// withShutdown flushes telemetry after the command body, failed or not.
func (a *app) withShutdown(run func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer a.close()
		return run(cmd, args)
	}
}

func (a *app) close() {
	if a.shutdown == nil {
		return
	}
	shutdown := a.shutdown
	a.shutdown = nil
	shutdown()
}

// defaultRegistry returns every built-in channel.
func defaultRegistry(cmd *cobra.Command) *notification.Registry {
	out := cmd.OutOrStdout()
	reg := notification.NewDefaultRegistry(out)
	reg.Register(notification.KindWhatsApp, notification.NewWhatsAppHandler(out))
	reg.Register(notification.KindWebhook, notification.NewWebhookHandler(out))
	return reg
}

// errorLine renders a failed command for stderr: the AppError as JSON when
// logs are JSON, otherwise one line with the correlation ID when the failure
// went through a dispatcher.
func (a *app) errorLine(err error) string {
	var appErr *apperrors.AppError
	if a.cfg.LogFormat == "json" && errors.As(err, &appErr) {
		if data, jsonErr := appErr.ToJSON(); jsonErr == nil {
			return string(data)
		}
	}
	if id := apperrors.GetCorrelationID(err); id != "" {
		return fmt.Sprintf("Error: %v (correlation_id: %s)", err, id)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	a := newApp()
	if err := newRootCommand(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, a.errorLine(err))
		os.Exit(1)
	}
}
