package cli

import (
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/meetsmatch/notifykit/internal/errors"
	"github.com/meetsmatch/notifykit/internal/notification"
)

func newSendCommand(a *app) *cobra.Command {
	var channel, to string

	cmd := &cobra.Command{
		Use:   "send [message...]",
		Short: "Send one notification through a registered channel",
		Example: `  notifykit send --channel email --to cliente@exemplo.com "Your order was confirmed!"
  notifykit send -c webhook -t @usuario New task assigned to you!`,
		Args: cobra.MinimumNArgs(1),
		RunE: a.withShutdown(func(cmd *cobra.Command, args []string) error {
			if to == "" {
				return apperrors.NewValidationError("to", "recipient is required")
			}
			message := strings.Join(args, " ")
			return defaultRegistry(cmd).Dispatch(cmd.Context(), notification.Kind(channel), message, to)
		}),
	}

	cmd.Flags().StringVarP(&channel, "channel", "c", string(notification.KindMail), "channel kind to deliver through")
	cmd.Flags().StringVarP(&to, "to", "t", "", "recipient identifier")
	return cmd
}
