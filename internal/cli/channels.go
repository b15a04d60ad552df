package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newChannelsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "channels",
		Short: "List the channel kinds send accepts",
		Args:  cobra.NoArgs,
		RunE: a.withShutdown(func(cmd *cobra.Command, args []string) error {
			for _, kind := range defaultRegistry(cmd).Kinds() {
				fmt.Fprintln(cmd.OutOrStdout(), kind)
			}
			return nil
		}),
	}
}

func newVersionCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of notifykit",
		RunE: a.withShutdown(func(cmd *cobra.Command, args []string) error {
			short, _ := cmd.Flags().GetBool("short-commit")
			if short {
				fmt.Fprint(cmd.OutOrStdout(), Commit)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cmd.Root().Version)
			return nil
		}),
	}
	cmd.Flags().Bool("short-commit", false, "Print only the short commit SHA")
	return cmd
}
