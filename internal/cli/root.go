package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "notifier",
		Short:         "Real-time notification listener",
		Long:          "notifier listens for pushed notifications, shows each one until acknowledged and then opens the redirect target. It also ships a development relay and helpers to publish notifications and mint tokens.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newListenCmd())
	cmd.AddCommand(newRelayCmd())
	cmd.AddCommand(newPublishCmd())
	cmd.AddCommand(newTokenCmd())
	return cmd
}

// ExecuteContext runs the CLI. Cancelling ctx stops long-running commands.
func ExecuteContext(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
