package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"auris-notifier/config"
	"auris-notifier/internal/relay"
	relayRedis "auris-notifier/internal/relay/delivery/redis"
)

func newPublishCmd() *cobra.Command {
	var userID, content, event string

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Publish a notification to a user through Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			logger := initLogger(cfg.Logger)

			redisClient, err := initRedis(cfg.Redis)
			if err != nil {
				return fmt.Errorf("connect redis: %w", err)
			}
			defer redisClient.Close()

			pub := relayRedis.NewPublisher(redisClient, logger)
			n, err := pub.Publish(ctx, userID, event, map[string]string{"content": content})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "published %s to %s%s (%d relays)\n", event, relay.ChannelPrefix, userID, n)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "target user id")
	cmd.Flags().StringVar(&content, "content", "", "notification content")
	cmd.Flags().StringVar(&event, "type", relay.EventNotification, "event name")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}
