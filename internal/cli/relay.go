package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"auris-notifier/config"
	"auris-notifier/internal/auth"
	"auris-notifier/internal/httpserver"
	relayUC "auris-notifier/internal/relay/usecase"
	"auris-notifier/pkg/jwt"
	"auris-notifier/pkg/redis"
)

func newRelayCmd() *cobra.Command {
	var (
		port         int
		requireToken bool
		noRedis      bool
	)

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Run the development relay",
		Long:  "relay serves GET /ws with the listener protocol and forwards notifications published on Redis channels user_noti:{user_id}.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Relay.Port = port
			}
			if cmd.Flags().Changed("require-token") {
				cfg.Relay.RequireToken = requireToken
			}
			if err := cfg.ValidateRelay(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			logger := initLogger(cfg.Logger)

			var redisClient redis.IRedis
			if !noRedis {
				redisClient, err = initRedis(cfg.Redis)
				if err != nil {
					return fmt.Errorf("connect redis: %w", err)
				}
				defer redisClient.Close()
				logger.Infof(ctx, "cli.relay: redis connected at %s:%d", cfg.Redis.Host, cfg.Redis.Port)
			}

			discordClient := initDiscord(ctx, cfg.Discord, logger)
			if discordClient != nil {
				defer discordClient.Close()
			}

			uc := relayUC.New(logger, relayUC.Config{
				MaxConnections: cfg.Relay.MaxConnections,
				PingInterval:   cfg.Relay.PingInterval,
				PongWait:       cfg.Relay.PongWait,
				WriteWait:      cfg.Relay.WriteWait,
				MaxMessageSize: cfg.Relay.MaxMessageSize,
			})

			limiter := auth.NewConnectionLimiter(auth.RateLimitConfig{
				ConnectionRateLimit: cfg.Relay.ConnectRate,
				RateLimitWindow:     cfg.Relay.ConnectWindow,
			})

			srvCfg := httpserver.Config{
				Host:         cfg.Relay.Host,
				Port:         cfg.Relay.Port,
				Mode:         cfg.Relay.Mode,
				RelayUC:      uc,
				RequireToken: cfg.Relay.RequireToken,
				Discord:      discordClient,
				RateLimiter:  limiter,
			}
			if redisClient != nil {
				srvCfg.Redis = redisClient
			}
			if cfg.JWT.SecretKey != "" {
				srvCfg.Verifier = jwt.New(jwt.Config{
					SecretKey: cfg.JWT.SecretKey,
					TTL:       cfg.JWT.TTL,
					Issuer:    cfg.JWT.Issuer,
				})
			}

			srv, err := httpserver.New(logger, srvCfg)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "listen port (RELAY_PORT)")
	cmd.Flags().BoolVar(&requireToken, "require-token", false, "require a token whose subject matches the joined user (RELAY_REQUIRE_TOKEN)")
	cmd.Flags().BoolVar(&noRedis, "no-redis", false, "serve without the Redis subscriber")
	return cmd
}
