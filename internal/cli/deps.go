package cli

import (
	"context"

	"auris-notifier/config"
	"auris-notifier/pkg/discord"
	"auris-notifier/pkg/log"
	"auris-notifier/pkg/redis"
)

func initLogger(cfg config.LoggerConfig) log.Logger {
	return log.Init(log.ZapConfig{
		Level:        cfg.Level,
		Mode:         cfg.Mode,
		Encoding:     cfg.Encoding,
		ColorEnabled: cfg.ColorEnabled,
	})
}

// initDiscord returns nil when no webhook is configured.
func initDiscord(ctx context.Context, cfg config.DiscordConfig, logger log.Logger) discord.IDiscord {
	if cfg.WebhookID == "" || cfg.WebhookToken == "" {
		return nil
	}
	d, err := discord.New(logger, cfg.WebhookID, cfg.WebhookToken, discord.DefaultConfig())
	if err != nil {
		logger.Warnf(ctx, "cli.initDiscord: discord webhook disabled: %v", err)
		return nil
	}
	logger.Info(ctx, "cli.initDiscord: discord webhook initialized")
	return d
}

func initRedis(cfg config.RedisConfig) (redis.IRedis, error) {
	return redis.New(redis.Config{
		Host:         cfg.Host,
		Port:         cfg.Port,
		Password:     cfg.Password,
		DB:           cfg.DB,
		UseTLS:       cfg.UseTLS,
		MaxRetries:   cfg.MaxRetries,
		MinIdleConns: cfg.MinIdleConns,
		PoolSize:     cfg.PoolSize,
		PoolTimeout:  cfg.PoolTimeout,
	})
}
