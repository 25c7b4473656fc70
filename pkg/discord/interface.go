package discord

import (
	"context"
	"errors"
	"net/http"

	"auris-notifier/pkg/log"
)

// IDiscord posts messages to a Discord webhook.
type IDiscord interface {
	SendMessage(ctx context.Context, content string) error
	SendError(ctx context.Context, title, description string, err error) error
	SendWarning(ctx context.Context, title, description string) error
	Close() error
}

var errWebhookRequired = errors.New("discord: webhook id and token are required")

// DefaultConfig returns the default Discord config.
func DefaultConfig() Config {
	return Config{
		BaseURL:    defaultBaseURL,
		Timeout:    DefaultTimeout,
		RetryCount: DefaultRetryCount,
		RetryDelay: DefaultRetryDelay,
		Username:   DefaultUsername,
	}
}

// New creates a webhook client. Logger may be nil.
func New(l log.Logger, id, token string, cfg Config) (IDiscord, error) {
	if id == "" || token == "" {
		return nil, errWebhookRequired
	}
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryCount < 0 {
		cfg.RetryCount = 0
	}
	if cfg.Username == "" {
		cfg.Username = def.Username
	}
	return &discordImpl{
		l:      l,
		id:     id,
		token:  token,
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}
