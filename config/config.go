package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	// Listener Configuration
	Server    ServerConfig
	Client    ClientConfig
	Reconnect ReconnectConfig
	Logger    LoggerConfig

	// Relay Configuration
	Relay RelayConfig
	Redis RedisConfig
	JWT   JWTConfig

	// Monitoring & Notification Configuration
	Discord DiscordConfig
}

// ServerConfig is the address of the real-time endpoint the listener dials.
type ServerConfig struct {
	Host   string `env:"NOTIFIER_SERVER_HOST" envDefault:"127.0.0.1"`
	Port   int    `env:"NOTIFIER_SERVER_PORT" envDefault:"5000"`
	Path   string `env:"NOTIFIER_SERVER_PATH" envDefault:"/ws"`
	Secure bool   `env:"NOTIFIER_SERVER_TLS" envDefault:"false"`
}

// ClientConfig is the configuration for the notification listener
type ClientConfig struct {
	UserID         string        `env:"NOTIFIER_USER_ID"`
	Token          string        `env:"NOTIFIER_TOKEN"`
	RedirectURL    string        `env:"NOTIFIER_REDIRECT_URL"`
	AlertMode      string        `env:"NOTIFIER_ALERT_MODE" envDefault:"terminal"`
	NavigateMode   string        `env:"NOTIFIER_NAVIGATE_MODE" envDefault:"browser"`
	ExitOnRedirect bool          `env:"NOTIFIER_EXIT_ON_REDIRECT" envDefault:"false"`
	WriteWait      time.Duration `env:"NOTIFIER_WRITE_WAIT" envDefault:"10s"`
	DialTimeout    time.Duration `env:"NOTIFIER_DIAL_TIMEOUT" envDefault:"10s"`
	PingTimeout    time.Duration `env:"NOTIFIER_PING_TIMEOUT" envDefault:"90s"`
	MaxMessageSize int64         `env:"NOTIFIER_MAX_MESSAGE_SIZE" envDefault:"65536"`
}

// ReconnectConfig is the transport's reconnection policy
type ReconnectConfig struct {
	Enabled         bool          `env:"NOTIFIER_RECONNECT" envDefault:"true"`
	InitialInterval time.Duration `env:"NOTIFIER_RECONNECT_INITIAL" envDefault:"1s"`
	MaxInterval     time.Duration `env:"NOTIFIER_RECONNECT_MAX" envDefault:"5s"`
	MaxAttempts     int           `env:"NOTIFIER_RECONNECT_ATTEMPTS" envDefault:"0"`
}

// LoggerConfig is the configuration for the logger
type LoggerConfig struct {
	Level        string `env:"LOGGER_LEVEL" envDefault:"info"`
	Mode         string `env:"LOGGER_MODE" envDefault:"production"`
	Encoding     string `env:"LOGGER_ENCODING" envDefault:"json"`
	ColorEnabled bool   `env:"LOGGER_COLOR_ENABLED" envDefault:"false"`
}

// RelayConfig is the configuration for the development relay
type RelayConfig struct {
	Host           string        `env:"RELAY_HOST" envDefault:"0.0.0.0"`
	Port           int           `env:"RELAY_PORT" envDefault:"5000"`
	Mode           string        `env:"RELAY_MODE" envDefault:"release"`
	RequireToken   bool          `env:"RELAY_REQUIRE_TOKEN" envDefault:"false"`
	PingInterval   time.Duration `env:"RELAY_PING_INTERVAL" envDefault:"30s"`
	PongWait       time.Duration `env:"RELAY_PONG_WAIT" envDefault:"60s"`
	WriteWait      time.Duration `env:"RELAY_WRITE_WAIT" envDefault:"10s"`
	MaxMessageSize int64         `env:"RELAY_MAX_MESSAGE_SIZE" envDefault:"4096"`
	MaxConnections int           `env:"RELAY_MAX_CONNECTIONS" envDefault:"1000"`
	ConnectRate    int           `env:"RELAY_CONNECT_RATE" envDefault:"20"`
	ConnectWindow  time.Duration `env:"RELAY_CONNECT_WINDOW" envDefault:"1m"`
}

// RedisConfig is the configuration for Redis
// Note: Only standalone mode is supported
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     int    `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	UseTLS   bool   `env:"REDIS_USE_TLS" envDefault:"false"`

	// Connection pool settings
	MaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"3"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	PoolTimeout  time.Duration `env:"REDIS_POOL_TIMEOUT" envDefault:"4s"`
}

// JWTConfig is the configuration for the JWT
type JWTConfig struct {
	SecretKey string        `env:"JWT_SECRET_KEY"`
	TTL       time.Duration `env:"JWT_TTL" envDefault:"24h"`
	Issuer    string        `env:"JWT_ISSUER" envDefault:"auris-notifier"`
}

// DiscordConfig is the configuration for Discord webhook fault reports
type DiscordConfig struct {
	WebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	WebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// ServerURL builds the WebSocket URL of the configured endpoint.
func (c ServerConfig) ServerURL() string {
	scheme := "ws"
	if c.Secure {
		scheme = "wss"
	}
	u := url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Path,
	}
	return u.String()
}

// ValidateListener checks the fields the listen command depends on.
// UserID may be empty when Token carries a subject.
func (c *Config) ValidateListener() error {
	if c.Server.Host == "" {
		return errors.New("server host is required")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Client.UserID == "" && c.Client.Token == "" {
		return errors.New("user id or token is required")
	}
	if c.Client.RedirectURL == "" {
		return errors.New("redirect url is required")
	}
	if c.Reconnect.MaxAttempts < 0 {
		return errors.New("reconnect attempts must not be negative")
	}
	return nil
}

// ValidateRelay checks the fields the relay command depends on.
func (c *Config) ValidateRelay() error {
	if c.Relay.Port <= 0 || c.Relay.Port > 65535 {
		return fmt.Errorf("invalid relay port %d", c.Relay.Port)
	}
	if c.Relay.RequireToken && len(c.JWT.SecretKey) < 32 {
		return errors.New("jwt secret key must be at least 32 characters when tokens are required")
	}
	if c.Redis.Host == "" {
		return errors.New("redis host is required")
	}
	return nil
}
