package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/discord"
	"auris-notifier/pkg/log"
	pkgRedis "auris-notifier/pkg/redis"
)

// HTTPServer runs the development relay.
// New() only wires dependencies and validates them.
// Run() starts background services and serves HTTP.
type HTTPServer struct {
	gin    *gin.Engine
	logger log.Logger
	host   string
	port   int

	relayUC  relay.UseCase
	verifier TokenVerifier
	limiter  RateLimiter

	requireToken bool

	redis   pkgRedis.IRedis
	discord discord.IDiscord
}

// TokenVerifier resolves a token to its user id.
type TokenVerifier interface {
	ExtractUserID(tokenString string) (string, error)
}

// RateLimiter admits or rejects a connection attempt from key.
type RateLimiter interface {
	Allow(key string) error
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Host string
	Port int
	Mode string

	RelayUC      relay.UseCase
	Verifier     TokenVerifier
	RequireToken bool
	RateLimiter  RateLimiter

	// Redis is optional; without it only direct connections are served.
	Redis   pkgRedis.IRedis
	Discord discord.IDiscord
}

func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	srv := &HTTPServer{
		gin:          gin.New(),
		logger:       logger,
		host:         cfg.Host,
		port:         cfg.Port,
		relayUC:      cfg.RelayUC,
		verifier:     cfg.Verifier,
		limiter:      cfg.RateLimiter,
		requireToken: cfg.RequireToken,
		redis:        cfg.Redis,
		discord:      cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	srv.mapHandlers()

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port <= 0 {
		return errors.New("port is required")
	}
	if srv.relayUC == nil {
		return errors.New("relay use case is required")
	}
	if srv.requireToken && srv.verifier == nil {
		return errors.New("token verifier is required when tokens are required")
	}
	return nil
}
