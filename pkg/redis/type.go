package redis

import (
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Config holds the connection settings.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	UseTLS   bool

	MaxRetries   int
	MinIdleConns int
	PoolSize     int
	PoolTimeout  time.Duration
}

type redisImpl struct {
	client *goredis.Client
}

// connectTimeout bounds the ping New performs.
const connectTimeout = 5 * time.Second

var (
	ErrHostRequired = errors.New("redis: host is required")
	ErrInvalidPort  = errors.New("redis: invalid port")
)
