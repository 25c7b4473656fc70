package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// IRedis is the subset of Redis the relay and the publish command use.
type IRedis interface {
	Publish(ctx context.Context, channel string, message any) (int64, error)
	PSubscribe(ctx context.Context, patterns ...string) *goredis.PubSub
	Ping(ctx context.Context) (time.Duration, error)
	Close() error
}
