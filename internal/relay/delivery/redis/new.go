package redis

import (
	"context"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/log"
	pkgRedis "auris-notifier/pkg/redis"
)

type Subscriber interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// pubSub is the part of *goredis.PubSub the subscriber uses.
type pubSub interface {
	Receive(ctx context.Context) (interface{}, error)
	Channel(opts ...goredis.ChannelOption) <-chan *goredis.Message
	Close() error
}

type subscriber struct {
	uc     relay.UseCase
	logger log.Logger

	subscribe func(ctx context.Context, patterns ...string) pubSub
	pubsub    pubSub
	wg        sync.WaitGroup
	quit      chan struct{}
}

func New(redis pkgRedis.IRedis, uc relay.UseCase, logger log.Logger) Subscriber {
	return &subscriber{
		uc:     uc,
		logger: logger,
		subscribe: func(ctx context.Context, patterns ...string) pubSub {
			return redis.PSubscribe(ctx, patterns...)
		},
		quit: make(chan struct{}),
	}
}
