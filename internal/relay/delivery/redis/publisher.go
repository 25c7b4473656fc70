package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/log"
	pkgRedis "auris-notifier/pkg/redis"
)

var ErrMissingUserID = errors.New("publisher: user id is required")

// Publisher puts notifications on a user's Redis channel.
type Publisher interface {
	// Publish returns the number of relays that received the message.
	Publish(ctx context.Context, userID, event string, payload any) (int64, error)
}

type publisher struct {
	redis  pkgRedis.IRedis
	logger log.Logger
}

func NewPublisher(redis pkgRedis.IRedis, logger log.Logger) Publisher {
	return &publisher{redis: redis, logger: logger}
}

func (p *publisher) Publish(ctx context.Context, userID, event string, payload any) (int64, error) {
	if userID == "" {
		return 0, ErrMissingUserID
	}
	if event == "" {
		return 0, fmt.Errorf("%w: missing type", relay.ErrInvalidMessage)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal payload: %w", err)
	}
	data, err := json.Marshal(relay.RedisMessage{Type: event, Payload: raw})
	if err != nil {
		return 0, fmt.Errorf("marshal message: %w", err)
	}

	channel := relay.ChannelPrefix + userID
	n, err := p.redis.Publish(ctx, channel, data)
	if err != nil {
		return 0, fmt.Errorf("publish to %s: %w", channel, err)
	}
	p.logger.Infof(ctx, "relay.delivery.redis.Publish: %s to %s reached %d subscribers", event, channel, n)
	return n, nil
}
