package redis

import (
	"context"

	"auris-notifier/internal/relay"
)

func (s *subscriber) handleMessage(ctx context.Context, channel string, payload []byte) {
	input := relay.ProcessMessageInput{
		Channel: channel,
		Payload: payload,
	}

	if err := s.uc.ProcessMessage(ctx, input); err != nil {
		s.logger.Warnf(ctx, "relay.delivery.redis.handleMessage: channel=%s err=%v", channel, err)
	}
}
