package redis

import (
	"context"
	"fmt"

	"auris-notifier/internal/relay"
)

func (s *subscriber) Start(ctx context.Context) error {
	s.pubsub = s.subscribe(ctx, relay.ChannelPattern)

	// Wait for confirmation that the subscription is created.
	if _, err := s.pubsub.Receive(ctx); err != nil {
		s.pubsub.Close()
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	s.wg.Add(1)
	go s.listen(context.WithoutCancel(ctx))

	s.logger.Infof(ctx, "relay.delivery.redis.Start: subscribed to %s", relay.ChannelPattern)
	return nil
}

func (s *subscriber) listen(ctx context.Context) {
	defer s.wg.Done()

	ch := s.pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				s.logger.Warnf(ctx, "relay.delivery.redis.listen: pubsub channel closed")
				return
			}
			s.handleMessage(ctx, msg.Channel, []byte(msg.Payload))
		case <-s.quit:
			return
		}
	}
}

func (s *subscriber) Shutdown(ctx context.Context) error {
	close(s.quit)
	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Errorf(ctx, "relay.delivery.redis.Shutdown: failed to close pubsub: %v", err)
		}
	}
	s.wg.Wait()
	s.logger.Infof(ctx, "relay.delivery.redis.Shutdown: subscriber stopped")
	return nil
}
