package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/log"
	"auris-notifier/pkg/realtime"
)

// implUseCase implements relay.UseCase.
type implUseCase struct {
	hub    *Hub
	logger log.Logger
	cfg    Config
}

// New creates the relay use case. Call Run before registering connections.
func New(logger log.Logger, cfg Config) relay.UseCase {
	cfg.applyDefaults()
	return &implUseCase{
		hub:    newHub(logger, cfg.MaxConnections),
		logger: logger,
		cfg:    cfg,
	}
}

func (uc *implUseCase) Run() {
	uc.hub.run()
}

func (uc *implUseCase) Shutdown(ctx context.Context) error {
	return uc.hub.shutdown(ctx)
}

func (uc *implUseCase) Register(ctx context.Context, input relay.ConnectionInput) error {
	if input.Conn == nil {
		return fmt.Errorf("%w: nil connection", relay.ErrInvalidMessage)
	}

	c := newConnection(uc.hub, input.Conn, input.AuthUserID, uc.cfg, uc.logger)
	if err := uc.hub.register(c); err != nil {
		return err
	}
	c.start(context.WithoutCancel(ctx))
	return nil
}

func (uc *implUseCase) GetStats(ctx context.Context) (relay.HubStats, error) {
	return uc.hub.Stats(), nil
}

func (uc *implUseCase) ProcessMessage(ctx context.Context, input relay.ProcessMessageInput) error {
	userID, err := parseChannel(input.Channel)
	if err != nil {
		return fmt.Errorf("%w: %s", err, input.Channel)
	}

	var in relay.RedisMessage
	if err := json.Unmarshal(input.Payload, &in); err != nil {
		return fmt.Errorf("%w: %v", relay.ErrInvalidMessage, err)
	}
	if in.Type == "" {
		return fmt.Errorf("%w: missing type", relay.ErrInvalidMessage)
	}

	data, err := json.Marshal(realtime.Message{
		Type:      in.Type,
		Payload:   in.Payload,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	n := uc.hub.SendToUser(userID, data)
	uc.logger.Debugf(ctx, "relay.usecase.ProcessMessage: %s delivered to %d connections of %s", in.Type, n, userID)
	return nil
}

func (uc *implUseCase) SendToUser(ctx context.Context, userID, event string, payload any) (int, error) {
	msg, err := realtime.NewMessage(event, payload)
	if err != nil {
		return 0, err
	}
	data, err := msg.ToJSON()
	if err != nil {
		return 0, fmt.Errorf("marshal message: %w", err)
	}
	return uc.hub.SendToUser(userID, data), nil
}
