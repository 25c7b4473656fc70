package usecase

import (
	"context"
	"fmt"
	"time"

	"auris-notifier/internal/listener"
	"auris-notifier/pkg/realtime"
)

const reportTimeout = 15 * time.Second

func (uc *implUseCase) Run(ctx context.Context) error {
	if !uc.started.CompareAndSwap(false, true) {
		return listener.ErrAlreadyStarted
	}
	ctx = uc.logger.With(ctx, "user_id", uc.userID)
	uc.logger.Infof(ctx, "listener.usecase.Run: listening for notifications")
	return uc.transport.Run(ctx)
}

func (uc *implUseCase) Close() error {
	return uc.transport.Close()
}

// onConnect runs once per successful connection, including reconnections.
func (uc *implUseCase) onConnect(ctx context.Context, _ realtime.Message) error {
	if err := uc.transport.Emit(ctx, listener.EventJoin, listener.JoinPayload{UserID: uc.userID}); err != nil {
		return fmt.Errorf("emit join: %w", err)
	}
	uc.logger.Infof(ctx, "listener.usecase.onConnect: joined as %s", uc.userID)
	return nil
}

func (uc *implUseCase) onDisconnect(ctx context.Context, msg realtime.Message) error {
	var p realtime.DisconnectPayload
	if err := msg.Decode(&p); err != nil {
		uc.logger.Warnf(ctx, "listener.usecase.onDisconnect: unreadable disconnect payload: %v", err)
	}
	if p.Reason == "" {
		p.Reason = "unknown"
	}
	uc.logger.Warnf(ctx, "listener.usecase.onDisconnect: disconnected: %s", p.Reason)
	return nil
}

// onNotification shows the content, blocking until acknowledged, then
// navigates to the redirect target.
func (uc *implUseCase) onNotification(ctx context.Context, msg realtime.Message) error {
	uc.logger.Infof(ctx, "listener.usecase.onNotification: notification received: %s", msg.Payload)

	content, err := notificationContent(msg)
	if err != nil {
		return err
	}

	if err := uc.presenter.Present(ctx, content); err != nil {
		return fmt.Errorf("present notification: %w", err)
	}

	if err := uc.navigator.Navigate(ctx, uc.redirectURL); err != nil {
		return fmt.Errorf("%w: %w", listener.ErrNavigate, err)
	}
	uc.logger.Infof(ctx, "listener.usecase.onNotification: redirected to %s", uc.redirectURL)

	if uc.exitOnRedirect {
		return uc.transport.Close()
	}
	return nil
}

func (uc *implUseCase) onFault(ctx context.Context, event string, err error) {
	if uc.reporter == nil {
		return
	}
	desc := fmt.Sprintf("event %q for user %s", event, uc.userID)
	go func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), reportTimeout)
		defer cancel()
		if rerr := uc.reporter.SendError(rctx, "Notifier fault", desc, err); rerr != nil {
			uc.logger.Warnf(rctx, "listener.usecase.onFault: report failed: %v", rerr)
		}
	}()
}

func notificationContent(msg realtime.Message) (string, error) {
	var p listener.NotificationPayload
	if err := msg.Decode(&p); err != nil {
		return "", fmt.Errorf("%w: %v", listener.ErrMissingContent, err)
	}
	if p.Content == nil {
		return "", listener.ErrMissingContent
	}
	return *p.Content, nil
}
