package relay

import "context"

// UseCase routes notifications to connected listeners.
type UseCase interface {
	// Lifecycle
	Run()
	Shutdown(ctx context.Context) error

	// Register takes ownership of an upgraded connection and starts its pumps.
	Register(ctx context.Context, input ConnectionInput) error

	GetStats(ctx context.Context) (HubStats, error)

	// ProcessMessage routes one Redis message to the user named by its channel.
	ProcessMessage(ctx context.Context, input ProcessMessageInput) error

	// SendToUser delivers an event to every connection joined as userID and
	// returns how many received it.
	SendToUser(ctx context.Context, userID, event string, payload any) (int, error)
}
