package listener

import (
	"context"

	"auris-notifier/pkg/realtime"
)

// UseCase is the notification listener.
type UseCase interface {
	// Run connects and processes events until ctx is done or the transport
	// stops. It may be called once per instance.
	Run(ctx context.Context) error
	Close() error
}

// Transport is the event channel the listener owns.
type Transport interface {
	On(event string, h realtime.Handler)
	OnFault(fn realtime.FaultHandler)
	Emit(ctx context.Context, event string, payload any) error
	Run(ctx context.Context) error
	Close() error
}

// FaultReporter forwards handler faults outside the process.
type FaultReporter interface {
	SendError(ctx context.Context, title, description string, err error) error
}
