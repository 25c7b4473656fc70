package realtime

import "errors"

var (
	// ErrNotConnected is returned by Emit when no connection is live.
	ErrNotConnected = errors.New("realtime: not connected")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("realtime: already running")

	// ErrClosed is returned by Run after Close.
	ErrClosed = errors.New("realtime: socket closed")

	// ErrReconnectExhausted is returned when MaxAttempts consecutive dials fail.
	ErrReconnectExhausted = errors.New("realtime: reconnect attempts exhausted")

	// ErrConnectionLost is returned when the connection drops and reconnection is disabled.
	ErrConnectionLost = errors.New("realtime: connection lost")

	// ErrInvalidMessage is returned when an envelope has no type.
	ErrInvalidMessage = errors.New("realtime: invalid message format")
)
