package relay

import "errors"

var (
	ErrMissingToken          = errors.New("missing token")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrInvalidChannel        = errors.New("invalid channel")
	ErrInvalidMessage        = errors.New("invalid message format")
	ErrMaxConnectionsReached = errors.New("maximum connections reached")
	ErrHubClosed             = errors.New("hub closed")
	ErrNotRegistered         = errors.New("connection not registered")
	ErrUserMismatch          = errors.New("joined user does not match token subject")
	ErrRateLimited           = errors.New("too many connection attempts")
)
