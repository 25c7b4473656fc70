package listener

import "errors"

var (
	ErrAlreadyStarted = errors.New("listener: already started")
	ErrMissingUserID  = errors.New("listener: user id is required")
	ErrMissingContent = errors.New("listener: notification has no content")
	ErrNavigate       = errors.New("listener: navigation failed")
)
