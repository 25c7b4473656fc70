package navigate

import "errors"

var (
	ErrInvalidTarget = errors.New("navigate: target must be an absolute http(s) URL")
	ErrUnknownMode   = errors.New("navigate: unknown navigator mode")
)
