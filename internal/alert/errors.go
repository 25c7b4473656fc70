package alert

import "errors"

var (
	ErrInputClosed = errors.New("alert: acknowledgement input closed")
	ErrUnknownMode = errors.New("alert: unknown presenter mode")
)
