package response

import "auris-notifier/pkg/errors"

const (
	DefaultErrorMessage     = "Something went wrong"
	MessageSuccess          = "Success"
	InternalServerErrorCode = 500
)

type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
}

// ErrorMapping maps domain errors to the HTTP errors sent for them.
type ErrorMapping map[error]*errors.HTTPError
