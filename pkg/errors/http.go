package errors

import "net/http"

// HTTPError represents an HTTP error with status code and message.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

// NewHTTPError returns a new HTTPError. A zero statusCode means 400.
func NewHTTPError(code int, message string, statusCode int) *HTTPError {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	return &HTTPError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// NewUnauthorizedHTTPError returns a new unauthorized HTTP error.
func NewUnauthorizedHTTPError() *HTTPError {
	return NewHTTPError(401, "Unauthorized", http.StatusUnauthorized)
}

// NewServiceUnavailableHTTPError returns a new 503 HTTP error.
func NewServiceUnavailableHTTPError(message string) *HTTPError {
	return NewHTTPError(503, message, http.StatusServiceUnavailable)
}

func (e *HTTPError) Error() string {
	return e.Message
}
