package http

import (
	"net/http"

	"auris-notifier/internal/relay"
	"auris-notifier/pkg/errors"
	"auris-notifier/pkg/response"
)

var errMap = response.ErrorMapping{
	relay.ErrMissingToken:          errors.NewHTTPError(401, "Missing authentication token", http.StatusUnauthorized),
	relay.ErrInvalidToken:          errors.NewHTTPError(401, "Invalid or expired token", http.StatusUnauthorized),
	relay.ErrMaxConnectionsReached: errors.NewServiceUnavailableHTTPError("Maximum connections reached"),
	relay.ErrHubClosed:             errors.NewServiceUnavailableHTTPError("Relay is shutting down"),
	relay.ErrRateLimited:           errors.NewHTTPError(429, "Too many connection attempts", http.StatusTooManyRequests),
}
