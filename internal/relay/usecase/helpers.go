package usecase

import (
	"strings"

	"auris-notifier/internal/relay"
)

// parseChannel extracts the user id from user_noti:{user_id}.
func parseChannel(channel string) (string, error) {
	userID, ok := strings.CutPrefix(channel, relay.ChannelPrefix)
	if !ok || userID == "" || strings.Contains(userID, ":") {
		return "", relay.ErrInvalidChannel
	}
	return userID, nil
}
