package http

import "strings"

// UpgradeReq is the query of GET /ws.
type UpgradeReq struct {
	Token string `form:"token"`
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
