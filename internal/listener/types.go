package listener

// Event names on the wire.
const (
	EventJoin         = "join"
	EventNotification = "notification"
)

// JoinPayload announces the viewer to the server.
type JoinPayload struct {
	UserID string `json:"user_id"`
}

// NotificationPayload is the inbound notification. Other fields are ignored.
type NotificationPayload struct {
	Content *string `json:"content"`
}

// Options carries the identity and redirect target of one listener.
type Options struct {
	UserID         string
	RedirectURL    string
	ExitOnRedirect bool
}
