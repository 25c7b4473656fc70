package discord

import (
	"net/http"
	"time"

	"auris-notifier/pkg/log"
)

const (
	defaultBaseURL = "https://discord.com/api/webhooks"

	ColorInfo    = 3447003
	ColorWarning = 16776960
	ColorError   = 15158332

	MaxMessageLength  = 2000
	MaxEmbedLength    = 6000
	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
	MaxFieldValueLen  = 1024

	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 2
	DefaultRetryDelay = time.Second
	DefaultUsername   = "Auris Notifier"
	UserAgent         = "Auris-Notifier/1.0"
)

type Config struct {
	// BaseURL is the webhook API root, {BaseURL}/{id}/{token}.
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	RetryDelay time.Duration
	Username   string
}

type discordImpl struct {
	l      log.Logger
	id     string
	token  string
	config Config
	client *http.Client
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type Embed struct {
	Title       string       `json:"title,omitempty"`
	Description string       `json:"description,omitempty"`
	Color       int          `json:"color,omitempty"`
	Timestamp   string       `json:"timestamp,omitempty"`
	Fields      []EmbedField `json:"fields,omitempty"`
}

type WebhookPayload struct {
	Content  string  `json:"content,omitempty"`
	Username string  `json:"username,omitempty"`
	Embeds   []Embed `json:"embeds,omitempty"`
}
