package realtime

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// NewMessage creates a new message with the given type and payload
func NewMessage(event string, payload any) (*Message, error) {
	var raw json.RawMessage
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", event, err)
		}
		raw = data
	}

	return &Message{
		Type:      event,
		Payload:   raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// ToJSON converts the message to JSON bytes
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// Decode unmarshals the payload into v.
func (m Message) Decode(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%w: %s has no payload", ErrInvalidMessage, m.Type)
	}
	return json.Unmarshal(m.Payload, v)
}

// FromJSON creates a message from JSON bytes
func FromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Type == "" {
		return nil, ErrInvalidMessage
	}
	return &msg, nil
}

// splitFrame returns the envelopes of one text frame. The server batches
// queued messages into a single frame separated by newlines.
func splitFrame(data []byte) [][]byte {
	lines := bytes.Split(data, []byte{'\n'})
	out := lines[:0]
	for _, line := range lines {
		if line = bytes.TrimSpace(line); len(line) > 0 {
			out = append(out, line)
		}
	}
	return out
}
