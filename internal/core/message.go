package core

import "time"

// Message is the domain model for a chat message. Username and color are
// supplied by the client with every message; the server does not bind an
// identity to the connection. Timestamp is assigned by the hub at receipt.
type Message struct {
	ID        int64
	Username  string
	Color     string
	Text      string
	FileURL   string
	FileName  string
	Timestamp time.Time
}

// Validate checks the shape invariant: a message must carry non-empty text
// or a complete fileUrl+fileName pair, and never half of a pair. A dangling
// attachment reference is rejected even alongside text.
func (m *Message) Validate() error {
	if m.Username == "" {
		return ErrEmptyUsername
	}
	if (m.FileURL == "") != (m.FileName == "") {
		return ErrIncompleteAttachment
	}
	if m.Text == "" && m.FileURL == "" {
		return ErrEmptyMessage
	}
	return nil
}
