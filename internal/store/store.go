package store

import (
	"context"
	"time"
)

// Message represents a persisted chat message. Messages are append-only:
// once stored they are never updated, and they disappear only when the
// whole log is cleared.
type Message struct {
	ID        int64
	Username  string
	Color     string
	Text      string
	FileURL   string
	FileName  string
	Timestamp time.Time
}

// User is an identity row claimed through the OTP collaborator. The
// broadcast core never reads it.
type User struct {
	ID        int64
	Contact   string
	Username  string
	CreatedAt time.Time
}

// MessageStore handles the append-only message log.
type MessageStore interface {
	// AppendMessage inserts a message and returns the assigned id.
	// Ids are strictly increasing in write order.
	AppendMessage(ctx context.Context, msg *Message) (int64, error)

	// ListMessages returns the full log ascending by timestamp, then id.
	// No pagination; unbounded result size is accepted for small deployments.
	ListMessages(ctx context.Context) ([]*Message, error)

	// ClearMessages deletes every message unconditionally. Irreversible.
	ClearMessages(ctx context.Context) error
}

// UserStore handles identity persistence for the OTP collaborator.
type UserStore interface {
	// UpsertUser creates or updates the identity row for a contact.
	UpsertUser(ctx context.Context, contact, username string) (*User, error)

	// GetUserByContact retrieves an identity row by contact.
	GetUserByContact(ctx context.Context, contact string) (*User, error)
}

// Store aggregates all storage interfaces.
type Store interface {
	MessageStore
	UserStore

	// Close closes the underlying database connection.
	Close() error
}
