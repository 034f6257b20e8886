package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/parlorchat/parlor-server/internal/store"
)

// ErrNotFound is returned when a queried row does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	username   TEXT NOT NULL,
	user_color TEXT NOT NULL,
	message_text TEXT,
	file_url   TEXT,
	file_name  TEXT,
	timestamp  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_messages_timestamp ON messages(timestamp ASC, id ASC);

CREATE TABLE IF NOT EXISTS users (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	contact    TEXT NOT NULL UNIQUE,
	username   TEXT NOT NULL,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

// SQLiteStore implements store.Store for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLite store and applies the schema.
// dbPath is the path to the SQLite database file.
func New(dbPath string) (*SQLiteStore, error) {
	return NewWithSetup(dbPath, func(db *sql.DB) error {
		_, err := db.Exec(schema)
		return err
	})
}

// NewWithSetup creates a new SQLite store and runs a setup function.
// Useful for tests to apply an alternative schema.
func NewWithSetup(dbPath string, setup func(*sql.DB) error) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection keeps appends serialized; id assignment cannot
	// interleave even under concurrent callers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if setup != nil {
		if err := setup(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("setup: %w", err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ==== MessageStore implementation ====

// AppendMessage inserts a message and returns the assigned id.
func (s *SQLiteStore) AppendMessage(ctx context.Context, msg *store.Message) (int64, error) {
	query := `
		INSERT INTO messages (username, user_color, message_text, file_url, file_name, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	result, err := s.db.ExecContext(ctx, query,
		msg.Username,
		msg.Color,
		nullable(msg.Text),
		nullable(msg.FileURL),
		nullable(msg.FileName),
		msg.Timestamp,
	)
	if err != nil {
		return 0, fmt.Errorf("insert message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}

	msg.ID = id
	return id, nil
}

// ListMessages returns the full log ascending by timestamp, then id.
func (s *SQLiteStore) ListMessages(ctx context.Context) ([]*store.Message, error) {
	query := `
		SELECT id, username, user_color, message_text, file_url, file_name, timestamp
		FROM messages
		ORDER BY timestamp ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var messages []*store.Message
	for rows.Next() {
		var msg store.Message
		var text, fileURL, fileName sql.NullString
		if err := rows.Scan(
			&msg.ID,
			&msg.Username,
			&msg.Color,
			&text,
			&fileURL,
			&fileName,
			&msg.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.Text = text.String
		msg.FileURL = fileURL.String
		msg.FileName = fileName.String
		messages = append(messages, &msg)
	}

	return messages, rows.Err()
}

// ClearMessages deletes every message unconditionally.
func (s *SQLiteStore) ClearMessages(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages`); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}

// ==== UserStore implementation ====

// UpsertUser creates or updates the identity row for a contact.
func (s *SQLiteStore) UpsertUser(ctx context.Context, contact, username string) (*store.User, error) {
	query := `
		INSERT INTO users (contact, username)
		VALUES (?, ?)
		ON CONFLICT(contact) DO UPDATE SET username = excluded.username
	`
	if _, err := s.db.ExecContext(ctx, query, contact, username); err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	return s.GetUserByContact(ctx, contact)
}

// GetUserByContact retrieves an identity row by contact.
func (s *SQLiteStore) GetUserByContact(ctx context.Context, contact string) (*store.User, error) {
	query := `
		SELECT id, contact, username, created_at
		FROM users
		WHERE contact = ?
	`
	var user store.User
	err := s.db.QueryRowContext(ctx, query, contact).Scan(
		&user.ID,
		&user.Contact,
		&user.Username,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", contact, ErrNotFound)
		}
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Ensure SQLiteStore implements store.Store
var _ store.Store = (*SQLiteStore)(nil)
