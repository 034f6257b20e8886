package core

import "errors"

// Error codes surfaced to clients at the protocol layer.
const (
	ErrCodeBadRequest     = "bad_request"
	ErrCodeInvalidMessage = "invalid_message"
)

var (
	// ErrEmptyMessage is returned when a message has neither text nor a
	// complete file attachment pair.
	ErrEmptyMessage = errors.New("message has no text and no attachment")
	// ErrEmptyUsername is returned when a message carries no display name.
	ErrEmptyUsername = errors.New("message has no username")
	// ErrIncompleteAttachment is returned when only one of fileUrl and
	// fileName is set.
	ErrIncompleteAttachment = errors.New("message has an incomplete attachment pair")
)
