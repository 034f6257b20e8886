package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor-server/internal/proto"
	"github.com/parlorchat/parlor-server/internal/store"
)

// MessageHandlers provides the read-only history API and the clear endpoint.
type MessageHandlers struct {
	store store.MessageStore
	log   *zerolog.Logger
}

// NewMessageHandlers creates a new message handlers instance.
func NewMessageHandlers(st store.MessageStore, logger *zerolog.Logger) *MessageHandlers {
	return &MessageHandlers{
		store: st,
		log:   logger,
	}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ListMessages returns the full message log in replay order.
// GET /api/messages
func (h *MessageHandlers) ListMessages(c *gin.Context) {
	rows, err := h.store.ListMessages(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	response := make([]proto.WireMessage, 0, len(rows))
	for _, row := range rows {
		response = append(response, proto.WireMessage{
			ID:        row.ID,
			Username:  row.Username,
			Color:     row.Color,
			Text:      row.Text,
			FileURL:   row.FileURL,
			FileName:  row.FileName,
			Timestamp: row.Timestamp.UTC().Format(time.RFC3339Nano),
		})
	}

	c.JSON(http.StatusOK, response)
}

// ClearMessages wipes the whole log. Irreversible.
// DELETE /api/messages
func (h *MessageHandlers) ClearMessages(c *gin.Context) {
	if err := h.store.ClearMessages(c.Request.Context()); err != nil {
		h.log.Error().Err(err).Msg("failed to clear messages")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	h.log.Info().Msg("chat history cleared")
	c.JSON(http.StatusOK, gin.H{"message": "chat history cleared"})
}
