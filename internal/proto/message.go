package proto

import "encoding/json"

// Envelope mirrors socket.io's event+payload framing over a plain websocket.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

const (
	// Inbound event names (client to server).
	EventChatMessage = "chat message"
	EventTypingStart = "typing start"
	EventTypingStop  = "typing stop"

	// Outbound event names (server to client). EventChatMessage is reused
	// for the broadcast direction.
	EventChatHistory       = "chat history"
	EventUserTyping        = "user typing"
	EventUserStoppedTyping = "user stopped typing"
	EventError             = "error"
)

// ChatMessageData is an inbound chat message. Older clients send the display
// name as "username" instead of "user"; both are accepted.
type ChatMessageData struct {
	User     string `json:"user"`
	Username string `json:"username,omitempty"`
	Color    string `json:"color"`
	Text     string `json:"text,omitempty"`
	FileURL  string `json:"fileUrl,omitempty"`
	FileName string `json:"fileName,omitempty"`
}

// DisplayName resolves the sender name from either accepted key.
func (d *ChatMessageData) DisplayName() string {
	if d.User != "" {
		return d.User
	}
	return d.Username
}

// TypingData carries the composing user's display name.
type TypingData struct {
	User string `json:"user"`
}

// WireMessage is the canonical outbound message shape, used for live
// broadcasts, history replay and the REST history endpoint. Timestamp is
// RFC3339 in UTC. ID is zero for live broadcasts, which are emitted before
// the store assigns one.
type WireMessage struct {
	ID        int64  `json:"id,omitempty"`
	Username  string `json:"username"`
	Color     string `json:"color"`
	Text      string `json:"text,omitempty"`
	FileURL   string `json:"fileUrl,omitempty"`
	FileName  string `json:"fileName,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Outbound is the envelope for frames sent to the client.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
