package core

// EventKind is a notification the hub emits to clients.
type EventKind int

const (
	// EventChatMessage carries a broadcast chat message. The sender is not
	// excluded; clients distinguish own messages by username.
	EventChatMessage EventKind = iota
	// EventHistory delivers the full message backlog to one newly
	// connected client, as a single batched event.
	EventHistory
	// EventUserTyping relays that a user started composing.
	EventUserTyping
	// EventUserStoppedTyping relays that a user stopped composing.
	EventUserStoppedTyping
)

// Event is sent to clients to describe what happened in the system.
type Event struct {
	Kind     EventKind
	User     string
	Message  Message
	Messages []Message // for EventHistory
}
