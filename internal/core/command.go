package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandSendMessage delivers a chat message to every participant.
	CommandSendMessage CommandKind = iota
	// CommandTypingStart signals that a user started composing.
	CommandTypingStart
	// CommandTypingStop signals that a user stopped composing.
	CommandTypingStop
)

// Command represents an action requested by a client.
type Command struct {
	Kind    CommandKind
	User    string // for typing commands
	Message Message
}
