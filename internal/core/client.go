package core

// Client is one active connection as seen by the hub. No username is bound
// here: display names travel with each command instead.
type Client struct {
	ID       string
	Commands chan *Command
	Events   chan *Event

	done chan struct{}
}

// NewClient constructs a client with initialized channels.
func NewClient(id string) *Client {
	return &Client{
		ID:       id,
		Commands: make(chan *Command, 8),
		Events:   make(chan *Event, 32),
		done:     make(chan struct{}),
	}
}

// Done is closed when the hub has unregistered the client.
func (c *Client) Done() <-chan struct{} {
	return c.done
}
