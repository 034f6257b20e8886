package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor-server/internal/metrics"
	"github.com/parlorchat/parlor-server/internal/store"
)

// Hub is the broadcast core. It tracks every connected channel, replays the
// message backlog to new joiners, fans chat messages out to all channels and
// relays typing signals. All bookkeeping happens on the Run goroutine, so
// registration and the history snapshot form one atomic step: a channel can
// neither miss nor double-receive a broadcast racing its connect.
type Hub struct {
	store   store.MessageStore
	log     zerolog.Logger
	metrics *metrics.Metrics

	register   chan *Client
	unregister chan *Client
	inbound    chan clientCommand
	stopped    chan struct{}

	clients map[*Client]struct{}
}

type clientCommand struct {
	client  *Client
	command *Command
}

// NewHub creates a hub. The store and metrics may be nil (history replay and
// persistence are then skipped), which tests use.
func NewHub(st store.MessageStore, logger *zerolog.Logger, m *metrics.Metrics) *Hub {
	lg := zerolog.Nop()
	if logger != nil {
		lg = *logger
	}
	return &Hub{
		store:      st,
		log:        lg,
		metrics:    m,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan clientCommand),
		stopped:    make(chan struct{}),
		clients:    make(map[*Client]struct{}),
	}
}

// RegisterClient adds a channel and schedules its history replay. A no-op
// once the hub has stopped.
func (h *Hub) RegisterClient(c *Client) {
	select {
	case h.register <- c:
	case <-h.stopped:
	}
}

// UnregisterClient removes a channel. Safe to call for a channel that was
// already removed, and a no-op once the hub has stopped.
func (h *Hub) UnregisterClient(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

// Run processes registrations and commands until the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.metrics.ConnOpened()
			h.replayHistory(ctx, c)
			go h.pump(ctx, c)
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}
		case cc := <-h.inbound:
			h.handleCommand(ctx, cc)
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.done)
	h.metrics.ConnClosed()
}

// pump forwards one client's commands onto the hub loop.
func (h *Hub) pump(ctx context.Context, c *Client) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case cmd, ok := <-c.Commands:
			if !ok {
				return
			}
			select {
			case h.inbound <- clientCommand{client: c, command: cmd}:
			case <-ctx.Done():
				return
			case <-c.done:
				return
			}
		}
	}
}

func (h *Hub) handleCommand(ctx context.Context, cc clientCommand) {
	switch cc.command.Kind {
	case CommandSendMessage:
		h.handleSendMessage(ctx, cc.client, cc.command.Message)
	case CommandTypingStart:
		h.broadcast(&Event{Kind: EventUserTyping, User: cc.command.User})
	case CommandTypingStop:
		h.broadcast(&Event{Kind: EventUserStoppedTyping, User: cc.command.User})
	}
}

// handleSendMessage stamps, broadcasts and then persists one chat message.
// Broadcast and persistence are intentionally not transactional: delivery to
// connected channels proceeds even when the append fails, trading durability
// for latency.
func (h *Hub) handleSendMessage(ctx context.Context, c *Client, msg Message) {
	if err := msg.Validate(); err != nil {
		// Malformed messages are dropped without a reply, matching the
		// historical protocol.
		h.log.Debug().Err(err).Str("client_id", c.ID).Msg("dropping invalid message")
		return
	}

	// Server time wins over anything the client supplied.
	msg.Timestamp = time.Now().UTC()

	h.broadcast(&Event{Kind: EventChatMessage, Message: msg})
	h.metrics.MessageBroadcast()

	if h.store == nil {
		return
	}
	rec := store.Message{
		Username:  msg.Username,
		Color:     msg.Color,
		Text:      msg.Text,
		FileURL:   msg.FileURL,
		FileName:  msg.FileName,
		Timestamp: msg.Timestamp,
	}
	if _, err := h.store.AppendMessage(ctx, &rec); err != nil {
		h.log.Error().Err(err).Str("username", msg.Username).Msg("failed to persist message")
		h.metrics.StoreFailure()
	}
}

// replayHistory sends the full backlog to one newly registered channel as a
// single batched event.
func (h *Hub) replayHistory(ctx context.Context, c *Client) {
	if h.store == nil {
		h.send(c, &Event{Kind: EventHistory, Messages: []Message{}})
		return
	}

	rows, err := h.store.ListMessages(ctx)
	if err != nil {
		h.log.Error().Err(err).Str("client_id", c.ID).Msg("failed to load history")
		return
	}

	messages := make([]Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, Message{
			ID:        row.ID,
			Username:  row.Username,
			Color:     row.Color,
			Text:      row.Text,
			FileURL:   row.FileURL,
			FileName:  row.FileName,
			Timestamp: row.Timestamp,
		})
	}
	h.send(c, &Event{Kind: EventHistory, Messages: messages})
}

// broadcast delivers an event to every registered channel independently.
func (h *Hub) broadcast(event *Event) {
	for client := range h.clients {
		h.send(client, event)
	}
}

func (h *Hub) send(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Drop if slow consumer; one stalled channel must not block the rest.
		h.metrics.EventDropped()
		h.log.Warn().Str("client_id", c.ID).Msg("dropping event for slow client")
	}
}
