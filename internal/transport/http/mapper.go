package http

import (
	"encoding/json"
	"time"

	"github.com/parlorchat/parlor-server/internal/core"
	"github.com/parlorchat/parlor-server/internal/proto"
)

func envelopeToCommand(envelope proto.Envelope) (*core.Command, *proto.Error, error) {
	switch envelope.Event {
	case proto.EventChatMessage:
		var data proto.ChatMessageData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind: core.CommandSendMessage,
			Message: core.Message{
				// Timestamp is assigned by the hub, not taken from the client.
				Username: data.DisplayName(),
				Color:    data.Color,
				Text:     data.Text,
				FileURL:  data.FileURL,
				FileName: data.FileName,
			},
		}, nil, nil
	case proto.EventTypingStart:
		var data proto.TypingData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.User == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "user is required"}, nil
		}
		return &core.Command{Kind: core.CommandTypingStart, User: data.User}, nil, nil
	case proto.EventTypingStop:
		var data proto.TypingData
		if err := json.Unmarshal(envelope.Data, &data); err != nil {
			return nil, nil, err
		}
		if data.User == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "user is required"}, nil
		}
		return &core.Command{Kind: core.CommandTypingStop, User: data.User}, nil, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeInvalidMessage, Msg: "unknown event"}, nil
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventChatMessage:
		return proto.Outbound{
			Event: proto.EventChatMessage,
			Data:  wireFromMessage(event.Message),
		}
	case core.EventHistory:
		messages := make([]proto.WireMessage, 0, len(event.Messages))
		for _, msg := range event.Messages {
			messages = append(messages, wireFromMessage(msg))
		}
		return proto.Outbound{
			Event: proto.EventChatHistory,
			Data:  messages,
		}
	case core.EventUserTyping:
		return proto.Outbound{
			Event: proto.EventUserTyping,
			Data:  proto.TypingData{User: event.User},
		}
	case core.EventUserStoppedTyping:
		return proto.Outbound{
			Event: proto.EventUserStoppedTyping,
			Data:  proto.TypingData{User: event.User},
		}
	default:
		return proto.Outbound{Event: proto.EventError, Error: &proto.Error{Code: "unknown", Msg: "unknown event"}}
	}
}

func wireFromMessage(msg core.Message) proto.WireMessage {
	return proto.WireMessage{
		ID:        msg.ID,
		Username:  msg.Username,
		Color:     msg.Color,
		Text:      msg.Text,
		FileURL:   msg.FileURL,
		FileName:  msg.FileName,
		Timestamp: msg.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}
