package chat

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

const (
	frameJoinChannel = "join_channel"
	frameTyping      = "typing"
	frameStopTyping  = "stop_typing"
	frameNewMessage  = "new_message"
	frameUserJoined  = "user_joined"
	frameUserLeft    = "user_left"
)

type joinFrame struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id"`
}

type typingFrame struct {
	Type      string `json:"type"`
	ChannelID string `json:"channel_id"`
	IsTyping  bool   `json:"is_typing"`
}

// ServerEvent is the closed union of pushes the backend delivers. Every
// inbound frame decodes into exactly one variant; dispatch switches
// over all of them so a new push type is a compile-visible addition,
// not a silent default case.
type ServerEvent interface {
	eventType() string
}

type NewMessageEvent struct {
	Message models.Message
}

type TypingEvent struct {
	UserID   string
	IsTyping bool
}

type PresenceEvent struct {
	UserID string
	Joined bool
}

type UnknownEvent struct {
	Type string
}

func (NewMessageEvent) eventType() string { return frameNewMessage }
func (TypingEvent) eventType() string     { return frameTyping }
func (e PresenceEvent) eventType() string {
	if e.Joined {
		return frameUserJoined
	}
	return frameUserLeft
}
func (e UnknownEvent) eventType() string { return e.Type }

type envelope struct {
	Type string              `json:"type"`
	Data jsoniter.RawMessage `json:"data"`
}

func decodeServerEvent(raw []byte) (ServerEvent, error) {
	var env envelope
	if err := jsoniter.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed frame: %w", err)
	}

	switch env.Type {
	case frameNewMessage:
		var data struct {
			Message models.Message `json:"message"`
		}
		if err := jsoniter.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
		}
		return NewMessageEvent{Message: data.Message}, nil
	case frameTyping:
		var data struct {
			UserID   string `json:"user_id"`
			IsTyping bool   `json:"is_typing"`
		}
		if err := jsoniter.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
		}
		return TypingEvent{UserID: data.UserID, IsTyping: data.IsTyping}, nil
	case frameUserJoined, frameUserLeft:
		var data struct {
			UserID string `json:"user_id"`
		}
		if err := jsoniter.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("malformed %s payload: %w", env.Type, err)
		}
		return PresenceEvent{UserID: data.UserID, Joined: env.Type == frameUserJoined}, nil
	default:
		return UnknownEvent{Type: env.Type}, nil
	}
}
