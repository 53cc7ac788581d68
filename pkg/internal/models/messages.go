package models

import "time"

type MessageType = string

const (
	MessageTypeText  = MessageType("text")
	MessageTypeImage = MessageType("image")
	MessageTypeFile  = MessageType("file")
	MessageTypeVideo = MessageType("video")
)

// Message is a single channel message. Content is absent for non-text
// kinds; ReplyTo is only embedded when the server expands the parent.
type Message struct {
	ID          string      `json:"id"`
	Content     *string     `json:"content,omitempty"`
	MessageType MessageType `json:"message_type"`
	FileURL     *string     `json:"file_url,omitempty"`
	FileName    *string     `json:"file_name,omitempty"`
	FileSize    *int64      `json:"file_size,omitempty"`
	IsEdited    bool        `json:"is_edited"`
	EditedAt    *time.Time  `json:"edited_at,omitempty"`
	ReplyToID   *string     `json:"reply_to_id,omitempty"`
	ReplyTo     *Message    `json:"reply_to,omitempty"`
	ChannelID   string      `json:"channel_id"`
	SenderID    string      `json:"sender_id"`
	SenderName  *string     `json:"sender_name,omitempty"`
	SenderRole  UserRole    `json:"sender_role"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
	Reactions   []Reaction  `json:"reactions"`
}

func (m Message) SenderDisplay() string {
	if m.SenderName != nil && *m.SenderName != "" {
		return *m.SenderName
	}
	return m.SenderID
}

func (m Message) Text() string {
	if m.Content != nil {
		return *m.Content
	}
	return ""
}

// Reaction groups every user who applied one emoji to a message.
// Count always equals len(Users).
type Reaction struct {
	Emoji string         `json:"emoji"`
	Users []ReactionUser `json:"users"`
	Count int            `json:"count"`
}

type ReactionUser struct {
	UserID    string    `json:"user_id"`
	UserRole  UserRole  `json:"user_role"`
	CreatedAt time.Time `json:"created_at"`
}

// PinnedMessage is one entry of a channel's pin board, with the
// pinned message embedded.
type PinnedMessage struct {
	ID           string    `json:"id"`
	ChannelID    string    `json:"channel_id"`
	MessageID    string    `json:"message_id"`
	PinnedByID   string    `json:"pinned_by_id"`
	PinnedByRole UserRole  `json:"pinned_by_role"`
	PinnedAt     time.Time `json:"pinned_at"`
	Message      Message   `json:"message"`
}

type MessageList struct {
	Messages []Message `json:"messages"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PerPage  int       `json:"per_page"`
}
