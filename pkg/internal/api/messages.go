package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

type SendMessageRequest struct {
	Content     string             `json:"content"`
	MessageType models.MessageType `json:"message_type"`
	ReplyToID   *string            `json:"reply_to_id,omitempty"`
}

// ListMessages fetches the most recent page for a channel. The server
// returns newest first; callers reverse before display.
func (c *Client) ListMessages(ctx context.Context, channelID string, perPage int) (models.MessageList, error) {
	query := url.Values{}
	query.Set("per_page", strconv.Itoa(perPage))

	var list models.MessageList
	err := c.get(ctx, "/channels/"+channelID+"/messages", query, &list)
	return list, err
}

func (c *Client) SendMessage(ctx context.Context, channelID string, request SendMessageRequest) (models.Message, error) {
	var message models.Message
	err := c.post(ctx, "/channels/"+channelID+"/messages", request, &message)
	return message, err
}

func (c *Client) EditMessage(ctx context.Context, channelID, messageID, content string) (models.Message, error) {
	payload := map[string]any{"content": content}

	var message models.Message
	err := c.put(ctx, "/channels/"+channelID+"/messages/"+messageID, payload, &message)
	return message, err
}

func (c *Client) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	return c.delete(ctx, "/channels/"+channelID+"/messages/"+messageID)
}

// AddReaction posts an emoji for a message. The response body carries
// nothing the client needs; local state is updated on success.
func (c *Client) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	payload := map[string]any{"emoji": emoji}
	return c.post(ctx, "/channels/"+channelID+"/messages/"+messageID+"/reactions", payload, nil)
}

// PinMessage pins a message to the channel. Admin-only; the server
// enforces the permission and answers 403 otherwise.
func (c *Client) PinMessage(ctx context.Context, channelID, messageID string) (models.PinnedMessage, error) {
	var pinned models.PinnedMessage
	err := c.post(ctx, "/channels/"+channelID+"/messages/"+messageID+"/pin", nil, &pinned)
	return pinned, err
}

func (c *Client) UnpinMessage(ctx context.Context, channelID, messageID string) error {
	return c.delete(ctx, "/channels/"+channelID+"/messages/"+messageID+"/pin")
}

func (c *Client) ListPinnedMessages(ctx context.Context, channelID string) ([]models.PinnedMessage, error) {
	var pinned []models.PinnedMessage
	err := c.get(ctx, "/channels/"+channelID+"/pinned", nil, &pinned)
	return pinned, err
}
