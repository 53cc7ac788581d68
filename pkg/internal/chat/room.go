package chat

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/campus-connect/campusctl/pkg/internal/api"
	"github.com/campus-connect/campusctl/pkg/internal/models"
)

const initialPageSize = 50

type RoomUpdate int

const (
	RoomMessagesChanged RoomUpdate = iota
	RoomTypingChanged
)

// Room is one open channel view: the message cache, the typing set,
// the composer, and the live transport, reconciled in one place. REST
// acknowledgments and push events may complete concurrently; every
// mutation goes through the cache's locked read-compute-swap methods.
type Room struct {
	client  *api.Client
	channel models.Channel
	self    models.User

	Cache    *Cache
	Typing   *TypingTracker
	Composer *Composer

	transport *Transport
	signaler  *Signaler
	updates   chan RoomUpdate
}

// OpenRoom fetches the most recent page and brings the socket up. A
// failed initial fetch degrades to an empty scrollback rather than
// failing the view; the transport retries on its own.
func OpenRoom(ctx context.Context, client *api.Client, wsEndpoint string, channel models.Channel, self models.User) *Room {
	room := &Room{
		client:   client,
		channel:  channel,
		self:     self,
		Cache:    NewCache(),
		Typing:   NewTypingTracker(self.ID),
		Composer: &Composer{},
		updates:  make(chan RoomUpdate, 64),
	}

	list, err := client.ListMessages(ctx, channel.ID, initialPageSize)
	if err != nil {
		log.Warn().Err(err).Str("channel", channel.ID).Msg("An error occurred when fetching channel messages.")
	} else {
		room.Cache.ResetFromNewestFirst(list.Messages)
	}

	room.transport = NewTransport(wsEndpoint, channel.ID, room)
	room.signaler = NewSignaler(room.transport.SendTyping)
	go room.transport.Connect()

	return room
}

func (r *Room) Channel() models.Channel { return r.channel }
func (r *Room) Self() models.User       { return r.self }

// Updates signals the view that messages or the typing set changed.
func (r *Room) Updates() <-chan RoomUpdate {
	return r.updates
}

func (r *Room) notify(update RoomUpdate) {
	select {
	case r.updates <- update:
	default:
	}
}

func (r *Room) HandleNewMessage(event NewMessageEvent) {
	if event.Message.ChannelID != r.channel.ID {
		return
	}
	if r.Cache.Append(event.Message) {
		r.notify(RoomMessagesChanged)
	}
}

func (r *Room) HandleTyping(event TypingEvent) {
	r.Typing.Apply(event)
	r.notify(RoomTypingChanged)
}

// HandlePresence is reserved; member joins and leaves are not
// reflected in the view yet.
func (r *Room) HandlePresence(event PresenceEvent) {}

// Keystroke updates the draft and drives the typing signaler.
func (r *Room) Keystroke(content string) {
	r.Composer.SetContent(content)
	r.signaler.Keystroke(content)
}

// Submit dispatches the composer: edit-save when an edit target is
// set, otherwise send. The draft clears only after the server
// acknowledgment; there is no optimistic insertion.
func (r *Room) Submit(ctx context.Context) error {
	submission, ok := r.Composer.Submit()
	if !ok {
		return nil
	}

	switch submission.Kind {
	case SubmitEdit:
		message, err := r.client.EditMessage(ctx, r.channel.ID, submission.MessageID, submission.Content)
		if err != nil {
			log.Warn().Err(err).Msg("An error occurred when editing the message.")
			return err
		}
		r.Cache.Replace(message)
	default:
		message, err := r.client.SendMessage(ctx, r.channel.ID, api.SendMessageRequest{
			Content:     submission.Content,
			MessageType: models.MessageTypeText,
			ReplyToID:   submission.ReplyToID,
		})
		if err != nil {
			log.Warn().Err(err).Msg("An error occurred when sending the message.")
			return err
		}
		r.Cache.Append(message)
	}

	r.Composer.Acknowledge()
	r.notify(RoomMessagesChanged)
	return nil
}

func (r *Room) Delete(ctx context.Context, messageID string) error {
	if err := r.client.DeleteMessage(ctx, r.channel.ID, messageID); err != nil {
		log.Warn().Err(err).Msg("An error occurred when deleting the message.")
		return err
	}
	r.Cache.Remove(messageID)
	r.notify(RoomMessagesChanged)
	return nil
}

func (r *Room) React(ctx context.Context, messageID, emoji string) error {
	if err := r.client.AddReaction(ctx, r.channel.ID, messageID, emoji); err != nil {
		log.Warn().Err(err).Msg("An error occurred when adding the reaction.")
		return err
	}
	r.Cache.Mutate(messageID, func(message *models.Message) {
		ApplyReaction(message, emoji, r.self)
	})
	r.notify(RoomMessagesChanged)
	return nil
}

// Pin pins a message to the channel's pin board. The pin board lives
// on the server; nothing changes in the local cache.
func (r *Room) Pin(ctx context.Context, messageID string) error {
	if _, err := r.client.PinMessage(ctx, r.channel.ID, messageID); err != nil {
		log.Warn().Err(err).Msg("An error occurred when pinning the message.")
		return err
	}
	return nil
}

func (r *Room) Unpin(ctx context.Context, messageID string) error {
	if err := r.client.UnpinMessage(ctx, r.channel.ID, messageID); err != nil {
		log.Warn().Err(err).Msg("An error occurred when unpinning the message.")
		return err
	}
	return nil
}

// Close tears the view down: pending typing state is withdrawn and the
// socket closed. In-flight REST requests are not cancelled.
func (r *Room) Close() {
	r.signaler.Stop()
	r.transport.Close()
}
