package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"

	"github.com/campus-connect/campusctl/pkg/internal/api"
	"github.com/campus-connect/campusctl/pkg/internal/models"
	"github.com/campus-connect/campusctl/pkg/internal/session"
)

// roomBackend fakes the channel message endpoints against a live
// httptest server. Sent bodies are recorded for assertion.
type roomBackend struct {
	mu        sync.Mutex
	page      []models.Message
	sent      []api.SendMessageRequest
	edits     []string
	pinned    map[string]bool
	nextID    int
	channelID string
}

func (b *roomBackend) handler() http.Handler {
	mux := http.NewServeMux()
	prefix := "/channels/" + b.channelID + "/messages"

	mux.HandleFunc(prefix, func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch r.Method {
		case http.MethodGet:
			_ = jsoniter.NewEncoder(w).Encode(models.MessageList{
				Messages: b.page,
				Total:    len(b.page),
				Page:     1,
				PerPage:  50,
			})
		case http.MethodPost:
			var request api.SendMessageRequest
			_ = jsoniter.NewDecoder(r.Body).Decode(&request)
			b.sent = append(b.sent, request)

			b.nextID++
			message := models.Message{
				ID:          b.idLocked(),
				Content:     &request.Content,
				MessageType: request.MessageType,
				ReplyToID:   request.ReplyToID,
				ChannelID:   b.channelID,
				SenderID:    "self",
			}
			_ = jsoniter.NewEncoder(w).Encode(message)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc(prefix+"/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch r.Method {
		case http.MethodPut:
			var payload struct {
				Content string `json:"content"`
			}
			_ = jsoniter.NewDecoder(r.Body).Decode(&payload)
			b.edits = append(b.edits, payload.Content)

			id := r.URL.Path[len(prefix)+1:]
			message := models.Message{
				ID:          id,
				Content:     &payload.Content,
				MessageType: models.MessageTypeText,
				ChannelID:   b.channelID,
				SenderID:    "self",
				IsEdited:    true,
			}
			_ = jsoniter.NewEncoder(w).Encode(message)
		case http.MethodDelete:
			if strings.HasSuffix(r.URL.Path, "/pin") {
				id := strings.TrimSuffix(r.URL.Path[len(prefix)+1:], "/pin")
				if b.pinned == nil || !b.pinned[id] {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				delete(b.pinned, id)
			}
			w.WriteHeader(http.StatusNoContent)
		case http.MethodPost:
			if strings.HasSuffix(r.URL.Path, "/pin") {
				id := strings.TrimSuffix(r.URL.Path[len(prefix)+1:], "/pin")
				if b.pinned == nil {
					b.pinned = make(map[string]bool)
				}
				b.pinned[id] = true
				w.WriteHeader(http.StatusCreated)
				_ = jsoniter.NewEncoder(w).Encode(models.PinnedMessage{
					ID:        "pin-" + id,
					ChannelID: b.channelID,
					MessageID: id,
				})
				return
			}
			w.WriteHeader(http.StatusCreated) // reactions
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	return mux
}

func (b *roomBackend) idLocked() string {
	return "srv-" + strconv.Itoa(b.nextID)
}

func (b *roomBackend) sentRequests() []api.SendMessageRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]api.SendMessageRequest{}, b.sent...)
}

func openTestRoom(t *testing.T, backend *roomBackend) *Room {
	t.Helper()
	backend.channelID = "c1"
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	sess := session.New(t.TempDir())
	client, err := api.NewClient(server.URL, sess)
	if err != nil {
		t.Fatal(err)
	}

	channel := models.Channel{ID: "c1", Name: "general"}
	self := models.User{ID: "self", Name: "Self", Role: models.RoleStudent}

	// An unroutable socket endpoint: these tests exercise the REST
	// path; the transport retries in the background and stays silent.
	room := OpenRoom(context.Background(), client, "ws://127.0.0.1:0/channels/ws", channel, self)
	t.Cleanup(room.Close)
	return room
}

func TestOpenRoomLoadsInitialPageOldestFirst(t *testing.T) {
	content := func(s string) *string { return &s }
	backend := &roomBackend{page: []models.Message{
		{ID: "m3", Content: content("third"), ChannelID: "c1"},
		{ID: "m2", Content: content("second"), ChannelID: "c1"},
		{ID: "m1", Content: content("first"), ChannelID: "c1"},
	}}

	room := openTestRoom(t, backend)
	assertOrder(t, room.Cache, []string{"m1", "m2", "m3"})
}

func TestSubmitSendsAndAppendsOnAck(t *testing.T) {
	backend := &roomBackend{}
	room := openTestRoom(t, backend)

	room.Keystroke("hello")
	if err := room.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}

	sent := backend.sentRequests()
	if len(sent) != 1 || sent[0].Content != "hello" || sent[0].MessageType != models.MessageTypeText {
		t.Fatalf("sent = %+v", sent)
	}
	if sent[0].ReplyToID != nil {
		t.Fatalf("reply_to_id = %v, want nil", sent[0].ReplyToID)
	}

	if room.Cache.Len() != 1 {
		t.Fatalf("cache has %d messages, want 1", room.Cache.Len())
	}
	if room.Composer.Content() != "" || room.Composer.State() != ComposerIdle {
		t.Fatal("composer not cleared after acknowledgment")
	}
}

func TestSubmitReplyCarriesParentID(t *testing.T) {
	content := "question"
	backend := &roomBackend{page: []models.Message{
		{ID: "parent", Content: &content, ChannelID: "c1", SenderID: "peer"},
	}}
	room := openTestRoom(t, backend)

	parent, _ := room.Cache.Get("parent")
	room.Composer.StartReply(parent)
	room.Keystroke("answer")
	if err := room.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}

	sent := backend.sentRequests()
	if len(sent) != 1 || sent[0].ReplyToID == nil || *sent[0].ReplyToID != "parent" {
		t.Fatalf("sent = %+v", sent)
	}
}

func TestSubmitEditReplacesInPlace(t *testing.T) {
	first, second := "first", "secnod"
	backend := &roomBackend{page: []models.Message{
		{ID: "m2", Content: &second, ChannelID: "c1", SenderID: "self"},
		{ID: "m1", Content: &first, ChannelID: "c1", SenderID: "self"},
	}}
	room := openTestRoom(t, backend)

	target, _ := room.Cache.Get("m2")
	room.Composer.StartEdit(target)
	room.Composer.SetContent("second")
	if err := room.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}

	assertOrder(t, room.Cache, []string{"m1", "m2"})
	got, _ := room.Cache.Get("m2")
	if got.Text() != "second" || !got.IsEdited {
		t.Fatalf("m2 = %+v", got)
	}
	if len(backend.sentRequests()) != 0 {
		t.Fatal("edit went through the send endpoint")
	}
}

func TestPushEchoOfOwnSendIsDropped(t *testing.T) {
	backend := &roomBackend{}
	room := openTestRoom(t, backend)

	room.Keystroke("hello")
	if err := room.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	acked := room.Cache.Snapshot()[0]

	// The backend broadcasts the sender's own message back.
	room.HandleNewMessage(NewMessageEvent{Message: acked})
	if room.Cache.Len() != 1 {
		t.Fatalf("cache has %d messages after echo, want 1", room.Cache.Len())
	}
}

func TestPushForOtherChannelIgnored(t *testing.T) {
	backend := &roomBackend{}
	room := openTestRoom(t, backend)

	content := "elsewhere"
	room.HandleNewMessage(NewMessageEvent{Message: models.Message{
		ID: "x1", Content: &content, ChannelID: "other",
	}})
	if room.Cache.Len() != 0 {
		t.Fatal("message for another channel entered the cache")
	}
}

func TestDeleteRemovesFromCache(t *testing.T) {
	content := "bye"
	backend := &roomBackend{page: []models.Message{
		{ID: "m1", Content: &content, ChannelID: "c1", SenderID: "self"},
	}}
	room := openTestRoom(t, backend)

	if err := room.Delete(context.Background(), "m1"); err != nil {
		t.Fatal(err)
	}
	if room.Cache.Len() != 0 {
		t.Fatalf("cache has %d messages after delete, want 0", room.Cache.Len())
	}
}

func TestPinAndUnpin(t *testing.T) {
	content := "keep this"
	backend := &roomBackend{page: []models.Message{
		{ID: "m1", Content: &content, ChannelID: "c1", SenderID: "peer"},
	}}
	room := openTestRoom(t, backend)

	if err := room.Pin(context.Background(), "m1"); err != nil {
		t.Fatal(err)
	}
	backend.mu.Lock()
	pinned := backend.pinned["m1"]
	backend.mu.Unlock()
	if !pinned {
		t.Fatal("pin did not reach the server")
	}

	if err := room.Unpin(context.Background(), "m1"); err != nil {
		t.Fatal(err)
	}
	backend.mu.Lock()
	pinned = backend.pinned["m1"]
	backend.mu.Unlock()
	if pinned {
		t.Fatal("unpin did not reach the server")
	}

	// Unpinning something not pinned surfaces the server's 404.
	if err := room.Unpin(context.Background(), "m1"); err == nil {
		t.Fatal("second unpin succeeded")
	}
}

func TestReactUpdatesLocalGroups(t *testing.T) {
	content := "nice"
	backend := &roomBackend{page: []models.Message{
		{ID: "m1", Content: &content, ChannelID: "c1", SenderID: "peer"},
	}}
	room := openTestRoom(t, backend)

	if err := room.React(context.Background(), "m1", "👍"); err != nil {
		t.Fatal(err)
	}

	got, _ := room.Cache.Get("m1")
	if len(got.Reactions) != 1 {
		t.Fatalf("reactions = %+v", got.Reactions)
	}
	group := got.Reactions[0]
	if group.Emoji != "👍" || group.Count != 1 || len(group.Users) != 1 || group.Users[0].UserID != "self" {
		t.Fatalf("group = %+v", group)
	}
}
