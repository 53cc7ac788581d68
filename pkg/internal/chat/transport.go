package chat

import (
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const reconnectDelay = 3 * time.Second

// Handler receives decoded push events. Calls arrive on the transport's
// read goroutine; implementations own their locking.
type Handler interface {
	HandleNewMessage(event NewMessageEvent)
	HandleTyping(event TypingEvent)
	HandlePresence(event PresenceEvent)
}

// Transport maintains one live connection for one open channel view.
// On any close it schedules exactly one reconnect attempt after a
// fixed delay, forever; there is no backoff and no retry cap.
type Transport struct {
	endpoint  string
	channelID string
	handler   Handler

	dialer *websocket.Dialer
	delay  time.Duration

	mu        sync.Mutex
	conn      *websocket.Conn
	reconnect *time.Timer
	closed    bool
}

// WebsocketURL derives the chat endpoint from the HTTP base URL, with
// the bearer token as a query parameter.
func WebsocketURL(baseURL, token string) (string, error) {
	endpoint, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/channels/ws")
	if err != nil {
		return "", err
	}
	switch endpoint.Scheme {
	case "https":
		endpoint.Scheme = "wss"
	case "http":
		endpoint.Scheme = "ws"
	}

	query := endpoint.Query()
	query.Set("token", token)
	endpoint.RawQuery = query.Encode()
	return endpoint.String(), nil
}

func NewTransport(endpoint, channelID string, handler Handler) *Transport {
	return &Transport{
		endpoint:  endpoint,
		channelID: channelID,
		handler:   handler,
		dialer:    websocket.DefaultDialer,
		delay:     reconnectDelay,
	}
}

// Connect dials the endpoint and announces the channel join. Failures
// are logged and retried on the reconnect timer; there is no
// user-visible error state for transport failure.
func (t *Transport) Connect() {
	conn, _, err := t.dialer.Dial(t.endpoint, nil)
	if err != nil {
		log.Warn().Err(err).Str("channel", t.channelID).Msg("An error occurred when connecting to the chat gateway.")
		t.scheduleReconnect()
		return
	}

	// The join frame goes out before the connection is published:
	// SendTyping only writes through t.conn, so the join write never
	// shares the connection with another writer.
	if err := conn.WriteJSON(joinFrame{Type: frameJoinChannel, ChannelID: t.channelID}); err != nil {
		log.Warn().Err(err).Str("channel", t.channelID).Msg("An error occurred when announcing the channel join.")
	}

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		_ = conn.Close()
		return
	}
	t.conn = conn
	t.mu.Unlock()

	go t.readPump(conn)
}

func (t *Transport) readPump(conn *websocket.Conn) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			break
		}

		event, err := decodeServerEvent(raw)
		if err != nil {
			log.Debug().Err(err).Msg("Dropped an undecodable push frame.")
			continue
		}

		switch event := event.(type) {
		case NewMessageEvent:
			t.handler.HandleNewMessage(event)
		case TypingEvent:
			t.handler.HandleTyping(event)
		case PresenceEvent:
			t.handler.HandlePresence(event)
		case UnknownEvent:
			log.Debug().Str("type", event.Type).Msg("Ignored an unrecognized push event.")
		}
	}

	t.mu.Lock()
	if t.conn == conn {
		t.conn = nil
	}
	t.mu.Unlock()

	t.scheduleReconnect()
}

// scheduleReconnect arms a single-shot timer; re-arming replaces any
// pending attempt rather than stacking a second one.
func (t *Transport) scheduleReconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	if t.reconnect != nil {
		t.reconnect.Stop()
	}
	t.reconnect = time.AfterFunc(t.delay, t.Connect)
}

// SendTyping pushes the viewer's typing state. A nil connection is a
// silent no-op, matching the rest of the transport's failure policy.
func (t *Transport) SendTyping(isTyping bool) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return
	}

	kind := frameTyping
	if !isTyping {
		kind = frameStopTyping
	}
	if err := conn.WriteJSON(typingFrame{Type: kind, ChannelID: t.channelID, IsTyping: isTyping}); err != nil {
		log.Debug().Err(err).Msg("An error occurred when pushing the typing state.")
	}
}

// Close tears the connection down and cancels any pending reconnect.
// No leave_channel frame is sent; the server infers it from the close.
func (t *Transport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.reconnect != nil {
		t.reconnect.Stop()
		t.reconnect = nil
	}
	if t.conn != nil {
		_ = t.conn.Close()
		t.conn = nil
	}
}
