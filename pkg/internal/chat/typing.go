package chat

import (
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	typingIdle     = time.Second
	typingStaleAge = 5 * time.Second
)

// TypingTracker is the set of user ids currently believed to be typing
// in the open channel. The viewer's own id never enters the set.
type TypingTracker struct {
	mu     sync.Mutex
	selfID string
	users  map[string]time.Time
}

func NewTypingTracker(selfID string) *TypingTracker {
	return &TypingTracker{
		selfID: selfID,
		users:  make(map[string]time.Time),
	}
}

func (t *TypingTracker) Apply(event TypingEvent) {
	if event.UserID == t.selfID {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if event.IsTyping {
		t.users[event.UserID] = time.Now()
	} else {
		delete(t.users, event.UserID)
	}
}

// Users returns the current set, dropping entries whose typing event is
// older than the server's own 5 second staleness horizon.
func (t *TypingTracker) Users() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	horizon := time.Now().Add(-typingStaleAge)
	ids := make([]string, 0, len(t.users))
	for id, seen := range t.users {
		if seen.Before(horizon) {
			delete(t.users, id)
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Signaler drives the outbound typing indicator: the first keystroke
// with content sends a typing frame, and a single-shot idle timer sends
// the stop frame one second after the last keystroke. Re-arming is
// cancel-then-schedule; timers never stack.
type Signaler struct {
	mu     sync.Mutex
	typing bool
	timer  *time.Timer
	idle   time.Duration
	send   func(isTyping bool)
}

func NewSignaler(send func(isTyping bool)) *Signaler {
	return &Signaler{idle: typingIdle, send: send}
}

func (s *Signaler) Keystroke(content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.typing && strings.TrimSpace(content) != "" {
		s.typing = true
		s.send(true)
	}

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.idle, s.expire)
}

func (s *Signaler) expire() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.typing = false
	s.timer = nil
	s.send(false)
}

// Stop cancels the pending timer and, when the typing flag is up,
// emits the stop frame immediately. Used on teardown.
func (s *Signaler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.typing {
		s.typing = false
		s.send(false)
	}
}
