package chat

import (
	"sync"

	"github.com/samber/lo"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

// Cache is the ordered, client-held view of one channel's messages,
// chronologically ascending. Three independent write paths feed it:
// the initial page fetch, local REST acknowledgments, and remote push
// events. Every mutation takes the lock and applies a whole
// read-compute-swap step, so interleaved completions cannot tear the
// list.
type Cache struct {
	mu       sync.RWMutex
	messages []models.Message
}

func NewCache() *Cache {
	return &Cache{}
}

// ResetFromNewestFirst installs the initial page. The server returns
// newest first; the cache stores oldest first.
func (c *Cache) ResetFromNewestFirst(page []models.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = lo.Reverse(append([]models.Message{}, page...))
}

// Append adds a message at the end. Appends are id-guarded: when the
// backend echoes the sender's own message over the socket after the
// REST response already delivered it, the second copy is dropped.
func (c *Cache) Append(message models.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.messages {
		if existing.ID == message.ID {
			return false
		}
	}
	c.messages = append(c.messages, message)
	return true
}

// Replace swaps the entry with the same id in place, keeping its
// position.
func (c *Cache) Replace(message models.Message) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.messages {
		if existing.ID == message.ID {
			c.messages[i] = message
			return true
		}
	}
	return false
}

func (c *Cache) Remove(messageID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := len(c.messages)
	c.messages = lo.Filter(c.messages, func(m models.Message, _ int) bool {
		return m.ID != messageID
	})
	return len(c.messages) != before
}

// Mutate applies fn to the message with the given id under the cache
// lock. Used for reaction updates that modify a message in place.
func (c *Cache) Mutate(messageID string, fn func(*models.Message)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.messages {
		if c.messages[i].ID == messageID {
			fn(&c.messages[i])
			return true
		}
	}
	return false
}

func (c *Cache) Get(messageID string) (models.Message, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, message := range c.messages {
		if message.ID == messageID {
			return message, true
		}
	}
	return models.Message{}, false
}

func (c *Cache) Snapshot() []models.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.Message{}, c.messages...)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
