package chat

import (
	"strconv"
	"testing"
	"time"

	"github.com/campus-connect/campusctl/pkg/internal/models"
)

func newTestMessage(id, content string, at time.Time) models.Message {
	return models.Message{
		ID:          id,
		Content:     &content,
		MessageType: models.MessageTypeText,
		ChannelID:   "channel-1",
		SenderID:    "user-1",
		CreatedAt:   at,
	}
}

func assertOrder(t *testing.T, cache *Cache, want []string) {
	t.Helper()
	snapshot := cache.Snapshot()
	if len(snapshot) != len(want) {
		t.Fatalf("got %d messages, want %d", len(snapshot), len(want))
	}
	for i, id := range want {
		if snapshot[i].ID != id {
			t.Fatalf("position %d: got %s, want %s", i, snapshot[i].ID, id)
		}
	}
}

func TestResetReversesNewestFirstPage(t *testing.T) {
	now := time.Now()
	cache := NewCache()
	// The server page arrives newest first.
	cache.ResetFromNewestFirst([]models.Message{
		newTestMessage("m3", "third", now),
		newTestMessage("m2", "second", now.Add(-time.Minute)),
		newTestMessage("m1", "first", now.Add(-2*time.Minute)),
	})

	assertOrder(t, cache, []string{"m1", "m2", "m3"})
}

func TestResetDoesNotAliasCallerSlice(t *testing.T) {
	now := time.Now()
	page := []models.Message{
		newTestMessage("m2", "second", now),
		newTestMessage("m1", "first", now.Add(-time.Minute)),
	}
	cache := NewCache()
	cache.ResetFromNewestFirst(page)

	if page[0].ID != "m2" {
		t.Fatalf("caller slice mutated: got %s at 0", page[0].ID)
	}
	assertOrder(t, cache, []string{"m1", "m2"})
}

func TestAppendKeepsArrivalOrder(t *testing.T) {
	now := time.Now()
	cache := NewCache()
	cache.Append(newTestMessage("m1", "first", now))
	cache.Append(newTestMessage("m2", "second", now.Add(time.Second)))
	cache.Append(newTestMessage("m3", "third", now.Add(2*time.Second)))

	assertOrder(t, cache, []string{"m1", "m2", "m3"})
}

func TestAppendDropsDuplicateID(t *testing.T) {
	now := time.Now()
	cache := NewCache()
	if !cache.Append(newTestMessage("m1", "hello", now)) {
		t.Fatal("first append rejected")
	}
	// The socket echo of the sender's own message carries the same id.
	if cache.Append(newTestMessage("m1", "hello", now)) {
		t.Fatal("duplicate append accepted")
	}
	if cache.Len() != 1 {
		t.Fatalf("got %d messages, want 1", cache.Len())
	}
}

func TestReplaceKeepsPosition(t *testing.T) {
	now := time.Now()
	cache := NewCache()
	cache.Append(newTestMessage("m1", "first", now))
	cache.Append(newTestMessage("m2", "second", now.Add(time.Second)))
	cache.Append(newTestMessage("m3", "third", now.Add(2*time.Second)))

	edited := newTestMessage("m2", "second, edited", now.Add(time.Second))
	edited.IsEdited = true
	if !cache.Replace(edited) {
		t.Fatal("replace did not find m2")
	}

	assertOrder(t, cache, []string{"m1", "m2", "m3"})
	got, _ := cache.Get("m2")
	if !got.IsEdited || got.Text() != "second, edited" {
		t.Fatalf("m2 not updated in place: %+v", got)
	}
}

func TestReplaceUnknownIDIsNoop(t *testing.T) {
	cache := NewCache()
	cache.Append(newTestMessage("m1", "first", time.Now()))

	if cache.Replace(newTestMessage("ghost", "boo", time.Now())) {
		t.Fatal("replace reported success for unknown id")
	}
	assertOrder(t, cache, []string{"m1"})
}

func TestRemoveShrinksByExactlyOne(t *testing.T) {
	now := time.Now()
	cache := NewCache()
	cache.Append(newTestMessage("m1", "first", now))
	cache.Append(newTestMessage("m2", "second", now.Add(time.Second)))
	cache.Append(newTestMessage("m3", "third", now.Add(2*time.Second)))

	if !cache.Remove("m2") {
		t.Fatal("remove did not find m2")
	}
	assertOrder(t, cache, []string{"m1", "m3"})

	if cache.Remove("m2") {
		t.Fatal("second remove reported success")
	}
	assertOrder(t, cache, []string{"m1", "m3"})
}

func TestMutateDoesNotWriteThroughEarlierSnapshots(t *testing.T) {
	cache := NewCache()
	message := newTestMessage("m1", "nice", time.Now())
	ApplyReaction(&message, "👍", models.User{ID: "alice", Role: models.RoleStudent})
	cache.Append(message)

	before := cache.Snapshot()

	cache.Mutate("m1", func(m *models.Message) {
		ApplyReaction(m, "👍", models.User{ID: "bob", Role: models.RoleProfessor})
		ApplyReaction(m, "🎉", models.User{ID: "bob", Role: models.RoleProfessor})
	})

	// The earlier snapshot still sees the pre-mutation groups.
	group := before[0].Reactions[0]
	if len(before[0].Reactions) != 1 || group.Count != 1 || len(group.Users) != 1 {
		t.Fatalf("earlier snapshot observed the mutation: %+v", before[0].Reactions)
	}

	after, _ := cache.Get("m1")
	if len(after.Reactions) != 2 || after.Reactions[0].Count != 2 {
		t.Fatalf("mutation not applied: %+v", after.Reactions)
	}
}

func TestSnapshotReadersRaceFreeWithMutate(t *testing.T) {
	cache := NewCache()
	message := newTestMessage("m1", "nice", time.Now())
	ApplyReaction(&message, "👍", models.User{ID: "u0", Role: models.RoleStudent})
	cache.Append(message)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			cache.Mutate("m1", func(m *models.Message) {
				ApplyReaction(m, "👍", models.User{ID: "u" + strconv.Itoa(i+1), Role: models.RoleStudent})
			})
		}
	}()

	// Walk reaction groups from unlocked snapshots while the writer
	// runs, the way the view renders.
	for i := 0; i < 500; i++ {
		snapshot := cache.Snapshot()
		for _, m := range snapshot {
			for _, group := range m.Reactions {
				if group.Count != len(group.Users) {
					t.Fatalf("group %s: count %d != %d users", group.Emoji, group.Count, len(group.Users))
				}
			}
		}
	}
	<-done
}

func TestMutateAppliesUnderLock(t *testing.T) {
	cache := NewCache()
	cache.Append(newTestMessage("m1", "first", time.Now()))

	ok := cache.Mutate("m1", func(m *models.Message) {
		ApplyReaction(m, "👍", models.User{ID: "viewer", Role: models.RoleStudent})
	})
	if !ok {
		t.Fatal("mutate did not find m1")
	}

	got, _ := cache.Get("m1")
	if len(got.Reactions) != 1 || got.Reactions[0].Count != 1 {
		t.Fatalf("reaction not recorded: %+v", got.Reactions)
	}
}
