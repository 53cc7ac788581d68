package chat

import (
	"sync"
	"testing"
	"time"
)

type signalRecorder struct {
	mu    sync.Mutex
	sends []bool
}

func (r *signalRecorder) send(isTyping bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sends = append(r.sends, isTyping)
}

func (r *signalRecorder) snapshot() []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]bool{}, r.sends...)
}

func TestSignalerSendsOncePerBurst(t *testing.T) {
	recorder := &signalRecorder{}
	signaler := NewSignaler(recorder.send)
	signaler.idle = 50 * time.Millisecond

	// Keystrokes within the idle window share one typing frame.
	signaler.Keystroke("h")
	time.Sleep(10 * time.Millisecond)
	signaler.Keystroke("he")
	time.Sleep(10 * time.Millisecond)
	signaler.Keystroke("hel")

	if got := recorder.snapshot(); len(got) != 1 || !got[0] {
		t.Fatalf("mid-burst sends = %v, want [true]", got)
	}

	// After the idle window passes, exactly one stop frame follows.
	time.Sleep(150 * time.Millisecond)
	if got := recorder.snapshot(); len(got) != 2 || got[1] {
		t.Fatalf("post-idle sends = %v, want [true false]", got)
	}
}

func TestSignalerRearmsAfterStop(t *testing.T) {
	recorder := &signalRecorder{}
	signaler := NewSignaler(recorder.send)
	signaler.idle = 30 * time.Millisecond

	signaler.Keystroke("first")
	time.Sleep(100 * time.Millisecond)
	signaler.Keystroke("second")
	time.Sleep(100 * time.Millisecond)

	want := []bool{true, false, true, false}
	got := recorder.snapshot()
	if len(got) != len(want) {
		t.Fatalf("sends = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sends = %v, want %v", got, want)
		}
	}
}

func TestSignalerIgnoresWhitespaceOnlyContent(t *testing.T) {
	recorder := &signalRecorder{}
	signaler := NewSignaler(recorder.send)
	signaler.idle = 20 * time.Millisecond

	signaler.Keystroke("   ")
	signaler.Keystroke("\n")
	time.Sleep(60 * time.Millisecond)

	// The idle timer still fires, but no typing frame ever went out.
	for _, send := range recorder.snapshot() {
		if send {
			t.Fatal("typing frame sent for whitespace-only draft")
		}
	}
}

func TestSignalerStopWithdrawsTypingState(t *testing.T) {
	recorder := &signalRecorder{}
	signaler := NewSignaler(recorder.send)

	signaler.Keystroke("draft")
	signaler.Stop()

	got := recorder.snapshot()
	if len(got) != 2 || !got[0] || got[1] {
		t.Fatalf("sends = %v, want [true false]", got)
	}

	// A second stop with the flag already down sends nothing.
	signaler.Stop()
	if len(recorder.snapshot()) != 2 {
		t.Fatal("redundant stop emitted a frame")
	}
}

func TestTypingTrackerSkipsSelf(t *testing.T) {
	tracker := NewTypingTracker("me")
	tracker.Apply(TypingEvent{UserID: "me", IsTyping: true})
	tracker.Apply(TypingEvent{UserID: "peer", IsTyping: true})

	got := tracker.Users()
	if len(got) != 1 || got[0] != "peer" {
		t.Fatalf("users = %v, want [peer]", got)
	}
}

func TestTypingTrackerStopRemoves(t *testing.T) {
	tracker := NewTypingTracker("me")
	tracker.Apply(TypingEvent{UserID: "peer", IsTyping: true})
	tracker.Apply(TypingEvent{UserID: "peer", IsTyping: false})

	if got := tracker.Users(); len(got) != 0 {
		t.Fatalf("users = %v, want empty", got)
	}
}

func TestTypingTrackerSweepsStaleEntries(t *testing.T) {
	tracker := NewTypingTracker("me")
	tracker.Apply(TypingEvent{UserID: "fresh", IsTyping: true})

	tracker.mu.Lock()
	tracker.users["stale"] = time.Now().Add(-time.Minute)
	tracker.mu.Unlock()

	got := tracker.Users()
	if len(got) != 1 || got[0] != "fresh" {
		t.Fatalf("users = %v, want [fresh]", got)
	}
}
