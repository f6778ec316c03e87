package domain

import (
	"testing"
)

func TestEventDispatcher_Subscribe(t *testing.T) {
	d := NewEventDispatcher()

	var received []string
	d.Subscribe(EventChallengeAttempted, func(e Event) {
		received = append(received, e.EventType())
	})

	d.Publish(NewChallengeAttemptedEvent("html-basics", 1, 1000))
	d.Publish(NewChallengeCompletedEvent("html-basics", 1000, 1, CategoryMarkup))

	if len(received) != 1 {
		t.Fatalf("received %d events, want 1", len(received))
	}
	if received[0] != EventChallengeAttempted {
		t.Errorf("received %q, want %q", received[0], EventChallengeAttempted)
	}
}

func TestEventDispatcher_SubscribeAll(t *testing.T) {
	d := NewEventDispatcher()

	count := 0
	d.SubscribeAll(func(Event) { count++ })

	d.Publish(NewChallengeAttemptedEvent("a", 1, 0))
	d.Publish(NewStreakUpdatedEvent(2, 1))
	d.Publish(NewTimeRecordedEvent(500, 500))

	if count != 3 {
		t.Errorf("wildcard handler ran %d times, want 3", count)
	}
}

func TestEventDispatcher_SynchronousDelivery(t *testing.T) {
	d := NewEventDispatcher()

	delivered := false
	d.Subscribe(EventProgressUpdated, func(Event) { delivered = true })

	d.Publish(NewProgressUpdatedEvent(OverallStats{}))
	if !delivered {
		t.Error("handler did not run before Publish returned")
	}
}

func TestEventDispatcher_OrderPreserved(t *testing.T) {
	d := NewEventDispatcher()

	var order []string
	d.SubscribeAll(func(e Event) { order = append(order, e.EventType()) })

	d.Publish(NewChallengeAttemptedEvent("a", 1, 0))
	d.Publish(NewChallengeCompletedEvent("a", 0, 1, CategoryScript))
	d.Publish(NewStreakUpdatedEvent(1, 0))

	want := []string{EventChallengeAttempted, EventChallengeCompleted, EventStreakUpdated}
	if len(order) != len(want) {
		t.Fatalf("got %d events, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, order[i], want[i])
		}
	}
}

func TestEventMetadata(t *testing.T) {
	e := NewChallengeCompletedEvent("css-colors", 4200, 3, CategoryStylesheet)

	if e.EventType() != EventChallengeCompleted {
		t.Errorf("EventType() = %q, want %q", e.EventType(), EventChallengeCompleted)
	}
	if e.EventID().String() == "" {
		t.Error("EventID() is empty")
	}
	if e.OccurredAt().IsZero() {
		t.Error("OccurredAt() is zero")
	}
	if e.ChallengeID != "css-colors" {
		t.Errorf("ChallengeID = %q, want %q", e.ChallengeID, "css-colors")
	}
	if e.Category != CategoryStylesheet {
		t.Errorf("Category = %q, want %q", e.Category, CategoryStylesheet)
	}
}
