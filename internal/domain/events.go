package domain

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// -----------------------------------------------------------------------------
// Event Interface and Base Event
// -----------------------------------------------------------------------------

// Event type names as surfaced to the UI layer
const (
	EventChallengeAttempted  = "challenge:attempted"
	EventChallengeCompleted  = "challenge:completed"
	EventStreakUpdated       = "streak:updated"
	EventTimeRecorded        = "time:recorded"
	EventProgressUpdated     = "progress:updated"
	EventAchievementUnlocked = "achievement:unlocked"
	EventXPAwarded           = "xp:awarded"
)

// Event represents a domain event
type Event interface {
	// EventID returns the unique identifier for this event
	EventID() uuid.UUID
	// EventType returns the type name of this event
	EventType() string
	// OccurredAt returns when this event occurred
	OccurredAt() time.Time
}

// BaseEvent provides common event fields
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBaseEvent creates a new BaseEvent
func NewBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Timestamp: time.Now(),
	}
}

func (e BaseEvent) EventID() uuid.UUID    { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// -----------------------------------------------------------------------------
// Event Handler and Dispatcher
// -----------------------------------------------------------------------------

// EventHandler processes domain events
type EventHandler func(event Event)

// EventDispatcher is the in-process publish/subscribe channel connecting the
// progress tracker, the achievement system and the UI layer. Delivery is
// synchronous: every handler runs to completion before Publish returns, so
// listeners always observe state consistent with the operation that emitted
// the event.
type EventDispatcher struct {
	mu          sync.RWMutex
	handlers    map[string][]EventHandler
	allHandlers []EventHandler // handlers for all events
}

// NewEventDispatcher creates a new event dispatcher
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		handlers: make(map[string][]EventHandler),
	}
}

// Subscribe registers a handler for a specific event type
func (d *EventDispatcher) Subscribe(eventType string, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

// SubscribeAll registers a handler for all event types
func (d *EventDispatcher) SubscribeAll(handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.allHandlers = append(d.allHandlers, handler)
}

// Publish dispatches an event to all registered handlers
func (d *EventDispatcher) Publish(event Event) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if handlers, ok := d.handlers[event.EventType()]; ok {
		for _, h := range handlers {
			h(event)
		}
	}

	for _, h := range d.allHandlers {
		h(event)
	}
}

// -----------------------------------------------------------------------------
// Progress Events
// -----------------------------------------------------------------------------

// ChallengeAttemptedEvent is published after every recorded attempt
type ChallengeAttemptedEvent struct {
	BaseEvent
	ChallengeID string `json:"challenge_id"`
	Attempts    int    `json:"attempts"`
	TimeSpentMs int64  `json:"time_spent_ms"`
}

// NewChallengeAttemptedEvent creates a new challenge attempted event
func NewChallengeAttemptedEvent(challengeID string, attempts int, timeSpentMs int64) ChallengeAttemptedEvent {
	return ChallengeAttemptedEvent{
		BaseEvent:   NewBaseEvent(EventChallengeAttempted),
		ChallengeID: challengeID,
		Attempts:    attempts,
		TimeSpentMs: timeSpentMs,
	}
}

// ChallengeCompletedEvent is published on the first valid attempt for a
// challenge, never again afterwards
type ChallengeCompletedEvent struct {
	BaseEvent
	ChallengeID string   `json:"challenge_id"`
	TimeSpentMs int64    `json:"time_spent_ms"`
	Attempts    int      `json:"attempts"`
	Category    Category `json:"category"`
}

// NewChallengeCompletedEvent creates a new challenge completed event
func NewChallengeCompletedEvent(challengeID string, timeSpentMs int64, attempts int, category Category) ChallengeCompletedEvent {
	return ChallengeCompletedEvent{
		BaseEvent:   NewBaseEvent(EventChallengeCompleted),
		ChallengeID: challengeID,
		TimeSpentMs: timeSpentMs,
		Attempts:    attempts,
		Category:    category,
	}
}

// StreakUpdatedEvent is published only when the streak value actually changes
type StreakUpdatedEvent struct {
	BaseEvent
	StreakDays int `json:"streak_days"`
	OldStreak  int `json:"old_streak"`
}

// NewStreakUpdatedEvent creates a new streak updated event
func NewStreakUpdatedEvent(streakDays, oldStreak int) StreakUpdatedEvent {
	return StreakUpdatedEvent{
		BaseEvent:  NewBaseEvent(EventStreakUpdated),
		StreakDays: streakDays,
		OldStreak:  oldStreak,
	}
}

// TimeRecordedEvent is published after every submission with running totals
type TimeRecordedEvent struct {
	BaseEvent
	TotalTimeMs   int64 `json:"total_time_ms"`
	FastestTimeMs int64 `json:"fastest_time_ms"`
}

// NewTimeRecordedEvent creates a new time recorded event
func NewTimeRecordedEvent(totalTimeMs, fastestTimeMs int64) TimeRecordedEvent {
	return TimeRecordedEvent{
		BaseEvent:     NewBaseEvent(EventTimeRecorded),
		TotalTimeMs:   totalTimeMs,
		FastestTimeMs: fastestTimeMs,
	}
}

// ProgressUpdatedEvent carries the fresh aggregate snapshot after persistence
type ProgressUpdatedEvent struct {
	BaseEvent
	Stats OverallStats `json:"stats"`
}

// NewProgressUpdatedEvent creates a new progress updated event
func NewProgressUpdatedEvent(stats OverallStats) ProgressUpdatedEvent {
	return ProgressUpdatedEvent{
		BaseEvent: NewBaseEvent(EventProgressUpdated),
		Stats:     stats,
	}
}

// -----------------------------------------------------------------------------
// Achievement Events
// -----------------------------------------------------------------------------

// AchievementUnlockedEvent is published at most once per achievement
type AchievementUnlockedEvent struct {
	BaseEvent
	Achievement UnlockedAchievement `json:"achievement"`
}

// NewAchievementUnlockedEvent creates a new achievement unlocked event
func NewAchievementUnlockedEvent(a UnlockedAchievement) AchievementUnlockedEvent {
	return AchievementUnlockedEvent{
		BaseEvent:   NewBaseEvent(EventAchievementUnlocked),
		Achievement: a,
	}
}

// XPAwardedEvent signals an XP grant to the user-profile component
type XPAwardedEvent struct {
	BaseEvent
	Amount int    `json:"amount"`
	Source string `json:"source"`
	Name   string `json:"name"`
}

// NewXPAwardedEvent creates a new XP awarded event
func NewXPAwardedEvent(amount int, source, name string) XPAwardedEvent {
	return XPAwardedEvent{
		BaseEvent: NewBaseEvent(EventXPAwarded),
		Amount:    amount,
		Source:    source,
		Name:      name,
	}
}
