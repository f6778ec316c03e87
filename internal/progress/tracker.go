// Package progress owns the durable progress record: per-challenge attempts,
// time accounting, completion state, streaks and the derived aggregate
// statistics. It is the only component that mutates AggregateProgress.
package progress

import (
	"time"

	"github.com/codequest-dev/codequest/internal/domain"
)

const dateLayout = "2006-01-02"

// Store persists the aggregate progress document. Loads never fail: corrupt
// or missing state comes back as the default empty structure.
type Store interface {
	LoadAggregate() *domain.AggregateProgress
	SaveAggregate(*domain.AggregateProgress) bool
}

// Tracker is the progress-tracking engine. All operations run synchronously
// on the calling goroutine; events are delivered before the mutating call
// returns. The tracker is not safe for concurrent use, matching the single
// submission pipeline it serves.
type Tracker struct {
	store      Store
	dispatcher *domain.EventDispatcher
	categoryOf func(string) domain.Category

	agg      *domain.AggregateProgress
	sessions map[string]time.Time

	now func() time.Time
}

// NewTracker creates a tracker, loading persisted progress immediately.
func NewTracker(store Store, dispatcher *domain.EventDispatcher) *Tracker {
	return &Tracker{
		store:      store,
		dispatcher: dispatcher,
		agg:        store.LoadAggregate(),
		sessions:   make(map[string]time.Time),
		now:        time.Now,
	}
}

// SetCategoryResolver wires the challenge catalog lookup used to attribute
// completions to a category. Without it completions count as uncategorized.
func (t *Tracker) SetCategoryResolver(fn func(id string) domain.Category) {
	t.categoryOf = fn
}

func (t *Tracker) category(id string) domain.Category {
	if t.categoryOf == nil {
		return ""
	}
	return t.categoryOf(id)
}

// StartChallenge marks the beginning of a working session on a challenge,
// initializing its progress record on first contact.
func (t *Tracker) StartChallenge(id string) {
	now := t.now()
	t.sessions[id] = now

	if _, ok := t.agg.Challenges[id]; !ok {
		t.agg.Challenges[id] = &domain.ChallengeProgress{
			Scores:         []float64{},
			FirstAttemptAt: now,
			LastAttemptAt:  now,
		}
	}
	t.agg.Challenges[id].LastAttemptAt = now
}

// Started reports whether a session is open for the challenge.
func (t *Tracker) Started(id string) bool {
	_, ok := t.sessions[id]
	return ok
}

// Completed reports whether the challenge has ever been completed.
// Completion is sticky: once set it is never unset.
func (t *Tracker) Completed(id string) bool {
	rec, ok := t.agg.Challenges[id]
	return ok && rec.Completed
}

// SubmitAttempt records a validated attempt. Calling it for a challenge that
// was never started is a precondition violation and returns
// domain.ErrChallengeNotStarted.
//
// Events are emitted synchronously in a fixed order: challenge:attempted,
// then on first completion challenge:completed followed by streak:updated,
// then time:recorded and progress:updated. Every listener runs to completion
// before this method returns.
func (t *Tracker) SubmitAttempt(id string, result domain.ValidationResult) (domain.AttemptOutcome, error) {
	start, ok := t.sessions[id]
	if !ok {
		return domain.AttemptOutcome{}, domain.ErrChallengeNotStarted
	}
	rec, ok := t.agg.Challenges[id]
	if !ok {
		return domain.AttemptOutcome{}, domain.ErrChallengeNotStarted
	}

	now := t.now()
	timeSpent := now.Sub(start).Milliseconds()

	rec.Attempts++
	rec.TimeSpentMs += timeSpent
	rec.Scores = append(rec.Scores, result.Score)
	rec.LastAttemptAt = now
	t.agg.TotalAttempts++
	t.agg.TotalTimeMs += timeSpent

	t.dispatcher.Publish(domain.NewChallengeAttemptedEvent(id, rec.Attempts, timeSpent))

	if result.Valid && !rec.Completed {
		rec.Completed = true
		rec.CompletionTimeMs = timeSpent
		best := timeSpent
		rec.BestTimeMs = &best
		if !containsID(t.agg.CompletedChallengeIDs, id) {
			t.agg.CompletedChallengeIDs = append(t.agg.CompletedChallengeIDs, id)
		}
		t.dispatcher.Publish(domain.NewChallengeCompletedEvent(id, timeSpent, rec.Attempts, t.category(id)))
		t.updateStreak()
	} else if result.Valid && rec.BestTimeMs != nil && timeSpent < *rec.BestTimeMs {
		*rec.BestTimeMs = timeSpent
	}

	t.recomputeStatistics()
	t.store.SaveAggregate(t.agg)

	t.dispatcher.Publish(domain.NewTimeRecordedEvent(t.agg.TotalTimeMs, t.FastestCompletion()))
	t.dispatcher.Publish(domain.NewProgressUpdatedEvent(t.OverallStats()))

	// next attempt measures from here
	t.sessions[id] = now

	return domain.AttemptOutcome{
		TimeSpentMs:   timeSpent,
		TotalAttempts: rec.Attempts,
		BestTimeMs:    rec.BestTimeMs,
		AverageScore:  rec.AverageScore(),
	}, nil
}

// updateStreak advances the daily streak. Calendar days, not timestamps:
// activity on consecutive days extends the streak, a gap of more than one
// day resets it to 1. A streak:updated event fires only on actual change.
func (t *Tracker) updateStreak() {
	today := t.now().Format(dateLayout)
	if t.agg.LastActiveDate == today {
		return
	}

	old := t.agg.StreakDays
	yesterday := t.now().AddDate(0, 0, -1).Format(dateLayout)
	if t.agg.LastActiveDate == yesterday {
		t.agg.StreakDays++
	} else {
		t.agg.StreakDays = 1
	}
	t.agg.LastActiveDate = today

	if old != t.agg.StreakDays {
		t.dispatcher.Publish(domain.NewStreakUpdatedEvent(t.agg.StreakDays, old))
	}
}

// recomputeStatistics refreshes the cached derived statistics from the
// per-challenge records. Success rate counts completed over touched
// challenges; average time covers completed challenges only; average
// attempts covers all.
func (t *Tracker) recomputeStatistics() {
	total := len(t.agg.Challenges)
	if total == 0 {
		t.agg.Statistics = domain.Statistics{}
		return
	}

	completed := 0
	var completionTime int64
	attempts := 0
	for _, rec := range t.agg.Challenges {
		attempts += rec.Attempts
		if rec.Completed {
			completed++
			completionTime += rec.CompletionTimeMs
		}
	}

	stats := domain.Statistics{
		SuccessRatePercent: float64(completed) / float64(total) * 100,
		AverageAttempts:    float64(attempts) / float64(total),
	}
	if completed > 0 {
		stats.AverageTimeMs = float64(completionTime) / float64(completed)
	}
	t.agg.Statistics = stats
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
