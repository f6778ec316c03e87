// Package achievement evaluates the static unlock rule set against progress
// snapshots and keeps the durable unlocked-achievement list.
package achievement

import (
	"log/slog"
	"time"

	"github.com/codequest-dev/codequest/internal/domain"
)

// Store persists the ordered unlocked-achievement list.
type Store interface {
	LoadUnlocked() []domain.UnlockedAchievement
	SaveUnlocked([]domain.UnlockedAchievement) bool
}

// StatsProvider supplies the snapshot rules are evaluated against.
type StatsProvider interface {
	AchievementStats() domain.AchievementStats
}

// System subscribes to progress events and unlocks achievements. A rule
// fires at most once ever; unlocking is idempotent.
type System struct {
	store      Store
	dispatcher *domain.EventDispatcher
	stats      StatsProvider
	rules      []domain.Achievement

	unlocked    []domain.UnlockedAchievement
	unlockedIDs map[string]bool

	now func() time.Time
}

// NewSystem creates an achievement system with the default rule set, loading
// previously unlocked achievements from the store.
func NewSystem(store Store, dispatcher *domain.EventDispatcher, stats StatsProvider) *System {
	s := &System{
		store:       store,
		dispatcher:  dispatcher,
		stats:       stats,
		rules:       DefaultRules(),
		unlocked:    store.LoadUnlocked(),
		unlockedIDs: make(map[string]bool),
		now:         time.Now,
	}
	for _, u := range s.unlocked {
		s.unlockedIDs[u.ID] = true
	}
	return s
}

// Bind subscribes the system to every progress-changing event. Handlers run
// synchronously inside the emitting call, so achievement state is always
// consistent with the progress the caller just observed.
func (s *System) Bind() {
	handler := func(domain.Event) { s.Evaluate() }
	s.dispatcher.Subscribe(domain.EventChallengeAttempted, handler)
	s.dispatcher.Subscribe(domain.EventChallengeCompleted, handler)
	s.dispatcher.Subscribe(domain.EventStreakUpdated, handler)
	s.dispatcher.Subscribe(domain.EventTimeRecorded, handler)
	s.dispatcher.Subscribe(domain.EventProgressUpdated, handler)
}

// Evaluate runs one evaluation pass: every not-yet-unlocked rule is tested
// against a single fixed snapshot. Newly unlocked achievements are returned
// in rule order. Unlocks during the pass cannot re-enter it.
func (s *System) Evaluate() []domain.UnlockedAchievement {
	snapshot := s.stats.AchievementStats()

	var fired []domain.UnlockedAchievement
	for _, rule := range s.rules {
		if s.unlockedIDs[rule.ID] || !rule.Condition(snapshot) {
			continue
		}
		fired = append(fired, s.unlock(rule))
	}
	return fired
}

func (s *System) unlock(rule domain.Achievement) domain.UnlockedAchievement {
	u := domain.UnlockedAchievement{
		ID:          rule.ID,
		Name:        rule.Name,
		Description: rule.Description,
		Icon:        rule.Icon,
		Points:      rule.Points,
		XP:          rule.XP,
		UnlockedAt:  s.now(),
	}
	s.unlocked = append(s.unlocked, u)
	s.unlockedIDs[rule.ID] = true
	s.store.SaveUnlocked(s.unlocked)

	slog.Info("achievement unlocked", "id", rule.ID, "name", rule.Name)
	s.dispatcher.Publish(domain.NewAchievementUnlockedEvent(u))
	s.dispatcher.Publish(domain.NewXPAwardedEvent(rule.XP, "achievement", rule.Name))
	return u
}

// IsUnlocked reports whether an achievement has been unlocked.
func (s *System) IsUnlocked(id string) bool {
	return s.unlockedIDs[id]
}

// Unlocked returns the unlock list, ordered by unlock time.
func (s *System) Unlocked() []domain.UnlockedAchievement {
	return s.unlocked
}

// Rules returns the static rule list.
func (s *System) Rules() []domain.Achievement {
	return s.rules
}

// TotalPoints sums points over unlocked achievements.
func (s *System) TotalPoints() int {
	total := 0
	for _, u := range s.unlocked {
		total += u.Points
	}
	return total
}

// TotalXP sums XP over unlocked achievements.
func (s *System) TotalXP() int {
	total := 0
	for _, u := range s.unlocked {
		total += u.XP
	}
	return total
}

// GetProgress returns unlock progress. Safe to call at any time.
func (s *System) GetProgress() domain.AchievementProgress {
	p := domain.AchievementProgress{
		UnlockedCount: len(s.unlocked),
		TotalCount:    len(s.rules),
		TotalPoints:   s.TotalPoints(),
		TotalXP:       s.TotalXP(),
	}
	if p.TotalCount > 0 {
		p.Percentage = float64(p.UnlockedCount) / float64(p.TotalCount) * 100
	}
	return p
}

// Reset discards every unlock.
func (s *System) Reset() {
	s.unlocked = []domain.UnlockedAchievement{}
	s.unlockedIDs = make(map[string]bool)
	s.store.SaveUnlocked(s.unlocked)
}
