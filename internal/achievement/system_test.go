package achievement

import (
	"testing"
	"time"

	"github.com/codequest-dev/codequest/internal/domain"
)

type memStore struct {
	unlocked []domain.UnlockedAchievement
	saves    int
}

func (m *memStore) LoadUnlocked() []domain.UnlockedAchievement {
	return m.unlocked
}

func (m *memStore) SaveUnlocked(u []domain.UnlockedAchievement) bool {
	m.unlocked = u
	m.saves++
	return true
}

// statsStub returns a fixed snapshot.
type statsStub struct {
	stats domain.AchievementStats
}

func (s *statsStub) AchievementStats() domain.AchievementStats { return s.stats }

func newTestSystem(stats domain.AchievementStats) (*System, *memStore, *statsStub, *domain.EventDispatcher) {
	store := &memStore{}
	dispatcher := domain.NewEventDispatcher()
	stub := &statsStub{stats: stats}
	sys := NewSystem(store, dispatcher, stub)
	return sys, store, stub, dispatcher
}

func TestEvaluate_UnlocksMatchingRules(t *testing.T) {
	sys, store, _, _ := newTestSystem(domain.AchievementStats{
		CompletedChallenges: 1,
		FastestTimeMs:       5000,
	})

	fired := sys.Evaluate()

	// first_steps, quick_learner and speed_demon all match this snapshot
	if len(fired) != 3 {
		t.Fatalf("Evaluate() fired %d rules, want 3: %+v", len(fired), fired)
	}
	if fired[0].ID != "first_steps" {
		t.Errorf("fired[0] = %s, want first_steps (rule order)", fired[0].ID)
	}
	if !sys.IsUnlocked("quick_learner") || !sys.IsUnlocked("speed_demon") {
		t.Error("fast-completion rules not unlocked")
	}
	if store.saves != 3 {
		t.Errorf("SaveUnlocked called %d times, want 3", store.saves)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	sys, _, _, _ := newTestSystem(domain.AchievementStats{CompletedChallenges: 1})

	first := sys.Evaluate()
	if len(first) != 1 {
		t.Fatalf("first pass fired %d rules, want 1", len(first))
	}

	second := sys.Evaluate()
	if len(second) != 0 {
		t.Errorf("second pass fired %d rules, want 0", len(second))
	}
	if len(sys.Unlocked()) != 1 {
		t.Errorf("Unlocked() has %d entries, want 1", len(sys.Unlocked()))
	}
}

func TestEvaluate_NeverRevokes(t *testing.T) {
	sys, _, stub, _ := newTestSystem(domain.AchievementStats{StreakDays: 3})

	sys.Evaluate()
	if !sys.IsUnlocked("streak_starter") {
		t.Fatal("streak_starter not unlocked")
	}

	// streak broken afterwards: the unlock survives
	stub.stats = domain.AchievementStats{StreakDays: 0}
	sys.Evaluate()
	if !sys.IsUnlocked("streak_starter") {
		t.Error("unlock revoked after stats regressed")
	}
}

func TestEvaluate_PublishesEvents(t *testing.T) {
	sys, _, _, dispatcher := newTestSystem(domain.AchievementStats{CompletedChallenges: 1})

	var unlockedIDs []string
	var xpTotal int
	dispatcher.Subscribe(domain.EventAchievementUnlocked, func(e domain.Event) {
		ev := e.(domain.AchievementUnlockedEvent)
		unlockedIDs = append(unlockedIDs, ev.Achievement.ID)
	})
	dispatcher.Subscribe(domain.EventXPAwarded, func(e domain.Event) {
		ev := e.(domain.XPAwardedEvent)
		xpTotal += ev.Amount
	})

	sys.Evaluate()

	if len(unlockedIDs) != 1 || unlockedIDs[0] != "first_steps" {
		t.Errorf("achievement:unlocked events = %v, want [first_steps]", unlockedIDs)
	}
	if xpTotal != 50 {
		t.Errorf("xp:awarded total = %d, want 50", xpTotal)
	}
}

func TestBind_EvaluatesOnProgressEvents(t *testing.T) {
	sys, _, _, dispatcher := newTestSystem(domain.AchievementStats{CompletedChallenges: 1})
	sys.Bind()

	dispatcher.Publish(domain.NewProgressUpdatedEvent(domain.OverallStats{}))

	if !sys.IsUnlocked("first_steps") {
		t.Error("progress:updated did not trigger evaluation")
	}
}

func TestNewSystem_LoadsPersistedUnlocks(t *testing.T) {
	store := &memStore{unlocked: []domain.UnlockedAchievement{
		{ID: "first_steps", Name: "First Steps", XP: 50, UnlockedAt: time.Now()},
	}}
	sys := NewSystem(store, domain.NewEventDispatcher(), &statsStub{})

	if !sys.IsUnlocked("first_steps") {
		t.Error("persisted unlock not loaded")
	}

	// an already persisted rule never fires again
	sys2 := NewSystem(store, domain.NewEventDispatcher(), &statsStub{
		stats: domain.AchievementStats{CompletedChallenges: 1},
	})
	if fired := sys2.Evaluate(); len(fired) != 0 {
		t.Errorf("persisted rule re-fired: %+v", fired)
	}
}

func TestTotals(t *testing.T) {
	sys, _, _, _ := newTestSystem(domain.AchievementStats{
		CompletedChallenges: 1,
		TotalAttempts:       10,
	})

	sys.Evaluate() // first_steps (10 pts, 50 xp) and persistent (15 pts, 75 xp)

	if got := sys.TotalPoints(); got != 25 {
		t.Errorf("TotalPoints() = %d, want 25", got)
	}
	if got := sys.TotalXP(); got != 125 {
		t.Errorf("TotalXP() = %d, want 125", got)
	}

	p := sys.GetProgress()
	if p.UnlockedCount != 2 || p.TotalCount != len(DefaultRules()) {
		t.Errorf("GetProgress() = %+v", p)
	}
}

func TestReset(t *testing.T) {
	sys, store, _, _ := newTestSystem(domain.AchievementStats{CompletedChallenges: 1})
	sys.Evaluate()

	sys.Reset()

	if len(sys.Unlocked()) != 0 {
		t.Error("Reset() kept unlocks")
	}
	if sys.IsUnlocked("first_steps") {
		t.Error("Reset() kept unlock index")
	}
	if len(store.unlocked) != 0 {
		t.Error("Reset() did not persist the empty list")
	}

	// after a reset, rules may fire again
	if fired := sys.Evaluate(); len(fired) != 1 {
		t.Errorf("post-reset pass fired %d rules, want 1", len(fired))
	}
}
