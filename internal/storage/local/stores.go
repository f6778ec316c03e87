package local

import "github.com/codequest-dev/codequest/internal/domain"

// Persisted state layout: one namespaced record per logical document.
const (
	keyProgress     = "userProgress"
	keyAchievements = "achievements"
)

// ProgressStore persists the aggregate progress document in the key/value
// store under a single key.
type ProgressStore struct {
	kv *Store
}

// NewProgressStore creates a progress store over a key/value store.
func NewProgressStore(kv *Store) *ProgressStore {
	return &ProgressStore{kv: kv}
}

// LoadAggregate reads the persisted aggregate. A missing or corrupt document
// resets to the default empty structure rather than failing: progress loss is
// preferred over crash.
func (s *ProgressStore) LoadAggregate() *domain.AggregateProgress {
	agg := domain.NewAggregateProgress()
	if s.kv.Get(keyProgress, agg) {
		if agg.Challenges == nil {
			agg.Challenges = make(map[string]*domain.ChallengeProgress)
		}
		if agg.CompletedChallengeIDs == nil {
			agg.CompletedChallengeIDs = []string{}
		}
		return agg
	}
	return domain.NewAggregateProgress()
}

// SaveAggregate persists the aggregate progress document.
func (s *ProgressStore) SaveAggregate(agg *domain.AggregateProgress) bool {
	return s.kv.Set(keyProgress, agg)
}

// AchievementStore persists the ordered unlocked-achievement list.
type AchievementStore struct {
	kv *Store
}

// NewAchievementStore creates an achievement store over a key/value store.
func NewAchievementStore(kv *Store) *AchievementStore {
	return &AchievementStore{kv: kv}
}

// LoadUnlocked reads the unlock list, empty when absent or corrupt.
func (s *AchievementStore) LoadUnlocked() []domain.UnlockedAchievement {
	var unlocked []domain.UnlockedAchievement
	if !s.kv.Get(keyAchievements, &unlocked) || unlocked == nil {
		return []domain.UnlockedAchievement{}
	}
	return unlocked
}

// SaveUnlocked persists the unlock list.
func (s *AchievementStore) SaveUnlocked(unlocked []domain.UnlockedAchievement) bool {
	return s.kv.Set(keyAchievements, unlocked)
}
