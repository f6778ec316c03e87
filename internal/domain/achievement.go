package domain

import "time"

// AchievementStats is the derived snapshot achievement predicates evaluate
// against. It is built once per evaluation pass from the progress aggregate.
type AchievementStats struct {
	CompletedChallenges  int
	TotalAttempts        int
	TotalTimeMs          int64
	FastestTimeMs        int64 // 0 when nothing completed yet
	StreakDays           int
	MarkupCompleted      int
	StylesheetCompleted  int
	ScriptCompleted      int
	FirstTryCompletions  int
}

// AchievementCondition is a pure predicate over an AchievementStats snapshot.
// Conditions must not mutate state.
type AchievementCondition func(AchievementStats) bool

// Achievement is an immutable unlock rule from the static rule list
type Achievement struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Points      int
	XP          int
	Condition   AchievementCondition
}

// UnlockedAchievement is a persisted achievement unlock. Once written it is
// never re-evaluated or revoked.
type UnlockedAchievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Points      int       `json:"points"`
	XP          int       `json:"xp"`
	UnlockedAt  time.Time `json:"unlocked_at"`
}

// AchievementProgress summarizes unlock progress
type AchievementProgress struct {
	UnlockedCount int     `json:"unlocked_count"`
	TotalCount    int     `json:"total_count"`
	Percentage    float64 `json:"percentage"`
	TotalPoints   int     `json:"total_points"`
	TotalXP       int     `json:"total_xp"`
}
