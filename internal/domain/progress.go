package domain

import "time"

// ProgressVersion is the informal schema version written with persisted and
// exported progress, kept for future migration.
const ProgressVersion = "1.0"

// ChallengeProgress is the durable per-challenge progress record
type ChallengeProgress struct {
	Attempts         int       `json:"attempts"`
	TimeSpentMs      int64     `json:"time_spent_ms"`
	BestTimeMs       *int64    `json:"best_time_ms"` // nil until first success
	Completed        bool      `json:"completed"`
	CompletionTimeMs int64     `json:"completion_time_ms,omitempty"`
	Scores           []float64 `json:"scores"`
	FirstAttemptAt   time.Time `json:"first_attempt_at"`
	LastAttemptAt    time.Time `json:"last_attempt_at"`
}

// AverageScore returns the mean of all recorded attempt scores.
func (c *ChallengeProgress) AverageScore() float64 {
	if len(c.Scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range c.Scores {
		sum += s
	}
	return sum / float64(len(c.Scores))
}

// Statistics are derived aggregate values, recomputed after every submission.
// They are cached for convenience but must always re-derive from the
// per-challenge records.
type Statistics struct {
	AverageTimeMs      float64 `json:"average_time_ms"`
	AverageAttempts    float64 `json:"average_attempts"`
	SuccessRatePercent float64 `json:"success_rate_percent"`
}

// AggregateProgress is the singleton durable progress document
type AggregateProgress struct {
	Version               string                        `json:"version"`
	Challenges            map[string]*ChallengeProgress `json:"challenges"`
	TotalTimeMs           int64                         `json:"total_time_ms"`
	TotalAttempts         int                           `json:"total_attempts"`
	CompletedChallengeIDs []string                      `json:"completed_challenge_ids"`
	StreakDays            int                           `json:"streak_days"`
	LastActiveDate        string                        `json:"last_active_date,omitempty"` // calendar date YYYY-MM-DD
	Statistics            Statistics                    `json:"statistics"`
}

// NewAggregateProgress returns the documented default empty structure.
func NewAggregateProgress() *AggregateProgress {
	return &AggregateProgress{
		Version:               ProgressVersion,
		Challenges:            make(map[string]*ChallengeProgress),
		CompletedChallengeIDs: []string{},
	}
}

// AttemptOutcome summarizes one submitAttempt call for the caller
type AttemptOutcome struct {
	TimeSpentMs   int64   `json:"time_spent_ms"`
	TotalAttempts int     `json:"total_attempts"`
	BestTimeMs    *int64  `json:"best_time_ms"`
	AverageScore  float64 `json:"average_score"`
}

// OverallStats is the aggregate snapshot surfaced to the UI layer
type OverallStats struct {
	TotalChallenges      int     `json:"total_challenges"`
	CompletedChallenges  int     `json:"completed_challenges"`
	CompletionRate       float64 `json:"completion_rate_percent"`
	TotalTimeMs          int64   `json:"total_time_ms"`
	AverageTimeMs        float64 `json:"average_time_ms"`
	TotalAttempts        int     `json:"total_attempts"`
	AverageAttempts      float64 `json:"average_attempts"`
	StreakDays           int     `json:"streak_days"`
	FastestCompletionMs  int64   `json:"fastest_completion_ms"`
	SlowestCompletionMs  int64   `json:"slowest_completion_ms"`
	MostAttempts         int     `json:"most_attempts"`
}

// ChallengeStats is the per-challenge view with formatted durations
type ChallengeStats struct {
	Attempts     int       `json:"attempts"`
	TimeSpent    string    `json:"time_spent"`
	BestTime     string    `json:"best_time"`
	Completed    bool      `json:"completed"`
	AverageScore float64   `json:"average_score"`
	FirstAttempt time.Time `json:"first_attempt"`
	LastAttempt  time.Time `json:"last_attempt"`
}

// CategoryStats is the per-category progress breakdown
type CategoryStats struct {
	Total           int     `json:"total"`
	Completed       int     `json:"completed"`
	TotalTimeMs     int64   `json:"total_time_ms"`
	TotalAttempts   int     `json:"total_attempts"`
	CompletionRate  float64 `json:"completion_rate_percent"`
	AverageTimeMs   float64 `json:"average_time_ms"`
	AverageAttempts float64 `json:"average_attempts"`
}

// DayActivity is one day in the weekly activity view
type DayActivity struct {
	Date       string `json:"date"` // YYYY-MM-DD
	Weekday    string `json:"weekday"`
	Challenges int    `json:"challenges"` // challenges touched that day
}
