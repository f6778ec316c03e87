package progress

import (
	"github.com/codequest-dev/codequest/internal/domain"
)

// Aggregate getters. All of these are pure derivations over the per-challenge
// records and tolerate an empty progress set by returning zeros.

// OverallStats returns the aggregate snapshot surfaced to the UI layer.
func (t *Tracker) OverallStats() domain.OverallStats {
	completed := 0
	for _, rec := range t.agg.Challenges {
		if rec.Completed {
			completed++
		}
	}

	return domain.OverallStats{
		TotalChallenges:     len(t.agg.Challenges),
		CompletedChallenges: completed,
		CompletionRate:      t.agg.Statistics.SuccessRatePercent,
		TotalTimeMs:         t.agg.TotalTimeMs,
		AverageTimeMs:       t.agg.Statistics.AverageTimeMs,
		TotalAttempts:       t.agg.TotalAttempts,
		AverageAttempts:     t.agg.Statistics.AverageAttempts,
		StreakDays:          t.agg.StreakDays,
		FastestCompletionMs: t.FastestCompletion(),
		SlowestCompletionMs: t.SlowestCompletion(),
		MostAttempts:        t.MostAttempts(),
	}
}

// ChallengeStats returns the per-challenge view, nil when the challenge was
// never started.
func (t *Tracker) ChallengeStats(id string) *domain.ChallengeStats {
	rec, ok := t.agg.Challenges[id]
	if !ok {
		return nil
	}

	best := "N/A"
	if rec.BestTimeMs != nil {
		best = FormatDuration(*rec.BestTimeMs)
	}
	return &domain.ChallengeStats{
		Attempts:     rec.Attempts,
		TimeSpent:    FormatDuration(rec.TimeSpentMs),
		BestTime:     best,
		Completed:    rec.Completed,
		AverageScore: rec.AverageScore(),
		FirstAttempt: rec.FirstAttemptAt,
		LastAttempt:  rec.LastAttemptAt,
	}
}

// FastestCompletion returns the minimum best time across completed
// challenges, 0 when nothing is completed.
func (t *Tracker) FastestCompletion() int64 {
	var fastest int64
	for _, rec := range t.agg.Challenges {
		if !rec.Completed || rec.BestTimeMs == nil {
			continue
		}
		if fastest == 0 || *rec.BestTimeMs < fastest {
			fastest = *rec.BestTimeMs
		}
	}
	return fastest
}

// SlowestCompletion returns the maximum first-completion time, 0 when
// nothing is completed.
func (t *Tracker) SlowestCompletion() int64 {
	var slowest int64
	for _, rec := range t.agg.Challenges {
		if rec.Completed && rec.CompletionTimeMs > slowest {
			slowest = rec.CompletionTimeMs
		}
	}
	return slowest
}

// MostAttempts returns the highest attempt count on any single challenge.
func (t *Tracker) MostAttempts() int {
	most := 0
	for _, rec := range t.agg.Challenges {
		if rec.Attempts > most {
			most = rec.Attempts
		}
	}
	return most
}

// CompletionPercentage reports completion against a catalog size.
func (t *Tracker) CompletionPercentage(totalChallenges int) float64 {
	if totalChallenges <= 0 {
		return 0
	}
	return float64(len(t.agg.CompletedChallengeIDs)) / float64(totalChallenges) * 100
}

// CategoryStats breaks progress down per category of the given catalog.
func (t *Tracker) CategoryStats(challenges []*domain.ChallengeDefinition) map[domain.Category]*domain.CategoryStats {
	stats := make(map[domain.Category]*domain.CategoryStats)

	for _, ch := range challenges {
		cat, ok := stats[ch.Category]
		if !ok {
			cat = &domain.CategoryStats{}
			stats[ch.Category] = cat
		}
		cat.Total++

		rec, ok := t.agg.Challenges[ch.ID]
		if !ok {
			continue
		}
		if rec.Completed {
			cat.Completed++
		}
		cat.TotalTimeMs += rec.TimeSpentMs
		cat.TotalAttempts += rec.Attempts
	}

	for _, cat := range stats {
		if cat.Total > 0 {
			cat.CompletionRate = float64(cat.Completed) / float64(cat.Total) * 100
			cat.AverageAttempts = float64(cat.TotalAttempts) / float64(cat.Total)
		}
		if cat.Completed > 0 {
			cat.AverageTimeMs = float64(cat.TotalTimeMs) / float64(cat.Completed)
		}
	}
	return stats
}

// TimeSpentToday sums time on challenges touched today.
func (t *Tracker) TimeSpentToday() int64 {
	today := t.now().Format(dateLayout)
	var total int64
	for _, rec := range t.agg.Challenges {
		if rec.LastAttemptAt.Format(dateLayout) == today {
			total += rec.TimeSpentMs
		}
	}
	return total
}

// WeeklyProgress returns activity counts for the last seven days, oldest
// first.
func (t *Tracker) WeeklyProgress() []domain.DayActivity {
	week := make([]domain.DayActivity, 0, 7)
	for i := 6; i >= 0; i-- {
		day := t.now().AddDate(0, 0, -i)
		date := day.Format(dateLayout)

		touched := 0
		for _, rec := range t.agg.Challenges {
			if rec.LastAttemptAt.Format(dateLayout) == date {
				touched++
			}
		}
		week = append(week, domain.DayActivity{
			Date:       date,
			Weekday:    day.Weekday().String()[:3],
			Challenges: touched,
		})
	}
	return week
}

// AchievementStats builds the snapshot achievement predicates evaluate
// against: aggregate counters plus per-category completion counts and
// first-try completions.
func (t *Tracker) AchievementStats() domain.AchievementStats {
	stats := domain.AchievementStats{
		TotalAttempts: t.agg.TotalAttempts,
		TotalTimeMs:   t.agg.TotalTimeMs,
		FastestTimeMs: t.FastestCompletion(),
		StreakDays:    t.agg.StreakDays,
	}

	for id, rec := range t.agg.Challenges {
		if !rec.Completed {
			continue
		}
		stats.CompletedChallenges++
		if rec.Attempts == 1 {
			stats.FirstTryCompletions++
		}
		switch t.category(id) {
		case domain.CategoryMarkup:
			stats.MarkupCompleted++
		case domain.CategoryStylesheet:
			stats.StylesheetCompleted++
		case domain.CategoryScript:
			stats.ScriptCompleted++
		}
	}
	return stats
}
