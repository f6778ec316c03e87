package achievement

import "github.com/codequest-dev/codequest/internal/domain"

// DefaultRules is the fixed achievement rule set. Conditions are pure
// predicates over the stats snapshot; they never mutate state.
func DefaultRules() []domain.Achievement {
	return []domain.Achievement{
		{
			ID: "first_steps", Name: "First Steps",
			Description: "Complete your first challenge",
			Icon:        "target", Points: 10, XP: 50,
			Condition: func(s domain.AchievementStats) bool { return s.CompletedChallenges >= 1 },
		},
		{
			ID: "quick_learner", Name: "Quick Learner",
			Description: "Complete a challenge in under 30 seconds",
			Icon:        "bolt", Points: 25, XP: 100,
			Condition: func(s domain.AchievementStats) bool {
				return s.FastestTimeMs > 0 && s.FastestTimeMs < 30000
			},
		},
		{
			ID: "persistent", Name: "Persistent",
			Description: "Make 10 attempts on challenges",
			Icon:        "muscle", Points: 15, XP: 75,
			Condition: func(s domain.AchievementStats) bool { return s.TotalAttempts >= 10 },
		},
		{
			ID: "html_novice", Name: "HTML Novice",
			Description: "Complete 3 HTML challenges",
			Icon:        "page", Points: 30, XP: 150,
			Condition: func(s domain.AchievementStats) bool { return s.MarkupCompleted >= 3 },
		},
		{
			ID: "css_stylist", Name: "CSS Stylist",
			Description: "Complete 3 CSS challenges",
			Icon:        "palette", Points: 30, XP: 150,
			Condition: func(s domain.AchievementStats) bool { return s.StylesheetCompleted >= 3 },
		},
		{
			ID: "js_coder", Name: "JS Coder",
			Description: "Complete 3 JavaScript challenges",
			Icon:        "bolt", Points: 30, XP: 150,
			Condition: func(s domain.AchievementStats) bool { return s.ScriptCompleted >= 3 },
		},
		{
			ID: "streak_starter", Name: "Streak Starter",
			Description: "Maintain a 3-day streak",
			Icon:        "fire", Points: 20, XP: 100,
			Condition: func(s domain.AchievementStats) bool { return s.StreakDays >= 3 },
		},
		{
			ID: "week_warrior", Name: "Week Warrior",
			Description: "Maintain a 7-day streak",
			Icon:        "trophy", Points: 50, XP: 250,
			Condition: func(s domain.AchievementStats) bool { return s.StreakDays >= 7 },
		},
		{
			ID: "perfectionist", Name: "Perfectionist",
			Description: "Complete 5 challenges on first try",
			Icon:        "sparkles", Points: 40, XP: 200,
			Condition: func(s domain.AchievementStats) bool { return s.FirstTryCompletions >= 5 },
		},
		{
			ID: "time_saver", Name: "Time Saver",
			Description: "Spend over 1 hour coding",
			Icon:        "clock", Points: 35, XP: 175,
			Condition: func(s domain.AchievementStats) bool { return s.TotalTimeMs >= 3600000 },
		},
		{
			ID: "code_master", Name: "Code Master",
			Description: "Complete 10 challenges",
			Icon:        "crown", Points: 100, XP: 500,
			Condition: func(s domain.AchievementStats) bool { return s.CompletedChallenges >= 10 },
		},
		{
			ID: "speed_demon", Name: "Speed Demon",
			Description: "Complete a challenge in under 10 seconds",
			Icon:        "rocket", Points: 50, XP: 250,
			Condition: func(s domain.AchievementStats) bool {
				return s.FastestTimeMs > 0 && s.FastestTimeMs < 10000
			},
		},
	}
}
