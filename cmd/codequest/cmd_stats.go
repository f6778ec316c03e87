package main

import (
	"fmt"

	"github.com/codequest-dev/codequest/internal/app"
	"github.com/codequest-dev/codequest/internal/domain"
	"github.com/codequest-dev/codequest/internal/progress"
)

// cmdStats shows progress statistics
func cmdStats(args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	subCmd := "overview"
	if len(args) > 0 {
		subCmd = args[0]
	}

	switch subCmd {
	case "overview", "":
		return cmdStatsOverview(a)
	case "categories":
		return cmdStatsCategories(a)
	case "weekly":
		return cmdStatsWeekly(a)
	default:
		return fmt.Errorf("unknown stats command: %s (valid: overview, categories, weekly)", subCmd)
	}
}

func cmdStatsOverview(a *app.App) error {
	stats := a.Tracker.OverallStats()
	total := len(a.Challenges.List())
	pct := a.Tracker.CompletionPercentage(total)

	fmt.Println("Progress Statistics")
	fmt.Println("===================")
	fmt.Printf("Completed:        %d of %d (%.1f%%)\n", stats.CompletedChallenges, total, pct)
	fmt.Printf("Total Attempts:   %d\n", stats.TotalAttempts)
	fmt.Printf("Average Attempts: %.1f\n", stats.AverageAttempts)
	fmt.Printf("Time Spent:       %s\n", progress.FormatDuration(stats.TotalTimeMs))
	fmt.Printf("Time Today:       %s\n", progress.FormatDuration(a.Tracker.TimeSpentToday()))
	fmt.Printf("Streak:           %d days\n", stats.StreakDays)
	if stats.FastestCompletionMs > 0 {
		fmt.Printf("Fastest Solve:    %s\n", progress.FormatDuration(stats.FastestCompletionMs))
	}

	if total > 0 {
		fmt.Printf("\n%s %.1f%%\n", renderProgressBar(pct/100, 20), pct)
	}

	return nil
}

func cmdStatsCategories(a *app.App) error {
	byCategory := a.Tracker.CategoryStats(a.Challenges.List())

	fmt.Println("Progress by Category")
	fmt.Println("====================")
	for _, cat := range []domain.Category{domain.CategoryMarkup, domain.CategoryStylesheet, domain.CategoryScript, domain.CategoryProject} {
		cs, ok := byCategory[cat]
		if !ok || cs.Total == 0 {
			continue
		}
		bar := renderProgressBar(cs.CompletionRate/100, 20)
		fmt.Printf("%-12s %s %d/%d (%.0f%%)\n",
			cat, bar, cs.Completed, cs.Total, cs.CompletionRate)
	}

	return nil
}

func cmdStatsWeekly(a *app.App) error {
	week := a.Tracker.WeeklyProgress()

	fmt.Println("Last 7 Days")
	fmt.Println("===========")
	for _, day := range week {
		fmt.Printf("%s  %-4s challenges: %d\n", day.Date, day.Weekday, day.Challenges)
	}

	return nil
}

// cmdAchievements shows unlocked achievements
func cmdAchievements() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	p := a.Achievements.GetProgress()
	unlocked := a.Achievements.Unlocked()

	fmt.Println("Achievements")
	fmt.Println("============")
	fmt.Printf("Unlocked: %d of %d (%.0f%%)\n", p.UnlockedCount, p.TotalCount, p.Percentage)
	fmt.Printf("Points:   %d | XP: %d\n\n", p.TotalPoints, p.TotalXP)

	for _, u := range unlocked {
		fmt.Printf("  [%s] %s\n      %s (unlocked %s)\n",
			u.Icon, u.Name, u.Description, u.UnlockedAt.Format("2006-01-02"))
	}

	if len(unlocked) == 0 {
		fmt.Println("No achievements yet. Complete a challenge to earn your first one!")
	}

	return nil
}
