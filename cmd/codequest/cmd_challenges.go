package main

import (
	"fmt"
	"strconv"

	"github.com/codequest-dev/codequest/internal/domain"
)

// cmdChallenges manages the challenge catalog
func cmdChallenges(args []string) error {
	if len(args) < 1 {
		fmt.Println(`Challenge commands:

  codequest challenges list [category]  List challenges, optionally by category
  codequest challenges info <id>        Show challenge details`)
		return nil
	}

	switch args[0] {
	case "list":
		category := ""
		if len(args) > 1 {
			category = args[1]
		}
		return cmdChallengesList(category)
	case "info":
		if len(args) < 2 {
			return fmt.Errorf("challenge ID required (e.g., html-basics)")
		}
		return cmdChallengesInfo(args[1])
	default:
		return fmt.Errorf("unknown challenges command: %s", args[0])
	}
}

func cmdChallengesList(category string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	challenges := a.Challenges.List()
	if category != "" {
		challenges = a.Challenges.ByCategory(domain.Category(category))
	}

	if len(challenges) == 0 {
		fmt.Println("No challenges found.")
		return nil
	}

	fmt.Println("Available Challenges:")
	for _, ch := range challenges {
		mark := " "
		if a.Tracker.Completed(ch.ID) {
			mark = "x"
		}
		fmt.Printf("  [%s] %-24s %s (%s, %s, %d XP)\n",
			mark, ch.ID, ch.Title, ch.Category, ch.Difficulty, ch.XP)
	}

	fmt.Println("\nUse 'codequest challenges info <id>' for details")
	return nil
}

func cmdChallengesInfo(id string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ch, err := a.Challenges.Get(id)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n", ch.Title, ch.ID)
	fmt.Println("====================")
	fmt.Printf("Category:     %s\n", ch.Category)
	fmt.Printf("Difficulty:   %s\n", ch.Difficulty)
	fmt.Printf("XP:           %d\n", ch.XP)
	fmt.Printf("Requirements: %d\n", len(ch.Requirements))
	fmt.Printf("Hints:        %d\n", len(ch.Hints))
	fmt.Printf("Completed:    %v\n", a.Tracker.Completed(ch.ID))
	fmt.Printf("\n%s\n", ch.Description)

	if ch.StarterCode != "" {
		fmt.Println("\nStarter code:")
		fmt.Println(ch.StarterCode)
	}

	if cs := a.Tracker.ChallengeStats(ch.ID); cs != nil {
		fmt.Println("\nYour progress:")
		fmt.Printf("  Attempts:      %d\n", cs.Attempts)
		fmt.Printf("  Average score: %.0f%%\n", cs.AverageScore*100)
		fmt.Printf("  Time spent:    %s\n", cs.TimeSpent)
		if cs.Completed {
			fmt.Printf("  Best time:     %s\n", cs.BestTime)
		}
	}

	return nil
}

// cmdHint shows a hint for a challenge
func cmdHint(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("challenge ID required")
	}

	index := 0
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid hint index: %s", args[1])
		}
		index = n
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	hint, err := a.Challenges.GetHint(args[0], index)
	if err != nil {
		return err
	}

	fmt.Printf("Hint %d: %s\n", index+1, hint)
	return nil
}

// cmdSolution shows the reference solution for a challenge
func cmdSolution(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("challenge ID required")
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	solution, err := a.Challenges.GetSolution(args[0])
	if err != nil {
		return err
	}

	for name, code := range solution {
		fmt.Printf("--- %s ---\n%s\n", name, code)
	}
	return nil
}
