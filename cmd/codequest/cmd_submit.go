package main

import (
	"fmt"
	"os"

	"github.com/codequest-dev/codequest/internal/validator"
)

// cmdValidate checks code against a challenge without recording progress
func cmdValidate(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: codequest validate <id> <file>")
	}

	code, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[1], err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ch, err := a.Challenges.Get(args[0])
	if err != nil {
		return err
	}

	result := a.Validator.Validate(ch, string(code))
	fmt.Println(validator.Feedback(result))
	if !result.Valid {
		os.Exit(1)
	}
	return nil
}

// cmdSubmit validates code and records the attempt
func cmdSubmit(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: codequest submit <id> <file>")
	}

	code, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[1], err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Challenges.Submit(args[0], string(code))
	if err != nil {
		return err
	}

	fmt.Println(result.Feedback)
	fmt.Printf("\nAttempts: %d", result.Outcome.TotalAttempts)
	if result.Valid {
		fmt.Printf(" | XP earned: %d", result.XPAwarded)
	}
	fmt.Println()

	if !result.Valid {
		os.Exit(1)
	}
	return nil
}
