package main

import (
	"encoding/json"
	"fmt"
	"os"
)

// cmdExport writes progress data as JSON to a file or stdout
func cmdExport(args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := json.MarshalIndent(a.Tracker.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode export: %w", err)
	}

	if len(args) > 0 {
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}
		fmt.Printf("Progress exported to %s\n", args[0])
		return nil
	}

	fmt.Println(string(data))
	return nil
}

// cmdImport restores progress from a previously exported file
func cmdImport(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: codequest import <file>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Tracker.Import(data); err != nil {
		return fmt.Errorf("import progress: %w", err)
	}

	stats := a.Tracker.OverallStats()
	fmt.Printf("Progress imported: %d completed challenges, %d attempts\n",
		stats.CompletedChallenges, stats.TotalAttempts)
	return nil
}
