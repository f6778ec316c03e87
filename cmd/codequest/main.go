package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/codequest-dev/codequest/internal/app"
	"github.com/codequest-dev/codequest/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "challenges":
		err = cmdChallenges(os.Args[2:])
	case "validate":
		err = cmdValidate(os.Args[2:])
	case "submit":
		err = cmdSubmit(os.Args[2:])
	case "hint":
		err = cmdHint(os.Args[2:])
	case "solution":
		err = cmdSolution(os.Args[2:])
	case "stats":
		err = cmdStats(os.Args[2:])
	case "achievements":
		err = cmdAchievements()
	case "export":
		err = cmdExport(os.Args[2:])
	case "import":
		err = cmdImport(os.Args[2:])
	case "serve":
		err = cmdServe()
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Printf("codequest %s\n", Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newApp loads configuration and assembles the engine for a CLI command.
func newApp() (*app.App, error) {
	cfg := config.Load()

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	return app.New(cfg)
}

func printUsage() {
	fmt.Println(`CodeQuest - Coding Practice Challenges

Usage:
  codequest <command> [arguments]

Challenge Commands:
  challenges list        List available challenges
  challenges info <id>   Show challenge details
  validate <id> <file>   Validate code without recording progress
  submit <id> <file>     Submit code and record the attempt
  hint <id> [index]      Show a hint for a challenge
  solution <id>          Show the reference solution

Progress Commands:
  stats                  Show progress statistics
  achievements           Show unlocked achievements
  export [file]          Export progress data as JSON
  import <file>          Import previously exported progress

Server Commands:
  serve                  Run the local HTTP server

Other:
  help                   Show this help message
  version                Show version information

Examples:
  codequest challenges list              # List challenges
  codequest submit html-basics main.html # Submit a solution
  codequest stats                        # Show your progress`)
}

// renderProgressBar creates a visual progress bar
func renderProgressBar(value float64, width int) string {
	filled := int(value * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := width - filled

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", empty) + "]"
}
