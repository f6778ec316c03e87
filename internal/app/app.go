// Package app wires the engine together: storage, executor, validator,
// progress tracker, achievement system and challenge service, each
// constructed with explicit dependencies. No component reaches for ambient
// global state.
package app

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/codequest-dev/codequest/internal/achievement"
	"github.com/codequest-dev/codequest/internal/challenge"
	"github.com/codequest-dev/codequest/internal/config"
	"github.com/codequest-dev/codequest/internal/domain"
	"github.com/codequest-dev/codequest/internal/executor"
	"github.com/codequest-dev/codequest/internal/progress"
	"github.com/codequest-dev/codequest/internal/storage/local"
	"github.com/codequest-dev/codequest/internal/storage/sqlite"
	"github.com/codequest-dev/codequest/internal/validator"
)

// App is the assembled engine.
type App struct {
	Config       *config.Config
	Dispatcher   *domain.EventDispatcher
	Executor     *executor.Executor
	Validator    *validator.Validator
	Tracker      *progress.Tracker
	Achievements *achievement.System
	Challenges   *challenge.Service

	db *sqlite.DB
}

// New builds the engine from configuration.
func New(cfg *config.Config) (*App, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	a := &App{
		Config:     cfg,
		Dispatcher: domain.NewEventDispatcher(),
	}

	var progressStore progress.Store
	var achievementStore achievement.Store
	switch cfg.Storage {
	case "sqlite":
		db, err := sqlite.Open(filepath.Join(cfg.DataDir, "codequest.db"))
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		a.db = db
		progressStore = sqlite.NewProgressStore(db)
		achievementStore = sqlite.NewAchievementStore(db)
	default:
		kv, err := local.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("create store: %w", err)
		}
		progressStore = local.NewProgressStore(kv)
		achievementStore = local.NewAchievementStore(kv)
	}

	a.Executor = executor.New(executor.Config{
		PoolSize:       cfg.ExecutorPoolSize,
		Timeout:        time.Duration(cfg.ExecutorTimeoutMs) * time.Millisecond,
		CacheThreshold: time.Duration(cfg.CacheThresholdMs) * time.Millisecond,
	})
	a.Validator = validator.New(a.Executor)
	a.Tracker = progress.NewTracker(progressStore, a.Dispatcher)

	catalog, err := challenge.NewLoader(cfg.ChallengesPath).LoadAll()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("challenges path not found, starting with empty catalog", "path", cfg.ChallengesPath)
			catalog = nil
		} else {
			return nil, fmt.Errorf("load challenges: %w", err)
		}
	}
	a.Challenges = challenge.NewService(catalog, a.Validator, a.Tracker)

	a.Achievements = achievement.NewSystem(achievementStore, a.Dispatcher, a.Tracker)
	a.Achievements.Bind()

	return a, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
