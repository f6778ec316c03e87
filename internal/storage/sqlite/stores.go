package sqlite

import (
	"encoding/json"
	"log/slog"

	"github.com/codequest-dev/codequest/internal/domain"
)

const aggregateRowID = "aggregate"

// ProgressStore persists the aggregate progress document in SQLite. It keeps
// the same degrade-to-default contract as the local store: loads never fail,
// saves report success as a boolean.
type ProgressStore struct {
	db *DB
}

// NewProgressStore creates a SQLite-backed progress store.
func NewProgressStore(db *DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// LoadAggregate reads the persisted aggregate, resetting to the default empty
// structure when the row is missing or corrupt.
func (s *ProgressStore) LoadAggregate() *domain.AggregateProgress {
	var data string
	err := s.db.QueryRow("SELECT data FROM progress WHERE id = ?", aggregateRowID).Scan(&data)
	if err != nil {
		return domain.NewAggregateProgress()
	}

	agg := domain.NewAggregateProgress()
	if err := json.Unmarshal([]byte(data), agg); err != nil {
		slog.Error("corrupt progress row, resetting", "error", err)
		return domain.NewAggregateProgress()
	}
	if agg.Challenges == nil {
		agg.Challenges = make(map[string]*domain.ChallengeProgress)
	}
	if agg.CompletedChallengeIDs == nil {
		agg.CompletedChallengeIDs = []string{}
	}
	return agg
}

// SaveAggregate persists the aggregate progress document.
func (s *ProgressStore) SaveAggregate(agg *domain.AggregateProgress) bool {
	data, err := json.Marshal(agg)
	if err != nil {
		slog.Error("marshal progress failed", "error", err)
		return false
	}
	_, err = s.db.Exec(`
		INSERT INTO progress (id, data, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		aggregateRowID, string(data))
	if err != nil {
		slog.Error("save progress failed", "error", err)
		return false
	}
	return true
}

// AchievementStore persists unlocked achievements, ordered by unlock time.
type AchievementStore struct {
	db *DB
}

// NewAchievementStore creates a SQLite-backed achievement store.
func NewAchievementStore(db *DB) *AchievementStore {
	return &AchievementStore{db: db}
}

// LoadUnlocked reads the ordered unlock list, empty when absent.
func (s *AchievementStore) LoadUnlocked() []domain.UnlockedAchievement {
	rows, err := s.db.Query(`
		SELECT id, name, description, icon, points, xp, unlocked_at
		FROM achievements ORDER BY position`)
	if err != nil {
		slog.Error("load achievements failed", "error", err)
		return []domain.UnlockedAchievement{}
	}
	defer rows.Close()

	unlocked := []domain.UnlockedAchievement{}
	for rows.Next() {
		var a domain.UnlockedAchievement
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.Icon, &a.Points, &a.XP, &a.UnlockedAt); err != nil {
			slog.Error("scan achievement failed", "error", err)
			continue
		}
		unlocked = append(unlocked, a)
	}
	return unlocked
}

// SaveUnlocked replaces the persisted unlock list.
func (s *AchievementStore) SaveUnlocked(unlocked []domain.UnlockedAchievement) bool {
	tx, err := s.db.Begin()
	if err != nil {
		slog.Error("save achievements failed", "error", err)
		return false
	}
	if _, err := tx.Exec("DELETE FROM achievements"); err != nil {
		tx.Rollback()
		slog.Error("save achievements failed", "error", err)
		return false
	}
	for i, a := range unlocked {
		_, err := tx.Exec(`
			INSERT INTO achievements (id, name, description, icon, points, xp, unlocked_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Name, a.Description, a.Icon, a.Points, a.XP, a.UnlockedAt, i)
		if err != nil {
			tx.Rollback()
			slog.Error("save achievements failed", "id", a.ID, "error", err)
			return false
		}
	}
	if err := tx.Commit(); err != nil {
		slog.Error("save achievements failed", "error", err)
		return false
	}
	return true
}
