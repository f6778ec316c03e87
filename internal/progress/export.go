package progress

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/codequest-dev/codequest/internal/domain"
)

// Export is a portable progress document.
type Export struct {
	domain.AggregateProgress
	ExportedAt time.Time `json:"exported_at"`
}

// Export returns the current progress as a portable document. The cached
// statistics travel with it but re-derive identically on import.
func (t *Tracker) Export() Export {
	return Export{
		AggregateProgress: *t.agg,
		ExportedAt:        t.now(),
	}
}

// Import replaces the current progress with a previously exported document,
// persists it, and publishes a progress:updated event so achievement rules
// are re-evaluated once against the imported state.
func (t *Tracker) Import(data []byte) error {
	var doc Export
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse progress document: %w", err)
	}
	if doc.Version != domain.ProgressVersion {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedVersion, doc.Version)
	}

	agg := doc.AggregateProgress
	if agg.Challenges == nil {
		agg.Challenges = make(map[string]*domain.ChallengeProgress)
	}
	if agg.CompletedChallengeIDs == nil {
		agg.CompletedChallengeIDs = []string{}
	}
	t.agg = &agg

	t.recomputeStatistics()
	t.store.SaveAggregate(t.agg)
	t.dispatcher.Publish(domain.NewProgressUpdatedEvent(t.OverallStats()))
	return nil
}

// Reset discards all progress, restoring the default empty structure.
func (t *Tracker) Reset() {
	t.agg = domain.NewAggregateProgress()
	t.sessions = make(map[string]time.Time)
	t.store.SaveAggregate(t.agg)
	t.dispatcher.Publish(domain.NewProgressUpdatedEvent(t.OverallStats()))
}

// FormatDuration renders milliseconds as a compact human duration: "5s",
// "3m 4s", "1h 2m".
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "0s"
	}
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}
