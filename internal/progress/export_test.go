package progress

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/codequest-dev/codequest/internal/domain"
)

func TestExportImport_RoundTrip(t *testing.T) {
	tracker, _, clock, _ := newTestTracker()

	tracker.StartChallenge("a")
	clock.advance(5 * time.Second)
	tracker.SubmitAttempt("a", passing())

	data, err := json.Marshal(tracker.Export())
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}

	fresh, _, _, _ := newTestTracker()
	if err := fresh.Import(data); err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if !fresh.Completed("a") {
		t.Error("imported tracker lost completion")
	}
	stats := fresh.OverallStats()
	if stats.TotalAttempts != 1 || stats.TotalTimeMs != 5000 {
		t.Errorf("imported stats = %+v", stats)
	}
}

func TestImport_UnsupportedVersion(t *testing.T) {
	tracker, _, _, _ := newTestTracker()

	err := tracker.Import([]byte(`{"version":"9.9"}`))
	if !errors.Is(err, domain.ErrUnsupportedVersion) {
		t.Errorf("error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestImport_Malformed(t *testing.T) {
	tracker, _, _, _ := newTestTracker()

	if err := tracker.Import([]byte(`{{{`)); err == nil {
		t.Error("Import() accepted malformed JSON")
	}
}

func TestImport_RepairsNilMaps(t *testing.T) {
	tracker, _, clock, _ := newTestTracker()

	err := tracker.Import([]byte(`{"version":"1.0"}`))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	// the tracker must be fully usable after a minimal import
	tracker.StartChallenge("a")
	clock.advance(time.Second)
	if _, err := tracker.SubmitAttempt("a", passing()); err != nil {
		t.Fatalf("SubmitAttempt() after minimal import: %v", err)
	}
}

func TestImport_PublishesProgressUpdated(t *testing.T) {
	tracker, _, _, dispatcher := newTestTracker()

	published := false
	dispatcher.Subscribe(domain.EventProgressUpdated, func(domain.Event) { published = true })

	if err := tracker.Import([]byte(`{"version":"1.0"}`)); err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if !published {
		t.Error("Import() did not publish progress:updated")
	}
}

func TestReset(t *testing.T) {
	tracker, store, clock, _ := newTestTracker()

	tracker.StartChallenge("a")
	clock.advance(time.Second)
	tracker.SubmitAttempt("a", passing())

	tracker.Reset()

	if tracker.Completed("a") {
		t.Error("Reset() kept completion state")
	}
	if stats := tracker.OverallStats(); stats.TotalAttempts != 0 {
		t.Errorf("TotalAttempts = %d after Reset(), want 0", stats.TotalAttempts)
	}
	if store.agg.TotalAttempts != 0 {
		t.Error("Reset() did not persist the empty state")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0s"},
		{-5, "0s"},
		{900, "0s"},
		{5000, "5s"},
		{184000, "3m 4s"},
		{3720000, "1h 2m"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.ms); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
		}
	}
}
