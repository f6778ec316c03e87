package local

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/codequest-dev/codequest/internal/domain"
)

func TestStore_SetGet(t *testing.T) {
	kv, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	if !kv.Set("sample", payload{Name: "hello", Count: 3}) {
		t.Fatal("Set() = false, want true")
	}

	var got payload
	if !kv.Get("sample", &got) {
		t.Fatal("Get() = false, want true")
	}
	if got.Name != "hello" || got.Count != 3 {
		t.Errorf("Get() = %+v, want {hello 3}", got)
	}
}

func TestStore_GetMissing(t *testing.T) {
	kv, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	got := "untouched"
	if kv.Get("absent", &got) {
		t.Error("Get() on missing key = true, want false")
	}
	if got != "untouched" {
		t.Errorf("Get() modified dest to %q on miss", got)
	}
}

func TestStore_GetCorrupt(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	path := filepath.Join(dir, DefaultNamespace+"broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	var got map[string]int
	if kv.Get("broken", &got) {
		t.Error("Get() on corrupt document = true, want false")
	}
}

func TestStore_Remove(t *testing.T) {
	kv, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	kv.Set("gone", 1)
	if !kv.Remove("gone") {
		t.Error("Remove() = false, want true")
	}
	var n int
	if kv.Get("gone", &n) {
		t.Error("Get() after Remove() = true, want false")
	}
	if kv.Remove("gone") {
		t.Error("Remove() on missing key = true, want false")
	}
}

func TestStore_Keys(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	kv.Set("alpha", 1)
	kv.Set("beta", 2)

	// a file outside the namespace must not show up
	if err := os.WriteFile(filepath.Join(dir, "other_key.json"), []byte("{}"), 0644); err != nil {
		t.Fatalf("write foreign file: %v", err)
	}

	keys := kv.Keys()
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "alpha" || keys[1] != "beta" {
		t.Errorf("Keys() = %v, want [alpha beta]", keys)
	}
}

func TestStore_Clear(t *testing.T) {
	kv, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	kv.Set("a", 1)
	kv.Set("b", 2)
	if !kv.Clear() {
		t.Error("Clear() = false, want true")
	}
	if keys := kv.Keys(); len(keys) != 0 {
		t.Errorf("Keys() after Clear() = %v, want empty", keys)
	}
}

func TestStore_Namespaces(t *testing.T) {
	dir := t.TempDir()
	a, err := NewNamespacedStore(dir, "a_")
	if err != nil {
		t.Fatalf("NewNamespacedStore() error = %v", err)
	}
	b, err := NewNamespacedStore(dir, "b_")
	if err != nil {
		t.Fatalf("NewNamespacedStore() error = %v", err)
	}

	a.Set("key", "from a")
	b.Set("key", "from b")

	var got string
	a.Get("key", &got)
	if got != "from a" {
		t.Errorf("namespace a read %q, want %q", got, "from a")
	}
	b.Get("key", &got)
	if got != "from b" {
		t.Errorf("namespace b read %q, want %q", got, "from b")
	}
}

func TestStore_ExportImport(t *testing.T) {
	kv, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	kv.Set("one", 1)
	kv.Set("two", map[string]string{"k": "v"})

	exported := kv.Export()
	if len(exported) != 2 {
		t.Fatalf("Export() has %d entries, want 2", len(exported))
	}

	other, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if !other.Import(exported) {
		t.Fatal("Import() = false, want true")
	}

	var one int
	if !other.Get("one", &one) || one != 1 {
		t.Errorf("imported value one = %d, want 1", one)
	}
}

func TestProgressStore_LoadDefaults(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	store := NewProgressStore(kv)

	agg := store.LoadAggregate()
	if agg == nil {
		t.Fatal("LoadAggregate() returned nil")
	}
	if agg.Challenges == nil {
		t.Error("Challenges map is nil")
	}
	if agg.TotalAttempts != 0 {
		t.Errorf("TotalAttempts = %d, want 0", agg.TotalAttempts)
	}
}

func TestProgressStore_LoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	path := filepath.Join(dir, DefaultNamespace+keyProgress+".json")
	if err := os.WriteFile(path, []byte("###"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	agg := NewProgressStore(kv).LoadAggregate()
	if agg == nil || agg.Challenges == nil {
		t.Fatal("corrupt progress did not reset to the default structure")
	}
}

func TestProgressStore_RoundTrip(t *testing.T) {
	kv, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	store := NewProgressStore(kv)

	agg := store.LoadAggregate()
	agg.TotalAttempts = 7
	agg.StreakDays = 3
	if !store.SaveAggregate(agg) {
		t.Fatal("SaveAggregate() = false, want true")
	}

	loaded := store.LoadAggregate()
	if loaded.TotalAttempts != 7 {
		t.Errorf("TotalAttempts = %d, want 7", loaded.TotalAttempts)
	}
	if loaded.StreakDays != 3 {
		t.Errorf("StreakDays = %d, want 3", loaded.StreakDays)
	}
}

func TestAchievementStore_RoundTrip(t *testing.T) {
	kv, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	store := NewAchievementStore(kv)

	if got := store.LoadUnlocked(); len(got) != 0 {
		t.Errorf("LoadUnlocked() on empty store = %v, want empty", got)
	}

	unlocked := []domain.UnlockedAchievement{
		{ID: "first_steps", Name: "First Steps", Points: 10, XP: 50, UnlockedAt: time.Now().UTC()},
		{ID: "quick_learner", Name: "Quick Learner", Points: 20, XP: 100, UnlockedAt: time.Now().UTC()},
	}
	if !store.SaveUnlocked(unlocked) {
		t.Fatal("SaveUnlocked() = false, want true")
	}

	loaded := store.LoadUnlocked()
	if len(loaded) != 2 {
		t.Fatalf("LoadUnlocked() has %d entries, want 2", len(loaded))
	}
	if loaded[0].ID != "first_steps" || loaded[1].ID != "quick_learner" {
		t.Errorf("unlock order not preserved: %v, %v", loaded[0].ID, loaded[1].ID)
	}
}
