package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("overworld", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("overworld", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "overworld" {
			t.Errorf("scores[%d].GameID = %q", i, scores[i].GameID)
		}
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"explicit limit", 3, 3},
		{"default limit", 0, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := store.TopScores("test", tt.limit)
			if err != nil {
				t.Fatalf("TopScores() failed: %v", err)
			}
			if len(scores) != tt.want {
				t.Errorf("got %d scores, want %d", len(scores), tt.want)
			}
			if scores[0].Score != 500 {
				t.Errorf("top score = %d, want 500", scores[0].Score)
			}
		})
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("overworld")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("overworld", 100)
	store.SaveScore("overworld", 300)
	store.SaveScore("overworld", 200)

	high, err = store.HighScore("overworld")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("overworld", 100)
	store.SaveScore("other", 300)
	store.SaveRun(Run{GameID: "overworld", Score: 100})
	store.SaveRun(Run{GameID: "other", Score: 300})

	if err := store.ClearScores("overworld"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("overworld", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if runs, _ := store.RecentRuns("overworld", 10); len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}
	if scores, _ := store.TopScores("other", 10); len(scores) != 1 {
		t.Error("other game's scores should not be affected")
	}
	if runs, _ := store.RecentRuns("other", 10); len(runs) != 1 {
		t.Error("other game's runs should not be affected")
	}
}

func TestStoreSaveRunAndLookup(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{GameID: "overworld", Score: 40, Kills: 4, Ticks: 1800, Player: "alice"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("SaveRun() returned a nil run id")
	}

	run, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if run == nil {
		t.Fatal("RunByID() found nothing")
	}
	if run.RunID != id || run.Score != 40 || run.Kills != 4 || run.Ticks != 1800 || run.Player != "alice" {
		t.Errorf("RunByID() = %+v", run)
	}
	if run.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	missing, err := store.RunByID(uuid.New())
	if err != nil {
		t.Fatalf("RunByID() on missing id failed: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing run, got %+v", missing)
	}
}

func TestStoreSaveRunKeepsGivenID(t *testing.T) {
	store := openTestStore(t)

	want := uuid.New()
	got, err := store.SaveRun(Run{RunID: want, GameID: "overworld"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if got != want {
		t.Errorf("run id = %v, want %v", got, want)
	}

	if _, err := store.SaveRun(Run{RunID: want, GameID: "overworld"}); err == nil {
		t.Error("expected duplicate run id to fail")
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		if _, err := store.SaveRun(Run{GameID: "overworld", Score: i * 10}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	store.SaveRun(Run{GameID: "other", Score: 999})

	runs, err := store.RecentRuns("overworld", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	// Newest first
	for i, want := range []int{50, 40, 30} {
		if runs[i].Score != want {
			t.Errorf("runs[%d].Score = %d, want %d", i, runs[i].Score, want)
		}
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 6 {
		t.Errorf("got %d runs across games, want 6", len(all))
	}
	if all[0].GameID != "other" {
		t.Errorf("newest run = %q, want other", all[0].GameID)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("overworld")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveRun(Run{GameID: "overworld", Score: 10, Kills: 1})
	store.SaveRun(Run{GameID: "overworld", Score: 30, Kills: 3})

	stats, err := store.Stats("overworld")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.AvgScore != 20 || stats.TotalKills != 4 {
		t.Errorf("stats = %+v", stats)
	}
}
