package storage

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
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

func mustSave(t *testing.T, store *Store, r Result) int64 {
	t.Helper()
	id, err := store.SaveScore(r)
	if err != nil {
		t.Fatalf("SaveScore(%+v) failed: %v", r, err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, Result{Size: 4, Score: 1234, MaxTile: 128})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore(4)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 1234 {
		t.Errorf("HighScore() after reopen = %d, want 1234", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{Size: 4, Score: 100, MaxTile: 16, Moves: 20, Player: "alice"})
	mustSave(t, store, Result{Size: 4, Score: 50, MaxTile: 8, Moves: 10})
	mustSave(t, store, Result{Size: 4, Score: 200, MaxTile: 32, Moves: 30})

	// Different board size
	mustSave(t, store, Result{Size: 5, Score: 500, MaxTile: 64})

	scores, err := store.TopScores(4, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d].Score = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].Size != 4 {
			t.Errorf("scores[%d].Size = %d, want 4", i, scores[i].Size)
		}
	}

	if scores[1].Player != "alice" || scores[1].MaxTile != 16 || scores[1].Moves != 20 {
		t.Errorf("Fields not round-tripped: %+v", scores[1])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	big, err := store.TopScores(5, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(big) != 1 {
		t.Errorf("Expected 1 score for 5x5, got %d", len(big))
	}
}

func TestStoreSaveRejectsInvalidSize(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(Result{Size: 1, Score: 10}); err == nil {
		t.Error("SaveScore() with size 1 should fail")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		mustSave(t, store, Result{Size: 4, Score: (i + 1) * 100})
	}

	scores, err := store.TopScores(4, 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	all, err := store.TopScores(4, 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(all))
	}
}

func TestStoreTopScoresTiesKeepInsertionOrder(t *testing.T) {
	store := openTestStore(t)

	first := mustSave(t, store, Result{Size: 4, Score: 300, Player: "first"})
	second := mustSave(t, store, Result{Size: 4, Score: 300, Player: "second"})

	scores, err := store.TopScores(4, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].ID != first || scores[1].ID != second {
		t.Errorf("Tie order = [%d %d], want [%d %d]", scores[0].ID, scores[1].ID, first, second)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(4)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty table, got %d", high)
	}

	mustSave(t, store, Result{Size: 4, Score: 100})
	mustSave(t, store, Result{Size: 4, Score: 300})
	mustSave(t, store, Result{Size: 4, Score: 200})
	mustSave(t, store, Result{Size: 3, Score: 9000})

	high, err = store.HighScore(4)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Result{Size: 4, Score: 100})
	mustSave(t, store, Result{Size: 4, Score: 200})
	mustSave(t, store, Result{Size: 6, Score: 300})

	if err := store.ClearScores(4); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(4, 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 4x4 scores after clear, got %d", len(scores))
	}

	other, _ := store.TopScores(6, 10)
	if len(other) != 1 {
		t.Errorf("6x6 scores should not be affected by clearing 4x4")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats(4)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty table = %+v", empty)
	}

	mustSave(t, store, Result{Size: 4, Score: 100, MaxTile: 16})
	mustSave(t, store, Result{Size: 4, Score: 300, MaxTile: 64})
	mustSave(t, store, Result{Size: 5, Score: 50, MaxTile: 8})

	stats, err := store.Stats(4)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 300 {
		t.Errorf("HighScore = %d, want 300", stats.HighScore)
	}
	if stats.BestTile != 64 {
		t.Errorf("BestTile = %d, want 64", stats.BestTile)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, want 200", stats.AvgScore)
	}
	if stats.TotalScore != 400 {
		t.Errorf("TotalScore = %d, want 400", stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("AllStats() returned %d sizes, want 2", len(all))
	}
	if all[5].HighScore != 50 || all[4].GamesCount != 2 {
		t.Errorf("AllStats() = %+v %+v", all[4], all[5])
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.SaveScore(Result{Size: 4, Score: i}); err != nil {
				t.Errorf("SaveScore() failed: %v", err)
			}
		}()
	}
	wg.Wait()

	stats, err := store.Stats(4)
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 20 {
		t.Errorf("GamesCount = %d, want 20", stats.GamesCount)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.t2048/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".t2048", "scores.db")); os.IsNotExist(err) {
		t.Error("Database file was not created under HOME")
	}
}
