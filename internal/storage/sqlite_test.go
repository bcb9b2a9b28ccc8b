package storage

import (
	"os"
	"path/filepath"
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

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
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

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSnapshotRoundTrip(t *testing.T) {
	store := openTestStore(t)

	data, err := store.LoadSnapshot("2048:state")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if data != nil {
		t.Fatalf("Expected no snapshot, got %q", data)
	}

	if err := store.SaveSnapshot("2048:state", []byte(`{"score":4}`)); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}
	// Overwrite
	if err := store.SaveSnapshot("2048:state", []byte(`{"score":8}`)); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}

	data, err = store.LoadSnapshot("2048:state")
	if err != nil {
		t.Fatalf("LoadSnapshot() failed: %v", err)
	}
	if string(data) != `{"score":8}` {
		t.Errorf("Expected latest snapshot, got %q", data)
	}

	infos, err := store.ListSnapshots()
	if err != nil {
		t.Fatalf("ListSnapshots() failed: %v", err)
	}
	if len(infos) != 1 || infos[0].Key != "2048:state" || infos[0].Size != len(data) {
		t.Errorf("Unexpected snapshot list: %+v", infos)
	}
}

func TestStoreSnapshotKeysAreIndependent(t *testing.T) {
	store := openTestStore(t)

	if err := store.SaveSnapshot("2048:alice", []byte("a")); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}
	if err := store.SaveSnapshot("2048:bob", []byte("b")); err != nil {
		t.Fatalf("SaveSnapshot() failed: %v", err)
	}

	existed, err := store.DeleteSnapshot("2048:alice")
	if err != nil || !existed {
		t.Fatalf("DeleteSnapshot() = %v, %v", existed, err)
	}
	existed, err = store.DeleteSnapshot("2048:alice")
	if err != nil || existed {
		t.Errorf("Second DeleteSnapshot() = %v, %v, want false", existed, err)
	}

	data, err := store.LoadSnapshot("2048:bob")
	if err != nil || string(data) != "b" {
		t.Errorf("Other key affected: %q, %v", data, err)
	}
}

func TestStoreSaveAndRetrieveScores(t *testing.T) {
	store := openTestStore(t)

	for _, e := range []ScoreEntry{
		{Player: "local", Score: 100, MaxTile: 16, BoardSize: 4},
		{Player: "local", Score: 50, MaxTile: 8, BoardSize: 4},
		{Player: "alice", Score: 200, MaxTile: 32, BoardSize: 4},
		{Player: "local", Score: 500, MaxTile: 64, BoardSize: 5},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(4, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores for 4x4, got %d", len(scores))
	}

	// Check ordering (descending)
	if scores[0].Score != 200 || scores[0].Player != "alice" {
		t.Errorf("Expected first score 200 by alice, got %d by %s", scores[0].Score, scores[0].Player)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected last score 50, got %d", scores[2].Score)
	}

	all, err := store.TopScores(0, 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 || all[0].BoardSize != 5 {
		t.Errorf("Unexpected scores across sizes: %+v", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		if _, err := store.SaveScore(ScoreEntry{Player: "local", Score: int64(i * 10), BoardSize: 4}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(4, 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", scores[0].Score)
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore(4)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty table, got %d", high)
	}

	store.SaveScore(ScoreEntry{Player: "local", Score: 100, MaxTile: 16, BoardSize: 4})
	store.SaveScore(ScoreEntry{Player: "local", Score: 300, MaxTile: 64, BoardSize: 4})

	high, err = store.HighScore(4)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected 300, got %d", high)
	}

	stats, err := store.GetStats(4)
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestTile != 64 || stats.AvgScore != 200 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Player: "local", Score: 100, BoardSize: 4})
	store.SaveSnapshot("2048:state", []byte("{}"))

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores(0, 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	// Snapshots are untouched
	if data, _ := store.LoadSnapshot("2048:state"); data == nil {
		t.Error("ClearScores() should not delete snapshots")
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	data, err := m.LoadSnapshot("k")
	if err != nil || data != nil {
		t.Fatalf("LoadSnapshot() on empty store = %q, %v", data, err)
	}

	buf := []byte("first")
	m.SaveSnapshot("k", buf)
	buf[0] = 'F'

	data, _ = m.LoadSnapshot("k")
	if string(data) != "first" {
		t.Errorf("Store should keep its own copy, got %q", data)
	}

	if ok, _ := m.DeleteSnapshot("k"); !ok {
		t.Error("DeleteSnapshot() should report an existing key")
	}
	if data, _ := m.LoadSnapshot("k"); data != nil {
		t.Errorf("Expected nil after delete, got %q", data)
	}
}
