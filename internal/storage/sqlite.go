// Package storage provides SQLite-based persistence for saved games and scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
// It is safe for concurrent use; every SSH session shares one Store.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished game.
type ScoreEntry struct {
	ID        int64
	Player    string
	Score     int64
	MaxTile   int64
	BoardSize int
	CreatedAt time.Time
}

// SnapshotInfo describes a saved game without its payload.
type SnapshotInfo struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS snapshots (
			key TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			max_tile INTEGER NOT NULL DEFAULT 0,
			board_size INTEGER NOT NULL DEFAULT 4,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(board_size, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSnapshot stores data under key, replacing any previous snapshot.
func (s *Store) SaveSnapshot(key string, data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save snapshot %s: %w", key, err)
	}
	return nil
}

// LoadSnapshot returns the snapshot stored under key.
// Returns nil, nil if there is none.
func (s *Store) LoadSnapshot(key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow("SELECT data FROM snapshots WHERE key = ?", key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot load snapshot %s: %w", key, err)
	}
	return data, nil
}

// DeleteSnapshot removes the snapshot stored under key.
// Reports whether a snapshot existed.
func (s *Store) DeleteSnapshot(key string) (bool, error) {
	res, err := s.db.Exec("DELETE FROM snapshots WHERE key = ?", key)
	if err != nil {
		return false, fmt.Errorf("storage: cannot delete snapshot %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n > 0, nil
}

// ListSnapshots returns every saved game, most recently updated first.
func (s *Store) ListSnapshots() ([]SnapshotInfo, error) {
	rows, err := s.db.Query(
		`SELECT key, LENGTH(data), updated_at
		 FROM snapshots
		 ORDER BY updated_at DESC, key`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query snapshots: %w", err)
	}
	defer rows.Close()

	var infos []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		var updatedAt any
		if err := rows.Scan(&info.Key, &info.Size, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		info.UpdatedAt = parseTime(updatedAt)
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return infos, nil
}

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (player, score, max_tile, board_size) VALUES (?, ?, ?, ?)",
		e.Player, e.Score, e.MaxTile, e.BoardSize,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for a board size, or for every size when
// boardSize is 0. Results are ordered by score descending.
func (s *Store) TopScores(boardSize, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, max_tile, board_size, created_at
		 FROM scores
		 WHERE ? = 0 OR board_size = ?
		 ORDER BY score DESC, id
		 LIMIT ?`,
		boardSize, boardSize, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.MaxTile, &e.BoardSize, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for a board size (0 for every size).
// Returns 0 if no scores exist.
func (s *Store) HighScore(boardSize int) (int64, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE ? = 0 OR board_size = ?",
		boardSize, boardSize,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return score.Int64, nil
}

// ClearScores deletes every recorded score.
func (s *Store) ClearScores() error {
	_, err := s.db.Exec("DELETE FROM scores")
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over finished games.
type Stats struct {
	BoardSize  int
	GamesCount int
	HighScore  int64
	BestTile   int64
	AvgScore   float64
	LastPlayed time.Time
}

// GetStats retrieves aggregated statistics for a board size (0 for every size).
func (s *Store) GetStats(boardSize int) (*Stats, error) {
	stats := &Stats{BoardSize: boardSize}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(MAX(max_tile), 0), COALESCE(AVG(score), 0)
		 FROM scores WHERE ? = 0 OR board_size = ?`,
		boardSize, boardSize,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.BestTile, &stats.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	// Get last played
	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE ? = 0 OR board_size = ? ORDER BY created_at DESC LIMIT 1`,
		boardSize, boardSize,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles both time.Time and string datetime values from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
