package t2048

import (
	"encoding/json"
	"fmt"

	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/history"
)

// SnapshotStore persists serialized games by key.
// LoadSnapshot returns nil data and a nil error when the key is absent.
type SnapshotStore interface {
	LoadSnapshot(key string) ([]byte, error)
	SaveSnapshot(key string, data []byte) error
}

// Snapshot is the persisted form of a game.
type Snapshot struct {
	BoardSize    int          `json:"boardSize"`
	Score        int64        `json:"score"`
	BestScore    int64        `json:"bestScore"`
	Board        [][]*int64   `json:"board"` // null for an empty cell
	Moves        []MoveRecord `json:"moves"`
	GameStarted  bool         `json:"gameStarted"`
	UndoDisabled bool         `json:"undoDisabled"`
}

// MoveRecord is one undoable move.
type MoveRecord struct {
	Score   int64          `json:"score"`
	Best    int64          `json:"best"`
	Changes []ChangeRecord `json:"changes"`
}

// ChangeRecord is one cell mutation of a move.
type ChangeRecord struct {
	Kind    string     `json:"kind"`
	X       int        `json:"x"`
	Y       int        `json:"y"`
	Value   int64      `json:"value,omitempty"`
	Prev    int64      `json:"prev,omitempty"`
	From    *board.Pos `json:"from,omitempty"`
	Source  int64      `json:"source,omitempty"`
	Spawned bool       `json:"spawned,omitempty"`
}

// Snapshot captures the complete game state.
func (g *Game) Snapshot() Snapshot {
	size := g.board.Size()
	s := Snapshot{
		BoardSize:    size,
		Score:        g.score,
		BestScore:    g.best,
		Board:        make([][]*int64, size),
		Moves:        []MoveRecord{},
		GameStarted:  g.started,
		UndoDisabled: g.undoDisabled,
	}

	for y, row := range g.board.Rows() {
		s.Board[y] = make([]*int64, size)
		for x, t := range row {
			if t.IsEmpty() {
				continue
			}
			v := int64(t)
			s.Board[y][x] = &v
		}
	}

	for _, e := range g.history.Entries() {
		rec := MoveRecord{Score: e.Score, Best: e.Best, Changes: make([]ChangeRecord, 0, len(e.Changes))}
		for _, c := range e.Changes {
			rec.Changes = append(rec.Changes, encodeChange(c))
		}
		s.Moves = append(s.Moves, rec)
	}

	return s
}

func encodeChange(c board.Change) ChangeRecord {
	r := ChangeRecord{
		Kind:    c.Kind.String(),
		X:       c.At.X,
		Y:       c.At.Y,
		Value:   int64(c.Value),
		Prev:    int64(c.Prev),
		Spawned: c.Spawned,
	}
	if c.Kind == board.ChangeMove {
		from := c.From
		r.From = &from
		r.Source = int64(c.Source)
	}
	return r
}

// Restore replaces the game with s. The snapshot is validated first; on error the
// game is left untouched.
func (g *Game) Restore(s Snapshot) error {
	if s.BoardSize < board.MinSize || s.BoardSize > board.MaxSize {
		return fmt.Errorf("%w: board size %d", ErrCorruptSnapshot, s.BoardSize)
	}
	if len(s.Board) != s.BoardSize {
		return fmt.Errorf("%w: %d rows for size %d", ErrCorruptSnapshot, len(s.Board), s.BoardSize)
	}
	if s.Score < 0 || s.BestScore < s.Score {
		return fmt.Errorf("%w: score %d, best %d", ErrCorruptSnapshot, s.Score, s.BestScore)
	}

	rows := make([][]board.Tile, s.BoardSize)
	for y, row := range s.Board {
		if len(row) != s.BoardSize {
			return fmt.Errorf("%w: row %d has %d cells", ErrCorruptSnapshot, y, len(row))
		}
		rows[y] = make([]board.Tile, s.BoardSize)
		for x, v := range row {
			if v == nil {
				continue
			}
			if !validTile(*v) {
				return fmt.Errorf("%w: tile %d at (%d,%d)", ErrCorruptSnapshot, *v, x, y)
			}
			rows[y][x] = board.Tile(*v)
		}
	}
	b, err := board.FromRows(rows)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	entries := make([]history.Entry, 0, len(s.Moves))
	for i, m := range s.Moves {
		e := history.Entry{Score: m.Score, Best: m.Best}
		for _, r := range m.Changes {
			c, err := decodeChange(r, b)
			if err != nil {
				return fmt.Errorf("%w: move %d: %v", ErrCorruptSnapshot, i, err)
			}
			e.Changes = append(e.Changes, c)
		}
		entries = append(entries, e)
	}

	g.board = b
	g.score = s.Score
	g.best = s.BestScore
	g.started = s.GameStarted
	g.undoDisabled = s.UndoDisabled
	g.history = history.New(g.settings.HistoryLimit)
	if g.undoDisabled {
		g.history.Disable()
	}
	g.history.Restore(entries)
	g.animator.Reset()
	g.notice = ""
	g.updateStatus()
	g.checkScreenSize()
	return nil
}

func decodeChange(r ChangeRecord, b *board.Board) (board.Change, error) {
	kind, err := board.ParseChangeKind(r.Kind)
	if err != nil {
		return board.Change{}, err
	}
	at := board.Pos{X: r.X, Y: r.Y}
	if !b.InBounds(at) {
		return board.Change{}, fmt.Errorf("position %s out of bounds", at)
	}
	c := board.Change{
		Kind:    kind,
		At:      at,
		Value:   board.Tile(r.Value),
		Prev:    board.Tile(r.Prev),
		Spawned: r.Spawned,
	}
	if kind == board.ChangeMove {
		if r.From == nil || !b.InBounds(*r.From) {
			return board.Change{}, fmt.Errorf("move at %s has no valid source", at)
		}
		c.From = *r.From
		c.Source = board.Tile(r.Source)
	}
	if err := checkChangeTiles(c); err != nil {
		return board.Change{}, err
	}
	return c, nil
}

// checkChangeTiles rejects tile values that undo would write onto the board.
func checkChangeTiles(c board.Change) error {
	switch c.Kind {
	case board.ChangeAdd:
		if !validTile(int64(c.Value)) || !validOrEmpty(c.Prev) {
			return fmt.Errorf("add at %s has tiles %d over %d", c.At, c.Value, c.Prev)
		}
	case board.ChangeRemove:
		if !c.Value.IsEmpty() || !validTile(int64(c.Prev)) {
			return fmt.Errorf("remove at %s has tiles %d over %d", c.At, c.Value, c.Prev)
		}
	case board.ChangeMove:
		if !validTile(int64(c.Value)) || !validTile(int64(c.Source)) || !validOrEmpty(c.Prev) {
			return fmt.Errorf("move to %s has tiles %d from %d over %d", c.At, c.Value, c.Source, c.Prev)
		}
		if c.IsMerge() && (c.Prev != c.Source || c.Value != c.Source*2) {
			return fmt.Errorf("merge at %s of %d and %d cannot give %d", c.At, c.Source, c.Prev, c.Value)
		}
	}
	return nil
}

func validTile(v int64) bool {
	return v >= 2 && v&(v-1) == 0
}

func validOrEmpty(t board.Tile) bool {
	return t.IsEmpty() || validTile(int64(t))
}

// MarshalSnapshot encodes the game as JSON.
func (g *Game) MarshalSnapshot() ([]byte, error) {
	return json.Marshal(g.Snapshot())
}

// UnmarshalSnapshot decodes data and restores it.
func (g *Game) UnmarshalSnapshot(data []byte) error {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return g.Restore(s)
}

// Load resumes the game stored under the snapshot key. When there is no snapshot a
// new game is started and saved. A snapshot that cannot be read or decoded is
// replaced by a new game and reported as an error; the game is playable either way.
func (g *Game) Load() error {
	if g.store == nil {
		return nil
	}

	data, err := g.store.LoadSnapshot(g.key)
	if err != nil {
		g.logger.Warn("could not load snapshot", "key", g.key, "error", err)
		return fmt.Errorf("%w: load %s: %v", ErrPersist, g.key, err)
	}
	if data == nil {
		g.logger.Debug("no snapshot, starting new game", "key", g.key)
		return g.NewGame(g.board.Size())
	}

	if err := g.UnmarshalSnapshot(data); err != nil {
		g.logger.Warn("discarding snapshot", "key", g.key, "error", err)
		if perr := g.NewGame(g.board.Size()); perr != nil {
			return perr
		}
		return err
	}

	g.logger.Debug("restored snapshot", "key", g.key, "size", g.board.Size(), "score", g.score)
	return nil
}

// persist writes the snapshot. Failures are logged and returned wrapped in ErrPersist.
func (g *Game) persist() error {
	if g.store == nil {
		return nil
	}

	data, err := g.MarshalSnapshot()
	if err != nil {
		g.logger.Error("could not encode snapshot", "key", g.key, "error", err)
		return fmt.Errorf("%w: encode: %v", ErrPersist, err)
	}
	if err := g.store.SaveSnapshot(g.key, data); err != nil {
		g.logger.Warn("could not save snapshot", "key", g.key, "error", err)
		return fmt.Errorf("%w: save %s: %v", ErrPersist, g.key, err)
	}
	return nil
}
