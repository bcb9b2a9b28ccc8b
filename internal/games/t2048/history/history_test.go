package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
)

func mustBoard(t *testing.T, s string) *board.Board {
	t.Helper()
	b, err := board.ParseBoard(s)
	require.NoError(t, err)
	return b
}

// play runs one move plus a spawn the way the controller does.
func play(t *testing.T, h *History, b *board.Board, dir board.Direction, spawnAt board.Pos, score int64) (int64, bool) {
	t.Helper()
	e := h.Begin(score, score)
	res := board.AttemptMove(b, dir)
	e.Record(res.Changes...)
	if !res.Moved {
		h.Discard(e)
		return score, false
	}
	spawn := board.Add(spawnAt, 2, b.Get(spawnAt))
	spawn.Spawned = true
	b.Apply(spawn)
	e.Record(spawn)
	h.Commit(e)
	return score + res.ScoreDelta, true
}

func TestUndoRestoresMergedBoard(t *testing.T) {
	h := New(DefaultLimit)
	b := mustBoard(t, `
		2 2 4 .
		. . . .
		4 . 4 8
		. . . .`)
	before := b.Clone()

	score, moved := play(t, h, b, board.DirLeft, board.Pos{X: 3, Y: 3}, 10)
	require.True(t, moved)
	assert.Equal(t, int64(10+4+8), score)
	assert.Equal(t, 1, h.Len())

	undo, ok := h.UndoLast(b)
	require.True(t, ok)
	assert.Equal(t, int64(10), undo.Score)
	assert.Equal(t, int64(10), undo.Best)
	assert.True(t, before.Equal(b), "got\n%s", b)
	assert.NotEmpty(t, undo.Applied)

	_, ok = h.UndoLast(b)
	assert.False(t, ok, "second undo should report nothing to undo")
}

func TestNoOpMoveNeverEntersHistory(t *testing.T) {
	h := New(DefaultLimit)
	b := mustBoard(t, `
		2 . . .
		4 . . .
		. . . .
		. . . .`)

	_, moved := play(t, h, b, board.DirLeft, board.Pos{X: 3, Y: 3}, 0)
	assert.False(t, moved)
	assert.Zero(t, h.Len())
}

func TestUndoAcrossSeveralMoves(t *testing.T) {
	h := New(DefaultLimit)
	b := mustBoard(t, `
		2 . . 2
		. 4 . .
		. . . .
		2 . . .`)

	var snapshots []*board.Board
	var scores []int64
	score := int64(0)
	spawns := []board.Pos{{X: 3, Y: 3}, {X: 2, Y: 2}, {X: 1, Y: 1}, {X: 0, Y: 3}}
	for i, dir := range []board.Direction{board.DirLeft, board.DirUp, board.DirRight, board.DirDown} {
		snap := b.Clone()
		var moved bool
		prev := score
		score, moved = play(t, h, b, dir, freeCell(b, spawns[i]), score)
		if moved {
			snapshots = append(snapshots, snap)
			scores = append(scores, prev)
		}
	}
	require.Equal(t, len(snapshots), h.Len())

	for i := len(snapshots) - 1; i >= 0; i-- {
		undo, ok := h.UndoLast(b)
		require.True(t, ok)
		assert.Equal(t, scores[i], undo.Score)
		assert.True(t, snapshots[i].Equal(b), "step %d: got\n%s want\n%s", i, b, snapshots[i])
	}
}

// freeCell returns p if empty, otherwise the first empty cell.
func freeCell(b *board.Board, p board.Pos) board.Pos {
	if b.Get(p).IsEmpty() {
		return p
	}
	return b.EmptyCells()[0]
}

func TestRetentionLimit(t *testing.T) {
	h := New(3)
	for i := range 5 {
		e := h.Begin(int64(i), int64(i))
		e.Record(board.Add(board.Pos{}, 2, board.Empty))
		h.Commit(e)
	}

	require.Equal(t, 3, h.Len())
	entries := h.Entries()
	assert.Equal(t, int64(2), entries[0].Score, "oldest entries should be dropped first")
	assert.Equal(t, int64(4), entries[2].Score)
}

func TestDisableClearsForGood(t *testing.T) {
	h := New(DefaultLimit)
	e := h.Begin(0, 0)
	e.Record(board.Add(board.Pos{}, 2, board.Empty))
	h.Commit(e)
	require.Equal(t, 1, h.Len())

	h.Disable()
	assert.True(t, h.Disabled())
	assert.Zero(t, h.Len())

	h.Commit(h.Begin(4, 4))
	assert.Zero(t, h.Len(), "commits are ignored while disabled")

	h.Enable()
	assert.Zero(t, h.Len(), "enabling must not recover cleared entries")
}

func TestRestoreTrimsToLimit(t *testing.T) {
	h := New(2)
	h.Restore([]Entry{{Score: 1}, {Score: 2}, {Score: 3}})
	entries := h.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(2), entries[0].Score)

	h.Disable()
	h.Restore([]Entry{{Score: 9}})
	assert.Zero(t, h.Len())
}

func TestNewUsesDefaultLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, New(0).Limit())
	assert.Equal(t, 7, New(7).Limit())
}
