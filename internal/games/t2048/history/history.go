// Package history records the minimal diff of every accepted 2048 move so that moves
// can be undone exactly.
package history

import "github.com/vovakirdan/tui-2048/internal/games/t2048/board"

// DefaultLimit is the number of moves kept for undo.
const DefaultLimit = 25

// Entry is the record of one move: the scores before it and every cell change it made,
// in the order they happened.
type Entry struct {
	Score   int64
	Best    int64
	Changes []board.Change
}

// Record appends changes to the entry.
func (e *Entry) Record(changes ...board.Change) {
	e.Changes = append(e.Changes, changes...)
}

// Undo is the result of UndoLast.
type Undo struct {
	Score int64 // score before the undone move
	Best  int64 // best score before the undone move
	// Applied lists the forward changes that took the board back, in application order.
	Applied []board.Change
}

// History is a bounded stack of move entries.
type History struct {
	entries  []Entry
	limit    int
	disabled bool
}

// New creates a history keeping at most limit entries. limit <= 0 uses DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Begin opens a speculative entry for a move about to be made.
func (h *History) Begin(score, best int64) *Entry {
	return &Entry{Score: score, Best: best}
}

// Commit appends e and drops the oldest entries beyond the limit.
// It does nothing while history is disabled.
func (h *History) Commit(e *Entry) {
	if h.disabled || e == nil {
		return
	}
	h.entries = append(h.entries, *e)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = append(h.entries[:0], h.entries[over:]...)
	}
}

// Discard drops a speculative entry. Entries are not stored until committed, so this
// only documents intent at the call site.
func (h *History) Discard(e *Entry) {
	if e != nil {
		e.Changes = nil
	}
}

// UndoLast pops the newest entry and reverts its changes on b in reverse order.
// It returns false when there is nothing to undo.
func (h *History) UndoLast(b *board.Board) (Undo, bool) {
	if len(h.entries) == 0 {
		return Undo{}, false
	}

	last := h.entries[len(h.entries)-1]
	h.entries = h.entries[:len(h.entries)-1]

	undo := Undo{Score: last.Score, Best: last.Best}
	for i := len(last.Changes) - 1; i >= 0; i-- {
		c := last.Changes[i]
		b.Revert(c)
		undo.Applied = append(undo.Applied, c.Inverse()...)
	}
	return undo, true
}

// Clear drops every entry.
func (h *History) Clear() {
	h.entries = nil
}

// Disable clears the history and stops recording. Cleared entries are gone for good.
func (h *History) Disable() {
	h.disabled = true
	h.entries = nil
}

// Enable resumes recording. Nothing cleared by Disable comes back.
func (h *History) Enable() {
	h.disabled = false
}

// Disabled reports whether recording is off.
func (h *History) Disabled() bool {
	return h.disabled
}

// Len returns the number of undoable moves.
func (h *History) Len() int {
	return len(h.entries)
}

// Limit returns the retention bound.
func (h *History) Limit() int {
	return h.limit
}

// Entries returns a copy of the stored entries, oldest first.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

// Restore replaces the stored entries, keeping only the newest ones within the limit.
// It is a no-op while history is disabled.
func (h *History) Restore(entries []Entry) {
	if h.disabled {
		return
	}
	if over := len(entries) - h.limit; over > 0 {
		entries = entries[over:]
	}
	h.entries = append([]Entry(nil), entries...)
}
