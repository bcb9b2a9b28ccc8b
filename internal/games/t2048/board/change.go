package board

import "fmt"

// ChangeKind identifies the kind of cell mutation a Change describes.
type ChangeKind uint8

const (
	ChangeAdd    ChangeKind = iota + 1 // a tile appears at At
	ChangeRemove                       // the tile at At disappears
	ChangeMove                         // the tile at From moves to At, possibly merging
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeAdd:
		return "add"
	case ChangeRemove:
		return "remove"
	case ChangeMove:
		return "move"
	default:
		return "unknown"
	}
}

// ParseChangeKind is the inverse of ChangeKind.String.
func ParseChangeKind(s string) (ChangeKind, error) {
	switch s {
	case "add":
		return ChangeAdd, nil
	case "remove":
		return ChangeRemove, nil
	case "move":
		return ChangeMove, nil
	}
	return 0, fmt.Errorf("board: unknown change kind %q", s)
}

// Change records one atomic cell mutation together with everything needed to revert it.
type Change struct {
	Kind ChangeKind
	At   Pos // cell written
	From Pos // source cell, ChangeMove only
	// Value is the tile written at At (Empty for ChangeRemove).
	Value Tile
	// Prev is the tile At held before the change. For a merge this is the partner tile.
	Prev Tile
	// Source is the tile that left From, ChangeMove only.
	Source Tile
	// Spawned marks an Add produced by random spawning.
	Spawned bool
}

// Add describes a tile appearing at p over prev.
func Add(p Pos, value, prev Tile) Change {
	return Change{Kind: ChangeAdd, At: p, Value: value, Prev: prev}
}

// Remove describes the tile prev disappearing from p.
func Remove(p Pos, prev Tile) Change {
	return Change{Kind: ChangeRemove, At: p, Prev: prev}
}

// Move describes source sliding from one cell to another. value is the tile that ends
// up at to and prev the tile it replaced there.
func Move(from, to Pos, source, value, prev Tile) Change {
	return Change{Kind: ChangeMove, At: to, From: from, Value: value, Prev: prev, Source: source}
}

// IsMerge reports whether the change combined two tiles.
func (c Change) IsMerge() bool {
	return c.Kind == ChangeMove && !c.Prev.IsEmpty()
}

func (c Change) String() string {
	switch c.Kind {
	case ChangeAdd:
		return fmt.Sprintf("add %d at %s", c.Value, c.At)
	case ChangeRemove:
		return fmt.Sprintf("remove %d at %s", c.Prev, c.At)
	case ChangeMove:
		if c.IsMerge() {
			return fmt.Sprintf("merge %d from %s into %s = %d", c.Source, c.From, c.At, c.Value)
		}
		return fmt.Sprintf("move %d from %s to %s", c.Source, c.From, c.At)
	}
	return "unknown change"
}

// Apply executes c against the board.
func (b *Board) Apply(c Change) {
	switch c.Kind {
	case ChangeAdd:
		b.Set(c.At, c.Value)
	case ChangeRemove:
		b.Set(c.At, Empty)
	case ChangeMove:
		b.Set(c.From, Empty)
		b.Set(c.At, c.Value)
	}
}

// Revert undoes c, restoring every cell it touched.
func (b *Board) Revert(c Change) {
	switch c.Kind {
	case ChangeAdd, ChangeRemove:
		b.Set(c.At, c.Prev)
	case ChangeMove:
		b.Set(c.At, c.Prev)
		b.Set(c.From, c.Source)
	}
}

// Inverse returns the changes that, applied forward, undo c. Used to describe an undo
// to a render observer.
func (c Change) Inverse() []Change {
	switch c.Kind {
	case ChangeAdd:
		if c.Prev.IsEmpty() {
			return []Change{Remove(c.At, c.Value)}
		}
		return []Change{Add(c.At, c.Prev, c.Value)}
	case ChangeRemove:
		return []Change{Add(c.At, c.Prev, Empty)}
	case ChangeMove:
		if c.IsMerge() {
			return []Change{Add(c.At, c.Prev, c.Value), Add(c.From, c.Source, Empty)}
		}
		return []Change{Move(c.At, c.From, c.Value, c.Source, Empty)}
	}
	return nil
}

// Observer receives every cell mutation as it happens. Implementations must not
// modify the board; the engine does not wait for them.
type Observer interface {
	TileCleared(p Pos)
	TileSet(p Pos, value Tile, spawned bool)
	TileMoved(from, to Pos, value Tile)
}

// Notify reports c to obs. A nil observer is ignored.
func Notify(obs Observer, c Change) {
	if obs == nil {
		return
	}
	switch c.Kind {
	case ChangeAdd:
		obs.TileSet(c.At, c.Value, c.Spawned)
	case ChangeRemove:
		obs.TileCleared(c.At)
	case ChangeMove:
		obs.TileMoved(c.From, c.At, c.Value)
	}
}

// NotifyAll reports changes in order.
func NotifyAll(obs Observer, changes []Change) {
	for _, c := range changes {
		Notify(obs, c)
	}
}
