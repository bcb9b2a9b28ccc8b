package board

import "fmt"

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists all four directions in a stable order.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a direction name to a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("board: unknown direction %q", s)
}

// cell maps a line index and a distance from the target wall to a board coordinate.
// Every direction reduces to "compact toward offset 0" through this transform.
func (d Direction) cell(size, line, offset int) Pos {
	switch d {
	case DirUp:
		return Pos{X: line, Y: offset}
	case DirDown:
		return Pos{X: line, Y: size - 1 - offset}
	case DirLeft:
		return Pos{X: offset, Y: line}
	default:
		return Pos{X: size - 1 - offset, Y: line}
	}
}

// MoveResult describes the outcome of AttemptMove.
type MoveResult struct {
	Changes    []Change // every cell mutation, in the order it happened
	ScoreDelta int64    // sum of all merged tile values
	Merges     int      // number of merges
	Moved      bool     // whether any tile slid or merged
}

// AttemptMove slides and merges every line of b toward the wall in direction dir,
// mutating b in place. If nothing can move the board is left untouched and Moved is
// false.
func AttemptMove(b *Board, dir Direction) MoveResult {
	var res MoveResult
	line := make([]Pos, b.size)
	locked := make([]bool, b.size)

	for l := range b.size {
		for i := range line {
			line[i] = dir.cell(b.size, l, i)
			locked[i] = false
		}
		compactLine(b, line, locked, &res)
	}

	return res
}

// compactLine slides and merges one line toward line[0].
//
// Cells are visited from the wall outward. Each tile looks back toward the wall for
// the nearest occupied cell: an equal, unlocked tile absorbs it and becomes locked;
// anything else stops it immediately behind the blocker. A tile therefore merges at
// most once per move and never passes another tile.
func compactLine(b *Board, line []Pos, locked []bool, res *MoveResult) {
	for k := 1; k < len(line); k++ {
		val := b.Get(line[k])
		if val.IsEmpty() {
			continue
		}

		target := k
		merged := false
		for i := k - 1; i >= 0; i-- {
			other := b.Get(line[i])
			if other.IsEmpty() {
				target = i
				continue
			}
			if other == val && !locked[i] {
				// Merge with previous tile
				c := Move(line[k], line[i], val, val*2, other)
				b.Apply(c)
				locked[i] = true
				res.Changes = append(res.Changes, c)
				res.ScoreDelta += int64(c.Value)
				res.Merges++
				res.Moved = true
				merged = true
			}
			break
		}

		if !merged && target != k {
			// Slide into the last free cell
			c := Move(line[k], line[target], val, val, Empty)
			b.Apply(c)
			res.Changes = append(res.Changes, c)
			res.Moved = true
		}
	}
}
