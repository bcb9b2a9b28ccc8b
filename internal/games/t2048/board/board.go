// Package board implements the 2048 board engine: the N x N grid, the four-way
// slide-and-merge move, loss detection and random tile spawning.
//
// The engine is pure state-transition logic. Every cell mutation is described by a
// Change record so that callers can keep undo history and drive animations without
// the engine knowing about either.
package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Board size limits.
const (
	MinSize     = 2
	MaxSize     = 9
	DefaultSize = 4
)

// ErrInvalidSize is returned when a board size is outside [MinSize, MaxSize].
var ErrInvalidSize = errors.New("board: size out of range")

// Tile is the value held by one cell. Empty cells hold 0, occupied cells a power of two.
type Tile int64

// Empty is the value of a cell with no tile.
const Empty Tile = 0

// IsEmpty reports whether the cell holds no tile.
func (t Tile) IsEmpty() bool {
	return t == Empty
}

// Pos is a cell coordinate: X is the column, Y the row.
type Pos struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Board is a square grid of tiles stored row-major.
type Board struct {
	size  int
	cells []Tile
}

// New creates an empty board of the given size.
func New(size int) (*Board, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Board{
		size:  size,
		cells: make([]Tile, size*size),
	}, nil
}

// FromRows builds a board from a square matrix of values (0 = empty).
func FromRows(rows [][]Tile) (*Board, error) {
	b, err := New(len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != b.size {
			return nil, fmt.Errorf("board: row %d has %d cells, want %d", y, len(row), b.size)
		}
		copy(b.cells[y*b.size:], row)
	}
	return b, nil
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// InBounds reports whether p lies on the board.
func (b *Board) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < b.size && p.Y >= 0 && p.Y < b.size
}

// Get returns the tile at p.
func (b *Board) Get(p Pos) Tile {
	return b.cells[p.Y*b.size+p.X]
}

// Set places t at p.
func (b *Board) Set(p Pos, t Tile) {
	b.cells[p.Y*b.size+p.X] = t
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	c := &Board{size: b.size, cells: make([]Tile, len(b.cells))}
	copy(c.cells, b.cells)
	return c
}

// Equal reports whether both boards have the same size and tiles.
func (b *Board) Equal(other *Board) bool {
	if other == nil || b.size != other.size {
		return false
	}
	for i := range b.cells {
		if b.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Rows returns a copy of the board as a matrix.
func (b *Board) Rows() [][]Tile {
	rows := make([][]Tile, b.size)
	for y := range b.size {
		rows[y] = make([]Tile, b.size)
		copy(rows[y], b.cells[y*b.size:(y+1)*b.size])
	}
	return rows
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func (b *Board) EmptyCells() []Pos {
	var cells []Pos
	for y := range b.size {
		for x := range b.size {
			if b.cells[y*b.size+x].IsEmpty() {
				cells = append(cells, Pos{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasEmptyCell returns true if there's at least one empty cell.
func HasEmptyCell(b *Board) bool {
	for _, t := range b.cells {
		if t.IsEmpty() {
			return true
		}
	}
	return false
}

// HasAvailableMove returns true if any row or column holds two adjacent equal tiles.
// It inspects the board only; nothing is mutated.
func HasAvailableMove(b *Board) bool {
	n := b.size
	for y := range n {
		for x := range n {
			val := b.cells[y*n+x]
			if val.IsEmpty() {
				continue
			}
			// Check right neighbor
			if x < n-1 && b.cells[y*n+x+1] == val {
				return true
			}
			// Check bottom neighbor
			if y < n-1 && b.cells[(y+1)*n+x] == val {
				return true
			}
		}
	}
	return false
}

// CanMove returns true if any move is possible.
func CanMove(b *Board) bool {
	return HasEmptyCell(b) || HasAvailableMove(b)
}

// IsLost returns true if the board is full and no merge is available.
func IsLost(b *Board) bool {
	return !CanMove(b)
}

// MaxTile returns the maximum tile value on the board.
func MaxTile(b *Board) Tile {
	var maxVal Tile
	for _, t := range b.cells {
		if t > maxVal {
			maxVal = t
		}
	}
	return maxVal
}

// Sum returns the total of all tile values.
func Sum(b *Board) int64 {
	var total int64
	for _, t := range b.cells {
		total += int64(t)
	}
	return total
}

// String renders the board one row per line, with "." for empty cells.
func (b *Board) String() string {
	width := len(strconv.FormatInt(int64(MaxTile(b)), 10))
	var sb strings.Builder
	for y := range b.size {
		for x := range b.size {
			if x > 0 {
				sb.WriteByte(' ')
			}
			cell := "."
			if t := b.cells[y*b.size+x]; !t.IsEmpty() {
				cell = strconv.FormatInt(int64(t), 10)
			}
			sb.WriteString(strings.Repeat(" ", width-len(cell)))
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseBoard reads the text form produced by String. Rows are separated by newlines,
// cells by whitespace; "." or "0" marks an empty cell.
func ParseBoard(s string) (*Board, error) {
	var rows [][]Tile
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		row := make([]Tile, len(fields))
		for i, f := range fields {
			if f == "." {
				continue
			}
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("board: bad cell %q: %w", f, err)
			}
			if v < 0 || (v != 0 && v&(v-1) != 0) || v == 1 {
				return nil, fmt.Errorf("board: %d is not a tile value", v)
			}
			row[i] = Tile(v)
		}
		rows = append(rows, row)
	}
	return FromRows(rows)
}
