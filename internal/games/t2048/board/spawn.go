package board

import "errors"

// ErrBoardExhausted is the panic value raised when a tile is spawned on a full board.
// Callers must check HasEmptyCell first; reaching it is a programming error.
var ErrBoardExhausted = errors.New("board: no empty cell to spawn into")

// DefaultFourChance is the probability that a spawned tile is a 4 instead of a 2.
const DefaultFourChance = 0.3

// Rand is what the spawner needs out of math/rand/v2.
// Abstracted so tests can script the draws.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// Spawner places random tiles.
type Spawner struct {
	Rand       Rand
	FourChance float64
}

// NewSpawner creates a spawner drawing from r.
func NewSpawner(r Rand, fourChance float64) *Spawner {
	return &Spawner{Rand: r, FourChance: fourChance}
}

// SpawnRandomTile picks a uniformly random empty cell by rejection sampling and
// places a 2 there, or a 4 with probability FourChance. It returns the Add record.
func (s *Spawner) SpawnRandomTile(b *Board) Change {
	if !HasEmptyCell(b) {
		panic(ErrBoardExhausted)
	}

	p := Pos{X: s.Rand.IntN(b.size), Y: s.Rand.IntN(b.size)}
	for !b.Get(p).IsEmpty() {
		p = Pos{X: s.Rand.IntN(b.size), Y: s.Rand.IntN(b.size)}
	}

	value := Tile(2)
	if s.Rand.Float64() < s.FourChance {
		value = 4
	}

	c := Add(p, value, Empty)
	c.Spawned = true
	b.Apply(c)
	return c
}
