package t2048

import "github.com/vovakirdan/tui-2048/internal/games/t2048/board"

// Animation constants
const (
	slideAnimationDuration = 8 // ~133ms at 60fps
	popAnimationDuration   = 6 // ~100ms at 60fps
)

// AnimationPhase represents the current phase of animation.
type AnimationPhase int

const (
	PhaseNone AnimationPhase = iota
	PhaseSlide
	PhasePop
)

// TileAnimation represents an animated tile.
type TileAnimation struct {
	Value   board.Tile
	From    board.Pos
	To      board.Pos
	Spawned bool // new tile (for pop effect)
}

// Animator turns board change events into slide and pop animations advanced per tick.
// It implements board.Observer. The game never waits for it: the board is already in
// its final state when the events arrive.
type Animator struct {
	slides     []TileAnimation
	pops       []TileAnimation
	phase      AnimationPhase
	ticks      int
	collecting bool
}

var _ board.Observer = (*Animator)(nil)

// NewAnimator creates an idle animator.
func NewAnimator() *Animator {
	return &Animator{}
}

// begin starts a new batch on the first event after an Update.
func (a *Animator) begin() {
	if a.collecting {
		return
	}
	a.slides = a.slides[:0]
	a.pops = a.pops[:0]
	a.phase = PhaseNone
	a.ticks = 0
	a.collecting = true
}

// TileCleared implements board.Observer. The renderer draws the final board, so a
// cleared cell needs no animation.
func (a *Animator) TileCleared(board.Pos) {
	a.begin()
}

// TileSet implements board.Observer.
func (a *Animator) TileSet(p board.Pos, value board.Tile, spawned bool) {
	a.begin()
	a.pops = append(a.pops, TileAnimation{Value: value, From: p, To: p, Spawned: spawned})
}

// TileMoved implements board.Observer.
func (a *Animator) TileMoved(from, to board.Pos, value board.Tile) {
	a.begin()
	a.slides = append(a.slides, TileAnimation{Value: value, From: from, To: to})
}

// Update advances the animation by one tick.
// Returns true if animation is still in progress.
func (a *Animator) Update() bool {
	if a.collecting {
		a.collecting = false
		a.ticks = 0
		switch {
		case len(a.slides) > 0:
			a.phase = PhaseSlide
		case len(a.pops) > 0:
			a.phase = PhasePop
		default:
			a.phase = PhaseNone
		}
	}
	if a.phase == PhaseNone {
		return false
	}

	a.ticks++
	if a.ticks < a.duration() {
		return true
	}

	// Slide finished, pop the tiles that appeared during the move
	if a.phase == PhaseSlide && len(a.pops) > 0 {
		a.slides = a.slides[:0]
		a.phase = PhasePop
		a.ticks = 0
		return true
	}

	a.Reset()
	return false
}

func (a *Animator) duration() int {
	if a.phase == PhaseSlide {
		return slideAnimationDuration
	}
	return popAnimationDuration
}

// Reset drops every pending animation.
func (a *Animator) Reset() {
	a.slides = a.slides[:0]
	a.pops = a.pops[:0]
	a.phase = PhaseNone
	a.ticks = 0
	a.collecting = false
}

// Active reports whether an animation is running or queued.
func (a *Animator) Active() bool {
	return a.collecting || a.phase != PhaseNone
}

// Phase returns the current phase.
func (a *Animator) Phase() AnimationPhase {
	return a.phase
}

// Progress returns the eased progress of the current phase, 0.0 to 1.0.
func (a *Animator) Progress() float64 {
	if a.phase == PhaseNone {
		return 1
	}
	t := float64(a.ticks) / float64(a.duration())
	if t > 1 {
		t = 1
	}
	return easeOutQuad(t)
}

// Slides returns the tiles currently sliding.
func (a *Animator) Slides() []TileAnimation {
	if a.phase != PhaseSlide {
		return nil
	}
	return a.slides
}

// Pops returns the tiles appearing. During the slide phase they are pending.
func (a *Animator) Pops() []TileAnimation {
	if a.phase == PhaseNone {
		return nil
	}
	return a.pops
}

// easeOutQuad provides smooth deceleration for animation.
func easeOutQuad(t float64) float64 {
	return t * (2 - t)
}

// Position calculates the current position during animation, in cells.
func (t TileAnimation) Position(progress float64) (x, y float64) {
	x = float64(t.From.X) + float64(t.To.X-t.From.X)*progress
	y = float64(t.From.Y) + float64(t.To.Y-t.From.Y)*progress
	return x, y
}
