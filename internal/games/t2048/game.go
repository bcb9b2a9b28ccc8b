// Package t2048 implements the 2048 game controller: it owns the board, score and
// undo history, drives the board engine and persists a snapshot after every change.
package t2048

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/history"
)

// DefaultSnapshotKey is the store key used when none is configured.
const DefaultSnapshotKey = "2048:state"

// Status is the lifecycle state of a game.
type Status int

const (
	StatusNotStarted Status = iota
	StatusInProgress
	StatusWon  // target tile reached, play continues
	StatusLost // no move left; undo and restart remain available
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusInProgress:
		return "in progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Settings configures a Game.
type Settings struct {
	Size         int
	WinTile      board.Tile
	FourChance   float64
	HistoryLimit int
	UndoEnabled  bool
	Seed         int64 // 0 seeds from the clock
}

// DefaultSettings returns the classic 4x4 rules.
func DefaultSettings() Settings {
	return Settings{
		Size:         board.DefaultSize,
		WinTile:      2048,
		FourChance:   board.DefaultFourChance,
		HistoryLimit: history.DefaultLimit,
		UndoEnabled:  true,
	}
}

// Option customizes a Game.
type Option func(*Game)

// WithLogger sets the logger. Without it, log output is discarded.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithStore persists snapshots to store under key.
func WithStore(store SnapshotStore, key string) Option {
	return func(g *Game) {
		g.store = store
		if key != "" {
			g.key = key
		}
	}
}

// WithObserver reports every cell mutation to obs in addition to the built-in animator.
func WithObserver(obs board.Observer) Option {
	return func(g *Game) { g.observer = obs }
}

// WithRand replaces the random source used for spawning.
func WithRand(r board.Rand) Option {
	return func(g *Game) { g.spawner.Rand = r }
}

// MoveOutcome describes the result of Move.
type MoveOutcome struct {
	Moved      bool
	ScoreDelta int64
	Merges     int
	Spawned    *board.Change // nil when nothing was spawned
	Changes    []board.Change
	Status     Status
}

// Game is a single 2048 game. It is not safe for concurrent use.
type Game struct {
	settings Settings
	board    *board.Board
	history  *history.History
	spawner  *board.Spawner

	score        int64
	best         int64
	started      bool
	undoDisabled bool
	status       Status

	store    SnapshotStore
	key      string
	logger   *log.Logger
	observer board.Observer
	animator *Animator

	// Presentation state
	tick     uint64
	screenW  int
	screenH  int
	tooSmall bool
	notice   string
}

// New creates a game with a freshly spawned board. Nothing is persisted until the
// first state change; call Load to resume a stored game instead.
func New(s Settings, opts ...Option) (*Game, error) {
	if s.Size < board.MinSize || s.Size > board.MaxSize {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoardSize, s.Size)
	}
	if s.WinTile <= 0 {
		s.WinTile = 2048
	}

	seed := uint64(s.Seed)
	if s.Seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Game{
		settings:     s,
		history:      history.New(s.HistoryLimit),
		spawner:      board.NewSpawner(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), s.FourChance),
		undoDisabled: !s.UndoEnabled,
		key:          DefaultSnapshotKey,
		animator:     NewAnimator(),
		screenW:      80,
		screenH:      24,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	if g.undoDisabled {
		g.history.Disable()
	}

	g.reset(s.Size)
	g.checkScreenSize()
	return g, nil
}

// Board returns a copy of the current board.
func (g *Game) Board() *board.Board { return g.board.Clone() }

// Score returns the current score.
func (g *Game) Score() int64 { return g.score }

// Best returns the best score seen.
func (g *Game) Best() int64 { return g.best }

// Status returns the lifecycle state.
func (g *Game) Status() Status { return g.status }

// Started reports whether a move has been made in the current game.
func (g *Game) Started() bool { return g.started }

// UndoDisabled reports whether undo is off.
func (g *Game) UndoDisabled() bool { return g.undoDisabled }

// UndoAvailable returns the number of moves that can be undone.
func (g *Game) UndoAvailable() int { return g.history.Len() }

// Size returns the board size.
func (g *Game) Size() int { return g.board.Size() }

// Key returns the snapshot key.
func (g *Game) Key() string { return g.key }

// Animator returns the built-in animator.
func (g *Game) Animator() *Animator { return g.animator }

// NewGame starts over with a size x size board. The score and history are reset, the
// best score and undo setting are kept. Changing the size after the first move fails
// with ErrGameStarted.
func (g *Game) NewGame(size int) error {
	if size < board.MinSize || size > board.MaxSize {
		return fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}
	if g.started && size != g.board.Size() {
		return fmt.Errorf("%w: cannot resize to %d", ErrGameStarted, size)
	}

	g.reset(size)
	g.checkScreenSize()
	g.logger.Debug("new game", "size", size, "key", g.key)
	return g.persist()
}

// Restart starts a new game with the current board size.
func (g *Game) Restart() error {
	return g.NewGame(g.board.Size())
}

// SetBoardSize changes the board size before the first move. Setting the current
// size is a no-op.
func (g *Game) SetBoardSize(size int) error {
	if size < board.MinSize || size > board.MaxSize {
		return fmt.Errorf("%w: %d", ErrInvalidBoardSize, size)
	}
	if size == g.board.Size() {
		return nil
	}
	return g.NewGame(size)
}

func (g *Game) reset(size int) {
	b, err := board.New(size)
	if err != nil {
		// size is validated by every caller
		panic(err)
	}
	g.board = b
	g.score = 0
	g.started = false
	g.status = StatusNotStarted
	g.history.Clear()
	g.notice = ""

	g.animator.Reset()
	for range 2 {
		g.notify(g.spawner.SpawnRandomTile(g.board))
	}
}

// Move slides the board toward dir. A move that changes nothing returns an outcome
// with Moved false and leaves the game untouched. Once the game is lost Move returns
// ErrGameOver. A non-nil error wrapping ErrPersist still comes with a valid outcome.
func (g *Game) Move(dir board.Direction) (MoveOutcome, error) {
	if g.status == StatusLost {
		return MoveOutcome{Status: g.status}, ErrGameOver
	}

	entry := g.history.Begin(g.score, g.best)
	res := board.AttemptMove(g.board, dir)
	if !res.Moved {
		g.history.Discard(entry)
		return MoveOutcome{Status: g.status}, nil
	}

	entry.Record(res.Changes...)
	g.notify(res.Changes...)

	g.score += res.ScoreDelta
	if g.score > g.best {
		g.best = g.score
	}

	out := MoveOutcome{
		Moved:      true,
		ScoreDelta: res.ScoreDelta,
		Merges:     res.Merges,
		Changes:    res.Changes,
	}

	if board.HasEmptyCell(g.board) {
		c := g.spawner.SpawnRandomTile(g.board)
		entry.Record(c)
		g.notify(c)
		out.Spawned = &c
	}

	g.history.Commit(entry)
	g.started = true
	g.updateStatus()
	out.Status = g.status

	if g.status == StatusLost {
		g.logger.Info("game over", "key", g.key, "score", g.score, "max", board.MaxTile(g.board))
	}

	return out, g.persist()
}

// Undo reverts the last move, restoring board, score and best score exactly.
// It returns false when there is nothing to undo.
func (g *Game) Undo() (bool, error) {
	u, ok := g.history.UndoLast(g.board)
	if !ok {
		return false, nil
	}

	g.score = u.Score
	g.best = u.Best
	g.notify(u.Applied...)
	g.updateStatus()
	return true, g.persist()
}

// ToggleUndo switches undo on or off before the first move. Disabling drops the
// history for good.
func (g *Game) ToggleUndo() error {
	if g.started {
		return fmt.Errorf("%w: undo setting is locked", ErrGameStarted)
	}

	g.undoDisabled = !g.undoDisabled
	if g.undoDisabled {
		g.history.Disable()
	} else {
		g.history.Enable()
	}
	return g.persist()
}

// updateStatus derives the status from the board.
func (g *Game) updateStatus() {
	switch {
	case board.IsLost(g.board):
		g.status = StatusLost
	case board.MaxTile(g.board) >= g.settings.WinTile:
		g.status = StatusWon
	case g.started:
		g.status = StatusInProgress
	default:
		g.status = StatusNotStarted
	}
}

func (g *Game) notify(changes ...board.Change) {
	board.NotifyAll(g.animator, changes)
	board.NotifyAll(g.observer, changes)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Best:     g.best,
		GameOver: g.status == StatusLost,
		Won:      g.status == StatusWon,
	}
}

// Resize updates the screen dimensions used by Render.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Step advances the game by one tick, applying the actions in arrival order.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	var warning error
	for _, a := range in.Sequence() {
		if err := g.apply(a); err != nil {
			if errors.Is(err, ErrPersist) {
				warning = err
			}
			g.notice = noticeFor(err)
		}
	}
	g.animator.Update()

	return core.StepResult{State: g.State(), Warning: warning}
}

// apply performs one input action.
func (g *Game) apply(a core.Action) error {
	switch a {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if g.tooSmall {
			return nil
		}
		out, err := g.Move(directionFor(a))
		if out.Moved {
			g.notice = ""
		}
		return err
	case core.ActionUndo:
		ok, err := g.Undo()
		switch {
		case g.undoDisabled:
			g.notice = "Undo is off"
		case !ok:
			g.notice = "Nothing to undo"
		default:
			g.notice = ""
		}
		return err
	case core.ActionRestart:
		return g.Restart()
	case core.ActionToggleUndo:
		if err := g.ToggleUndo(); err != nil {
			return err
		}
		if g.undoDisabled {
			g.notice = "Undo disabled"
		} else {
			g.notice = "Undo enabled"
		}
		return nil
	case core.ActionGrow:
		return g.SetBoardSize(g.board.Size() + 1)
	case core.ActionShrink:
		return g.SetBoardSize(g.board.Size() - 1)
	}
	return nil
}

func directionFor(a core.Action) board.Direction {
	switch a {
	case core.ActionUp:
		return board.DirUp
	case core.ActionDown:
		return board.DirDown
	case core.ActionLeft:
		return board.DirLeft
	default:
		return board.DirRight
	}
}

// noticeFor turns an error into a one-line message for the HUD.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, ErrGameOver):
		return "No moves left"
	case errors.Is(err, ErrGameStarted):
		return "Locked after the first move"
	case errors.Is(err, ErrInvalidBoardSize):
		return fmt.Sprintf("Board size must be %d-%d", board.MinSize, board.MaxSize)
	case errors.Is(err, ErrPersist):
		return "Could not save game"
	default:
		return err.Error()
	}
}

// checkScreenSize checks if the screen is large enough for the board.
func (g *Game) checkScreenSize() {
	w, h := layoutSize(g.board.Size())
	g.tooSmall = g.screenW < w || g.screenH < h
}
