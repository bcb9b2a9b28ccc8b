package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/games/t2048"
	"github.com/vovakirdan/tui-2048/internal/games/t2048/board"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// ScoreRecorder records finished games. *storage.Store implements it.
type ScoreRecorder interface {
	SaveScore(e storage.ScoreEntry) (int64, error)
}

// ModelOptions configures a Model.
type ModelOptions struct {
	Player   string        // recorded with scores, "local" if empty
	TickRate int           // ticks per second, 60 if zero
	Scores   ScoreRecorder // nil disables score recording
	Logger   *log.Logger
	Width    int
	Height   int
}

// Model is the Bubble Tea model that drives one 2048 game.
type Model struct {
	game       *t2048.Game
	screen     *core.Screen
	opts       ModelOptions
	keys       KeyMap
	keyMapper  *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	width      int
	height     int
	quitting   bool
	scoreSaved bool // Whether score has been saved for the current loss
}

// NewModel creates a model for game. The game should already be loaded.
func NewModel(game *t2048.Game, opts ModelOptions) Model {
	if opts.Player == "" {
		opts.Player = "local"
	}
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 80, 24
	}

	keys := DefaultKeyMap()
	h := help.New()
	h.Width = opts.Width

	m := Model{
		game:       game,
		screen:     core.NewScreen(opts.Width, opts.Height),
		opts:       opts,
		keys:       keys,
		keyMapper:  NewKeyMapper(keys),
		help:       h,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		width:      opts.Width,
		height:     opts.Height,
		// a game resumed after a loss was already recorded
		scoreSaved: game.State().GameOver,
	}
	m.layout()
	return m
}

// layout sizes the game screen to the window minus the help footer.
func (m *Model) layout() {
	helpLines := 1
	if m.help.ShowAll {
		helpLines = len(m.keys.FullHelp()[0])
	}
	m.screen.Resize(m.width, max(m.height-helpLines, 1))
	m.game.Resize(m.screen.Width(), m.screen.Height())
	m.help.Width = m.width
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey buffers the action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	}

	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleResize processes window resize events. The game keeps its state.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.layout()
	return m, nil
}

// handleTick applies buffered input and advances animations.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Warning != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("game state not saved", "error", result.Warning)
	}

	// A new game re-arms score recording
	if !m.game.Started() {
		m.scoreSaved = false
	}

	// Save score on game over (once)
	if m.gameState.GameOver && !m.scoreSaved {
		m.recordScore()
		m.scoreSaved = true
	}

	return m, tickCmd(m.opts.TickRate)
}

// recordScore stores the final score of a lost game.
func (m Model) recordScore() {
	if m.opts.Scores == nil || m.gameState.Score == 0 {
		return
	}
	entry := storage.ScoreEntry{
		Player:    m.opts.Player,
		Score:     m.gameState.Score,
		MaxTile:   int64(board.MaxTile(m.game.Board())),
		BoardSize: m.game.Size(),
	}
	if _, err := m.opts.Scores.SaveScore(entry); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("could not save score", "player", m.opts.Player, "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".arcade", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("2048_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game returns the game driven by the model.
func (m Model) Game() *t2048.Game {
	return m.game
}

// Run starts the Bubble Tea program for game and blocks until the user quits.
func Run(game *t2048.Game, opts ModelOptions) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
