package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// KeyMap defines the key bindings for the game screen.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Undo       key.Binding
	Restart    key.Binding
	ToggleUndo key.Binding
	Grow       key.Binding
	Shrink     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Undo, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Undo, k.Restart, k.ToggleUndo},
		{k.Grow, k.Shrink, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings: arrows, WASD and vim keys.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w", "k"),
			key.WithHelp("↑/w/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓/s/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/a/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→/d/l", "right"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "backspace"),
			key.WithHelp("u", "undo"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "new game"),
		),
		ToggleUndo: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "toggle undo"),
		),
		Grow: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "bigger board"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "smaller board"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a new key mapper with the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Up):
		return core.ActionUp, false
	case key.Matches(msg, km.keys.Down):
		return core.ActionDown, false
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.keys.Undo):
		return core.ActionUndo, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	case key.Matches(msg, km.keys.ToggleUndo):
		return core.ActionToggleUndo, false
	case key.Matches(msg, km.keys.Grow):
		return core.ActionGrow, false
	case key.Matches(msg, km.keys.Shrink):
		return core.ActionShrink, false
	}

	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone && !isQuit {
		frame.Set(action)
	}
	return isQuit
}
