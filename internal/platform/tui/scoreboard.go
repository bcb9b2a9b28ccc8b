package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show board size sidebar
	sidebarWidth       = 20  // Width of board size sidebar
	maxScores          = 100 // Max scores to load
)

// ScoreSource is what the scoreboard reads. *storage.Store implements it.
type ScoreSource interface {
	TopScores(boardSize, limit int) ([]storage.ScoreEntry, error)
}

// scoreTab is one board size filter; size 0 shows every size.
type scoreTab struct {
	size  int
	title string
}

func scoreTabs() []scoreTab {
	tabs := []scoreTab{{size: 0, title: "All sizes"}}
	for size := 2; size <= 9; size++ {
		tabs = append(tabs, scoreTab{size: size, title: fmt.Sprintf("%dx%d", size, size)})
	}
	return tabs
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev size"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next size"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next size"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev size"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	tabs        []scoreTab
	tabCursor   int // Currently selected tab index
	store       ScoreSource
	scores      []storage.ScoreEntry
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show board size sidebar
}

// NewScoreboardModel creates a new scoreboard model starting on the tab for boardSize.
func NewScoreboardModel(store ScoreSource, boardSize, width, height int) ScoreboardModel {
	tabs := scoreTabs()
	cursor := 0
	for i, t := range tabs {
		if t.size == boardSize {
			cursor = i
		}
	}

	keys := DefaultScoreboardKeyMap()
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		tabs:        tabs,
		tabCursor:   cursor,
		store:       store,
		keys:        keys,
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	// Initialize table
	m.table = m.createTable()

	m.loadScores()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Tile", Width: 6},
		{Title: "Size", Width: 5},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 12},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Give spare width to the player column
	if spare := tableWidth - 58; spare > 0 {
		columns[4].Width += min(spare, 10)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(m.height-8), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores loads scores for the selected tab.
func (m *ScoreboardModel) loadScores() {
	m.scores, m.loadErr = nil, nil
	if m.store != nil {
		m.scores, m.loadErr = m.store.TopScores(m.tabs[m.tabCursor].size, maxScores)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.MaxTile),
			fmt.Sprintf("%dx%d", s.BoardSize, s.BoardSize),
			s.Player,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)

	// Reset cursor to top
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextGame), key.Matches(msg, m.keys.Right):
			m.tabCursor = (m.tabCursor + 1) % len(m.tabs)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.PrevGame), key.Matches(msg, m.keys.Left):
			m.tabCursor = (m.tabCursor - 1 + len(m.tabs)) % len(m.tabs)
			m.loadScores()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			// Pass to table for scrolling
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Pass other messages to table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("2048 HIGH SCORES - %s", m.tabs[m.tabCursor].title)

	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		// Wide layout: sidebar + table
		b.WriteString(m.renderWideLayout())
	} else {
		// Narrow layout: game tabs + table
		b.WriteString(m.renderNarrowLayout())
	}

	// Help bar
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the scoreboard with sidebar for board size selection.
func (m ScoreboardModel) renderWideLayout() string {
	// Sidebar (game list)
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Board\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, t := range m.tabs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.tabCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + t.title))
		sidebar.WriteString("\n")
	}

	sidebarRendered := sidebarStyle.Render(sidebar.String())

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	tableContent := m.renderTableContent()
	tableRendered := tableStyle.Render(tableContent)

	// Join horizontally
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebarRendered, "  ", tableRendered)
}

// renderNarrowLayout renders the scoreboard with size tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	// Size tabs (horizontal)
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.tabs))
	for i, t := range m.tabs {
		if i == m.tabCursor {
			tabs[i] = activeTabStyle.Render(t.title)
		} else {
			tabs[i] = tabStyle.Render(" " + t.title + " ")
		}
	}

	// Fall back to arrows if the tabs do not fit
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.tabs[m.tabCursor].title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	// Table
	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if m.loadErr != nil {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Padding(2, 4).
			Render("Could not load scores:\n" + m.loadErr.Error())
	}

	if len(m.scores) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user left with the back key rather than quit.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user pressed back, false if quitting.
func RunScoreboard(store ScoreSource, boardSize, width, height int) (goBack bool, err error) {
	model := NewScoreboardModel(store, boardSize, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
