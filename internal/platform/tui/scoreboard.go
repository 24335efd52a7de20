package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tankbattle/internal/registry"
	"github.com/vovakirdan/tui-tankbattle/internal/storage"
)

const (
	minWidthForSidebar = 80
	sidebarWidth       = 22
	maxRows            = 100
)

// AgentBoardID selects the headless episode board.
const AgentBoardID = "agents"

// board is one tab of the scoreboard: a game mode or the agent runs.
type board struct {
	ID    string
	Title string
}

func (b board) agents() bool {
	return b.ID == AgentBoardID
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextBoard key.Binding
	PrevBoard key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextBoard, k.PrevBoard, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBoard, k.PrevBoard},
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
		NextBoard: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next board"),
		),
		PrevBoard: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev board"),
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

// ScoreboardModel shows human high scores per mode and recent agent runs.
type ScoreboardModel struct {
	boards      []board
	cursor      int
	store       *storage.Store
	rows        []table.Row
	stats       string
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard. store may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	games := registry.List()
	boards := make([]board, 0, len(games)+1)
	for _, g := range games {
		boards = append(boards, board{ID: g.ID, Title: g.Title})
	}
	boards = append(boards, board{ID: AgentBoardID, Title: "Agent runs"})

	m := ScoreboardModel{
		boards:      boards,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.load()
	return m
}

func (m *ScoreboardModel) current() board {
	return m.boards[m.cursor]
}

func (m *ScoreboardModel) columns() []table.Column {
	if m.current().agents() {
		return []table.Column{
			{Title: "Agent", Width: 8},
			{Title: "Seed", Width: 6},
			{Title: "Frames", Width: 8},
			{Title: "Score", Width: 7},
			{Title: "End", Width: 22},
		}
	}

	dateWidth := 18
	if avail := m.tableWidth() - 22; avail > dateWidth {
		dateWidth = min(avail, 20)
	}
	return []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 12},
		{Title: "Date", Width: dateWidth},
	}
}

func (m *ScoreboardModel) tableWidth() int {
	w := m.width - 4
	if m.showSidebar {
		w -= sidebarWidth + 3
	}
	return w
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-9)),
	)

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
	t.SetRows(m.rows)
	return t
}

// load reads the rows of the current board and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.rows, m.stats = nil, ""
	if m.store != nil {
		if m.current().agents() {
			m.loadEpisodes()
		} else {
			m.loadScores(m.current().ID)
		}
	}
	m.table = m.newTable()
	m.table.GotoTop()
}

func (m *ScoreboardModel) loadScores(gameID string) {
	scores, err := m.store.TopScores(gameID, maxRows)
	if err != nil {
		return
	}
	for i, s := range scores {
		m.rows = append(m.rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		})
	}
	if stats, err := m.store.GetGameStats(gameID); err == nil && stats.GamesCount > 0 {
		m.stats = fmt.Sprintf("%d games  avg %.1f", stats.GamesCount, stats.AvgScore)
	}
}

func (m *ScoreboardModel) loadEpisodes() {
	eps, err := m.store.RecentEpisodes("", maxRows)
	if err != nil {
		return
	}
	for _, ep := range eps {
		end := ep.Reason
		if !ep.Terminal {
			end = "step limit"
		}
		m.rows = append(m.rows, table.Row{
			ep.Agent,
			fmt.Sprintf("%d", ep.Seed),
			fmt.Sprintf("%d", ep.Frames),
			fmt.Sprintf("%d", ep.Score),
			end,
		})
	}
	if len(eps) > 0 {
		m.stats = fmt.Sprintf("%d recent episodes", len(eps))
	}
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

		case key.Matches(msg, m.keys.NextBoard):
			m.cursor = (m.cursor + 1) % len(m.boards)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevBoard):
			m.cursor = (m.cursor + len(m.boards) - 1) % len(m.boards)
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.newTable()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	title := "HIGH SCORES - " + m.current().Title
	if m.current().agents() {
		title = "AGENT RUNS"
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if m.stats != "" {
		b.WriteString("\n")
		b.WriteString(muted.Render(m.stats))
	}
	b.WriteString("\n")
	b.WriteString(muted.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

func (m ScoreboardModel) renderWideLayout() string {
	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, bd := range m.boards {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		name := bd.Title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	left := panelStyle.Width(sidebarWidth).Render(sidebar.String())
	right := panelStyle.Render(m.renderTableContent())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.boards))
	for i, bd := range m.boards {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(bd.Title)
		} else {
			tabs[i] = tabStyle.Render(" " + bd.Title + " ")
		}
	}
	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", m.current().Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(panelStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		msg := "No scores recorded yet.\nPlay a game to set a high score!"
		if m.current().agents() {
			msg = "No agent runs yet.\nTry: tankbattle train --episodes 10"
		}
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render(msg)
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen and reports whether the user
// wants to go back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewScoreboardModel(store, width, height),
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
