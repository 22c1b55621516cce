package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-kraken/internal/core"
	"github.com/vovakirdan/tui-kraken/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80
	sidebarWidth       = 20
	maxRows            = 100
)

// boardView is one page of the scoreboard.
type boardView int

const (
	viewHighScores boardView = iota
	viewRecentRuns
	viewCount
)

func (v boardView) String() string {
	switch v {
	case viewHighScores:
		return "High scores"
	case viewRecentRuns:
		return "Recent runs"
	default:
		return "?"
	}
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextView key.Binding
	PrevView key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.NextView, k.PrevView, k.Quit},
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
		NextView: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev view"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses the high scores and recent runs of one game.
type ScoreboardModel struct {
	gameID      string
	title       string
	view        boardView
	store       *storage.Store
	rows        []table.Row
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewScoreboardModel creates a scoreboard for gameID.
func NewScoreboardModel(store *storage.Store, gameID, title string, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		gameID:      gameID,
		title:       title,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoreboardModel) columns() []table.Column {
	avail := m.width - 8
	if m.showSidebar {
		avail -= sidebarWidth + 3
	}

	if m.view == viewRecentRuns {
		cols := []table.Column{
			{Title: "Score", Width: 8},
			{Title: "Kills", Width: 6},
			{Title: "Time", Width: 7},
			{Title: "Player", Width: 10},
			{Title: "Date", Width: 12},
		}
		if extra := avail - 43 - 5*2; extra > 0 {
			cols[3].Width += min(extra, 10)
		}
		return cols
	}

	cols := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 12},
	}
	if extra := avail - 28 - 3*2; extra > 0 {
		cols[2].Width += min(extra, 8)
	}
	return cols
}

func (m *ScoreboardModel) createTable() table.Model {
	height := m.height - 8
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("24")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// load fetches the rows of the current view.
func (m *ScoreboardModel) load() {
	m.rows = nil
	m.loadErr = nil
	if m.store != nil {
		switch m.view {
		case viewHighScores:
			m.rows, m.loadErr = m.scoreRows()
		case viewRecentRuns:
			m.rows, m.loadErr = m.runRows()
		}
	}

	// Columns must match the row width before rows are set
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) scoreRows() ([]table.Row, error) {
	scores, err := m.store.TopScores(m.gameID, maxRows)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows, nil
}

func (m *ScoreboardModel) runRows() ([]table.Row, error) {
	runs, err := m.store.RecentRuns(m.gameID, maxRows)
	if err != nil {
		return nil, err
	}
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d", r.Kills),
			core.FormatTicks(r.Ticks, core.DefaultTickRate),
			player,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows, nil
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

		case key.Matches(msg, m.keys.NextView):
			m.view = (m.view + 1) % viewCount
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevView):
			m.view = (m.view + viewCount - 1) % viewCount
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.table.SetRows(m.rows)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := fmt.Sprintf("%s - %s", strings.ToUpper(m.title), m.view)
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, titleStyle.Render(title)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := boxStyle.Render(m.tableContent())

	if m.showSidebar {
		sidebar := boxStyle.Width(sidebarWidth).Render(m.sidebar())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", content))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, content))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ScoreboardModel) sidebar() string {
	var sb strings.Builder
	sb.WriteString("Views\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	for v := boardView(0); v < viewCount; v++ {
		sb.WriteString("\n")
		if v == m.view {
			sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("> " + v.String()))
		} else {
			sb.WriteString("  " + v.String())
		}
	}
	return sb.String()
}

func (m ScoreboardModel) tableContent() string {
	empty := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case m.store == nil:
		return empty.Render("No score database available.")
	case m.loadErr != nil:
		return empty.Render("Could not load: " + m.loadErr.Error())
	case len(m.rows) == 0:
		return empty.Render("Nothing recorded yet.\nSet sail to make history!")
	}
	return m.table.View()
}

// RunScoreboard runs the interactive scoreboard for gameID.
func RunScoreboard(store *storage.Store, gameID, title string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, gameID, title, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
