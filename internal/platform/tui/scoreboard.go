package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// maxScores is how many rows the scoreboard loads per engine.
const maxScores = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextEngine key.Binding
	PrevEngine key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.PrevEngine, k.NextEngine, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextEngine: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→/tab", "next engine"),
		),
		PrevEngine: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "prev engine"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel browses saved scores one engine at a time.
type ScoreboardModel struct {
	engines  []engine.Info
	cursor   int
	store    *storage.Store
	scores   []storage.ScoreEntry
	stats    storage.EngineStats
	loadErr  error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel creates a scoreboard starting at the given engine.
func NewScoreboardModel(store *storage.Store, startEngine string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		engines: engine.List(),
		store:   store,
		keys:    DefaultScoreboardKeyMap(),
		help:    help.New(),
		width:   width,
		height:  height,
	}
	for i, e := range m.engines {
		if e.ID == startEngine {
			m.cursor = i
		}
	}

	m.table = m.createTable()
	m.load()
	return m
}

// Current returns the engine being shown.
func (m ScoreboardModel) Current() (engine.Info, bool) {
	if len(m.engines) == 0 {
		return engine.Info{}, false
	}
	return m.engines[m.cursor], true
}

// Scores returns the loaded rows.
func (m ScoreboardModel) Scores() []storage.ScoreEntry {
	return m.scores
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Player", Width: 16},
		{Title: "Date", Width: 14},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // header, tabs, summary and help
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
	return t
}

// load reads the current engine's scores and stats.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.loadErr = nil, storage.EngineStats{}, nil

	if cur, ok := m.Current(); ok && m.store != nil {
		m.scores, m.loadErr = m.store.TopScores(cur.ID, maxScores)
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.Stats(cur.ID)
		}
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			player,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) move(delta int) {
	if len(m.engines) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.engines)) % len(m.engines)
	m.load()
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
		case key.Matches(msg, m.keys.NextEngine):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevEngine):
			m.move(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.load()
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

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTab := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var b strings.Builder
	b.WriteString(titleStyle.Render("HIGH SCORES"))
	b.WriteString("\n\n")

	tabs := make([]string, len(m.engines))
	for i, e := range m.engines {
		if i == m.cursor {
			tabs[i] = activeTab.Render(e.Title)
		} else {
			tabs[i] = dimStyle.Render(" " + e.Title + " ")
		}
	}
	b.WriteString(strings.Join(tabs, " "))
	b.WriteString("\n")

	var body string
	switch {
	case m.store == nil:
		body = dimStyle.Italic(true).Render("No scores database.")
	case m.loadErr != nil:
		body = dimStyle.Render(m.loadErr.Error())
	case len(m.scores) == 0:
		body = dimStyle.Italic(true).Padding(1, 2).Render("No scores recorded yet.")
	default:
		body = m.table.View()
	}
	b.WriteString(boxStyle.Render(body))
	b.WriteString("\n")

	if m.stats.Games > 0 {
		b.WriteString(dimStyle.Render(fmt.Sprintf("%d games  ·  best %d  ·  avg %.1f",
			m.stats.Games, m.stats.HighScore, m.stats.AvgScore)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// RunScoreboard runs the scoreboard screen until the user quits.
func RunScoreboard(store *storage.Store, startEngine string, width, height int) error {
	p := tea.NewProgram(NewScoreboardModel(store, startEngine, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
