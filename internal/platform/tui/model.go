package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/driver"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/render"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// terminalCellEdge draws each tile as one pixel. Half blocks pack two pixel
// rows per terminal row but not columns, so a tile plus its grid line takes
// two columns and one terminal row.
const terminalCellEdge = 1

// chromeLines is the status line plus the help line under the board.
const chromeLines = 2

// Options configures a play Model.
type Options struct {
	Config   config.Config
	EngineID string
	Factory  engine.Factory
	Store    *storage.Store // nil disables score saving
	Player   string         // Recorded with saved scores
	Logger   *log.Logger    // nil = discard

	// Lipgloss renders styles for the terminal (nil = stdout's renderer).
	Lipgloss *lipgloss.Renderer

	// ScreenshotDir receives ctrl+s captures (empty = ~/.breakout/screenshots).
	ScreenshotDir string

	// Clipboard receives ctrl+y frame dumps (nil = system clipboard).
	Clipboard func(text string) error
}

// Model is the Bubble Tea model hosting one frame driver.
type Model struct {
	driver     *driver.Driver
	grid       *render.Grid
	raster     *render.Renderer
	queue      *tickQueue
	styles     styleCache
	keys       KeyMap
	help       help.Model
	store      *storage.Store
	log        *log.Logger
	lg         *lipgloss.Renderer
	clipboard  func(string) error
	shotDir    string
	keyRelease time.Duration
	releaseGen uint64
	notice     string
	err        error
	width      int
	height     int
	quitting   bool
}

// NewModel builds the driver and paints its first frame.
func NewModel(opts Options) (Model, error) {
	palette, err := render.PaletteFromConfig(opts.Config.Palette)
	if err != nil {
		return Model{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	lg := opts.Lipgloss
	if lg == nil {
		lg = lipgloss.DefaultRenderer()
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	m := Model{
		grid:       render.NewGrid(),
		raster:     render.New(opts.Config.CellEdge, palette),
		queue:      &tickQueue{},
		styles:     make(styleCache),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		store:      opts.Store,
		log:        logger,
		lg:         lg,
		clipboard:  copyFn,
		shotDir:    opts.ScreenshotDir,
		keyRelease: opts.Config.KeyRelease,
	}

	store, player := opts.Store, opts.Player
	d, err := driver.New(driver.Options{
		EngineID:  opts.EngineID,
		Factory:   opts.Factory,
		Scheduler: m.queue,
		TickRate:  opts.Config.TickRate,
		Renderer:  render.New(terminalCellEdge, palette),
		Canvas:    m.grid,
		Logger:    logger,
		OnGameOver: func(engineID string, score int) {
			if store == nil {
				return
			}
			if _, err := store.SaveScore(engineID, player, score); err != nil {
				logger.Warn("could not save score", "engine", engineID, "error", err)
			}
		},
	})
	if err != nil {
		return Model{}, err
	}
	m.driver = d
	return m, nil
}

// Driver returns the hosted driver.
func (m Model) Driver() *driver.Driver {
	return m.driver
}

// Init starts nothing: the first frame is already painted and the clock
// waits for the start key.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		m.driver.Fire(msg.ID)
		return m, m.queue.drain()

	case releaseMsg:
		if msg.gen == m.releaseGen {
			m.driver.KeyUp(msg.key)
		}
		return m, m.queue.drain()
	}

	return m, nil
}

// handleKey processes keyboard input. Host keys are handled here; every
// other key goes to the driver.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.driver.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Screenshot):
		path, err := m.saveScreenshot()
		m.report(err, "saved "+path)
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		m.report(m.copyFrame(), "frame copied")
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	k := m.keys.DriverKey(msg)
	m.notice = ""
	m.err = m.driver.KeyDown(k)

	var release tea.Cmd
	if m.keyRelease > 0 && (k == driver.KeyLeft || k == driver.KeyRight) {
		m.releaseGen++
		release = releaseCmd(m.keyRelease, k, m.releaseGen)
	}
	return m, tea.Batch(m.queue.drain(), release)
}

func (m *Model) report(err error, notice string) {
	if err != nil {
		m.err = err
		m.notice = ""
		m.log.Warn("host action failed", "error", err)
		return
	}
	m.err = nil
	m.notice = notice
}

// saveScreenshot writes the current frame as a PNG and as a text dump.
func (m *Model) saveScreenshot() (string, error) {
	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".breakout", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot directory: %w", err)
	}

	var raster *render.Raster
	var text string
	geom := m.driver.Geometry()
	m.driver.Borrow(func(v core.TileView) {
		raster = m.raster.Rasterize(v, geom)
		text = render.Text(v, geom)
	})

	timestamp := time.Now().Format("20060102_150405")
	base := filepath.Join(dir, fmt.Sprintf("%s_%s", m.driver.EngineID(), timestamp))

	f, err := os.Create(base + ".png")
	if err != nil {
		return "", fmt.Errorf("tui: cannot create screenshot: %w", err)
	}
	p := m.raster.Palette
	img := raster.Labeled(m.driver.Status(), p.Wall, p.Empty)
	encErr := render.EncodePNG(f, img, 1)
	closeErr := f.Close()
	if err := errors.Join(encErr, closeErr); err != nil {
		return "", err
	}

	if err := os.WriteFile(base+".txt", []byte(text+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("tui: cannot write screenshot text: %w", err)
	}
	return base + ".png", nil
}

// copyFrame puts the plain-text frame on the clipboard.
func (m *Model) copyFrame() error {
	var text string
	geom := m.driver.Geometry()
	m.driver.Borrow(func(v core.TileView) {
		text = render.Text(v, geom)
	})
	if err := m.clipboard(text); err != nil {
		return fmt.Errorf("tui: cannot copy frame: %w", err)
	}
	return nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	screen := m.grid.Screen()
	needW, needH := screen.Width(), screen.Height()+chromeLines
	if m.width > 0 && m.height > 0 && (m.width < needW || m.height < needH) {
		msg := fmt.Sprintf("Window too small\nNeed %dx%d", needW, needH)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	statusStyle := m.lg.NewStyle().Bold(true)
	errStyle := m.lg.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle := m.lg.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(renderScreen(screen, m.styles, m.lg))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.statusLine()))
	if m.err != nil {
		b.WriteString("  ")
		b.WriteString(errStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// statusLine is the driver status plus host details.
func (m Model) statusLine() string {
	parts := []string{m.driver.Status()}
	if n, ok := m.driver.BlocksRemaining(); ok && m.driver.State() != driver.StateIdle {
		parts = append(parts, fmt.Sprintf("Blocks: %d", n))
	}
	if m.notice != "" {
		parts = append(parts, m.notice)
	}
	return strings.Join(parts, "  ·  ")
}

// Run starts a local Bubble Tea program hosting one driver.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
