package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/driver"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// stubEngine scores 5 per step and ends after overAt steps (0 = never).
type stubEngine struct {
	tiles    []core.Tile
	steps    int
	overAt   int
	joystick core.ControlSignal
}

func (e *stubEngine) Width() int                         { return 4 }
func (e *stubEngine) Height() int                        { return 3 }
func (e *stubEngine) SetJoystick(sig core.ControlSignal) { e.joystick = sig }
func (e *stubEngine) Score() int                         { return e.steps * 5 }
func (e *stubEngine) Tiles() []core.Tile                 { return e.tiles }

func (e *stubEngine) Step() bool {
	e.steps++
	return e.overAt > 0 && e.steps >= e.overAt
}

func stubFactory(overAt int, last **stubEngine) engine.Factory {
	return func() (engine.Engine, error) {
		e := &stubEngine{tiles: make([]core.Tile, 12), overAt: overAt}
		e.tiles[0] = core.TileWall
		e.tiles[5] = core.TileBall
		if last != nil {
			*last = e
		}
		return e, nil
	}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.EngineID == "" {
		opts.EngineID = "stub"
	}
	if opts.Config.TickRate == 0 {
		opts.Config = config.Default()
	}
	m, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, expected Model", next)
	}
	return nm, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestModelStartAndTick(t *testing.T) {
	var eng *stubEngine
	m := newTestModel(t, Options{Factory: stubFactory(0, &eng)})

	if m.Init() != nil {
		t.Error("Init() should not start ticking")
	}
	if m.Driver().State() != driver.StateIdle {
		t.Fatalf("State() = %v, expected idle", m.Driver().State())
	}

	m, cmd := update(t, m, spaceKey)
	if m.Driver().State() != driver.StateRunning {
		t.Fatalf("State() after space = %v, expected running", m.Driver().State())
	}
	if cmd == nil {
		t.Fatal("start should return a tick command")
	}

	m, cmd = update(t, m, TickMsg{ID: 1})
	if eng.steps != 1 {
		t.Errorf("steps = %d, expected 1", eng.steps)
	}
	if cmd == nil {
		t.Error("tick should re-arm the clock")
	}

	// stale firings are ignored
	update(t, m, TickMsg{ID: 1})
	if eng.steps != 1 {
		t.Errorf("stale tick stepped the engine: steps = %d", eng.steps)
	}
}

func TestModelKeyMapping(t *testing.T) {
	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.ControlSignal
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.SignalLeft},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.SignalRight},
		{"vim left", runes("h"), core.SignalLeft},
		{"vim right", runes("l"), core.SignalRight},
		{"up arrow stops", tea.KeyMsg{Type: tea.KeyUp}, core.SignalNeutral},
		{"unmapped stops", runes("x"), core.SignalNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var eng *stubEngine
			m := newTestModel(t, Options{Factory: stubFactory(0, &eng)})
			// hold a direction first so Neutral is observable
			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
			if tt.expected == core.SignalRight {
				m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
			}
			m, _ = update(t, m, tt.msg)

			if got := m.Driver().Signal(); got != tt.expected {
				t.Errorf("Signal() = %v, expected %v", got, tt.expected)
			}
			if eng.joystick != tt.expected {
				t.Errorf("engine joystick = %v, expected %v", eng.joystick, tt.expected)
			}
		})
	}
}

func TestModelKeyRelease(t *testing.T) {
	cfg := config.Default()
	cfg.KeyRelease = 120 * time.Millisecond
	m := newTestModel(t, Options{Config: cfg, Factory: stubFactory(0, nil)})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if cmd == nil {
		t.Fatal("directional key should schedule a release")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})

	// the release of the earlier press is stale
	m, _ = update(t, m, releaseMsg{key: driver.KeyLeft, gen: 1})
	if got := m.Driver().Signal(); got != core.SignalRight {
		t.Fatalf("Signal() after stale release = %v, expected right", got)
	}

	m, _ = update(t, m, releaseMsg{key: driver.KeyRight, gen: 2})
	if got := m.Driver().Signal(); got != core.SignalNeutral {
		t.Errorf("Signal() after release = %v, expected neutral", got)
	}
}

func TestModelNoReleaseByDefault(t *testing.T) {
	m := newTestModel(t, Options{Factory: stubFactory(0, nil)})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.releaseGen != 0 {
		t.Error("release scheduled with key_release disabled")
	}
	if got := m.Driver().Signal(); got != core.SignalLeft {
		t.Errorf("Signal() = %v, expected left to persist", got)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, Options{Factory: stubFactory(0, nil)})
	m, cmd := update(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if m.View() != "" {
		t.Error("View() after quit should be empty")
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, Options{Factory: stubFactory(0, nil), ScreenshotDir: dir})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.err != nil {
		t.Fatalf("screenshot error = %v", m.err)
	}

	pngs, _ := filepath.Glob(filepath.Join(dir, "stub_*.png"))
	txts, _ := filepath.Glob(filepath.Join(dir, "stub_*.txt"))
	if len(pngs) != 1 || len(txts) != 1 {
		t.Fatalf("screenshot files: png=%v txt=%v", pngs, txts)
	}

	data, err := os.ReadFile(txts[0])
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	expected := "#   \n o  \n    \n"
	if string(data) != expected {
		t.Errorf("text dump = %q, expected %q", data, expected)
	}
	if !strings.Contains(m.statusLine(), "saved") {
		t.Errorf("statusLine() = %q, expected a saved notice", m.statusLine())
	}
}

func TestModelCopyFrame(t *testing.T) {
	var copied string
	m := newTestModel(t, Options{
		Factory:   stubFactory(0, nil),
		Clipboard: func(s string) error { copied = s; return nil },
	})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if copied != "#   \n o  \n    " {
		t.Errorf("copied = %q", copied)
	}
	if !strings.Contains(m.statusLine(), "frame copied") {
		t.Errorf("statusLine() = %q, expected copy notice", m.statusLine())
	}
}

func TestModelTooSmall(t *testing.T) {
	m := newTestModel(t, Options{Factory: stubFactory(0, nil)})

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 5, Height: 3})
	if !strings.Contains(m.View(), "Window too small") {
		t.Error("View() should ask for a bigger window")
	}
	// 4x3 board: 9 columns, 4 rows of half blocks plus status and help
	if !strings.Contains(m.View(), "Need 9x6") {
		t.Errorf("View() = %q, expected the needed size", m.View())
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	view := m.View()
	if strings.Contains(view, "Window too small") {
		t.Error("View() still too small at 80x24")
	}
	if !strings.Contains(view, driver.StatusPressStart) {
		t.Errorf("View() missing status line:\n%s", view)
	}
}

func TestModelSavesScoreOnGameOver(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() error = %v", err)
	}
	defer store.Close()

	m := newTestModel(t, Options{Factory: stubFactory(2, nil), Store: store, Player: "ann"})
	m, _ = update(t, m, spaceKey)
	m, _ = update(t, m, TickMsg{ID: 1})
	m, _ = update(t, m, TickMsg{ID: 2})

	if m.Driver().State() != driver.StateOver {
		t.Fatalf("State() = %v, expected over", m.Driver().State())
	}
	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores() error = %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 10 || scores[0].Player != "ann" {
		t.Errorf("saved scores = %+v, expected one score of 10 by ann", scores)
	}
}

func TestNewModelRejectsBadPalette(t *testing.T) {
	cfg := config.Default()
	cfg.Palette.Ball = "#zz"
	if _, err := NewModel(Options{Config: cfg, Factory: stubFactory(0, nil)}); err == nil {
		t.Error("NewModel() should reject an invalid palette")
	}
}

func TestTickQueue(t *testing.T) {
	q := &tickQueue{}
	if q.drain() != nil {
		t.Error("drain() of an empty queue should be nil")
	}
	q.After(time.Millisecond, 1)
	q.After(time.Millisecond, 2)
	if q.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", q.Len())
	}
	if q.drain() == nil {
		t.Error("drain() should batch queued timers")
	}
	if q.Len() != 0 {
		t.Errorf("Len() after drain = %d, expected 0", q.Len())
	}
}

func TestRenderScreenPlain(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	if got := RenderScreen(s); got != "abc\n   " {
		t.Errorf("RenderScreen() = %q, expected %q", got, "abc\n   ")
	}
}

func TestRenderScreenKeepsRunes(t *testing.T) {
	s := core.NewScreen(2, 1)
	s.SetHalves(0, 0, core.ColorWhite, core.ColorBlack)
	s.SetHalves(1, 0, core.ColorWhite, core.ColorBlack)
	if got := RenderScreen(s); strings.Count(got, string(core.HalfBlock)) != 2 {
		t.Errorf("RenderScreen() = %q, expected two half blocks", got)
	}
}
