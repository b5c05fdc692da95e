package console

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/driver"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/render"
)

type stubEngine struct {
	tiles  []core.Tile
	steps  int
	overAt int
}

func (e *stubEngine) Width() int                     { return 4 }
func (e *stubEngine) Height() int                    { return 3 }
func (e *stubEngine) SetJoystick(core.ControlSignal) {}
func (e *stubEngine) Score() int                     { return e.steps }
func (e *stubEngine) Tiles() []core.Tile             { return e.tiles }

func (e *stubEngine) Step() bool {
	e.steps++
	return e.overAt > 0 && e.steps >= e.overAt
}

func newTestHost(t *testing.T, w, h int, cfg config.Config) (*Host, tcell.SimulationScreen, *stubEngine) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(w, h)

	eng := &stubEngine{tiles: make([]core.Tile, 12)}
	eng.tiles[0] = core.TileWall
	host, err := New(screen, Options{
		Config:   cfg,
		EngineID: "stub",
		Factory:  func() (engine.Engine, error) { return eng, nil },
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(host.Close)
	return host, screen, eng
}

func rowText(s tcell.SimulationScreen, y, w int) string {
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestHostDrawsBoard(t *testing.T) {
	_, screen, _ := newTestHost(t, 40, 10, config.Default())
	p := render.DefaultPalette()

	// cell (1, 0) packs the top lattice row over the wall tile
	mainc, _, style, _ := screen.GetContent(1, 0)
	if mainc != core.HalfBlock {
		t.Fatalf("cell (1, 0) = %q, expected half block", mainc)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(int32(p.Grid.R), int32(p.Grid.G), int32(p.Grid.B)) {
		t.Errorf("foreground = %v, expected grid color", fg)
	}
	if bg != tcell.NewRGBColor(int32(p.Wall.R), int32(p.Wall.G), int32(p.Wall.B)) {
		t.Errorf("background = %v, expected wall color", bg)
	}

	if got := rowText(screen, 4, 40); !strings.HasPrefix(got, driver.StatusPressStart) {
		t.Errorf("status row = %q", got)
	}
}

func TestHostTooSmall(t *testing.T) {
	_, screen, _ := newTestHost(t, 20, 4, config.Default())

	found := false
	for y := 0; y < 4; y++ {
		if strings.Contains(rowText(screen, y, 20), "Window too small") {
			found = true
		}
	}
	if !found {
		t.Error("small screen should show the resize hint")
	}
}

func TestHostKeysAndTicks(t *testing.T) {
	host, _, eng := newTestHost(t, 40, 10, config.Default())

	if host.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone)) {
		t.Fatal("left arrow should not quit")
	}
	if host.Driver().Signal() != core.SignalLeft {
		t.Errorf("Signal() = %v, expected left", host.Driver().Signal())
	}
	if host.Driver().State() != driver.StateIdle {
		t.Error("direction key started the game")
	}

	host.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if host.Driver().State() != driver.StateRunning {
		t.Fatalf("State() = %v, expected running", host.Driver().State())
	}

	host.HandleEvent(tcell.NewEventInterrupt(tickEvent{id: 1}))
	host.HandleEvent(tcell.NewEventInterrupt(tickEvent{id: 1})) // stale
	host.HandleEvent(tcell.NewEventInterrupt(tickEvent{id: 2}))
	if eng.steps != 2 {
		t.Errorf("steps = %d, expected 2", eng.steps)
	}

	host.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone))
	if host.Driver().Signal() != core.SignalNeutral {
		t.Errorf("unmapped key left signal at %v", host.Driver().Signal())
	}
}

func TestHostKeyRelease(t *testing.T) {
	cfg := config.Default()
	cfg.KeyRelease = time.Hour
	host, _, _ := newTestHost(t, 40, 10, cfg)

	host.HandleEvent(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	host.HandleEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))

	host.HandleEvent(tcell.NewEventInterrupt(releaseEvent{key: driver.KeyRight, gen: 1}))
	if host.Driver().Signal() != core.SignalLeft {
		t.Fatalf("stale release changed signal to %v", host.Driver().Signal())
	}
	host.HandleEvent(tcell.NewEventInterrupt(releaseEvent{key: driver.KeyLeft, gen: 2}))
	if host.Driver().Signal() != core.SignalNeutral {
		t.Errorf("Signal() after release = %v, expected neutral", host.Driver().Signal())
	}
}

func TestHostQuitKeys(t *testing.T) {
	host, _, _ := newTestHost(t, 40, 10, config.Default())

	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl+c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}
	for _, tt := range tests {
		if !host.HandleEvent(tt.ev) {
			t.Errorf("%s should quit", tt.name)
		}
	}
}

func TestSchedulerPostsInterrupt(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	defer screen.Fini()

	s := &scheduler{screen: screen}
	s.After(time.Millisecond, 7)

	deadline := time.After(5 * time.Second)
	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			intr, ok := ev.(*tcell.EventInterrupt)
			if !ok {
				continue
			}
			tick, ok := intr.Data().(tickEvent)
			if !ok || tick.id != 7 {
				t.Fatalf("interrupt data = %v, expected tick 7", intr.Data())
			}
			return
		case <-deadline:
			t.Fatal("timer never posted its tick")
		}
	}
}

func TestSchedulerStop(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	s := &scheduler{screen: screen}
	s.After(time.Hour, 1)
	s.stop()
	s.After(time.Millisecond, 2)

	if len(s.timers) != 0 {
		t.Errorf("timers after stop = %d, expected 0", len(s.timers))
	}
}

func TestHostTickSurvivesFullQueue(t *testing.T) {
	host, screen, eng := newTestHost(t, 40, 10, config.Default())

	host.HandleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	if host.Driver().State() != driver.StateRunning {
		t.Fatalf("State() = %v, expected running", host.Driver().State())
	}

	// Fill the queue before the first tick is due; extra keys are dropped.
	for range 64 {
		//nolint:errcheck // overflow is the point
		screen.PostEvent(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	}
	time.Sleep(200 * time.Millisecond) // four frames at 20 Hz

	events := make(chan tcell.Event, 256)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	deadline := time.After(5 * time.Second)
	for eng.steps == 0 {
		select {
		case ev := <-events:
			host.HandleEvent(ev)
		case <-deadline:
			t.Fatal("tick was lost while the event queue was full")
		}
	}
}
