// Package console hosts the frame driver directly on a tcell screen.
//
// tcell delivers events on one goroutine through PollEvent. Frame clock
// timers fire on their own goroutines and only post interrupt events, so
// the driver is touched from the poll loop alone.
package console

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/driver"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/render"
)

const helpLine = "←/→ move  ↑ stop  space start  q quit"

// Options configures a Host.
type Options struct {
	Config     config.Config
	EngineID   string
	Factory    engine.Factory
	OnGameOver func(engineID string, score int)
	Logger     *log.Logger // nil = discard
}

type tickEvent struct {
	id uint64
}

type releaseEvent struct {
	key driver.Key
	gen uint64
}

// scheduler implements driver.Scheduler with time.AfterFunc timers that
// post back into the screen's event queue.
type scheduler struct {
	screen tcell.Screen
	mu     sync.Mutex
	timers map[*time.Timer]struct{}
	closed bool
}

func (s *scheduler) After(d time.Duration, id uint64) {
	s.post(d, tickEvent{id: id})
}

func (s *scheduler) post(d time.Duration, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timers == nil {
		s.timers = make(map[*time.Timer]struct{})
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		s.mu.Lock()
		delete(s.timers, t)
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}
		// Waits for room in a full queue; a dropped tick would leave the
		// frame clock pending forever. Returns once the screen is finalized.
		s.screen.PostEventWait(tcell.NewEventInterrupt(data))
	})
	s.timers[t] = struct{}{}
}

func (s *scheduler) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	for t := range s.timers {
		t.Stop()
	}
	s.timers = nil
}

// Host runs one driver on a tcell screen.
type Host struct {
	screen     tcell.Screen
	driver     *driver.Driver
	grid       *render.Grid
	sched      *scheduler
	keyRelease time.Duration
	releaseGen uint64
	err        error
}

// New builds the driver on an initialized screen and draws the first frame.
func New(screen tcell.Screen, opts Options) (*Host, error) {
	palette, err := render.PaletteFromConfig(opts.Config.Palette)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	h := &Host{
		screen:     screen,
		grid:       render.NewGrid(),
		sched:      &scheduler{screen: screen},
		keyRelease: opts.Config.KeyRelease,
	}
	d, err := driver.New(driver.Options{
		EngineID:   opts.EngineID,
		Factory:    opts.Factory,
		Scheduler:  h.sched,
		TickRate:   opts.Config.TickRate,
		Renderer:   render.New(1, palette),
		Canvas:     h.grid,
		OnGameOver: opts.OnGameOver,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	h.driver = d
	h.Draw()
	return h, nil
}

// Run opens the terminal, plays until the player quits, and restores it.
func Run(opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("console: cannot open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("console: cannot init screen: %w", err)
	}
	defer screen.Fini()

	h, err := New(screen, opts)
	if err != nil {
		return err
	}
	h.Loop()
	return nil
}

// Driver returns the hosted driver.
func (h *Host) Driver() *driver.Driver {
	return h.driver
}

// Loop polls events until the player quits or the screen is finalized.
func (h *Host) Loop() {
	defer h.Close()
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		if h.HandleEvent(ev) {
			return
		}
		h.Draw()
	}
}

// HandleEvent applies one event and reports whether the player asked to quit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, quit := mapKey(ev)
		if quit {
			return true
		}
		h.err = h.driver.KeyDown(k)
		if h.keyRelease > 0 && (k == driver.KeyLeft || k == driver.KeyRight) {
			h.releaseGen++
			h.sched.post(h.keyRelease, releaseEvent{key: k, gen: h.releaseGen})
		}

	case *tcell.EventInterrupt:
		switch data := ev.Data().(type) {
		case tickEvent:
			h.driver.Fire(data.id)
		case releaseEvent:
			if data.gen == h.releaseGen {
				h.driver.KeyUp(data.key)
			}
		}

	case *tcell.EventResize:
		h.screen.Sync()
	}
	return false
}

// Draw paints the board, status and help lines.
func (h *Host) Draw() {
	h.screen.Clear()
	board := h.grid.Screen()
	w, ht := h.screen.Size()
	needW, needH := board.Width(), board.Height()+2

	if w < needW || ht < needH {
		h.drawCentered(ht/2-1, "Window too small", tcell.StyleDefault)
		h.drawCentered(ht/2, fmt.Sprintf("Need %dx%d", needW, needH), tcell.StyleDefault)
		h.screen.Show()
		return
	}

	for y := 0; y < board.Height(); y++ {
		for x := 0; x < board.Width(); x++ {
			c := board.GetCell(x, y)
			h.screen.SetContent(x, y, c.Rune, nil, cellStyle(c))
		}
	}

	status := h.driver.Status()
	if h.err != nil {
		status += "  " + h.err.Error()
	}
	h.drawText(0, board.Height(), status, tcell.StyleDefault.Bold(true))
	h.drawText(0, board.Height()+1, helpLine, tcell.StyleDefault.Foreground(tcell.ColorGray))
	h.screen.Show()
}

// Close stops pending timers and the driver.
func (h *Host) Close() {
	h.sched.stop()
	h.driver.Close()
}

func (h *Host) drawText(x, y int, text string, style tcell.Style) {
	for _, r := range text {
		h.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (h *Host) drawCentered(y int, text string, style tcell.Style) {
	w, _ := h.screen.Size()
	h.drawText((w-len([]rune(text)))/2, y, text, style)
}

func cellStyle(c core.Cell) tcell.Style {
	style := tcell.StyleDefault
	if c.Styled {
		style = style.Foreground(toTcell(c.Color))
	}
	if c.Filled {
		style = style.Background(toTcell(c.Background))
	}
	return style
}

func toTcell(c core.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// mapKey translates a tcell key to a driver key code.
func mapKey(ev *tcell.EventKey) (k driver.Key, quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return 0, true
	case tcell.KeyLeft:
		return driver.KeyLeft, false
	case tcell.KeyRight:
		return driver.KeyRight, false
	case tcell.KeyUp, tcell.KeyDown:
		return driver.KeyUp, false
	case tcell.KeyEnter:
		return driver.KeySpace, false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return 0, true
		case ' ':
			return driver.KeySpace, false
		case 'h', 'a':
			return driver.KeyLeft, false
		case 'l', 'd':
			return driver.KeyRight, false
		case 'k', 'w', 'j', 's':
			return driver.KeyUp, false
		}
	}
	// unmapped keys still reach the driver, which treats them as Neutral
	return driver.Key(0), false
}
