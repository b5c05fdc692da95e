// Package driver runs a stepping engine as an interactive game: it turns
// key events into a held control signal, paces steps with a frame clock,
// paints every frame, and moves a session through Idle, Running and Over.
//
// Everything here runs on the host's event goroutine. Hosts deliver key
// events and timer firings one at a time, so no locking is needed.
package driver

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
	"github.com/vovakirdan/tui-breakout/internal/render"
)

// DefaultTickRate is the step rate in Hz when none is configured.
const DefaultTickRate = 20

// StatusPressStart is shown while a session waits for the start key.
const StatusPressStart = "Press space to start"

// State is the driver's position in the game lifecycle.
type State int

const (
	StateIdle    State = iota // Session built, not started
	StateRunning              // Stepping on every tick
	StateOver                 // Engine ended the game
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateOver:
		return "over"
	default:
		return "unknown"
	}
}

// Options configures a Driver.
type Options struct {
	// EngineID names the engine in logs and in the game-over hook.
	EngineID string

	// Factory builds one engine per session. Required.
	Factory engine.Factory

	// Scheduler is the host timer. Required.
	Scheduler Scheduler

	// TickRate is the step rate in Hz (0 = DefaultTickRate).
	TickRate int

	// Renderer paints frames (nil = default edge and palette).
	Renderer *render.Renderer

	// Canvas receives every frame. Required.
	Canvas render.Canvas

	// OnStatus receives the status line whenever it changes.
	OnStatus func(status string)

	// OnGameOver is called once per started game when it ends.
	OnGameOver func(engineID string, score int)

	// Logger receives lifecycle events (nil = discard).
	Logger *log.Logger
}

// Driver is the frame driver state machine.
type Driver struct {
	engineID   string
	factory    engine.Factory
	clock      *FrameClock
	renderer   *render.Renderer
	canvas     render.Canvas
	input      *InputTranslator
	session    *Session
	state      State
	status     string
	onStatus   func(string)
	onGameOver func(string, int)
	log        *log.Logger
}

// New builds the first session, sizes the canvas from its board, and paints
// the initial frame before any step runs.
func New(opts Options) (*Driver, error) {
	if opts.Scheduler == nil {
		return nil, errors.New("driver: no scheduler")
	}
	if opts.Canvas == nil {
		return nil, errors.New("driver: no canvas")
	}

	rate := opts.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	r := opts.Renderer
	if r == nil {
		r = render.New(render.DefaultCellEdge, render.DefaultPalette())
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	session, err := NewSession(opts.Factory)
	if err != nil {
		return nil, err
	}

	d := &Driver{
		engineID:   opts.EngineID,
		factory:    opts.Factory,
		clock:      NewFrameClock(opts.Scheduler, rate),
		renderer:   r,
		canvas:     opts.Canvas,
		session:    session,
		state:      StateIdle,
		onStatus:   opts.OnStatus,
		onGameOver: opts.OnGameOver,
		log:        logger,
	}
	d.input = NewInputTranslator(d.pushSignal)

	d.resize()
	d.paint()
	d.setStatus(StatusPressStart)
	d.log.Debug("session ready", "engine", d.engineID,
		"width", session.Geometry().Width, "height", session.Geometry().Height)
	return d, nil
}

// KeyDown handles a key press. Space starts an idle game and restarts a
// finished one; every other key only updates the control signal.
// The only error is a failed restart, which leaves the finished game in place.
func (d *Driver) KeyDown(k Key) error {
	if k != KeySpace {
		d.input.KeyDown(k)
		return nil
	}

	switch d.state {
	case StateIdle:
		d.start()
	case StateOver:
		return d.restart()
	}
	return nil
}

// KeyUp handles a key release.
func (d *Driver) KeyUp(k Key) {
	d.input.KeyUp(k)
}

// Fire delivers a host timer firing and reports whether a tick ran.
func (d *Driver) Fire(id uint64) bool {
	return d.clock.Fire(id)
}

// State returns the current lifecycle state.
func (d *Driver) State() State {
	return d.state
}

// Score returns the current session's score.
func (d *Driver) Score() int {
	return d.session.Score()
}

// Status returns the current status line.
func (d *Driver) Status() string {
	return d.status
}

// Signal returns the held control signal.
func (d *Driver) Signal() core.ControlSignal {
	return d.input.Signal()
}

// Geometry returns the current board size.
func (d *Driver) Geometry() core.Geometry {
	return d.session.Geometry()
}

// EngineID returns the engine name given in Options.
func (d *Driver) EngineID() string {
	return d.engineID
}

// Renderer returns the renderer used for frames.
func (d *Driver) Renderer() *render.Renderer {
	return d.renderer
}

// BlocksRemaining returns the blocks left, if the engine counts them.
func (d *Driver) BlocksRemaining() (int, bool) {
	return d.session.BlocksRemaining()
}

// Borrow lends fn a read-only view of the current board.
func (d *Driver) Borrow(fn func(core.TileView)) {
	d.session.Borrow(fn)
}

// Close cancels any pending tick and releases the session's engine.
func (d *Driver) Close() {
	d.clock.Stop()
	d.session.Close()
}

func (d *Driver) start() {
	if !d.session.Start() {
		return
	}
	d.transition(StateRunning)
	d.setStatus(scoreStatus(d.session.Score()))
	d.clock.Schedule(d.tick)
}

// tick is the frame callback: step, paint, then either re-arm or stop.
func (d *Driver) tick() {
	over := d.session.Step()
	d.paint()
	if over {
		d.finish()
		return
	}
	d.setStatus(scoreStatus(d.session.Score()))
	d.clock.Schedule(d.tick)
}

func (d *Driver) finish() {
	d.clock.Stop()
	d.transition(StateOver)

	score := d.session.Score()
	d.setStatus(gameOverStatus(score))
	if err := d.session.Err(); err != nil {
		d.log.Error("engine fault", "engine", d.engineID, "err", err)
	}
	if !d.session.Started() {
		return
	}
	d.log.Info("game over", "engine", d.engineID, "score", score)
	if d.onGameOver != nil {
		d.onGameOver(d.engineID, score)
	}
}

// restart replaces a finished session with a fresh one, stepped once so its
// first frame is visible, and waits for the start key again.
func (d *Driver) restart() error {
	next, err := NewSession(d.factory)
	if err != nil {
		d.log.Error("restart failed", "engine", d.engineID, "err", err)
		return fmt.Errorf("driver: restart: %w", err)
	}

	d.clock.Stop()
	d.session.Close()
	d.session = next

	next.SetJoystick(d.input.Signal())
	over := next.Step()
	d.resize()
	d.paint()

	if over {
		d.finish()
		return nil
	}
	d.transition(StateIdle)
	d.setStatus(StatusPressStart)
	return nil
}

func (d *Driver) pushSignal(sig core.ControlSignal) {
	d.session.SetJoystick(sig)
}

func (d *Driver) resize() {
	d.canvas.Resize(d.renderer.CanvasSize(d.session.Geometry()))
}

func (d *Driver) paint() {
	geom := d.session.Geometry()
	d.session.Borrow(func(v core.TileView) {
		d.renderer.Paint(d.canvas, v, geom)
	})
}

func (d *Driver) transition(to State) {
	if d.state == to {
		return
	}
	d.log.Debug("state", "engine", d.engineID, "from", d.state, "to", to)
	d.state = to
}

func (d *Driver) setStatus(s string) {
	if s == d.status {
		return
	}
	d.status = s
	if d.onStatus != nil {
		d.onStatus(s)
	}
}

func scoreStatus(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

func gameOverStatus(score int) string {
	return fmt.Sprintf("Score: %d. Press space to play again", score)
}
