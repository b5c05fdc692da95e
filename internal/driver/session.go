package driver

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// ErrNoFactory is returned when a session is built without an engine factory.
var ErrNoFactory = errors.New("driver: no engine factory")

// Session owns one engine instance for the lifetime of one game.
// No other component holds the engine; tiles are reachable only through
// Borrow, and the view it hands out dies on the next Step.
type Session struct {
	eng     engine.Engine
	geom    core.Geometry
	lease   core.Lease
	started bool
	over    bool
	closed  bool
	score   int
}

// NewSession constructs a fresh engine and reads its board geometry once.
func NewSession(factory engine.Factory) (*Session, error) {
	if factory == nil {
		return nil, ErrNoFactory
	}

	eng, err := factory()
	if err != nil {
		return nil, fmt.Errorf("driver: cannot create engine: %w", err)
	}

	geom := core.Geometry{Width: eng.Width(), Height: eng.Height()}
	if !geom.Valid() {
		return nil, fmt.Errorf("driver: engine reported invalid board %dx%d", geom.Width, geom.Height)
	}
	if n := len(eng.Tiles()); n != geom.Len() {
		return nil, fmt.Errorf("driver: engine board %dx%d has %d tiles", geom.Width, geom.Height, n)
	}

	return &Session{
		eng:   eng,
		geom:  geom,
		score: eng.Score(),
	}, nil
}

// Geometry returns the board size fixed at construction.
func (s *Session) Geometry() core.Geometry {
	return s.geom
}

// Started reports whether Start has been called.
func (s *Session) Started() bool {
	return s.started
}

// Over reports whether the engine has ended the game.
func (s *Session) Over() bool {
	return s.over
}

// Score returns the score as of the last Step.
func (s *Session) Score() int {
	return s.score
}

// Start marks the session started. It reports true only the first time.
func (s *Session) Start() bool {
	if s.started {
		return false
	}
	s.started = true
	return true
}

// SetJoystick pushes a control signal that persists until changed.
func (s *Session) SetJoystick(sig core.ControlSignal) {
	if s.closed {
		return
	}
	s.eng.SetJoystick(sig)
}

// Step advances the engine by one tick and reports whether the game is over.
// Once over, or after Close, the engine is never stepped again.
func (s *Session) Step() bool {
	if s.over || s.closed {
		return true
	}
	s.lease.Revoke()
	s.over = s.eng.Step()
	s.score = s.eng.Score()
	return s.over
}

// Borrow lends fn a read-only view of the current board. The view is
// revoked when fn returns.
func (s *Session) Borrow(fn func(core.TileView)) {
	if s.closed {
		fn(core.TileView{})
		return
	}
	v := s.lease.Grant(s.eng.Tiles())
	defer s.lease.Revoke()
	fn(v)
}

// Err returns the engine fault that ended the game, if the engine reports one.
func (s *Session) Err() error {
	if f, ok := s.eng.(engine.Faulter); ok {
		return f.Err()
	}
	return nil
}

// BlocksRemaining returns the number of blocks left, if the engine counts them.
func (s *Session) BlocksRemaining() (int, bool) {
	if c, ok := s.eng.(engine.BlockCounter); ok {
		return c.BlocksRemaining(), true
	}
	return 0, false
}

// Close releases the engine. Outstanding views are revoked.
func (s *Session) Close() {
	s.lease.Revoke()
	s.closed = true
}
