package driver

import (
	"errors"
	"time"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// fakeEngine ends the game after overAt steps (0 = never) and scores ten
// points on every step after the first.
type fakeEngine struct {
	w, h     int
	tiles    []core.Tile
	steps    int
	overAt   int
	score    int
	joystick core.ControlSignal
	pushes   []core.ControlSignal
	seen     []core.ControlSignal
	err      error
}

func newFakeEngine(w, h, overAt int) *fakeEngine {
	return &fakeEngine{w: w, h: h, tiles: make([]core.Tile, w*h), overAt: overAt}
}

func (e *fakeEngine) Width() int  { return e.w }
func (e *fakeEngine) Height() int { return e.h }
func (e *fakeEngine) Score() int  { return e.score }

func (e *fakeEngine) Tiles() []core.Tile { return e.tiles }

func (e *fakeEngine) SetJoystick(sig core.ControlSignal) {
	e.joystick = sig
	e.pushes = append(e.pushes, sig)
}

func (e *fakeEngine) Step() bool {
	e.steps++
	if e.steps > 1 {
		e.score += 10
	}
	e.seen = append(e.seen, e.joystick)
	// mark the step count on the board so frames differ
	e.tiles[0] = core.Tile(e.steps % 5)
	return e.overAt > 0 && e.steps >= e.overAt
}

// faultyEngine reports an error once over.
type faultyEngine struct {
	*fakeEngine
}

func (e faultyEngine) Err() error { return e.err }

// fakeFactory hands out a new fakeEngine on every call and keeps them all.
type fakeFactory struct {
	w, h    int
	overAt  int
	fail    bool
	engines []*fakeEngine
}

func (f *fakeFactory) build() (engine.Engine, error) {
	if f.fail {
		return nil, errors.New("boom")
	}
	e := newFakeEngine(f.w, f.h, f.overAt)
	f.engines = append(f.engines, e)
	return e, nil
}

func (f *fakeFactory) last() *fakeEngine {
	return f.engines[len(f.engines)-1]
}

type scheduled struct {
	d  time.Duration
	id uint64
}

type fakeScheduler struct {
	calls []scheduled
}

func (s *fakeScheduler) After(d time.Duration, id uint64) {
	s.calls = append(s.calls, scheduled{d: d, id: id})
}

func (s *fakeScheduler) lastID() uint64 {
	return s.calls[len(s.calls)-1].id
}

type fakeCanvas struct {
	w, h    int
	resizes int
	fills   int
	strokes int
	last    map[core.Rect]core.Color
}

func (c *fakeCanvas) Resize(w, h int) {
	c.w, c.h = w, h
	c.resizes++
	c.last = make(map[core.Rect]core.Color)
}

func (c *fakeCanvas) StrokeVertical(x, y, length int, col core.Color)   { c.strokes++ }
func (c *fakeCanvas) StrokeHorizontal(x, y, length int, col core.Color) { c.strokes++ }

func (c *fakeCanvas) FillRect(r core.Rect, col core.Color) {
	c.fills++
	c.last[r] = col
}
