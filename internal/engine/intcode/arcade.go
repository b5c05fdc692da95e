package intcode

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
)

var (
	// ErrNoProgram is returned when the intcode engine is selected without a program.
	ErrNoProgram = errors.New("intcode: no program configured")
	// ErrEmptyBoard is returned when a program draws nothing before asking for input.
	ErrEmptyBoard = errors.New("intcode: program drew no tiles")
)

// freePlayAddr holds the coin count; 2 lets the cabinet play without quarters.
const freePlayAddr = 0

// Arcade runs an arcade cabinet program as an engine.
// Outputs come in triplets (x, y, tile); x=-1, y=0 carries the score instead.
type Arcade struct {
	m        *Machine
	geom     core.Geometry
	tiles    []core.Tile
	score    int
	joystick core.ControlSignal
	over     bool
	err      error

	// Output triplet in progress; it may straddle an input request.
	pending  [3]int64
	npending int
}

var (
	_ engine.Engine       = (*Arcade)(nil)
	_ engine.Faulter      = (*Arcade)(nil)
	_ engine.BlockCounter = (*Arcade)(nil)
)

type draw struct {
	x, y, v int64
}

// NewArcade loads program and runs it up to its first input request. The
// board size is fixed from the extent of everything drawn until then.
// A program that halts before asking for input yields an engine that is
// already over.
func NewArcade(program []int64, freePlay bool) (*Arcade, error) {
	m := NewMachine(program)
	if freePlay {
		if err := m.Poke(freePlayAddr, 2); err != nil {
			return nil, err
		}
	}

	a := &Arcade{m: m}

	var draws []draw
	halted, err := a.collect(func(d draw) { draws = append(draws, d) })
	if err != nil {
		return nil, fmt.Errorf("intcode: first frame: %w", err)
	}

	maxX, maxY := int64(-1), int64(-1)
	for _, d := range draws {
		if d.x < 0 || d.y < 0 {
			continue
		}
		maxX = max(maxX, d.x)
		maxY = max(maxY, d.y)
	}
	if maxX < 0 || maxY < 0 {
		return nil, ErrEmptyBoard
	}
	if (maxX+1)*(maxY+1) > maxMemory {
		return nil, fmt.Errorf("intcode: board %dx%d too large", maxX+1, maxY+1)
	}

	a.geom = core.Geometry{Width: int(maxX + 1), Height: int(maxY + 1)}
	a.tiles = make([]core.Tile, a.geom.Len())
	for _, d := range draws {
		a.put(d)
	}
	a.over = halted
	return a, nil
}

// Width returns the board width in tiles.
func (a *Arcade) Width() int { return a.geom.Width }

// Height returns the board height in tiles.
func (a *Arcade) Height() int { return a.geom.Height }

// Score returns the highest score the program has reported.
func (a *Arcade) Score() int { return a.score }

// Tiles returns the board. The slice is updated in place by Step.
func (a *Arcade) Tiles() []core.Tile { return a.tiles }

// SetJoystick sets the value fed to every following input request.
func (a *Arcade) SetJoystick(sig core.ControlSignal) { a.joystick = sig }

// Err returns the fault that stopped the program, if any.
func (a *Arcade) Err() error { return a.err }

// BlocksRemaining counts the block tiles on the board.
func (a *Arcade) BlocksRemaining() int {
	n := 0
	for _, t := range a.tiles {
		if t == core.TileBlock {
			n++
		}
	}
	return n
}

// Step feeds the joystick to the program and runs it to its next input
// request. A halt or fault ends the game.
func (a *Arcade) Step() bool {
	if a.over {
		return true
	}

	a.m.Input(a.joystick.Value())
	halted, err := a.collect(a.put)
	if err != nil {
		a.err = err
		a.over = true
		return true
	}
	a.over = halted
	return a.over
}

// collect runs the machine until it waits for input or halts, decoding
// outputs into draws and score updates.
func (a *Arcade) collect(onDraw func(draw)) (halted bool, err error) {
	for {
		ev, v, err := a.m.Run()
		if err != nil {
			return true, err
		}

		switch ev {
		case EventInput:
			return false, nil
		case EventHalt:
			return true, nil
		case EventOutput:
			a.pending[a.npending] = v
			a.npending++
			if a.npending < len(a.pending) {
				continue
			}
			a.npending = 0
			x, y, val := a.pending[0], a.pending[1], a.pending[2]
			if x == -1 && y == 0 {
				a.setScore(val)
				continue
			}
			onDraw(draw{x: x, y: y, v: val})
		}
	}
}

// setScore ratchets the score up; a program reporting less is ignored.
func (a *Arcade) setScore(v int64) {
	if v > int64(a.score) {
		a.score = int(v)
	}
}

// put applies a draw. Draws outside the board are dropped.
func (a *Arcade) put(d draw) {
	if d.x < 0 || d.y < 0 || d.x >= int64(a.geom.Width) || d.y >= int64(a.geom.Height) {
		return
	}
	a.tiles[a.geom.Index(int(d.y), int(d.x))] = core.TileFromValue(d.v)
}

func init() {
	engine.Register("intcode", "Intcode arcade cabinet", func(cfg config.Config) (engine.Factory, error) {
		if cfg.Intcode.Program == "" {
			return nil, ErrNoProgram
		}
		program, err := LoadProgram(cfg.Intcode.Program)
		if err != nil {
			return nil, err
		}

		freePlay := cfg.Intcode.FreePlay
		return func() (engine.Engine, error) {
			return NewArcade(program, freePlay)
		}, nil
	})
}
