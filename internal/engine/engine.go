// Package engine defines the boundary between the driver and a simulation
// engine, plus a registry of engine builders.
//
// Engines contain pure simulation logic. The driver owns timing, input
// translation and rendering; it talks to an engine only through Engine.
package engine

import (
	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Engine is a stepping simulation that exposes a tile board and a score.
type Engine interface {
	// Width and Height return the board size in tiles.
	// Both are positive and fixed for the engine's lifetime.
	Width() int
	Height() int

	// SetJoystick sets the control signal the engine reads on every
	// following Step, until changed again.
	SetJoystick(sig core.ControlSignal)

	// Step advances the simulation by one tick and reports whether the
	// game has ended. Once it returns true, later calls keep returning true.
	Step() bool

	// Score returns the current score. It never decreases within one engine.
	Score() int

	// Tiles returns the row-major board of Width()*Height() tiles.
	// The slice is owned by the engine and is only valid until the next Step.
	Tiles() []core.Tile
}

// Faulter is implemented by engines that can stop on an internal fault.
// A faulted engine reports the game as over; Err describes why.
type Faulter interface {
	Err() error
}

// BlockCounter is implemented by engines that can count remaining blocks.
type BlockCounter interface {
	BlocksRemaining() int
}

// Factory constructs a fresh engine instance.
// It is called once per session, so every call must return an independent engine.
type Factory func() (Engine, error)
