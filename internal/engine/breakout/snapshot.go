package breakout

import (
	"encoding/binary"
	"hash/fnv"

	"github.com/vovakirdan/tui-breakout/internal/core"
)

// Snapshot is the full game state, used to check determinism and to
// restore a game mid-play.
type Snapshot struct {
	Tick         uint64
	Score        int
	Lives        int
	LevelIndex   int
	Over         bool
	ServeDelay   int
	Joystick     int64 // engine wire value
	Mode         Mode
	EndlessCycle int
	BaseSpeed    Fixed

	Paddle Paddle
	Ball   Ball
	Bricks []BrickState // row-major over the fitted level

	RNG uint64
}

// BrickState is the mutable part of one brick.
type BrickState struct {
	Alive bool
	HP    int
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	bricks := make([]BrickState, 0, g.level.Width*g.level.Height)
	for _, row := range g.level.Bricks {
		for _, b := range row {
			bricks = append(bricks, BrickState{Alive: b.Alive, HP: b.HP})
		}
	}

	return Snapshot{
		Tick:         uint64(g.tickCount), //#nosec G115 -- tick count is never negative
		Score:        g.score,
		Lives:        g.lives,
		LevelIndex:   g.levelIndex,
		Over:         g.over,
		ServeDelay:   g.serveDelay,
		Joystick:     g.joystick.Value(),
		Mode:         g.mode,
		EndlessCycle: g.endlessCycle,
		BaseSpeed:    g.baseSpeed,
		Paddle:       *g.paddle,
		Ball:         *g.ball,
		Bricks:       bricks,
		RNG:          g.rng.state,
	}
}

// ApplySnapshot restores a state taken from a game with the same board
// configuration. Brick states for a different level size are ignored.
func (g *Game) ApplySnapshot(snap Snapshot) {
	g.tickCount = int(snap.Tick) //#nosec G115 -- came from a tick count
	g.score = snap.Score
	g.lives = snap.Lives
	g.over = snap.Over
	g.serveDelay = snap.ServeDelay
	g.joystick = core.SignalFromValue(snap.Joystick)
	g.mode = snap.Mode
	g.endlessCycle = snap.EndlessCycle
	g.baseSpeed = snap.BaseSpeed

	if g.levelIndex != snap.LevelIndex {
		g.levelIndex = snap.LevelIndex
		g.loadLevel()
	}
	if len(snap.Bricks) == g.level.Width*g.level.Height {
		for i, st := range snap.Bricks {
			b := &g.level.Bricks[i/g.level.Width][i%g.level.Width]
			b.Alive, b.HP = st.Alive, st.HP
		}
	}

	paddle, ball := snap.Paddle, snap.Ball
	g.paddle, g.ball = &paddle, &ball
	g.rng.state = snap.RNG
	g.draw()
}

// Hash returns an FNV-1a digest of the snapshot.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck // hash writes never fail
	}
	flag := func(b bool) {
		if b {
			put(1)
		} else {
			put(0)
		}
	}

	for _, v := range []int64{
		snap.Joystick, int64(snap.Score), int64(snap.Lives), int64(snap.LevelIndex),
		int64(snap.ServeDelay), int64(snap.Mode), int64(snap.EndlessCycle), int64(snap.BaseSpeed),
		int64(snap.Paddle.X), int64(snap.Paddle.Y), int64(snap.Paddle.Width),
		int64(snap.Ball.X), int64(snap.Ball.Y), int64(snap.Ball.VX), int64(snap.Ball.VY),
	} {
		put(uint64(v))
	}
	put(snap.Tick)
	put(snap.RNG)
	flag(snap.Over)
	flag(snap.Ball.Stuck)

	put(uint64(len(snap.Bricks)))
	for _, b := range snap.Bricks {
		flag(b.Alive)
		put(uint64(b.HP)) //#nosec G115 -- bit pattern only
	}
	return h.Sum64()
}
