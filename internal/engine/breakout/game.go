// Package breakout is the built-in Breakout engine: a fixed-point ball,
// paddle and brick simulation that publishes its board as tiles.
package breakout

import (
	"fmt"
	"sync/atomic"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/engine"
)

// Board layout and pacing, in tiles and steps.
const (
	brickAreaTop  = 2  // Row 0 is the wall, row 1 is left open
	brickAreaLeft = 1  // Inside the left wall
	paddleGap     = 4  // Free rows kept between the lowest brick row and the paddle
	serveDelay    = 10 // Steps the ball waits above the paddle after a miss or level clear
	speedPerCycle = 20 // Endless mode base speed increase per level cycle
)

// Mode selects what happens after the last level.
type Mode int

const (
	ModeCampaign Mode = iota // Game ends after the last level
	ModeEndless              // Levels cycle, getting faster
)

// ParseMode converts a config string to a Mode. Empty means campaign.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "campaign":
		return ModeCampaign, nil
	case "endless":
		return ModeEndless, nil
	default:
		return 0, fmt.Errorf("breakout: unknown mode %q", s)
	}
}

// Game implements the Breakout engine.
type Game struct {
	geom core.Geometry
	mode Mode

	paddle *Paddle
	ball   *Ball
	level  *Level

	joystick     core.ControlSignal
	score        int
	lives        int
	levelIndex   int
	endlessCycle int
	tickCount    int
	serveDelay   int
	baseSpeed    Fixed
	over         bool

	cfg        config.BreakoutConfig
	difficulty *config.DifficultyManager
	rng        *serveRNG

	tiles []core.Tile
}

var (
	_ engine.Engine       = (*Game)(nil)
	_ engine.BlockCounter = (*Game)(nil)
)

// New creates a game for the given configuration and RNG seed.
// The ball is placed above the paddle and launches on the first Step.
func New(cfg config.BreakoutConfig, seed int64) (*Game, error) {
	w, h := cfg.Board.Width, cfg.Board.Height
	if w < config.MinBoardWidth || h < config.MinBoardHeight {
		return nil, fmt.Errorf("breakout: board %dx%d is smaller than %dx%d",
			w, h, config.MinBoardWidth, config.MinBoardHeight)
	}
	if cfg.Paddle.Width <= 0 || cfg.Paddle.Width >= w-2 {
		return nil, fmt.Errorf("breakout: paddle width %d does not fit a %d wide board", cfg.Paddle.Width, w)
	}
	if cfg.Gameplay.Lives <= 0 {
		return nil, fmt.Errorf("breakout: lives must be positive, got %d", cfg.Gameplay.Lives)
	}

	mode, err := ParseMode(cfg.Board.Mode)
	if err != nil {
		return nil, err
	}

	start := 0
	if cfg.Board.Level != "" {
		if start, err = LevelIndex(cfg.Board.Level); err != nil {
			return nil, err
		}
	}

	g := &Game{
		geom:       core.Geometry{Width: w, Height: h},
		mode:       mode,
		lives:      cfg.Gameplay.Lives,
		levelIndex: start,
		baseSpeed:  Fixed(cfg.Physics.BallSpeed),
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        newServeRNG(seed),
		tiles:      make([]core.Tile, w*h),
	}
	g.paddle = &Paddle{
		X:     ToFixed((w - cfg.Paddle.Width) / 2),
		Y:     h - 2,
		Width: cfg.Paddle.Width,
	}

	g.loadLevel()
	g.serve(0)
	g.draw()
	return g, nil
}

// Width returns the board width in tiles.
func (g *Game) Width() int { return g.geom.Width }

// Height returns the board height in tiles.
func (g *Game) Height() int { return g.geom.Height }

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Lives returns the remaining lives.
func (g *Game) Lives() int { return g.lives }

// Tiles returns the board. The slice is rewritten by the next Step.
func (g *Game) Tiles() []core.Tile { return g.tiles }

// SetJoystick sets the paddle direction used by every following Step.
func (g *Game) SetJoystick(sig core.ControlSignal) { g.joystick = sig }

// BlocksRemaining returns the number of destroyable bricks left in the level.
func (g *Game) BlocksRemaining() int { return g.level.CountAlive() }

// Step advances the game by one tick.
func (g *Game) Step() bool {
	if g.over {
		return true
	}

	g.tickCount++
	g.movePaddle()

	if g.ball.Stuck {
		g.ball.X = g.paddle.CenterX()
		g.ball.Y = ToFixed(g.paddle.Y - 1)
		if g.serveDelay > 0 {
			g.serveDelay--
			g.draw()
			return false
		}
		g.launch()
	}

	g.updateBall()
	g.draw()
	return g.over
}

// speed returns the ball speed for the current difficulty, never more than
// one tile per step so collisions cannot be skipped.
func (g *Game) speed() Fixed {
	s := Fixed(g.difficulty.Speed(float64(g.baseSpeed), g.score, g.tickCount))
	maxSpeed := Fixed(g.cfg.Physics.MaxBallSpeed)
	if maxSpeed <= 0 || maxSpeed > Scale {
		maxSpeed = Scale
	}
	return ClampFixed(s, Scale/10, maxSpeed)
}

func (g *Game) movePaddle() {
	speed := Fixed(g.cfg.Physics.PaddleSpeed)

	switch g.joystick {
	case core.SignalLeft:
		g.paddle.X -= speed
	case core.SignalRight:
		g.paddle.X += speed
	}

	minX := ToFixed(1)
	maxX := ToFixed(g.geom.Width - g.paddle.Width - 1)
	g.paddle.X = ClampFixed(g.paddle.X, minX, maxX)
}

// launch sends the ball upward, leaning left or right at random.
func (g *Game) launch() {
	speed := g.speed()
	vx := speed / 4
	if g.rng.Intn(2) == 0 {
		vx = -vx
	}
	g.ball.VX = vx
	g.ball.VY = -speed
	g.ball.Stuck = false
}

func (g *Game) updateBall() {
	ball := g.ball
	prevX, prevY := ball.X, ball.Y
	ball.Move()

	side, fellOff := CheckWallCollision(ball, g.geom.Width, g.geom.Height)
	if fellOff {
		g.handleMiss()
		return
	}
	ApplyCollisionBounce(ball, side)

	if CheckPaddleCollision(ball, g.paddle, g.speed()) {
		return
	}

	row, col, brickSide := CheckBrickCollision(ball, prevX, prevY, g.level, brickAreaTop, brickAreaLeft)
	if brickSide == CollisionNone {
		return
	}
	ApplyCollisionBounce(ball, brickSide)
	ball.X, ball.Y = prevX, prevY
	g.hitBrick(row, col)
}

func (g *Game) hitBrick(row, col int) {
	brick := &g.level.Bricks[row][col]
	if brick.Type == BrickSolid {
		return
	}

	brick.HP--
	if brick.HP > 0 {
		return
	}
	brick.Alive = false
	g.score += brick.Points

	if g.level.CountAlive() == 0 {
		g.handleLevelClear()
	}
}

func (g *Game) handleMiss() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.over = true
		return
	}
	g.serve(serveDelay)
}

func (g *Game) handleLevelClear() {
	g.levelIndex++
	if g.levelIndex >= LevelCount() {
		if g.mode == ModeCampaign {
			g.over = true
			return
		}
		g.levelIndex = 0
		g.endlessCycle++
		g.baseSpeed += speedPerCycle
	}
	g.loadLevel()
	g.serve(serveDelay)
}

// loadLevel fits the current level to the board. Levels left with nothing
// to destroy after fitting are skipped, at most once around the list.
func (g *Game) loadLevel() {
	cols := g.geom.Width - 2
	maxRows := g.paddle.Y - brickAreaTop - paddleGap

	for range LevelCount() {
		g.level = GetLevel(g.levelIndex).Fit(cols, maxRows)
		if g.level.CountAlive() > 0 {
			return
		}
		g.levelIndex = (g.levelIndex + 1) % LevelCount()
	}
}

// serve places a new ball above the paddle.
func (g *Game) serve(delay int) {
	g.ball = &Ball{
		X:     g.paddle.CenterX(),
		Y:     ToFixed(g.paddle.Y - 1),
		Stuck: true,
	}
	g.serveDelay = delay
}

// draw rebuilds the tile board from the game objects.
func (g *Game) draw() {
	for i := range g.tiles {
		g.tiles[i] = core.TileEmpty
	}

	for col := range g.geom.Width {
		g.set(0, col, core.TileWall)
	}
	for row := range g.geom.Height {
		g.set(row, 0, core.TileWall)
		g.set(row, g.geom.Width-1, core.TileWall)
	}

	for row := range g.level.Height {
		for col := range g.level.Width {
			brick := g.level.Bricks[row][col]
			if !brick.Alive || brick.Type == BrickEmpty {
				continue
			}
			tile := core.TileBlock
			if brick.Type == BrickSolid {
				tile = core.TileWall
			}
			g.set(brickAreaTop+row, brickAreaLeft+col, tile)
		}
	}

	px := g.paddle.CellX()
	for i := range g.paddle.Width {
		g.set(g.paddle.Y, px+i, core.TilePaddle)
	}

	g.set(g.ball.CellY(), g.ball.CellX(), core.TileBall)
}

func (g *Game) set(row, col int, t core.Tile) {
	if row < 0 || row >= g.geom.Height || col < 0 || col >= g.geom.Width {
		return
	}
	g.tiles[g.geom.Index(row, col)] = t
}

func init() {
	engine.Register("breakout", "Breakout", func(cfg config.Config) (engine.Factory, error) {
		bcfg := cfg.Breakout
		if _, err := New(bcfg, cfg.Seed); err != nil {
			return nil, err
		}

		// Each game gets the next seed so restarts do not replay the same serve.
		// SSH sessions share one factory, so the counter is atomic.
		var game atomic.Int64
		return func() (engine.Engine, error) {
			seed := cfg.Seed + game.Add(1) - 1
			return New(bcfg, seed)
		}, nil
	})
}
