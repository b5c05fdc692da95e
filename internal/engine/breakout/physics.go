package breakout

// Scale is the number of fixed-point units per tile.
const Scale = 1000

// Fixed is a board coordinate or velocity in thousandths of a tile.
// Integer math keeps every run with the same seed identical.
type Fixed int

// ToFixed converts a tile coordinate to fixed-point.
func ToFixed(cell int) Fixed {
	return Fixed(cell * Scale)
}

// ToCell converts fixed-point to tile coordinate (truncated).
func (f Fixed) ToCell() int {
	return int(f) / Scale
}

// Mul multiplies fixed-point by an integer.
func (f Fixed) Mul(n int) Fixed {
	return Fixed(int(f) * n)
}

// Div divides fixed-point by an integer.
func (f Fixed) Div(n int) Fixed {
	if n == 0 {
		return 0
	}
	return Fixed(int(f) / n)
}

// Abs returns absolute value.
func (f Fixed) Abs() Fixed {
	if f < 0 {
		return -f
	}
	return f
}

// Ball represents the ball state with fixed-point coordinates.
type Ball struct {
	X, Y   Fixed // Position
	VX, VY Fixed // Velocity per step
	Stuck  bool  // Waiting above the paddle to be served
}

// CellX returns the ball's column.
func (b *Ball) CellX() int {
	return b.X.ToCell()
}

// CellY returns the ball's row.
func (b *Ball) CellY() int {
	return b.Y.ToCell()
}

// Move updates ball position by velocity.
func (b *Ball) Move() {
	b.X += b.VX
	b.Y += b.VY
}

// Paddle represents the player's paddle.
type Paddle struct {
	X     Fixed // Left edge position (fixed-point)
	Y     int   // Row, fixed for the board
	Width int   // Width in tiles
}

// CellX returns paddle's left edge column.
func (p *Paddle) CellX() int {
	return p.X.ToCell()
}

// CenterX returns paddle's center in fixed-point.
func (p *Paddle) CenterX() Fixed {
	return p.X + ToFixed(p.Width).Div(2)
}

// Right returns right edge in fixed-point.
func (p *Paddle) Right() Fixed {
	return p.X + ToFixed(p.Width)
}

// CollisionSide indicates which side of an object was hit.
type CollisionSide int

const (
	CollisionNone CollisionSide = iota
	CollisionTop
	CollisionBottom
	CollisionLeft
	CollisionRight
)

// CheckWallCollision checks the ball against the walls on row 0, column 0
// and column w-1. The bottom edge is open: fellOff reports a ball below row h-1.
func CheckWallCollision(ball *Ball, w, h int) (side CollisionSide, fellOff bool) {
	if ball.X < ToFixed(1) {
		ball.X = ToFixed(1)
		return CollisionLeft, false
	}

	if ball.X >= ToFixed(w-1) {
		ball.X = ToFixed(w - 2)
		return CollisionRight, false
	}

	if ball.Y < ToFixed(1) {
		ball.Y = ToFixed(1)
		return CollisionTop, false
	}

	if ball.Y >= ToFixed(h) {
		return CollisionBottom, true
	}

	return CollisionNone, false
}

// CheckPaddleCollision checks if ball hits the paddle.
// If collision occurs, the ball leaves upward at speed with a horizontal
// component shaped by where it hit: edges give sharper angles.
func CheckPaddleCollision(ball *Ball, paddle *Paddle, speed Fixed) bool {
	if ball.VY <= 0 {
		return false
	}

	ballY := ball.CellY()
	if ballY != paddle.Y && ballY != paddle.Y-1 {
		return false
	}

	if ball.X < paddle.X || ball.X > paddle.Right() {
		return false
	}

	// Normalize hit offset to -Scale..+Scale
	hitOffset := ball.X - paddle.CenterX()
	halfWidth := ToFixed(paddle.Width).Div(2)
	var normalizedHit Fixed
	if halfWidth > 0 {
		normalizedHit = hitOffset.Mul(Scale).Div(int(halfWidth))
	}

	ball.VY = -ball.VY.Abs()
	if ball.VY > -speed {
		ball.VY = -speed
	}
	ball.VX = normalizedHit.Mul(int(speed)) / Scale
	ball.Y = ToFixed(paddle.Y - 1)

	return true
}

// CheckBrickCollision checks if the ball moved into a live brick.
// The brick grid starts at (top, left) in board coordinates with one brick per tile.
// The side is decided from the tile the ball came from.
// Returns (-1, -1, CollisionNone) if nothing was hit.
func CheckBrickCollision(ball *Ball, prevX, prevY Fixed, level *Level, top, left int) (row, col int, side CollisionSide) {
	row = ball.CellY() - top
	col = ball.CellX() - left

	if row < 0 || row >= level.Height || col < 0 || col >= level.Width {
		return -1, -1, CollisionNone
	}

	brick := &level.Bricks[row][col]
	if !brick.Alive || brick.Type == BrickEmpty {
		return -1, -1, CollisionNone
	}

	prevRow := prevY.ToCell() - top
	prevCol := prevX.ToCell() - left

	switch {
	case prevCol != col && prevRow == row:
		if prevCol < col {
			return row, col, CollisionLeft
		}
		return row, col, CollisionRight
	case prevRow < row:
		return row, col, CollisionTop
	default:
		return row, col, CollisionBottom
	}
}

// ApplyCollisionBounce applies the appropriate bounce based on collision side.
func ApplyCollisionBounce(ball *Ball, side CollisionSide) {
	switch side {
	case CollisionTop, CollisionBottom:
		ball.VY = -ball.VY
	case CollisionLeft, CollisionRight:
		ball.VX = -ball.VX
	}
}

// ClampFixed restricts a value to [minVal, maxVal].
func ClampFixed(val, minVal, maxVal Fixed) Fixed {
	return max(minVal, min(val, maxVal))
}
