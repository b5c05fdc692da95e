package core

// Tile is the semantic kind of one board cell as produced by an engine.
// Values outside the named set are kept as-is; consumers must treat them
// like TileEmpty.
type Tile uint8

const (
	TileEmpty  Tile = iota // Nothing
	TileWall               // Indestructible border
	TileBlock              // Breakable block
	TilePaddle             // Player paddle
	TileBall               // The ball
)

// TileFromValue converts an engine wire value to a Tile.
// Negative or oversized values map to an unknown kind rather than failing.
func TileFromValue(v int64) Tile {
	if v < 0 || v > 0xFF {
		return Tile(0xFF)
	}
	return Tile(v)
}

// Known reports whether t is one of the named tile kinds.
func (t Tile) Known() bool {
	return t <= TileBall
}

// String returns a human-readable name for the tile kind.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileWall:
		return "wall"
	case TileBlock:
		return "block"
	case TilePaddle:
		return "paddle"
	case TileBall:
		return "ball"
	default:
		return "unknown"
	}
}

// Glyph returns the plain-text glyph used for text dumps of a board.
func (t Tile) Glyph() rune {
	switch t {
	case TileEmpty:
		return ' '
	case TileWall:
		return '#'
	case TileBlock:
		return '*'
	case TilePaddle:
		return 'T'
	case TileBall:
		return 'o'
	default:
		return '?'
	}
}

// Geometry is the fixed board size of one session, in tiles.
type Geometry struct {
	Width  int
	Height int
}

// Valid reports whether both dimensions are positive.
func (g Geometry) Valid() bool {
	return g.Width > 0 && g.Height > 0
}

// Len returns the number of tiles on the board.
func (g Geometry) Len() int {
	return g.Width * g.Height
}

// Index returns the row-major buffer index for (row, col).
func (g Geometry) Index(row, col int) int {
	return row*g.Width + col
}
