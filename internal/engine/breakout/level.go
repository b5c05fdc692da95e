package breakout

import "fmt"

// BrickType is how a brick reacts to the ball.
type BrickType int

const (
	BrickEmpty  BrickType = iota // No brick
	BrickNormal                  // Breaks on the first hit
	BrickHard                    // Breaks on the second hit
	BrickSolid                   // Never breaks; drawn as wall
)

// Brick is one brick cell of a level.
type Brick struct {
	Type   BrickType
	Points int  // Awarded when the brick breaks
	Alive  bool // Still on the board
	HP     int  // Hits left before it breaks
}

// Level is a brick layout, indexed Bricks[row][col].
type Level struct {
	ID     string
	Name   string
	Width  int
	Height int
	Bricks [][]Brick
}

// Fit stretches the level to exactly cols columns and keeps at most maxRows
// rows. Every resulting cell is its own copy of the source brick.
func (l *Level) Fit(cols, maxRows int) *Level {
	rows := max(0, min(l.Height, maxRows))
	fitted := &Level{ID: l.ID, Name: l.Name, Width: cols, Height: rows, Bricks: make([][]Brick, rows)}
	for row := range fitted.Bricks {
		fitted.Bricks[row] = make([]Brick, cols)
		if l.Width == 0 {
			continue
		}
		src := l.Bricks[row]
		for col := range fitted.Bricks[row] {
			fitted.Bricks[row][col] = src[col*l.Width/cols]
		}
	}
	return fitted
}

// Clone returns a deep copy, so a game can break bricks without touching
// the built-in layout.
func (l *Level) Clone() *Level {
	return l.Fit(l.Width, l.Height)
}

// CountAlive returns how many breakable bricks are left.
func (l *Level) CountAlive() int {
	n := 0
	for _, row := range l.Bricks {
		for _, b := range row {
			if b.Alive && (b.Type == BrickNormal || b.Type == BrickHard) {
				n++
			}
		}
	}
	return n
}

// brickFor maps one layout character to its brick. Digits give a normal
// brick worth ten times the digit; unknown characters are empty.
func brickFor(ch byte) Brick {
	switch {
	case ch == '#':
		return Brick{Type: BrickNormal, Points: 10, Alive: true, HP: 1}
	case ch >= '1' && ch <= '9':
		return Brick{Type: BrickNormal, Points: 10 * int(ch-'0'), Alive: true, HP: 1}
	case ch == 'H' || ch == 'h':
		return Brick{Type: BrickHard, Points: 20, Alive: true, HP: 2}
	case ch == 'X' || ch == 'x':
		return Brick{Type: BrickSolid, Alive: true}
	default:
		return Brick{}
	}
}

// ParseLevel builds a level from ASCII rows. Short rows are padded with
// empty cells.
//
//	'#'       normal brick, 10 points
//	'1'..'9'  normal brick, 10 points per digit
//	'H'       hard brick, two hits, 20 points
//	'X'       solid brick, never breaks
//	other     empty
func ParseLevel(id, name string, rows []string) *Level {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	l := &Level{ID: id, Name: name, Width: width, Height: len(rows), Bricks: make([][]Brick, len(rows))}
	for row, line := range rows {
		l.Bricks[row] = make([]Brick, width)
		for col := 0; col < len(line); col++ {
			l.Bricks[row][col] = brickFor(line[col])
		}
	}
	return l
}

type layout struct {
	id, name string
	rows     []string
}

// campaign is the built-in level order.
var campaign = []layout{
	{"wall", "The Wall", []string{
		"5555555555",
		"4444444444",
		"3333333333",
		"2222222222",
		"##########",
	}},
	{"pyramid", "Pyramid", []string{
		"....##....",
		"...####...",
		"..######..",
		".########.",
		"##########",
	}},
	{"checker", "Checkerboard", []string{
		"#.#.#.#.#.",
		".#.#.#.#.#",
		"#.#.#.#.#.",
		".#.#.#.#.#",
		"#.#.#.#.#.",
	}},
	{"tunnel", "Tunnel", []string{
		"HHHH..HHHH",
		"####..####",
		"####..####",
		"3333..3333",
		"####..####",
		"HHHH..HHHH",
	}},
	{"vault", "Vault", []string{
		"XHHHHHHHHX",
		"H########H",
		"H#9####9#H",
		"H########H",
		"XHHHHHHHHX",
	}},
	{"battlements", "Battlements", []string{
		"X.X.XX.X.X",
		"XXXX..XXXX",
		"..........",
		"##########",
		"#HH#HH#HH#",
		"##########",
	}},
	{"zigzag", "Zigzag", []string{
		"##......##",
		".##....##.",
		"..##..##..",
		"...####...",
		"..##..##..",
		".##....##.",
		"##......##",
	}},
	{"crown", "Crown", []string{
		"H...HH...H",
		"HH.HHHH.HH",
		"HHHHHHHHHH",
		"7777777777",
		"##########",
	}},
}

// BuiltinLevels returns fresh copies of the campaign levels.
func BuiltinLevels() []*Level {
	levels := make([]*Level, len(campaign))
	for i, l := range campaign {
		levels[i] = ParseLevel(l.id, l.name, l.rows)
	}
	return levels
}

// LevelIndex returns the campaign position of the level with the given ID.
func LevelIndex(id string) (int, error) {
	for i, l := range campaign {
		if l.id == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("breakout: unknown level %q", id)
}

// GetLevel returns the campaign level at index, wrapping past the end.
func GetLevel(index int) *Level {
	l := campaign[index%len(campaign)]
	return ParseLevel(l.id, l.name, l.rows)
}

// LevelCount returns the number of campaign levels.
func LevelCount() int {
	return len(campaign)
}
