package automaton

// Cell is the state of a single grid position. The set of values is closed.
type Cell uint8

const (
	Dead Cell = iota
	Alive
	Predator
)

func (c Cell) String() string {
	switch c {
	case Dead:
		return "dead"
	case Alive:
		return "alive"
	case Predator:
		return "predator"
	default:
		return "unknown"
	}
}

// Glyph returns the single character used to draw the cell.
func (c Cell) Glyph() rune {
	switch c {
	case Alive:
		return '.'
	case Predator:
		return '@'
	default:
		return ' '
	}
}

// Valid reports whether c is one of the three defined states.
func (c Cell) Valid() bool {
	return c <= Predator
}

// CellFromGlyph is the inverse of Glyph. '_' is accepted as an alias for a
// dead cell so that board literals do not depend on trailing whitespace.
func CellFromGlyph(r rune) (Cell, bool) {
	switch r {
	case '.':
		return Alive, true
	case '@':
		return Predator, true
	case ' ', '_':
		return Dead, true
	default:
		return Dead, false
	}
}

// Coord addresses a grid position.
type Coord struct {
	Row int
	Col int
}
