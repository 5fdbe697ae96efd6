package automaton

import (
	"fmt"
	"strings"
)

// Grid is a fixed-width, fixed-height board stored row-major.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid returns an all-dead grid.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidDimension, width, height)
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}, nil
}

// ParseGrid builds a grid from one string per row using the render glyphs.
// All rows must have the same length.
func ParseGrid(rows ...string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidDimension)
	}
	width := len([]rune(rows[0]))
	g, err := NewGrid(width, len(rows))
	if err != nil {
		return nil, err
	}
	for r, line := range rows {
		runes := []rune(line)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidDimension, r, len(runes), width)
		}
		for c, ch := range runes {
			cell, ok := CellFromGlyph(ch)
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrInvalidCell, ch, r, c)
			}
			g.cells[r*width+c] = cell
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// InBounds reports whether (row, col) addresses a cell of g.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.height && col >= 0 && col < g.width
}

// At returns the cell at (row, col). Out-of-bounds reads return Dead.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Dead
	}
	return g.cells[row*g.width+col]
}

// Set writes the cell at (row, col).
func (g *Grid) Set(row, col int, c Cell) error {
	if !g.InBounds(row, col) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d grid", ErrOutOfBounds, row, col, g.width, g.height)
	}
	if !c.Valid() {
		return fmt.Errorf("%w: state %d", ErrInvalidCell, c)
	}
	g.cells[row*g.width+col] = c
	return nil
}

func (g *Grid) Clone() *Grid {
	c := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	copy(c.cells, g.cells)
	return c
}

// Equal reports whether both grids have the same dimensions and cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of cells in state c.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, v := range g.cells {
		if v == c {
			n++
		}
	}
	return n
}

// Predators returns the coordinates of every predator cell in row-major order.
func (g *Grid) Predators() []Coord {
	var out []Coord
	for i, v := range g.cells {
		if v == Predator {
			out = append(out, Coord{Row: i / g.width, Col: i % g.width})
		}
	}
	return out
}

// String renders the grid using glyphs with no separators, one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			b.WriteRune(g.At(r, c).Glyph())
		}
		if r < g.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
