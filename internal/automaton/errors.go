package automaton

import "errors"

// Domain errors for automaton operations.
var (
	// ErrInvalidDimension indicates a grid width or height that is not positive.
	ErrInvalidDimension = errors.New("automaton: grid dimensions must be positive")

	// ErrNoMovableNeighbor indicates a predator with no in-bounds neighbour to move to.
	ErrNoMovableNeighbor = errors.New("automaton: predator has no movable neighbor")

	// ErrInvalidCell indicates an unrecognised glyph in a board literal.
	ErrInvalidCell = errors.New("automaton: invalid cell glyph")

	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("automaton: coordinate out of bounds")
)
