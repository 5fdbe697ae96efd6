package automaton

import "fmt"

// Step computes the successor of g.
//
// Ordinary cells follow the standard birth/survival rule over their clipped
// Moore neighbourhood; predators are not counted as live neighbours. A
// predator's own position becomes Dead in the successor. Every in-bounds
// neighbour of every predator is appended to the returned movable set, so a
// coordinate adjacent to several predators appears several times.
//
// If g holds a predator but the movable set is empty, Step returns the
// successor together with ErrNoMovableNeighbor.
func Step(g *Grid) (*Grid, []Coord, error) {
	next := &Grid{width: g.width, height: g.height, cells: make([]Cell, len(g.cells))}
	var adjacent []Coord
	predators := 0

	for row := 0; row < g.height; row++ {
		for col := 0; col < g.width; col++ {
			current := g.cells[row*g.width+col]
			isPredator := current == Predator
			if isPredator {
				predators++
			}

			live := 0
			for i := row - 1; i <= row+1; i++ {
				if i < 0 || i >= g.height {
					continue
				}
				for j := col - 1; j <= col+1; j++ {
					if j < 0 || j >= g.width {
						continue
					}
					if i == row && j == col {
						continue
					}
					if g.cells[i*g.width+j] == Alive {
						live++
					}
					if isPredator {
						adjacent = append(adjacent, Coord{Row: i, Col: j})
					}
				}
			}

			next.cells[row*g.width+col] = nextState(current, live)
		}
	}

	if predators > 0 && len(adjacent) == 0 {
		return next, nil, fmt.Errorf("%w: %d predator(s) on %dx%d grid", ErrNoMovableNeighbor, predators, g.width, g.height)
	}
	return next, adjacent, nil
}

func nextState(current Cell, live int) Cell {
	switch current {
	case Alive:
		if live > 1 && live <= 3 {
			return Alive
		}
		return Dead
	case Dead:
		if live == 3 {
			return Alive
		}
		return Dead
	default:
		return Dead
	}
}

// PlacePredator picks one coordinate uniformly from adjacent and writes a
// Predator there, overwriting the computed state. Duplicates in adjacent
// weight the choice. It returns the chosen coordinate and the state that was
// overwritten.
func PlacePredator(g *Grid, adjacent []Coord, rng Rand) (Coord, Cell, error) {
	if len(adjacent) == 0 {
		return Coord{}, Dead, ErrNoMovableNeighbor
	}
	target := adjacent[rng.Intn(len(adjacent))]
	if !g.InBounds(target.Row, target.Col) {
		return target, Dead, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, target.Row, target.Col)
	}
	idx := target.Row*g.width + target.Col
	prev := g.cells[idx]
	g.cells[idx] = Predator
	return target, prev, nil
}

// HasLivingCells reports whether any cell is Alive. Predators do not count.
func HasLivingCells(g *Grid) bool {
	for _, c := range g.cells {
		if c == Alive {
			return true
		}
	}
	return false
}
