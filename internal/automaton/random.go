package automaton

// Rand is the subset of *math/rand.Rand used by the automaton.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// AliveThreshold is the draw below which a cell starts alive. Ties go to Dead.
const AliveThreshold = 0.5

// Random returns a width x height grid where each cell is Alive when its
// uniform draw is below AliveThreshold and Dead otherwise. When seedPredator
// is set, one cell chosen independently of those draws is overwritten with a
// Predator.
func Random(width, height int, seedPredator bool, rng Rand) (*Grid, error) {
	g, err := NewGrid(width, height)
	if err != nil {
		return nil, err
	}
	for i := range g.cells {
		if rng.Float64() >= AliveThreshold {
			g.cells[i] = Dead
		} else {
			g.cells[i] = Alive
		}
	}
	if seedPredator {
		row := rng.Intn(height)
		col := rng.Intn(width)
		g.cells[row*width+col] = Predator
	}
	return g, nil
}
