// Package automaton implements the cellular automaton at the core of cellsim.
//
// The package is pure: it holds no global state and performs no I/O.
// Randomness is supplied by the caller through [Rand].
//
//   - [Grid]: fixed-size two-dimensional board of [Cell] states
//   - [Random]: builds a randomly populated starting board
//   - [Step]: computes the next generation and the predator's movable set
//   - [PlacePredator]: moves the predator to one cell of the movable set
//   - [HasLivingCells]: reports whether any ordinary cell is still alive
//
// # Example
//
//	rng := rand.New(rand.NewSource(42))
//	g, _ := automaton.Random(20, 20, true, rng)
//	next, adjacent, err := automaton.Step(g)
//	if err == nil && len(adjacent) > 0 {
//		_, _, err = automaton.PlacePredator(next, adjacent, rng)
//	}
//
// # Thread Safety
//
// Grid values are NOT safe for concurrent mutation. A generation is owned by
// exactly one caller at a time.
package automaton
