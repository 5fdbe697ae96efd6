// Package viz provides the interactive terminal view of a simulation.
//
// [Model] is a Bubble Tea model that advances a [sim.Simulator] one
// generation per tick and draws the board next to a population chart.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Restart with a new seed
//	+/-   - Faster/slower
//	T     - Cycle colour themes
//	?     - Show help overlay
//	Q     - Quit
package viz
