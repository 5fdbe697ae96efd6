package sim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/cellsim/internal/automaton"
)

// TerminalMessage is printed once the last ordinary cell has died.
const TerminalMessage = "All Cells Destroyed!!"

// Reference run settings.
const (
	DefaultWidth    = 20
	DefaultHeight   = 20
	DefaultPredator = true
	DefaultDelay    = 30 * time.Millisecond
)

var (
	ErrTerminated = errors.New("sim: simulation already terminated")
	ErrNotStarted = errors.New("sim: simulation has no grid")
)

// Renderer draws one frame of the board.
type Renderer interface {
	Render(g *automaton.Grid) error
}

// Clock throttles the loop between generations.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// Generation describes the board produced by one call to Advance. Index 0 is
// the starting board.
type Generation struct {
	Index    int
	Grid     *automaton.Grid
	Alive    int
	Moved    bool
	Predator automaton.Coord
	// Consumed is set when the predator landed on a cell that would
	// otherwise have been alive.
	Consumed bool
}

type Metric interface {
	Name() string
	Observe(gen Generation)
	Value() float64
	Reset()
}

type Observer interface {
	OnGeneration(gen Generation)
}

// Phase is the run state: Initializing -> Running -> Terminated.
type Phase int

const (
	Initializing Phase = iota
	Running
	Terminated
)

func (p Phase) String() string {
	switch p {
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type Config struct {
	Width    int
	Height   int
	Predator bool
	// Seed of the run's RNG. Zero picks a time-based seed.
	Seed  int64
	Delay time.Duration
	// MaxGenerations stops the run early when positive.
	MaxGenerations int
}

func DefaultConfig() Config {
	return Config{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Predator: DefaultPredator,
		Delay:    DefaultDelay,
	}
}

type Result struct {
	Seed        int64
	Generations int
	// Population holds the alive count of every board, starting board first.
	Population []int
	Kills      int
	Final      *automaton.Grid
	Metrics    map[string]float64
	// Terminated is false when the run stopped on MaxGenerations or a
	// cancelled context.
	Terminated bool
}

// StepError wraps an engine failure with the generation being computed.
type StepError struct {
	Generation int
	Wrapped    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("generation %d: %v", e.Generation, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}

// RealClock sleeps on the wall clock and wakes early if ctx is cancelled.
type RealClock struct{}

func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
