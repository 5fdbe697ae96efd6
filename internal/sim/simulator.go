package sim

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/cellsim/internal/automaton"
)

// Simulator owns the board of a single run and drives it through the
// Initializing, Running and Terminated phases. It is not safe for
// concurrent use.
type Simulator struct {
	cfg       Config
	seed      int64
	rng       *rand.Rand
	renderer  Renderer
	clock     Clock
	logger    *log.Logger
	metrics   []Metric
	observers []Observer

	grid       *automaton.Grid
	phase      Phase
	generation int
	kills      int
	population []int
}

func New(cfg Config, renderer Renderer, clock Clock) *Simulator {
	if clock == nil {
		clock = RealClock{}
	}
	s := &Simulator{
		cfg:       cfg,
		renderer:  renderer,
		clock:     clock,
		logger:    log.New(io.Discard),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	s.reseed(cfg.Seed)
	return s
}

func (s *Simulator) AddMetric(m Metric)           { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)       { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(logger *log.Logger) { s.logger = logger }

func (s *Simulator) Phase() Phase          { return s.phase }
func (s *Simulator) Grid() *automaton.Grid { return s.grid }
func (s *Simulator) Generation() int       { return s.generation }
func (s *Simulator) Kills() int            { return s.kills }
func (s *Simulator) Seed() int64           { return s.seed }
func (s *Simulator) Config() Config        { return s.cfg }

// Population returns the alive count of every board so far.
func (s *Simulator) Population() []int { return s.population }

func (s *Simulator) reseed(seed int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s.seed = seed
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Simulator) validateConfig() error {
	if s.cfg.Width <= 0 || s.cfg.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", automaton.ErrInvalidDimension, s.cfg.Width, s.cfg.Height)
	}
	if s.cfg.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %v", s.cfg.Delay)
	}
	if s.cfg.MaxGenerations < 0 {
		return fmt.Errorf("max generations must not be negative, got %d", s.cfg.MaxGenerations)
	}
	return nil
}

// Init builds a random starting board from the config.
func (s *Simulator) Init() error {
	if err := s.validateConfig(); err != nil {
		return err
	}
	g, err := automaton.Random(s.cfg.Width, s.cfg.Height, s.cfg.Predator, s.rng)
	if err != nil {
		return err
	}
	return s.Start(g)
}

// Start begins a run from the given board, which the simulator takes
// ownership of. Width and Height in the config are replaced by the board's.
func (s *Simulator) Start(g *automaton.Grid) error {
	if g == nil {
		return ErrNotStarted
	}
	s.cfg.Width, s.cfg.Height = g.Width(), g.Height()
	if err := s.validateConfig(); err != nil {
		return err
	}

	s.grid = g
	s.phase = Initializing
	s.generation = 0
	s.kills = 0
	s.population = []int{g.Count(automaton.Alive)}

	for _, m := range s.metrics {
		m.Reset()
	}
	s.observe(Generation{Index: 0, Grid: g, Alive: s.population[0]})

	s.logger.Info("simulation started",
		"width", g.Width(), "height", g.Height(),
		"seed", s.seed, "predators", g.Count(automaton.Predator), "alive", s.population[0])
	return nil
}

// Restart reseeds the RNG and builds a fresh random board.
func (s *Simulator) Restart(seed int64) error {
	s.reseed(seed)
	return s.Init()
}

// Advance computes the next generation, moves the predator and checks for
// termination. The current board is only replaced once the whole
// generation has been computed successfully.
func (s *Simulator) Advance() (Generation, error) {
	if s.grid == nil {
		return Generation{}, ErrNotStarted
	}
	if s.phase == Terminated {
		return Generation{}, ErrTerminated
	}
	s.phase = Running

	index := s.generation + 1
	next, adjacent, err := automaton.Step(s.grid)
	if err != nil {
		return Generation{}, &StepError{Generation: index, Wrapped: err}
	}

	gen := Generation{Index: index, Grid: next}
	if len(adjacent) > 0 {
		at, prev, err := automaton.PlacePredator(next, adjacent, s.rng)
		if err != nil {
			return Generation{}, &StepError{Generation: index, Wrapped: err}
		}
		gen.Moved = true
		gen.Predator = at
		gen.Consumed = prev == automaton.Alive
	}

	s.grid = next
	s.generation = index
	if gen.Consumed {
		s.kills++
	}
	gen.Alive = next.Count(automaton.Alive)
	s.population = append(s.population, gen.Alive)

	if !automaton.HasLivingCells(next) {
		s.phase = Terminated
	}
	s.observe(gen)

	s.logger.Debug("generation", "n", index, "alive", gen.Alive, "predator", gen.Predator, "consumed", gen.Consumed)
	if s.phase == Terminated {
		s.logger.Info("simulation terminated", "generations", index, "kills", s.kills)
	}
	return gen, nil
}

func (s *Simulator) observe(gen Generation) {
	for _, m := range s.metrics {
		m.Observe(gen)
	}
	for _, o := range s.observers {
		o.OnGeneration(gen)
	}
}

// Run renders and advances the board until no ordinary cell survives, the
// generation cap is reached or ctx is cancelled. The last board is always
// rendered before Run returns without error.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.phase == Terminated {
		return s.Result(), ErrTerminated
	}
	if s.grid == nil {
		if err := s.Init(); err != nil {
			return nil, err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return s.Result(), ctx.Err()
		default:
		}

		if err := s.render(); err != nil {
			return s.Result(), err
		}

		if _, err := s.Advance(); err != nil {
			return s.Result(), err
		}

		if s.phase == Terminated || s.capped() {
			if err := s.render(); err != nil {
				return s.Result(), err
			}
			return s.Result(), nil
		}

		if err := s.clock.Sleep(ctx, s.cfg.Delay); err != nil {
			return s.Result(), err
		}
	}
}

func (s *Simulator) capped() bool {
	return s.cfg.MaxGenerations > 0 && s.generation >= s.cfg.MaxGenerations
}

func (s *Simulator) render() error {
	if s.renderer == nil {
		return nil
	}
	if err := s.renderer.Render(s.grid); err != nil {
		return fmt.Errorf("render generation %d: %w", s.generation, err)
	}
	return nil
}

// Result summarises the run so far.
func (s *Simulator) Result() *Result {
	result := &Result{
		Seed:        s.seed,
		Generations: s.generation,
		Population:  append([]int(nil), s.population...),
		Kills:       s.kills,
		Final:       s.grid,
		Metrics:     make(map[string]float64, len(s.metrics)),
		Terminated:  s.phase == Terminated,
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result
}
