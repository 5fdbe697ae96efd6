package metrics

import "github.com/san-kum/cellsim/internal/sim"

// KillRate is the fraction of predator moves that landed on a cell that
// would otherwise have been alive.
type KillRate struct {
	name  string
	kills int
	moves int
}

func NewKillRate() *KillRate {
	return &KillRate{name: "kill_rate"}
}

func (k *KillRate) Name() string {
	return k.name
}

func (k *KillRate) Observe(gen sim.Generation) {
	if !gen.Moved {
		return
	}
	k.moves++
	if gen.Consumed {
		k.kills++
	}
}

func (k *KillRate) Value() float64 {
	if k.moves == 0 {
		return 0
	}
	return float64(k.kills) / float64(k.moves)
}

func (k *KillRate) Reset() {
	k.kills = 0
	k.moves = 0
}

// Defaults returns a fresh instance of every metric reported by the CLI.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewPeakPopulation(),
		NewMeanPopulation(),
		NewKillRate(),
	}
}
