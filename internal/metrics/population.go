package metrics

import "github.com/san-kum/cellsim/internal/sim"

// PeakPopulation tracks the largest number of living cells seen on any board.
type PeakPopulation struct {
	name string
	peak int
}

func NewPeakPopulation() *PeakPopulation {
	return &PeakPopulation{name: "peak_population"}
}

func (p *PeakPopulation) Name() string {
	return p.name
}

func (p *PeakPopulation) Observe(gen sim.Generation) {
	if gen.Alive > p.peak {
		p.peak = gen.Alive
	}
}

func (p *PeakPopulation) Value() float64 {
	return float64(p.peak)
}

func (p *PeakPopulation) Reset() {
	p.peak = 0
}

type MeanPopulation struct {
	name    string
	sum     int
	samples int
}

func NewMeanPopulation() *MeanPopulation {
	return &MeanPopulation{name: "mean_population"}
}

func (m *MeanPopulation) Name() string {
	return m.name
}

func (m *MeanPopulation) Observe(gen sim.Generation) {
	m.sum += gen.Alive
	m.samples++
}

func (m *MeanPopulation) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.sum) / float64(m.samples)
}

func (m *MeanPopulation) Reset() {
	m.sum = 0
	m.samples = 0
}
