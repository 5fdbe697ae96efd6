package automaton_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cellsim/internal/automaton"
)

var _ = Describe("Grid", func() {
	It("rejects non-positive dimensions", func() {
		for _, dims := range [][2]int{{0, 5}, {5, 0}, {-1, 3}, {0, 0}} {
			_, err := automaton.NewGrid(dims[0], dims[1])
			Expect(err).To(MatchError(automaton.ErrInvalidDimension))
		}
	})

	It("starts all dead", func() {
		g, err := automaton.NewGrid(4, 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Width()).To(Equal(4))
		Expect(g.Height()).To(Equal(3))
		Expect(g.Count(automaton.Dead)).To(Equal(12))
	})

	It("parses board literals", func() {
		g, err := automaton.ParseGrid(
			"._@",
			"  .",
		)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.At(0, 0)).To(Equal(automaton.Alive))
		Expect(g.At(0, 1)).To(Equal(automaton.Dead))
		Expect(g.At(0, 2)).To(Equal(automaton.Predator))
		Expect(g.At(1, 2)).To(Equal(automaton.Alive))
		Expect(g.Predators()).To(Equal([]automaton.Coord{{Row: 0, Col: 2}}))
	})

	It("rejects ragged rows and unknown glyphs", func() {
		_, err := automaton.ParseGrid("...", "..")
		Expect(err).To(MatchError(automaton.ErrInvalidDimension))

		_, err = automaton.ParseGrid(".x.")
		Expect(err).To(MatchError(automaton.ErrInvalidCell))
	})

	It("guards writes outside the board", func() {
		g, _ := automaton.NewGrid(2, 2)
		Expect(g.Set(2, 0, automaton.Alive)).To(MatchError(automaton.ErrOutOfBounds))
		Expect(g.Set(0, 0, automaton.Cell(9))).To(MatchError(automaton.ErrInvalidCell))
		Expect(g.At(-1, 0)).To(Equal(automaton.Dead))
	})

	It("clones independently", func() {
		g, _ := automaton.ParseGrid("..", "..")
		c := g.Clone()
		Expect(c.Equal(g)).To(BeTrue())
		Expect(c.Set(0, 0, automaton.Dead)).To(Succeed())
		Expect(g.At(0, 0)).To(Equal(automaton.Alive))
		Expect(c.Equal(g)).To(BeFalse())
	})

	It("round-trips through String", func() {
		g, _ := automaton.ParseGrid(". @", "@. ")
		back, err := automaton.ParseGrid("._@", "@._")
		Expect(err).NotTo(HaveOccurred())
		Expect(g.String()).To(Equal(". @\n@. "))
		Expect(back.Equal(g)).To(BeTrue())
	})
})

var _ = Describe("Random", func() {
	It("fails on invalid dimensions", func() {
		_, err := automaton.Random(0, 10, true, rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(automaton.ErrInvalidDimension))
	})

	It("seeds exactly one predator when enabled", func() {
		g, err := automaton.Random(20, 20, true, rand.New(rand.NewSource(3)))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Count(automaton.Predator)).To(Equal(1))
		Expect(g.Count(automaton.Alive) + g.Count(automaton.Dead)).To(Equal(399))
	})

	It("seeds no predator when disabled", func() {
		g, err := automaton.Random(20, 20, false, rand.New(rand.NewSource(3)))
		Expect(err).NotTo(HaveOccurred())
		Expect(g.Count(automaton.Predator)).To(BeZero())
	})

	It("is reproducible for a fixed seed", func() {
		a, _ := automaton.Random(15, 9, true, rand.New(rand.NewSource(42)))
		b, _ := automaton.Random(15, 9, true, rand.New(rand.NewSource(42)))
		Expect(a.Equal(b)).To(BeTrue())
	})

	It("applies the threshold with ties going to Dead", func() {
		g, err := automaton.Random(2, 1, false, &scriptedRand{floats: []float64{0.5, 0.4999}})
		Expect(err).NotTo(HaveOccurred())
		Expect(g.At(0, 0)).To(Equal(automaton.Dead))
		Expect(g.At(0, 1)).To(Equal(automaton.Alive))
	})

	It("places the predator from independent draws", func() {
		rng := &scriptedRand{floats: []float64{0.1, 0.1, 0.1, 0.1}, ints: []int{1, 0}}
		g, err := automaton.Random(2, 2, true, rng)
		Expect(err).NotTo(HaveOccurred())
		Expect(g.At(1, 0)).To(Equal(automaton.Predator))
		Expect(g.Count(automaton.Alive)).To(Equal(3))
	})
})

// scriptedRand replays fixed draws, then falls back to zero.
type scriptedRand struct {
	floats []float64
	ints   []int
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	f := s.floats[0]
	s.floats = s.floats[1:]
	return f
}

func (s *scriptedRand) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}
