package automaton_test

import (
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cellsim/internal/automaton"
)

func mustParse(rows ...string) *automaton.Grid {
	g, err := automaton.ParseGrid(rows...)
	Expect(err).NotTo(HaveOccurred())
	return g
}

// neighbourhood returns a 3x3 grid with the given centre and the first n
// ring positions alive.
func neighbourhood(centre automaton.Cell, n int) *automaton.Grid {
	g, _ := automaton.NewGrid(3, 3)
	ring := []automaton.Coord{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}}
	for _, c := range ring[:n] {
		Expect(g.Set(c.Row, c.Col, automaton.Alive)).To(Succeed())
	}
	Expect(g.Set(1, 1, centre)).To(Succeed())
	return g
}

var _ = Describe("Step", func() {
	DescribeTable("birth and survival of the centre cell",
		func(centre automaton.Cell, live int, want automaton.Cell) {
			next, adjacent, err := automaton.Step(neighbourhood(centre, live))
			Expect(err).NotTo(HaveOccurred())
			Expect(adjacent).To(BeEmpty())
			Expect(next.At(1, 1)).To(Equal(want))
		},
		Entry("alive, 0 neighbours", automaton.Alive, 0, automaton.Dead),
		Entry("alive, 1 neighbour", automaton.Alive, 1, automaton.Dead),
		Entry("alive, 2 neighbours", automaton.Alive, 2, automaton.Alive),
		Entry("alive, 3 neighbours", automaton.Alive, 3, automaton.Alive),
		Entry("alive, 4 neighbours", automaton.Alive, 4, automaton.Dead),
		Entry("alive, 8 neighbours", automaton.Alive, 8, automaton.Dead),
		Entry("dead, 2 neighbours", automaton.Dead, 2, automaton.Dead),
		Entry("dead, 3 neighbours", automaton.Dead, 3, automaton.Alive),
		Entry("dead, 4 neighbours", automaton.Dead, 4, automaton.Dead),
	)

	It("oscillates a blinker", func() {
		g := mustParse(
			"___",
			"...",
			"___",
		)
		next, adjacent, err := automaton.Step(g)
		Expect(err).NotTo(HaveOccurred())
		Expect(adjacent).To(BeEmpty())
		Expect(next.Equal(mustParse(
			"_._",
			"_._",
			"_._",
		))).To(BeTrue())

		back, _, err := automaton.Step(next)
		Expect(err).NotTo(HaveOccurred())
		Expect(back.Equal(g)).To(BeTrue())
	})

	It("does not wrap at the edges", func() {
		g := mustParse(
			"._.",
			"___",
			"._.",
		)
		next, _, err := automaton.Step(g)
		Expect(err).NotTo(HaveOccurred())
		Expect(next.Count(automaton.Alive)).To(BeZero())
	})

	It("preserves dimensions", func() {
		rng := rand.New(rand.NewSource(11))
		for _, dims := range [][2]int{{1, 5}, {7, 3}, {20, 20}} {
			g, err := automaton.Random(dims[0], dims[1], false, rng)
			Expect(err).NotTo(HaveOccurred())
			next, _, err := automaton.Step(g)
			Expect(err).NotTo(HaveOccurred())
			Expect(next.Width()).To(Equal(g.Width()))
			Expect(next.Height()).To(Equal(g.Height()))
		}
	})

	It("does not count predators as live neighbours", func() {
		g := mustParse(
			"@._",
			"._.",
			"___",
		)
		next, _, err := automaton.Step(g)
		Expect(err).NotTo(HaveOccurred())
		// (1,1) sees three alive neighbours but not the predator.
		Expect(next.At(1, 1)).To(Equal(automaton.Alive))
		// (0,1) sees only (1,0) and (1,2); the predator is ignored.
		Expect(next.At(0, 1)).To(Equal(automaton.Alive))
	})

	It("clears the predator's old position", func() {
		next, _, err := automaton.Step(mustParse("@..", "...", "..."))
		Expect(err).NotTo(HaveOccurred())
		Expect(next.At(0, 0)).To(Equal(automaton.Dead))
		Expect(next.Count(automaton.Predator)).To(BeZero())
	})

	DescribeTable("movable set size for a single predator",
		func(row, col, want int) {
			g, _ := automaton.NewGrid(5, 4)
			Expect(g.Set(row, col, automaton.Predator)).To(Succeed())
			_, adjacent, err := automaton.Step(g)
			Expect(err).NotTo(HaveOccurred())
			Expect(adjacent).To(HaveLen(want))
			for _, c := range adjacent {
				Expect(g.InBounds(c.Row, c.Col)).To(BeTrue())
				Expect(c).NotTo(Equal(automaton.Coord{Row: row, Col: col}))
			}
		},
		Entry("interior", 1, 2, 8),
		Entry("top edge", 0, 2, 5),
		Entry("left edge", 2, 0, 5),
		Entry("corner", 3, 4, 3),
	)

	It("lists neighbours in scan order regardless of their state", func() {
		_, adjacent, err := automaton.Step(mustParse(
			"@.",
			"._",
		))
		Expect(err).NotTo(HaveOccurred())
		Expect(adjacent).To(Equal([]automaton.Coord{{0, 1}, {1, 0}, {1, 1}}))
	})

	It("keeps duplicates when predators share a neighbour", func() {
		_, adjacent, err := automaton.Step(mustParse("@_@"))
		Expect(err).NotTo(HaveOccurred())
		Expect(adjacent).To(Equal([]automaton.Coord{{0, 1}, {0, 1}}))
	})

	It("handles a two-cell board", func() {
		_, adjacent, err := automaton.Step(mustParse("@_"))
		Expect(err).NotTo(HaveOccurred())
		Expect(adjacent).To(Equal([]automaton.Coord{{0, 1}}))
	})

	It("signals a predator with nowhere to go", func() {
		_, adjacent, err := automaton.Step(mustParse("@"))
		Expect(err).To(MatchError(automaton.ErrNoMovableNeighbor))
		Expect(adjacent).To(BeEmpty())
	})

	It("accepts a 1x1 board without a predator", func() {
		next, adjacent, err := automaton.Step(mustParse("."))
		Expect(err).NotTo(HaveOccurred())
		Expect(adjacent).To(BeEmpty())
		Expect(next.At(0, 0)).To(Equal(automaton.Dead))
	})
})

var _ = Describe("PlacePredator", func() {
	It("writes the predator at a chosen member of the movable set", func() {
		g := mustParse(
			"@..",
			"...",
			"...",
		)
		next, adjacent, err := automaton.Step(g)
		Expect(err).NotTo(HaveOccurred())

		rng := rand.New(rand.NewSource(5))
		at, prev, err := automaton.PlacePredator(next, adjacent, rng)
		Expect(err).NotTo(HaveOccurred())
		Expect(adjacent).To(ContainElement(at))
		Expect(next.At(at.Row, at.Col)).To(Equal(automaton.Predator))
		Expect(next.Count(automaton.Predator)).To(Equal(1))
		Expect(prev).To(BeElementOf(automaton.Dead, automaton.Alive))
	})

	It("overwrites whatever the engine computed and reports it", func() {
		g := mustParse("._.")
		adjacent := []automaton.Coord{{0, 0}, {0, 1}}
		at, prev, err := automaton.PlacePredator(g, adjacent, &scriptedRand{ints: []int{0}})
		Expect(err).NotTo(HaveOccurred())
		Expect(at).To(Equal(automaton.Coord{Row: 0, Col: 0}))
		Expect(prev).To(Equal(automaton.Alive))
		Expect(g.At(0, 0)).To(Equal(automaton.Predator))
	})

	It("weights duplicates", func() {
		adjacent := []automaton.Coord{{0, 0}, {0, 1}, {0, 1}, {0, 1}}
		rng := rand.New(rand.NewSource(9))
		hits := map[automaton.Coord]int{}
		for i := 0; i < 4000; i++ {
			g, _ := automaton.NewGrid(2, 1)
			at, _, err := automaton.PlacePredator(g, adjacent, rng)
			Expect(err).NotTo(HaveOccurred())
			hits[at]++
		}
		Expect(hits[automaton.Coord{Row: 0, Col: 1}]).To(BeNumerically(">", 2*hits[automaton.Coord{Row: 0, Col: 0}]))
	})

	It("fails on an empty movable set", func() {
		g, _ := automaton.NewGrid(2, 2)
		_, _, err := automaton.PlacePredator(g, nil, rand.New(rand.NewSource(1)))
		Expect(err).To(MatchError(automaton.ErrNoMovableNeighbor))
	})
})

var _ = Describe("HasLivingCells", func() {
	It("ignores predators", func() {
		Expect(automaton.HasLivingCells(mustParse("@__", "___"))).To(BeFalse())
		Expect(automaton.HasLivingCells(mustParse("___"))).To(BeFalse())
	})

	It("finds a single living cell", func() {
		Expect(automaton.HasLivingCells(mustParse("@__", "__."))).To(BeTrue())
	})
})
