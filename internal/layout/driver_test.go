package layout_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/topolab/fleetview/internal/layout"
	"github.com/topolab/fleetview/internal/topo"
)

var _ = Describe("Driver", func() {
	var (
		bounds layout.Bounds
		store  *layout.Store
		driver *layout.Driver
		nodes  []topo.Node
		edges  []topo.Edge
		params layout.Params
	)

	BeforeEach(func() {
		bounds = layout.Bounds{Width: 600, Height: 400}
		store = layout.NewStore(bounds)
		driver = layout.NewDriver(store, 5*time.Millisecond)
		nodes = []topo.Node{
			{ID: "web", Kind: "container"},
			{ID: "api", Kind: "container"},
			{ID: "db", Kind: "server"},
		}
		edges = []topo.Edge{
			{Source: "web", Target: "api", Weight: 1},
			{Source: "api", Target: "db", Weight: 2},
		}
		params = layout.DefaultParams(bounds)
	})

	AfterEach(func() {
		driver.Stop()
	})

	It("seeds every node on start", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		snap := driver.Snapshot()
		Expect(snap).To(HaveLen(len(nodes)))
		for _, n := range nodes {
			Expect(snap).To(HaveKey(n.ID))
		}
	})

	It("rejects invalid parameters", func() {
		params.Repulsion = -1
		Expect(driver.Start(nodes, edges, params)).NotTo(Succeed())
	})

	It("ticks on its own cadence once started", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		Eventually(driver.Ticks, "1s", "10ms").Should(BeNumerically(">", 2))
	})

	It("treats a second start as a no-op", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		Expect(driver.Running()).To(BeTrue())
		Eventually(driver.Ticks, "1s", "10ms").Should(BeNumerically(">", 0))
	})

	It("freezes positions on stop", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		Eventually(driver.Ticks, "1s", "10ms").Should(BeNumerically(">", 0))

		driver.Stop()
		frozen := driver.Snapshot()
		ticksAtStop := driver.Ticks()

		Consistently(driver.Ticks, "60ms", "10ms").Should(Equal(ticksAtStop))
		Expect(driver.Snapshot()).To(Equal(frozen))
	})

	It("keeps every position finite and in bounds while running", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		Eventually(driver.Ticks, "1s", "10ms").Should(BeNumerically(">", 10))

		for id, p := range driver.Snapshot() {
			Expect(p.Finite()).To(BeTrue(), "node %s", id)
			Expect(p.X).To(And(
				BeNumerically(">=", layout.Margin),
				BeNumerically("<=", bounds.Width-layout.Margin)))
			Expect(p.Y).To(And(
				BeNumerically(">=", layout.Margin),
				BeNumerically("<=", bounds.Height-layout.Margin)))
		}
	})

	It("pins the drag target to the pointer position", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		target := layout.Point{X: 123, Y: 234}
		driver.SetDragTarget("api", target)

		Eventually(func() layout.Point {
			return driver.Snapshot()["api"]
		}, "1s", "10ms").Should(Equal(target))

		driver.ClearDragTarget()
		Eventually(func() layout.Point {
			return driver.Snapshot()["api"]
		}, "1s", "10ms").ShouldNot(Equal(target))
	})

	It("applies manual moves immediately while stopped", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		driver.Stop()

		target := layout.Point{X: 111, Y: 222}
		driver.SetDragTarget("db", target)
		Expect(driver.Snapshot()["db"]).To(Equal(target))
	})

	It("reseeds onto the initial circle", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		Eventually(driver.Ticks, "1s", "10ms").Should(BeNumerically(">", 5))
		driver.Stop()

		driver.Reseed(nodes, bounds)

		fresh := layout.NewStore(bounds)
		fresh.Init(nodes, bounds)
		Expect(driver.Snapshot()).To(Equal(fresh.Snapshot()))
	})

	It("is not overwritten by a tick in flight when reseeding", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())

		fresh := layout.NewStore(bounds)
		fresh.Init(nodes, bounds)
		seed := fresh.Snapshot()

		driftFromSeed := func() float64 {
			max := 0.0
			for id, p := range driver.Snapshot() {
				if d := p.DistanceTo(seed[id]); d > max {
					max = d
				}
			}
			return max
		}

		// Let the layout drift well away from the seed, reseed while
		// ticks keep firing, and check the fresh circle is what sticks
		// rather than a stale delta computed from the drifted state.
		for i := 0; i < 5; i++ {
			Eventually(driftFromSeed, "3s", "5ms").Should(BeNumerically(">", 100))
			driver.Reseed(nodes, bounds)
			Expect(driftFromSeed()).To(BeNumerically("<", 60))
		}
	})

	It("reseeds when the node-id set changes", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())

		grown := append([]topo.Node{}, nodes...)
		grown = append(grown, topo.Node{ID: "cache", Kind: "process"})
		driver.SetGraph(grown, edges)

		Expect(driver.Snapshot()).To(HaveKey("cache"))
		Expect(driver.Snapshot()).To(HaveLen(len(grown)))
	})

	It("keeps positions when only edges change", func() {
		Expect(driver.Start(nodes, edges, params)).To(Succeed())
		driver.Stop()
		before := driver.Snapshot()

		driver.SetGraph(nodes, nil)
		Expect(driver.Snapshot()).To(Equal(before))
	})
})
