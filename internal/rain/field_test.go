package rain

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Field", func() {
	var field *Field

	BeforeEach(func() {
		field = NewField(840, 600, DefaultParams(), NewRand(42))
	})

	It("lays out one column per slot", func() {
		cols := field.Columns()
		Expect(cols).To(HaveLen(100))
		for i, c := range cols {
			Expect(c.X()).To(BeNumerically("~", float64(i)*8.4, 1e-9))
			Expect(c.CanvasHeight()).To(Equal(600.0))
			Expect(c.Speed()).To(And(BeNumerically(">=", 1), BeNumerically("<", 4)))
		}
		Expect(cols[0].X()).To(BeZero())
		Expect(cols[99].X()).To(BeNumerically("~", 831.6, 1e-9))
	})

	It("starts without bolts", func() {
		Expect(field.Bolts()).To(BeEmpty())
		Expect(field.LiveBolts()).To(BeZero())
	})

	DescribeTable("resize yields floor(W / 8.4) columns",
		func(w, h float64, want int) {
			field.Resize(w, h)
			Expect(field.Columns()).To(HaveLen(want))
			Expect(field.Width()).To(Equal(w))
			Expect(field.Height()).To(Equal(h))
			for i, c := range field.Columns() {
				Expect(c.X()).To(BeNumerically("~", float64(i)*8.4, 1e-9))
				Expect(c.CanvasHeight()).To(Equal(h))
			}
		},
		Entry("same size", 840.0, 600.0, 100),
		Entry("narrow", 100.0, 50.0, 11),
		Entry("smaller than a column", 8.0, 600.0, 0),
		Entry("empty", 0.0, 0.0, 0),
		Entry("wide", 1920.0, 1080.0, 228),
	)

	It("drops bolts on resize", func() {
		p := DefaultParams()
		p.SpawnProbability = 1
		field = NewField(200, 200, p, NewRand(1))
		for range 5 {
			_, ok := field.MaybeSpawnBolt()
			Expect(ok).To(BeTrue())
		}
		Expect(field.LiveBolts()).To(Equal(5))

		field.Resize(300, 300)
		Expect(field.LiveBolts()).To(BeZero())
	})

	It("spawns bolts spanning the current height", func() {
		p := DefaultParams()
		p.SpawnProbability = 1
		field = NewField(200, 150, p, NewRand(1))
		b, ok := field.MaybeSpawnBolt()
		Expect(ok).To(BeTrue())
		Expect(b.Start().Y).To(BeZero())
		Expect(b.End().Y).To(Equal(150.0))
	})

	It("never spawns with zero probability", func() {
		p := DefaultParams()
		p.SpawnProbability = 0
		field = NewField(200, 150, p, NewRand(1))
		for range 1000 {
			_, ok := field.MaybeSpawnBolt()
			Expect(ok).To(BeFalse())
		}
	})

	It("honors the spawn probability", func() {
		spawned := 0
		for range 10000 {
			if _, ok := field.MaybeSpawnBolt(); ok {
				spawned++
			}
		}
		Expect(spawned).To(BeNumerically("~", 300, 70))
		Expect(field.LiveBolts()).To(Equal(spawned))
	})

	It("hands out snapshots of the bolt set", func() {
		p := DefaultParams()
		p.SpawnProbability = 1
		field = NewField(200, 150, p, NewRand(1))
		field.MaybeSpawnBolt()
		snap := field.Bolts()
		field.MaybeSpawnBolt()
		Expect(snap).To(HaveLen(1))
		Expect(field.Bolts()).To(HaveLen(2))
	})

	It("prunes expired bolts", func() {
		p := DefaultParams()
		p.SpawnProbability = 1
		p.BoltLifeMin, p.BoltLifeMax = 0, 0
		field = NewField(200, 150, p, NewRand(1))
		b, _ := field.MaybeSpawnBolt()
		field.MaybeSpawnBolt()
		b.Advance()
		Expect(b.Expired()).To(BeTrue())
		Expect(field.Prune()).To(Equal(1))
		Expect(field.LiveBolts()).To(Equal(1))
	})

	It("has no columns when the column width is zero", func() {
		field = NewField(100, 100, Params{}, NewRand(1))
		Expect(field.ColumnCount()).To(BeZero())
		Expect(field.Columns()).To(BeEmpty())
	})

	It("uses a custom alphabet", func() {
		field.WithGlyphs(GlyphSet("01"))
		for _, c := range field.Columns() {
			Expect(c.Text()).To(MatchRegexp(`^[01]+$`))
		}
	})
})
