package rain

import (
	"bytes"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/rs/zerolog"
)

var _ = Describe("Driver", func() {
	var (
		rec    *recorder
		loop   *Loop
		field  *Field
		driver *Driver
	)

	BeforeEach(func() {
		rec = &recorder{}
		loop = &Loop{}
		field = NewField(840, 600, DefaultParams(), NewRand(42))
		driver = NewDriver(field, rec, loop)
	})

	It("draws the first frame at time zero on start", func() {
		driver.Start()
		Expect(driver.Stats().Frames).To(Equal(1))
		Expect(driver.Stats().LastTime).To(BeZero())
		Expect(loop.Pending()).To(BeTrue())
	})

	It("fades the whole surface every frame", func() {
		driver.Start()
		for i := 1; i <= 9; i++ {
			Expect(loop.Step(float64(i) * 16)).To(BeTrue())
		}
		Expect(rec.fills).To(HaveLen(10))
		for _, f := range rec.fills {
			Expect(f).To(Equal(fill{0, 0, 840, 600, RGBA{0, 0, 0, 0.1}}))
		}
	})

	It("sets the font exactly once", func() {
		driver.Start()
		for i := 1; i < 100; i++ {
			loop.Step(float64(i))
		}
		Expect(rec.fonts).To(Equal([]Font{{Size: 14, Family: "monospace"}}))
		Expect(rec.aligns).To(Equal([]Align{AlignCenter}))
	})

	It("draws every glyph of every column", func() {
		want := 0
		for _, c := range field.Columns() {
			want += c.Len()
		}
		driver.Tick(0)
		Expect(rec.glyphs).To(HaveLen(want))
	})

	It("always leaves exactly one frame pending", func() {
		driver.Start()
		for i := 1; i < 50; i++ {
			Expect(loop.Step(float64(i))).To(BeTrue())
			Expect(loop.Pending()).To(BeTrue())
		}
	})

	It("strokes and prunes bolts", func() {
		p := DefaultParams()
		p.SpawnProbability = 1
		p.BoltLifeMin, p.BoltLifeMax = 2, 2
		field = NewField(200, 100, p, NewRand(3))

		var spawned []*Bolt
		driver = NewDriver(field, rec, loop, WithSpawnHook(func(b *Bolt) {
			spawned = append(spawned, b)
		}))
		driver.Start()
		loop.Step(1)
		loop.Step(2)

		Expect(spawned).To(HaveLen(3))
		Expect(rec.strokes).To(HaveLen(6))
		Expect(spawned[0].Age()).To(Equal(3))
		Expect(field.Bolts()).NotTo(ContainElement(spawned[0]))
		Expect(field.LiveBolts()).To(Equal(2))

		s := driver.Stats()
		Expect(s.Spawned).To(Equal(3))
		Expect(s.Expired).To(Equal(1))
		Expect(s.Live).To(Equal(2))
	})

	It("never advances a removed bolt", func() {
		p := DefaultParams()
		p.SpawnProbability = 0.2
		p.BoltLifeMin, p.BoltLifeMax = 5, 20
		field = NewField(300, 200, p, NewRand(8))

		var spawned []*Bolt
		driver = NewDriver(field, NopSurface{}, loop, WithSpawnHook(func(b *Bolt) {
			spawned = append(spawned, b)
		}))
		driver.Start()
		for i := 1; i < 500; i++ {
			loop.Step(float64(i))
		}
		Expect(spawned).NotTo(BeEmpty())
		for _, b := range spawned {
			Expect(float64(b.Age())).To(BeNumerically("<=", b.LifeTime()+1))
		}
		for _, b := range field.Bolts() {
			Expect(b.Expired()).To(BeFalse())
		}
		s := driver.Stats()
		Expect(s.Spawned).To(Equal(len(spawned)))
		Expect(s.Expired + s.Live).To(Equal(s.Spawned))
	})

	It("rebuilds the field on resize", func() {
		driver.Start()
		driver.Resize(100, 50)
		Expect(field.Columns()).To(HaveLen(11))
		Expect(driver.Stats().Resizes).To(Equal(1))

		loop.Step(16)
		Expect(rec.fills[len(rec.fills)-1]).To(Equal(fill{0, 0, 100, 50, RGBA{0, 0, 0, 0.1}}))
	})

	It("accounts for every spawned bolt across resizes", func() {
		p := DefaultParams()
		p.SpawnProbability = 1
		field = NewField(200, 100, p, NewRand(9))
		driver = NewDriver(field, rec, loop)
		driver.Start()
		for i := 1; i < 400; i++ {
			loop.Step(float64(i) * 16)
		}
		live := driver.Stats().Live
		Expect(live).To(BeNumerically(">", 0))

		driver.Resize(300, 100)
		s := driver.Stats()
		Expect(s.Dropped).To(Equal(live))
		Expect(s.Live).To(BeZero())

		for i := 400; i < 800; i++ {
			loop.Step(float64(i) * 16)
		}
		s = driver.Stats()
		Expect(s.Spawned).To(Equal(800))
		Expect(s.Spawned).To(Equal(s.Expired + s.Dropped + s.Live))
	})

	It("logs bolt and resize events at debug level", func() {
		var buf bytes.Buffer
		p := DefaultParams()
		p.SpawnProbability = 1
		field = NewField(200, 100, p, NewRand(3))
		driver = NewDriver(field, rec, loop, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))
		driver.Start()
		driver.Resize(300, 100)
		Expect(buf.String()).To(ContainSubstring(`"message":"bolt spawned"`))
		Expect(buf.String()).To(ContainSubstring(`"message":"field resized"`))
	})
})

var _ = Describe("Loop", func() {
	It("does nothing without a pending frame", func() {
		l := &Loop{}
		Expect(l.Pending()).To(BeFalse())
		Expect(l.Step(0)).To(BeFalse())
	})

	It("runs the pending frame once", func() {
		l := &Loop{}
		var got []float64
		l.ScheduleNextFrame(func(t float64) { got = append(got, t) })
		Expect(l.Step(5)).To(BeTrue())
		Expect(l.Step(6)).To(BeFalse())
		Expect(got).To(Equal([]float64{5}))
	})
})
