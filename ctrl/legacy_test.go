package ctrl_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fifosim/ctrl"
)

var _ = Describe("LegacyBlockRAMFIFO", func() {
	var (
		config *ctrl.Config
		fifo   *ctrl.LegacyBlockRAMFIFO
	)

	prime := func() {
		fifo.Tick(idleIn())
		fifo.Tick(idleIn())
	}

	BeforeEach(func() {
		config = &ctrl.Config{
			Depth:                8,
			WordBits:             32,
			AlmostFullThreshold:  6,
			AlmostEmptyThreshold: 2,
		}
		fifo = ctrl.NewLegacyBlockRAMFIFO("LegacyFIFO", config, nil)
	})

	It("should start emptying, not ready, and forced full", func() {
		Expect(fifo.FillState()).To(Equal(ctrl.Emptying))
		Expect(fifo.Empty()).To(BeTrue())
		Expect(fifo.Full()).To(BeTrue())
		Expect(fifo.Ready()).To(BeFalse())
	})

	It("should reject writes until initialization completes", func() {
		fifo.Tick(writeIn(1))
		Expect(fifo.Occupancy()).To(Equal(0))
		Expect(fifo.Stats().DroppedWrites).To(Equal(uint64(1)))

		fifo.Tick(writeIn(2))
		Expect(fifo.Occupancy()).To(Equal(1))
	})

	It("should flip to filling on the write that creates pointer equality", func() {
		prime()
		for i := 0; i < 7; i++ {
			fifo.Tick(writeIn(uint64(i)))
			Expect(fifo.FillState()).To(Equal(ctrl.Emptying))
		}

		fifo.Tick(writeIn(7))
		Expect(fifo.FillState()).To(Equal(ctrl.Filling))
		Expect(fifo.Full()).To(BeTrue())
		Expect(fifo.Occupancy()).To(Equal(8))
	})

	It("should flip to emptying on the read that creates pointer equality", func() {
		prime()
		for i := 0; i < 8; i++ {
			fifo.Tick(writeIn(uint64(i)))
		}

		for i := 0; i < 7; i++ {
			fifo.Tick(readIn())
			Expect(fifo.FillState()).To(Equal(ctrl.Filling))
		}

		fifo.Tick(readIn())
		Expect(fifo.FillState()).To(Equal(ctrl.Emptying))
		Expect(fifo.Empty()).To(BeTrue())
		Expect(fifo.Occupancy()).To(Equal(0))
	})

	It("should keep order through repeated single-element cycling", func() {
		prime()
		for k := 0; k < 20; k++ {
			word := uint64(0x100 + k)
			fifo.Tick(writeIn(word))
			fifo.Tick(idleIn())
			fifo.Tick(readIn())

			out := fifo.Tick(idleIn())
			Expect(out.DataValid).To(BeTrue())
			Expect(out.ReadData).To(Equal(word))
			Expect(fifo.Empty()).To(BeTrue())
			Expect(fifo.FillState()).To(Equal(ctrl.Emptying))
		}
	})

	It("should derive occupancy from the pointers and the fill bit", func() {
		prime()
		for i := 0; i < 8; i++ {
			Expect(fifo.Occupancy()).To(Equal(i))
			fifo.Tick(writeIn(uint64(i)))
		}
		Expect(fifo.Occupancy()).To(Equal(8))
	})

	It("should flag the same-address collision and fake one empty cycle", func() {
		prime()
		fifo.Tick(writeIn(0xA))
		fifo.Tick(idleIn())

		out := fifo.Tick(bothIn(0xB))
		Expect(out.Empty).To(BeFalse())
		Expect(fifo.Stats().Hazards).To(Equal(uint64(1)))
		Expect(fifo.Occupancy()).To(Equal(1))
		Expect(fifo.Empty()).To(BeTrue())

		// The exception holds Empty for this one cycle while the
		// drained word still arrives on the data path.
		out = fifo.Tick(readIn())
		Expect(out.Empty).To(BeTrue())
		Expect(out.DataValid).To(BeTrue())
		Expect(out.ReadData).To(Equal(uint64(0xA)))
		Expect(fifo.Stats().IgnoredReads).To(Equal(uint64(1)))

		out = fifo.Tick(readIn())
		Expect(out.Empty).To(BeFalse())
		Expect(fifo.Stats().Reads).To(Equal(uint64(2)))

		out = fifo.Tick(idleIn())
		Expect(out.DataValid).To(BeTrue())
		Expect(out.ReadData).To(Equal(uint64(0xB)))
		Expect(fifo.Empty()).To(BeTrue())
	})

	It("should invoke the hazard hook on the collision", func() {
		hazards := &countingHook{pos: ctrl.HookPosHazard}
		fifo.AcceptHook(hazards)

		prime()
		fifo.Tick(writeIn(0xA))
		fifo.Tick(idleIn())
		fifo.Tick(bothIn(0xB))

		Expect(hazards.count).To(Equal(1))
	})

	It("should not flag the collision while in the filling state", func() {
		small := ctrl.NewLegacyBlockRAMFIFO("LegacyFIFOSmall", &ctrl.Config{
			Depth:                4,
			WordBits:             32,
			AlmostFullThreshold:  3,
			AlmostEmptyThreshold: 1,
		}, nil)

		small.Tick(idleIn())
		small.Tick(idleIn())
		for i := 0; i < 4; i++ {
			small.Tick(writeIn(uint64(i)))
		}
		for i := 0; i < 3; i++ {
			small.Tick(readIn())
		}
		Expect(small.FillState()).To(Equal(ctrl.Filling))
		Expect(small.Occupancy()).To(Equal(1))

		small.Tick(bothIn(9))
		Expect(small.Stats().Hazards).To(Equal(uint64(0)))
		Expect(small.Occupancy()).To(Equal(1))
	})

	It("should hold simultaneous traffic above occupancy one without hazards", func() {
		prime()
		fifo.Tick(writeIn(1))
		fifo.Tick(writeIn(2))
		fifo.Tick(idleIn())

		for i := 0; i < 6; i++ {
			fifo.Tick(bothIn(uint64(10 + i)))
		}
		Expect(fifo.Stats().Hazards).To(Equal(uint64(0)))
		Expect(fifo.Occupancy()).To(Equal(2))
	})

	It("should return to the emptying state on reset", func() {
		prime()
		for i := 0; i < 8; i++ {
			fifo.Tick(writeIn(uint64(i)))
		}
		Expect(fifo.FillState()).To(Equal(ctrl.Filling))

		fifo.Tick(resetIn())
		Expect(fifo.FillState()).To(Equal(ctrl.Emptying))
		Expect(fifo.FillState().String()).To(Equal("emptying"))
		Expect(fifo.Occupancy()).To(Equal(0))
		Expect(fifo.Empty()).To(BeTrue())
		Expect(fifo.Ready()).To(BeFalse())
	})
})
