package ctrl_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/fifosim/ctrl"
	"github.com/sarchlab/fifosim/storage"
)

var _ = Describe("BlockRAMFIFO", func() {
	var (
		config *ctrl.Config
		fifo   *ctrl.BlockRAMFIFO
	)

	// prime runs the idle cycles a fresh controller needs to leave the
	// initialization window.
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
		fifo = ctrl.NewBlockRAMFIFO("BRAMFIFO", config, nil)
	})

	It("should start empty, not ready, and forced full", func() {
		Expect(fifo.Occupancy()).To(Equal(0))
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
		Expect(fifo.Stats().Writes).To(Equal(uint64(1)))
	})

	It("should deliver read data one cycle after the accepted read", func() {
		prime()
		fifo.Tick(writeIn(0xAB))
		fifo.Tick(idleIn())

		out := fifo.Tick(readIn())
		Expect(out.DataValid).To(BeFalse())

		out = fifo.Tick(idleIn())
		Expect(out.DataValid).To(BeTrue())
		Expect(out.ReadData).To(Equal(uint64(0xAB)))
	})

	It("should de-assert Empty one cycle later than the write", func() {
		prime()

		out := fifo.Tick(writeIn(1))
		Expect(out.Empty).To(BeTrue())

		out = fifo.Tick(idleIn())
		Expect(out.Empty).To(BeTrue())

		out = fifo.Tick(idleIn())
		Expect(out.Empty).To(BeFalse())
	})

	It("should block the read that races the registered Empty", func() {
		prime()
		fifo.Tick(writeIn(7))

		fifo.Tick(readIn())
		Expect(fifo.Stats().IgnoredReads).To(Equal(uint64(1)))
		Expect(fifo.Occupancy()).To(Equal(1))

		fifo.Tick(readIn())
		Expect(fifo.Stats().Reads).To(Equal(uint64(1)))
		Expect(fifo.Tick(idleIn()).ReadData).To(Equal(uint64(7)))
	})

	It("should assert Empty immediately on the draining read", func() {
		prime()
		fifo.Tick(writeIn(1))
		fifo.Tick(idleIn())

		Expect(fifo.Empty()).To(BeFalse())
		fifo.Tick(readIn())
		Expect(fifo.Empty()).To(BeTrue())
	})

	It("should assert Full immediately on the filling write", func() {
		prime()
		for i := 0; i < 7; i++ {
			fifo.Tick(writeIn(uint64(i)))
		}
		Expect(fifo.Full()).To(BeFalse())

		fifo.Tick(writeIn(7))
		Expect(fifo.Full()).To(BeTrue())

		fifo.Tick(writeIn(8))
		Expect(fifo.Stats().DroppedWrites).To(Equal(uint64(1)))
	})

	It("should stream back-to-back reads one cycle apart", func() {
		prime()
		fifo.Tick(writeIn(1))
		fifo.Tick(writeIn(2))
		fifo.Tick(writeIn(3))

		out := fifo.Tick(readIn())
		Expect(out.DataValid).To(BeFalse())

		out = fifo.Tick(readIn())
		Expect(out.DataValid).To(BeTrue())
		Expect(out.ReadData).To(Equal(uint64(1)))

		out = fifo.Tick(readIn())
		Expect(out.ReadData).To(Equal(uint64(2)))

		out = fifo.Tick(idleIn())
		Expect(out.ReadData).To(Equal(uint64(3)))
		Expect(fifo.Empty()).To(BeTrue())
	})

	It("should net a simultaneous write and read at occupancy one", func() {
		prime()
		fifo.Tick(writeIn(0xA))
		fifo.Tick(idleIn())

		fifo.Tick(bothIn(0xB))
		Expect(fifo.Occupancy()).To(Equal(1))
		Expect(fifo.Stats().Hazards).To(Equal(uint64(0)))

		out := fifo.Tick(readIn())
		Expect(out.ReadData).To(Equal(uint64(0xA)))

		out = fifo.Tick(idleIn())
		Expect(out.ReadData).To(Equal(uint64(0xB)))
	})

	It("should only serve the read half of a simultaneous request while full", func() {
		prime()
		for i := 0; i < 8; i++ {
			fifo.Tick(writeIn(uint64(i)))
		}

		fifo.Tick(bothIn(99))
		Expect(fifo.Occupancy()).To(Equal(7))
		Expect(fifo.Stats().DroppedWrites).To(Equal(uint64(1)))
		Expect(fifo.Tick(idleIn()).ReadData).To(Equal(uint64(0)))
	})

	It("should deliver an in-flight word during the reset cycle", func() {
		prime()
		fifo.Tick(writeIn(0x77))
		fifo.Tick(idleIn())
		fifo.Tick(readIn())

		out := fifo.Tick(resetIn())
		Expect(out.DataValid).To(BeTrue())
		Expect(out.ReadData).To(Equal(uint64(0x77)))
		Expect(fifo.Occupancy()).To(Equal(0))
		Expect(fifo.Ready()).To(BeFalse())

		out = fifo.Tick(idleIn())
		Expect(out.DataValid).To(BeFalse())
	})

	It("should mask write data to the configured width", func() {
		narrow := ctrl.NewBlockRAMFIFO("BRAMFIFONarrow", &ctrl.Config{
			Depth:                4,
			WordBits:             8,
			AlmostFullThreshold:  3,
			AlmostEmptyThreshold: 1,
		}, nil)

		narrow.Tick(idleIn())
		narrow.Tick(writeIn(0x1FF))
		narrow.Tick(idleIn())
		narrow.Tick(readIn())
		Expect(narrow.Tick(idleIn()).ReadData).To(Equal(uint64(0xFF)))
	})

	It("should commit accepted writes into the provided backing array", func() {
		ram := storage.NewArray("BRAMFIFOExtArray", 8, 32)
		ext := ctrl.NewBlockRAMFIFO("BRAMFIFOExt", config, ram)

		ext.Tick(idleIn())
		ext.Tick(writeIn(0x1234))
		Expect(ram.ReadWord(0)).To(Equal(uint64(0x1234)))
	})

	It("should zero everything on a full Reset", func() {
		prime()
		fifo.Tick(writeIn(1))

		fifo.Reset()
		Expect(fifo.Occupancy()).To(Equal(0))
		Expect(fifo.Ready()).To(BeFalse())
		Expect(fifo.Empty()).To(BeTrue())
		Expect(fifo.Stats()).To(Equal(ctrl.Stats{}))
	})
})
