package ctrl

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fifosim/storage"
)

// RegisterFIFO models a FIFO controller whose words live in a register
// array inside the controller. Reads are zero latency: the word leaves
// in the same cycle the read is accepted, and all status flags follow
// occupancy without delay.
type RegisterFIFO struct {
	sim.HookableBase

	name string
	cfg  *Config
	mask uint64

	slots []uint64
	wp    int
	rp    int
	occ   int
	ready bool

	stats Stats
}

// NewRegisterFIFO creates a register-based FIFO controller. A nil
// config selects the defaults. Invalid configurations panic.
func NewRegisterFIFO(name string, cfg *Config) *RegisterFIFO {
	sim.NameMustBeValid(name)
	cfg = normalizeConfig(cfg)

	return &RegisterFIFO{
		name:  name,
		cfg:   cfg,
		mask:  storage.Mask(cfg.WordBits),
		slots: make([]uint64, cfg.Depth),
	}
}

// Name returns the controller's name.
func (f *RegisterFIFO) Name() string {
	return f.name
}

// Config returns a copy of the controller's configuration.
func (f *RegisterFIFO) Config() *Config {
	return f.cfg.Clone()
}

// Tick advances the controller by one clock cycle. Write requests are
// dropped silently while full, and read requests are ignored silently
// while empty. An accepted read delivers its word in the same cycle.
func (f *RegisterFIFO) Tick(in Inputs) Outputs {
	f.stats.Cycles++

	if in.Reset {
		out := f.cycleOutputs()
		f.applyReset()
		f.stats.ResetCycles++
		return out
	}

	full := f.occ == f.cfg.Depth
	empty := f.occ == 0

	acceptWrite := in.Write && !full
	acceptRead := in.Read && !empty

	out := f.cycleOutputs()

	if in.Write && !acceptWrite {
		f.stats.DroppedWrites++
		f.invoke(HookPosWriteDropped, in.WriteData)
	}
	if in.Read && !acceptRead {
		f.stats.IgnoredReads++
		f.invoke(HookPosReadIgnored, nil)
	}

	if acceptRead {
		out.ReadData = f.slots[f.rp]
		out.DataValid = true
		f.rp = modInc(f.rp, f.cfg.Depth)
		f.occ--
		f.stats.Reads++
		f.invoke(HookPosRead, out.ReadData)
	}

	if acceptWrite {
		word := in.WriteData & f.mask
		f.slots[f.wp] = word
		f.wp = modInc(f.wp, f.cfg.Depth)
		f.occ++
		f.stats.Writes++
		f.invoke(HookPosWrite, word)
	}

	if f.occ > f.stats.PeakOccupancy {
		f.stats.PeakOccupancy = f.occ
	}
	f.ready = true

	return out
}

// Full reports whether the controller is full after the last edge.
func (f *RegisterFIFO) Full() bool {
	return f.occ == f.cfg.Depth
}

// Empty reports whether the controller is empty after the last edge.
func (f *RegisterFIFO) Empty() bool {
	return f.occ == 0
}

// AlmostFull reports whether occupancy is above the upper threshold.
func (f *RegisterFIFO) AlmostFull() bool {
	return f.occ > f.cfg.AlmostFullThreshold
}

// AlmostEmpty reports whether occupancy is below the lower threshold.
func (f *RegisterFIFO) AlmostEmpty() bool {
	return f.occ < f.cfg.AlmostEmptyThreshold
}

// Occupancy returns the number of words held after the last edge.
func (f *RegisterFIFO) Occupancy() int {
	return f.occ
}

// Capacity returns the configured depth.
func (f *RegisterFIFO) Capacity() int {
	return f.cfg.Depth
}

// Ready reports whether post-reset initialization has completed.
func (f *RegisterFIFO) Ready() bool {
	return f.ready
}

// Stats returns the accumulated activity counters.
func (f *RegisterFIFO) Stats() Stats {
	return f.stats
}

// Reset reinitializes the controller and clears the statistics.
func (f *RegisterFIFO) Reset() {
	f.applyReset()
	for i := range f.slots {
		f.slots[i] = 0
	}
	f.stats = Stats{}
}

// applyReset returns pointer and status state to the initial values.
// Slot contents stay in place; they are unreachable until overwritten.
func (f *RegisterFIFO) applyReset() {
	f.wp = 0
	f.rp = 0
	f.occ = 0
	f.ready = false
}

// cycleOutputs builds the output view for the cycle that began at the
// previous clock edge.
func (f *RegisterFIFO) cycleOutputs() Outputs {
	return Outputs{
		Full:        f.occ == f.cfg.Depth,
		Empty:       f.occ == 0,
		AlmostFull:  f.occ > f.cfg.AlmostFullThreshold,
		AlmostEmpty: f.occ < f.cfg.AlmostEmptyThreshold,
		Ready:       f.ready,
	}
}

func (f *RegisterFIFO) invoke(pos *sim.HookPos, item interface{}) {
	if f.NumHooks() == 0 {
		return
	}

	f.InvokeHook(sim.HookCtx{
		Domain: f,
		Pos:    pos,
		Item:   item,
		Detail: nil,
	})
}
