package ctrl

import (
	"log"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fifosim/storage"
)

// DistributedFIFO models a FIFO controller in front of a distributed
// RAM whose read port is combinational. Reads are zero latency like the
// register variant, but the words live in an external array and the
// whole controller sits behind a clock enable: while Inputs.Enable is
// low, a cycle passes without the controller observing its request
// inputs at all. Reset does not need the enable; a reset cycle always
// reinitializes.
//
// The pointer wrap uses a bit mask, so the depth must be a power of
// two.
type DistributedFIFO struct {
	sim.HookableBase

	name      string
	cfg       *Config
	mask      uint64
	depthMask int
	ram       storage.Store

	wp    int
	rp    int
	occ   int
	ready bool

	stats Stats
}

// NewDistributedFIFO creates a distributed RAM FIFO controller. A nil
// config selects the defaults. A nil ram allocates a backing array
// sized by the config. Depths that are not powers of two panic.
func NewDistributedFIFO(name string, cfg *Config, ram storage.Store) *DistributedFIFO {
	sim.NameMustBeValid(name)
	cfg = normalizeConfig(cfg)

	if cfg.Depth&(cfg.Depth-1) != 0 {
		log.Panicf("distributed FIFO depth must be a power of two, got %d",
			cfg.Depth)
	}

	if ram == nil {
		ram = storage.NewArray(name+"Array", cfg.Depth, cfg.WordBits)
	}

	return &DistributedFIFO{
		name:      name,
		cfg:       cfg,
		mask:      storage.Mask(cfg.WordBits),
		depthMask: cfg.Depth - 1,
		ram:       ram,
	}
}

// Name returns the controller's name.
func (f *DistributedFIFO) Name() string {
	return f.name
}

// Config returns a copy of the controller's configuration.
func (f *DistributedFIFO) Config() *Config {
	return f.cfg.Clone()
}

// Tick advances the controller by one clock cycle. With Enable low the
// cycle passes without serving or counting requests; with Enable high
// the controller behaves like the register variant, except that words
// live in the external array.
func (f *DistributedFIFO) Tick(in Inputs) Outputs {
	f.stats.Cycles++

	if in.Reset {
		out := f.cycleOutputs()
		f.applyReset()
		f.stats.ResetCycles++
		return out
	}

	if !in.Enable {
		return f.cycleOutputs()
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
		out.ReadData = f.ram.ReadWord(f.rp)
		out.DataValid = true
		f.rp = (f.rp + 1) & f.depthMask
		f.occ--
		f.stats.Reads++
		f.invoke(HookPosRead, out.ReadData)
	}

	if acceptWrite {
		word := in.WriteData & f.mask
		f.ram.WriteWord(f.wp, word)
		f.wp = (f.wp + 1) & f.depthMask
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
func (f *DistributedFIFO) Full() bool {
	return f.occ == f.cfg.Depth
}

// Empty reports whether the controller is empty after the last edge.
func (f *DistributedFIFO) Empty() bool {
	return f.occ == 0
}

// Occupancy returns the number of words held after the last edge.
func (f *DistributedFIFO) Occupancy() int {
	return f.occ
}

// Capacity returns the configured depth.
func (f *DistributedFIFO) Capacity() int {
	return f.cfg.Depth
}

// Ready reports whether post-reset initialization has completed. The
// first enabled cycle after reset release completes it.
func (f *DistributedFIFO) Ready() bool {
	return f.ready
}

// Stats returns the accumulated activity counters.
func (f *DistributedFIFO) Stats() Stats {
	return f.stats
}

// Reset reinitializes the controller and clears the statistics.
func (f *DistributedFIFO) Reset() {
	f.applyReset()
	f.stats = Stats{}
}

func (f *DistributedFIFO) applyReset() {
	f.wp = 0
	f.rp = 0
	f.occ = 0
	f.ready = false
}

// cycleOutputs builds the output view for the cycle that began at the
// previous clock edge.
func (f *DistributedFIFO) cycleOutputs() Outputs {
	return Outputs{
		Full:  f.occ == f.cfg.Depth,
		Empty: f.occ == 0,
		Ready: f.ready,
	}
}

func (f *DistributedFIFO) invoke(pos *sim.HookPos, item interface{}) {
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
