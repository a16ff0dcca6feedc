package ctrl

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fifosim/storage"
)

// FillState disambiguates pointer equality in the legacy block RAM
// controller.
type FillState int

const (
	// Emptying means pointer equality reads as empty.
	Emptying FillState = iota
	// Filling means pointer equality reads as full.
	Filling
)

// String returns a human-readable fill state name.
func (s FillState) String() string {
	if s == Filling {
		return "filling"
	}
	return "emptying"
}

// LegacyBlockRAMFIFO models the fill-bit revision of the block RAM FIFO
// controller. It predates BlockRAMFIFO's occupancy counter: the only
// state besides the pointers is a direction bit that records whether
// the last boundary crossing was a fill or a drain, so pointer equality
// can be read as full or empty. New designs should use BlockRAMFIFO;
// this variant exists for regression parity with controllers already in
// the field.
//
// The fill-bit scheme has a same-address hazard. When a simultaneous
// write and read are both accepted at occupancy one, the next read
// address lands on the cell being committed in the same cycle. The
// controller flags the collision with a one-cycle exception that forces
// the Empty output for the following cycle, holding off the read until
// the cell is stable. The mirrored case in the Filling state is not
// flagged, matching the original asymmetry.
type LegacyBlockRAMFIFO struct {
	sim.HookableBase

	name string
	cfg  *Config
	mask uint64
	ram  storage.Store

	wp    int
	rp    int
	dir   FillState
	exc   bool
	ready bool

	emptyReg Delay[bool]
	pipe     Delay[readStage]

	stats Stats
}

// NewLegacyBlockRAMFIFO creates a fill-bit block RAM FIFO controller.
// A nil config selects the defaults. A nil ram allocates a backing
// array sized by the config.
func NewLegacyBlockRAMFIFO(name string, cfg *Config, ram storage.Store) *LegacyBlockRAMFIFO {
	sim.NameMustBeValid(name)
	cfg = normalizeConfig(cfg)

	if ram == nil {
		ram = storage.NewArray(name+"Array", cfg.Depth, cfg.WordBits)
	}

	f := &LegacyBlockRAMFIFO{
		name: name,
		cfg:  cfg,
		mask: storage.Mask(cfg.WordBits),
		ram:  ram,
	}
	f.emptyReg.Reset(true)
	return f
}

// Name returns the controller's name.
func (f *LegacyBlockRAMFIFO) Name() string {
	return f.name
}

// Config returns a copy of the controller's configuration.
func (f *LegacyBlockRAMFIFO) Config() *Config {
	return f.cfg.Clone()
}

// FillState returns the direction bit after the last edge.
func (f *LegacyBlockRAMFIFO) FillState() FillState {
	return f.dir
}

// Tick advances the controller by one clock cycle.
func (f *LegacyBlockRAMFIFO) Tick(in Inputs) Outputs {
	f.stats.Cycles++

	deliver := f.pipe.Out()

	if in.Reset {
		out := f.cycleOutputs(deliver)
		f.applyReset()
		f.stats.ResetCycles++
		return out
	}

	equal := f.wp == f.rp
	rawEmpty := equal && f.dir == Emptying
	rawFull := equal && f.dir == Filling
	full := rawFull || !f.ready

	acceptWrite := in.Write && !full
	acceptRead := in.Read && !rawEmpty && !f.exc && !f.emptyReg.Out()

	// The fill-bit scheme cannot tell that a concurrent write is
	// committing the very cell the next read would fetch. At occupancy
	// one the next read pointer equals the write pointer, so the
	// collision is detected here and resolved by faking one empty
	// cycle.
	hazard := acceptWrite && acceptRead &&
		modInc(f.rp, f.cfg.Depth) == f.wp && f.dir == Emptying

	out := f.cycleOutputs(deliver)

	if in.Write && !acceptWrite {
		f.stats.DroppedWrites++
		f.invoke(HookPosWriteDropped, in.WriteData)
	}
	if in.Read && !acceptRead {
		f.stats.IgnoredReads++
		f.invoke(HookPosReadIgnored, nil)
	}

	if acceptRead {
		word := f.ram.ReadWord(f.rp)
		f.pipe.Stage(readStage{Word: word, Valid: true})
		f.rp = modInc(f.rp, f.cfg.Depth)
		f.stats.Reads++
		f.invoke(HookPosRead, word)
	} else {
		f.pipe.Stage(readStage{})
	}

	if acceptWrite {
		word := in.WriteData & f.mask
		f.ram.WriteWord(f.wp, word)
		f.wp = modInc(f.wp, f.cfg.Depth)
		f.stats.Writes++
		f.invoke(HookPosWrite, word)
	}

	// The direction bit flips on the operation that creates pointer
	// equality: a write filling the last free slot, or a read draining
	// the last element. A simultaneous accepted pair moves both
	// pointers and can never create equality.
	if f.wp == f.rp {
		if acceptWrite && !acceptRead {
			f.dir = Filling
		}
		if acceptRead && !acceptWrite {
			f.dir = Emptying
		}
	}

	if hazard {
		f.stats.Hazards++
		f.invoke(HookPosHazard, nil)
	}
	f.exc = hazard

	if occ := f.occupancy(); occ > f.stats.PeakOccupancy {
		f.stats.PeakOccupancy = occ
	}

	f.emptyReg.Stage(rawEmpty)
	f.emptyReg.Clock()
	f.pipe.Clock()
	f.ready = true

	return out
}

// Full reports whether the controller rejects writes after the last
// edge. Full is forced while initialization is incomplete.
func (f *LegacyBlockRAMFIFO) Full() bool {
	return (f.wp == f.rp && f.dir == Filling) || !f.ready
}

// Empty reports whether the controller rejects reads after the last
// edge, including the exception and the registered extra cycle.
func (f *LegacyBlockRAMFIFO) Empty() bool {
	return (f.wp == f.rp && f.dir == Emptying) || f.exc || f.emptyReg.Out()
}

// Occupancy returns the number of words held after the last edge,
// derived from the pointers and the direction bit.
func (f *LegacyBlockRAMFIFO) Occupancy() int {
	return f.occupancy()
}

// Capacity returns the configured depth.
func (f *LegacyBlockRAMFIFO) Capacity() int {
	return f.cfg.Depth
}

// Ready reports whether post-reset initialization has completed.
func (f *LegacyBlockRAMFIFO) Ready() bool {
	return f.ready
}

// Stats returns the accumulated activity counters.
func (f *LegacyBlockRAMFIFO) Stats() Stats {
	return f.stats
}

// Reset reinitializes the controller and clears the statistics.
func (f *LegacyBlockRAMFIFO) Reset() {
	f.applyReset()
	f.stats = Stats{}
}

func (f *LegacyBlockRAMFIFO) applyReset() {
	f.wp = 0
	f.rp = 0
	f.dir = Emptying
	f.exc = false
	f.ready = false
	f.emptyReg.Reset(true)
	f.pipe.Reset(readStage{})
}

func (f *LegacyBlockRAMFIFO) occupancy() int {
	if f.wp == f.rp {
		if f.dir == Filling {
			return f.cfg.Depth
		}
		return 0
	}
	return (f.wp - f.rp + f.cfg.Depth) % f.cfg.Depth
}

// cycleOutputs builds the output view for the cycle that began at the
// previous clock edge.
func (f *LegacyBlockRAMFIFO) cycleOutputs(deliver readStage) Outputs {
	equal := f.wp == f.rp
	return Outputs{
		Full:      (equal && f.dir == Filling) || !f.ready,
		Empty:     (equal && f.dir == Emptying) || f.exc || f.emptyReg.Out(),
		ReadData:  deliver.Word,
		DataValid: deliver.Valid,
		Ready:     f.ready,
	}
}

func (f *LegacyBlockRAMFIFO) invoke(pos *sim.HookPos, item interface{}) {
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
