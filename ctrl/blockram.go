package ctrl

import (
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fifosim/storage"
)

// readStage carries one entry of the block RAM read data path.
type readStage struct {
	// Word is the word fetched from the backing array.
	Word uint64
	// Valid indicates the stage holds a fetched word.
	Valid bool
}

// BlockRAMFIFO models a FIFO controller in front of a synchronous block
// RAM. The RAM's output register makes every read one cycle late: the
// word addressed when a read is accepted appears in the following
// cycle's outputs. Occupancy is tracked with a counter, so pointer
// equality never needs disambiguation.
//
// The empty flag is conservative. A registered copy of empty holds the
// value one extra cycle, and reads are blocked until both the live and
// the registered flag have cleared. Empty therefore asserts immediately
// but de-asserts one cycle late, which keeps a read from racing the
// word that is still crossing the RAM's output register.
type BlockRAMFIFO struct {
	sim.HookableBase

	name string
	cfg  *Config
	mask uint64
	ram  storage.Store

	wp    int
	rp    int
	occ   int
	ready bool

	emptyReg Delay[bool]
	pipe     Delay[readStage]

	stats Stats
}

// NewBlockRAMFIFO creates a block RAM FIFO controller. A nil config
// selects the defaults. A nil ram allocates a backing array sized by
// the config.
func NewBlockRAMFIFO(name string, cfg *Config, ram storage.Store) *BlockRAMFIFO {
	sim.NameMustBeValid(name)
	cfg = normalizeConfig(cfg)

	if ram == nil {
		ram = storage.NewArray(name+"Array", cfg.Depth, cfg.WordBits)
	}

	f := &BlockRAMFIFO{
		name: name,
		cfg:  cfg,
		mask: storage.Mask(cfg.WordBits),
		ram:  ram,
	}
	f.emptyReg.Reset(true)
	return f
}

// Name returns the controller's name.
func (f *BlockRAMFIFO) Name() string {
	return f.name
}

// Config returns a copy of the controller's configuration.
func (f *BlockRAMFIFO) Config() *Config {
	return f.cfg.Clone()
}

// Tick advances the controller by one clock cycle. An accepted read
// issues the fetch this cycle; the word arrives in the next cycle's
// outputs with DataValid set.
func (f *BlockRAMFIFO) Tick(in Inputs) Outputs {
	f.stats.Cycles++

	deliver := f.pipe.Out()

	if in.Reset {
		out := f.cycleOutputs(deliver)
		f.applyReset()
		f.stats.ResetCycles++
		return out
	}

	empty := f.occ == 0
	full := f.occ == f.cfg.Depth || !f.ready

	acceptWrite := in.Write && !full
	acceptRead := in.Read && !empty && !f.emptyReg.Out()

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
		f.occ--
		f.stats.Reads++
		f.invoke(HookPosRead, word)
	} else {
		f.pipe.Stage(readStage{})
	}

	if acceptWrite {
		word := in.WriteData & f.mask
		f.ram.WriteWord(f.wp, word)
		f.wp = modInc(f.wp, f.cfg.Depth)
		f.occ++
		f.stats.Writes++
		f.invoke(HookPosWrite, word)
	}

	if f.occ > f.stats.PeakOccupancy {
		f.stats.PeakOccupancy = f.occ
	}

	f.emptyReg.Stage(empty)
	f.emptyReg.Clock()
	f.pipe.Clock()
	f.ready = true

	return out
}

// Full reports whether the controller rejects writes after the last
// edge. Full is forced while initialization is incomplete.
func (f *BlockRAMFIFO) Full() bool {
	return f.occ == f.cfg.Depth || !f.ready
}

// Empty reports whether the controller rejects reads after the last
// edge, including the registered extra cycle.
func (f *BlockRAMFIFO) Empty() bool {
	return f.occ == 0 || f.emptyReg.Out()
}

// Occupancy returns the number of words held after the last edge.
func (f *BlockRAMFIFO) Occupancy() int {
	return f.occ
}

// Capacity returns the configured depth.
func (f *BlockRAMFIFO) Capacity() int {
	return f.cfg.Depth
}

// Ready reports whether post-reset initialization has completed.
func (f *BlockRAMFIFO) Ready() bool {
	return f.ready
}

// Stats returns the accumulated activity counters.
func (f *BlockRAMFIFO) Stats() Stats {
	return f.stats
}

// Reset reinitializes the controller and clears the statistics.
func (f *BlockRAMFIFO) Reset() {
	f.applyReset()
	f.stats = Stats{}
}

func (f *BlockRAMFIFO) applyReset() {
	f.wp = 0
	f.rp = 0
	f.occ = 0
	f.ready = false
	f.emptyReg.Reset(true)
	f.pipe.Reset(readStage{})
}

// cycleOutputs builds the output view for the cycle that began at the
// previous clock edge. The read data path delivers the stage committed
// at that edge.
func (f *BlockRAMFIFO) cycleOutputs(deliver readStage) Outputs {
	return Outputs{
		Full:      f.occ == f.cfg.Depth || !f.ready,
		Empty:     f.occ == 0 || f.emptyReg.Out(),
		ReadData:  deliver.Word,
		DataValid: deliver.Valid,
		Ready:     f.ready,
	}
}

func (f *BlockRAMFIFO) invoke(pos *sim.HookPos, item interface{}) {
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
