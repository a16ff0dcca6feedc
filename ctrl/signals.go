// Package ctrl provides cycle-accurate models of synchronous FIFO
// queue controllers.
//
// Each controller variant advances one clock cycle per Tick call. The
// returned Outputs describe the controller's output pins during that
// cycle: status flags reflect the state the cycle began with, and read
// data follows each variant's latency contract. State inspection
// methods (Full, Empty, Occupancy) report the state after the most
// recent clock edge, which is the state the next cycle will begin with.
package ctrl

import "github.com/sarchlab/akita/v4/sim"

// HookPosWrite marks a write request accepted by a controller.
var HookPosWrite = &sim.HookPos{Name: "FIFO Write"}

// HookPosRead marks a read request accepted by a controller.
var HookPosRead = &sim.HookPos{Name: "FIFO Read"}

// HookPosWriteDropped marks a write request rejected because the
// controller was full.
var HookPosWriteDropped = &sim.HookPos{Name: "FIFO Write Dropped"}

// HookPosReadIgnored marks a read request rejected because the
// controller was empty.
var HookPosReadIgnored = &sim.HookPos{Name: "FIFO Read Ignored"}

// HookPosHazard marks a same-address collision detected by the legacy
// block RAM controller.
var HookPosHazard = &sim.HookPos{Name: "FIFO Hazard"}

// Inputs carries the request and control signals a controller samples
// at one clock edge.
type Inputs struct {
	// Reset is the synchronous reset level. While asserted, the
	// controller reinitializes instead of serving requests.
	Reset bool

	// Write requests that WriteData be enqueued this cycle.
	Write bool

	// WriteData is the word to enqueue. Bits above the configured
	// word width are discarded.
	WriteData uint64

	// Read requests that the oldest word be dequeued this cycle.
	Read bool

	// Enable gates the clock for controllers that support it. Only
	// the distributed RAM controller honors this signal; the other
	// variants behave as if it were always asserted.
	Enable bool
}

// Outputs reports the controller's output pins for one cycle.
type Outputs struct {
	// Full indicates no further write can be accepted.
	Full bool

	// Empty indicates no read can be accepted.
	Empty bool

	// AlmostFull indicates occupancy is above the configured upper
	// threshold.
	AlmostFull bool

	// AlmostEmpty indicates occupancy is below the configured lower
	// threshold.
	AlmostEmpty bool

	// ReadData is the word leaving the controller, qualified by
	// DataValid.
	ReadData uint64

	// DataValid indicates ReadData carries a dequeued word this
	// cycle.
	DataValid bool

	// Ready indicates initialization after reset has completed.
	Ready bool
}

// Stats holds controller activity counters.
type Stats struct {
	// Cycles is the total number of cycles simulated.
	Cycles uint64
	// Writes is the number of accepted write requests.
	Writes uint64
	// Reads is the number of accepted read requests.
	Reads uint64
	// DroppedWrites is the number of write requests rejected while
	// full.
	DroppedWrites uint64
	// IgnoredReads is the number of read requests rejected while
	// empty.
	IgnoredReads uint64
	// Hazards is the number of same-address collisions flagged by the
	// legacy block RAM controller.
	Hazards uint64
	// ResetCycles is the number of cycles spent with reset asserted.
	ResetCycles uint64
	// PeakOccupancy is the highest occupancy reached.
	PeakOccupancy int
}

// Throughput returns the number of accepted requests per cycle.
func (s Stats) Throughput() float64 {
	if s.Cycles == 0 {
		return 0
	}
	return float64(s.Writes+s.Reads) / float64(s.Cycles)
}

// AcceptRate returns the fraction of requests that were accepted.
func (s Stats) AcceptRate() float64 {
	requests := s.Writes + s.Reads + s.DroppedWrites + s.IgnoredReads
	if requests == 0 {
		return 0
	}
	return float64(s.Writes+s.Reads) / float64(requests)
}

// Controller is the common interface of all FIFO controller variants.
type Controller interface {
	// Name returns the controller's name.
	Name() string

	// Tick advances the controller by one clock cycle and returns the
	// outputs for that cycle.
	Tick(in Inputs) Outputs

	// Full reports whether the controller is full after the last
	// clock edge.
	Full() bool

	// Empty reports whether the controller is empty after the last
	// clock edge.
	Empty() bool

	// Occupancy returns the number of words held after the last clock
	// edge.
	Occupancy() int

	// Capacity returns the configured depth.
	Capacity() int

	// Ready reports whether post-reset initialization has completed.
	Ready() bool

	// Stats returns the accumulated activity counters.
	Stats() Stats

	// Reset reinitializes all state and clears the statistics, as if
	// the controller were newly constructed.
	Reset()
}

// modInc advances a slot index by one with wraparound at depth.
func modInc(index, depth int) int {
	index++
	if index == depth {
		return 0
	}
	return index
}
