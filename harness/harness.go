// Package harness provides verification infrastructure for the FIFO
// controller models. It drives a controller cycle by cycle with a
// stimulus program while checking every delivered word and every
// occupancy report against a transaction-level reference queue.
package harness

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/fifosim/ctrl"
	"github.com/sarchlab/fifosim/queue"
	"github.com/sarchlab/fifosim/storage"
)

// Version is the simulator version reported in JSON output.
const Version = "1.0.0"

// Result holds the outcome of running one scenario on one controller
// variant.
type Result struct {
	// Scenario identifies the stimulus program.
	Scenario string `json:"scenario"`

	// Variant identifies the controller variant.
	Variant string `json:"variant"`

	// Description explains what the scenario exercises.
	Description string `json:"description"`

	// Cycles is the number of cycles simulated.
	Cycles uint64 `json:"cycles"`

	// Writes is the number of accepted write requests.
	Writes uint64 `json:"writes"`

	// Reads is the number of accepted read requests.
	Reads uint64 `json:"reads"`

	// DroppedWrites is the number of write requests rejected while full.
	DroppedWrites uint64 `json:"dropped_writes"`

	// IgnoredReads is the number of read requests rejected while empty.
	IgnoredReads uint64 `json:"ignored_reads"`

	// Hazards is the number of same-address collisions flagged.
	Hazards uint64 `json:"hazards,omitempty"`

	// ResetCycles is the number of cycles spent in reset.
	ResetCycles uint64 `json:"reset_cycles,omitempty"`

	// PeakOccupancy is the highest occupancy reached.
	PeakOccupancy int `json:"peak_occupancy"`

	// FinalOccupancy is the occupancy when the stimulus ended.
	FinalOccupancy int `json:"final_occupancy"`

	// Throughput is accepted requests per cycle.
	Throughput float64 `json:"throughput"`

	// DataMismatches counts words that arrived out of order, with the
	// wrong value, or without a matching accepted read.
	DataMismatches int `json:"data_mismatches"`

	// StateMismatches counts cycles where the controller's occupancy
	// disagreed with the reference queue.
	StateMismatches int `json:"state_mismatches"`

	// SimTimeSec is the simulated time at the configured frequency.
	SimTimeSec float64 `json:"sim_time_s"`

	// WallTime is the actual time taken to run the simulation.
	WallTime time.Duration `json:"wall_time_ns"`
}

// Passed reports whether the run completed without mismatches.
func (r Result) Passed() bool {
	return r.DataMismatches == 0 && r.StateMismatches == 0
}

// Scenario defines a single stimulus program.
type Scenario struct {
	// Name identifies the scenario.
	Name string

	// Description explains what the scenario exercises.
	Description string

	// Config is the controller geometry for this scenario. Nil selects
	// the defaults. Depths stay powers of two so every variant can run
	// the same program.
	Config *ctrl.Config

	// Build produces the per-cycle input vectors for the given
	// geometry.
	Build func(cfg *ctrl.Config) []ctrl.Inputs
}

// Factory constructs a controller for one verification run.
type Factory func(name string, cfg *ctrl.Config) ctrl.Controller

// Variant pairs a controller variant name with its factory.
type Variant struct {
	// Name identifies the variant in reports.
	Name string

	// New constructs a fresh controller.
	New Factory
}

// Variants returns the standard controller variants in a stable order.
func Variants() []Variant {
	return []Variant{
		{
			Name: "RegisterFIFO",
			New: func(name string, cfg *ctrl.Config) ctrl.Controller {
				return ctrl.NewRegisterFIFO(name, cfg)
			},
		},
		{
			Name: "BlockRAMFIFO",
			New: func(name string, cfg *ctrl.Config) ctrl.Controller {
				return ctrl.NewBlockRAMFIFO(name, cfg, nil)
			},
		},
		{
			Name: "LegacyBlockRAMFIFO",
			New: func(name string, cfg *ctrl.Config) ctrl.Controller {
				return ctrl.NewLegacyBlockRAMFIFO(name, cfg, nil)
			},
		},
		{
			Name: "DistributedFIFO",
			New: func(name string, cfg *ctrl.Config) ctrl.Controller {
				return ctrl.NewDistributedFIFO(name, cfg, nil)
			},
		},
	}
}

// FindVariant returns the variant with the given name.
func FindVariant(name string) (Variant, bool) {
	for _, v := range Variants() {
		if v.Name == name {
			return v, true
		}
	}
	return Variant{}, false
}

// Config configures the verification harness.
type Config struct {
	// Freq is the modeled clock frequency, used to report simulated
	// time.
	Freq sim.Freq

	// Output is where to write results (default: os.Stdout).
	Output io.Writer

	// Verbose enables a per-cycle trace of every run.
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() Config {
	return Config{
		Freq:    1 * sim.GHz,
		Output:  os.Stdout,
		Verbose: false,
	}
}

// Harness runs verification scenarios and reports results.
type Harness struct {
	config    Config
	scenarios []Scenario
	runs      int
}

// NewHarness creates a new verification harness.
func NewHarness(config Config) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	if config.Freq == 0 {
		config.Freq = 1 * sim.GHz
	}
	return &Harness{
		config:    config,
		scenarios: []Scenario{},
	}
}

// AddScenario adds a scenario to the harness.
func (h *Harness) AddScenario(s Scenario) {
	h.scenarios = append(h.scenarios, s)
}

// AddScenarios adds multiple scenarios to the harness.
func (h *Harness) AddScenarios(scenarios []Scenario) {
	h.scenarios = append(h.scenarios, scenarios...)
}

// RunAll executes every scenario on every standard variant and returns
// the results.
func (h *Harness) RunAll() []Result {
	variants := Variants()
	results := make([]Result, 0, len(h.scenarios)*len(variants))

	for _, s := range h.scenarios {
		for _, v := range variants {
			results = append(results, h.Run(v, s))
		}
	}

	return results
}

// Run executes a single scenario on a single variant.
func (h *Harness) Run(v Variant, s Scenario) Result {
	cfg := s.Config
	if cfg == nil {
		cfg = ctrl.DefaultConfig()
	}

	h.runs++
	name := fmt.Sprintf("%sRun%d", v.Name, h.runs)
	controller := v.New(name, cfg)
	golden := queue.NewQueue(name+"Golden", cfg.Depth)
	mask := storage.Mask(cfg.WordBits)
	stimulus := s.Build(cfg)

	if h.config.Verbose {
		fmt.Fprintf(h.config.Output, "--- %s / %s (%d cycles) ---\n",
			s.Name, v.Name, len(stimulus))
	}

	result := Result{
		Scenario:    s.Name,
		Variant:     v.Name,
		Description: s.Description,
	}

	var pending []uint64

	start := time.Now()
	for cycle, in := range stimulus {
		before := controller.Stats()
		out := controller.Tick(in)
		after := controller.Stats()

		// An accepted read fixes which word must come out, even when
		// the variant delivers it a cycle later. The expectation waits
		// in pending until DataValid hands the word over.
		if after.Reads > before.Reads {
			expected, ok := golden.Pop()
			if !ok {
				result.StateMismatches++
			} else {
				pending = append(pending, expected)
			}
		}

		if out.DataValid {
			if len(pending) == 0 {
				result.DataMismatches++
			} else {
				expected := pending[0]
				pending = pending[1:]
				if out.ReadData != expected {
					result.DataMismatches++
				}
			}
		}

		if after.Writes > before.Writes {
			if golden.CanPush() {
				golden.Push(in.WriteData & mask)
			} else {
				result.StateMismatches++
			}
		}

		if in.Reset {
			golden.Clear()
			pending = pending[:0]
		} else if controller.Occupancy() != golden.Size() {
			result.StateMismatches++
		}

		if h.config.Verbose {
			fmt.Fprintf(h.config.Output,
				"  [%4d] rst=%v wr=%v rd=%v en=%v | occ=%2d full=%v empty=%v valid=%v\n",
				cycle, in.Reset, in.Write, in.Read, in.Enable,
				controller.Occupancy(), out.Full, out.Empty, out.DataValid)
		}
	}
	wallTime := time.Since(start)

	stats := controller.Stats()
	result.Cycles = stats.Cycles
	result.Writes = stats.Writes
	result.Reads = stats.Reads
	result.DroppedWrites = stats.DroppedWrites
	result.IgnoredReads = stats.IgnoredReads
	result.Hazards = stats.Hazards
	result.ResetCycles = stats.ResetCycles
	result.PeakOccupancy = stats.PeakOccupancy
	result.FinalOccupancy = controller.Occupancy()
	result.Throughput = stats.Throughput()
	result.SimTimeSec = float64(stats.Cycles) / float64(h.config.Freq)
	result.WallTime = wallTime

	return result
}

// PrintResults outputs results in a human-readable format.
func (h *Harness) PrintResults(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output, "=== FIFO Controller Verification Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		status := "PASS"
		if !r.Passed() {
			status = "FAIL"
		}

		_, _ = fmt.Fprintf(h.config.Output, "Scenario: %s [%s] %s\n", r.Scenario, r.Variant, status)
		_, _ = fmt.Fprintf(h.config.Output, "  Description: %s\n", r.Description)
		_, _ = fmt.Fprintln(h.config.Output, "  --- Activity ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Cycles:          %d\n", r.Cycles)
		_, _ = fmt.Fprintf(h.config.Output, "  Writes:          %d\n", r.Writes)
		_, _ = fmt.Fprintf(h.config.Output, "  Reads:           %d\n", r.Reads)
		_, _ = fmt.Fprintf(h.config.Output, "  Dropped Writes:  %d\n", r.DroppedWrites)
		_, _ = fmt.Fprintf(h.config.Output, "  Ignored Reads:   %d\n", r.IgnoredReads)
		if r.Hazards > 0 {
			_, _ = fmt.Fprintf(h.config.Output, "  Hazards:         %d\n", r.Hazards)
		}
		_, _ = fmt.Fprintf(h.config.Output, "  Peak Occupancy:  %d\n", r.PeakOccupancy)
		_, _ = fmt.Fprintf(h.config.Output, "  Final Occupancy: %d\n", r.FinalOccupancy)
		_, _ = fmt.Fprintf(h.config.Output, "  Throughput:      %.3f req/cycle\n", r.Throughput)
		_, _ = fmt.Fprintln(h.config.Output, "  --- Checks ---")
		_, _ = fmt.Fprintf(h.config.Output, "  Data Mismatches:  %d\n", r.DataMismatches)
		_, _ = fmt.Fprintf(h.config.Output, "  State Mismatches: %d\n", r.StateMismatches)
		_, _ = fmt.Fprintf(h.config.Output, "  Sim Time:  %.3es\n", r.SimTimeSec)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time: %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// PrintCSV outputs results in CSV format for easy comparison.
func (h *Harness) PrintCSV(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output,
		"scenario,variant,cycles,writes,reads,dropped_writes,ignored_reads,hazards,peak_occupancy,final_occupancy,data_mismatches,state_mismatches,passed")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%s,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d,%v\n",
			r.Scenario,
			r.Variant,
			r.Cycles,
			r.Writes,
			r.Reads,
			r.DroppedWrites,
			r.IgnoredReads,
			r.Hazards,
			r.PeakOccupancy,
			r.FinalOccupancy,
			r.DataMismatches,
			r.StateMismatches,
			r.Passed(),
		)
	}
}

// Report is the complete output format for verification results.
type Report struct {
	// Metadata about the verification run
	Metadata ReportMetadata `json:"metadata"`

	// Results is the list of individual run results
	Results []Result `json:"results"`

	// Summary contains aggregate statistics
	Summary ReportSummary `json:"summary"`
}

// ReportMetadata contains information about the verification run.
type ReportMetadata struct {
	// Timestamp when the run started
	Timestamp string `json:"timestamp"`

	// Version of the simulator
	Version string `json:"version"`

	// FreqHz is the modeled clock frequency in Hz
	FreqHz float64 `json:"freq_hz"`
}

// ReportSummary contains aggregate statistics across all runs.
type ReportSummary struct {
	// TotalRuns is the number of scenario/variant combinations run
	TotalRuns int `json:"total_runs"`

	// TotalCycles is the sum of all simulated cycles
	TotalCycles uint64 `json:"total_cycles"`

	// TotalMismatches is the sum of data and state mismatches
	TotalMismatches int `json:"total_mismatches"`

	// Failed is the number of runs with at least one mismatch
	Failed int `json:"failed"`

	// TotalWallTime is the total wall clock time for all runs
	TotalWallTime time.Duration `json:"total_wall_time_ns"`
}

// PrintJSON outputs results in JSON format for automated comparison.
func (h *Harness) PrintJSON(results []Result) error {
	var totalCycles uint64
	var totalMismatches, failed int
	var totalWallTime time.Duration
	for _, r := range results {
		totalCycles += r.Cycles
		totalMismatches += r.DataMismatches + r.StateMismatches
		if !r.Passed() {
			failed++
		}
		totalWallTime += r.WallTime
	}

	report := Report{
		Metadata: ReportMetadata{
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Version:   Version,
			FreqHz:    float64(h.config.Freq),
		},
		Results: results,
		Summary: ReportSummary{
			TotalRuns:       len(results),
			TotalCycles:     totalCycles,
			TotalMismatches: totalMismatches,
			Failed:          failed,
			TotalWallTime:   totalWallTime,
		},
	}

	encoder := json.NewEncoder(h.config.Output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
