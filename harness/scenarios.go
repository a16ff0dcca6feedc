package harness

import (
	"math/rand"

	"github.com/sarchlab/fifosim/ctrl"
)

// GetScenarios returns the standard verification scenarios. Each
// scenario targets one controller behavior.
func GetScenarios() []Scenario {
	return []Scenario{
		fillDrain(),
		overflowBurst(),
		underflowReads(),
		streamAtOne(),
		thresholdWalk(),
		enableGaps(),
		resetMidBurst(),
		randomSoak(),
	}
}

// GetCoreScenarios returns a minimal set of 3 scenarios for quick
// validation: a full round trip, the boundary bursts, and the
// same-address stress pattern.
func GetCoreScenarios() []Scenario {
	return []Scenario{
		fillDrain(),
		overflowBurst(),
		streamAtOne(),
	}
}

// Stimulus vector builders. Enable stays asserted except where a
// scenario exercises the gate.

func resetCycle() ctrl.Inputs {
	return ctrl.Inputs{Reset: true, Enable: true}
}

func idle() ctrl.Inputs {
	return ctrl.Inputs{Enable: true}
}

func writeWord(w uint64) ctrl.Inputs {
	return ctrl.Inputs{Write: true, WriteData: w, Enable: true}
}

func readWord() ctrl.Inputs {
	return ctrl.Inputs{Read: true, Enable: true}
}

func writeAndRead(w uint64) ctrl.Inputs {
	return ctrl.Inputs{Write: true, WriteData: w, Read: true, Enable: true}
}

// payload produces distinct, recognizable words.
func payload(i int) uint64 {
	return 0xC0DE0000 + uint64(i)
}

// preamble resets the controller and leaves enough idle cycles for
// every variant to come out of initialization.
func preamble() []ctrl.Inputs {
	return []ctrl.Inputs{resetCycle(), idle(), idle()}
}

// 1. Fill/Drain - writes N distinct words, then reads them all back.
func fillDrain() Scenario {
	return Scenario{
		Name:        "fill_drain",
		Description: "Fill to capacity, then drain to empty - checks order and boundary flags",
		Config:      &ctrl.Config{Depth: 8, WordBits: 32, AlmostFullThreshold: 6, AlmostEmptyThreshold: 2},
		Build: func(cfg *ctrl.Config) []ctrl.Inputs {
			program := preamble()
			for i := 0; i < cfg.Depth; i++ {
				program = append(program, writeWord(payload(i)))
			}
			program = append(program, idle(), idle())
			// One extra read per latency cycle so the block RAM
			// variants drain completely as well.
			for i := 0; i < cfg.Depth+2; i++ {
				program = append(program, readWord())
			}
			program = append(program, idle(), idle())
			return program
		},
	}
}

// 2. Overflow Burst - writes far past capacity.
func overflowBurst() Scenario {
	return Scenario{
		Name:        "overflow_burst",
		Description: "Write twice the capacity without reading - overflow writes must drop silently",
		Config:      &ctrl.Config{Depth: 8, WordBits: 32, AlmostFullThreshold: 6, AlmostEmptyThreshold: 2},
		Build: func(cfg *ctrl.Config) []ctrl.Inputs {
			program := preamble()
			for i := 0; i < 2*cfg.Depth; i++ {
				program = append(program, writeWord(payload(i)))
			}
			// Drain everything to prove the first N words survived.
			for i := 0; i < cfg.Depth+2; i++ {
				program = append(program, readWord())
			}
			program = append(program, idle(), idle())
			return program
		},
	}
}

// 3. Underflow Reads - reads an empty FIFO.
func underflowReads() Scenario {
	return Scenario{
		Name:        "underflow_reads",
		Description: "Read while empty - underflow reads must be ignored without state change",
		Build: func(cfg *ctrl.Config) []ctrl.Inputs {
			program := preamble()
			for i := 0; i < cfg.Depth; i++ {
				program = append(program, readWord())
			}
			// The FIFO must still work normally afterwards.
			program = append(program,
				writeWord(payload(0)), idle(), idle(),
				readWord(), idle(), idle())
			return program
		},
	}
}

// 4. Stream At One - simultaneous write+read at occupancy one.
func streamAtOne() Scenario {
	return Scenario{
		Name:        "stream_at_one",
		Description: "Simultaneous write+read at occupancy one - the legacy same-address case",
		Config:      &ctrl.Config{Depth: 8, WordBits: 32, AlmostFullThreshold: 6, AlmostEmptyThreshold: 2},
		Build: func(cfg *ctrl.Config) []ctrl.Inputs {
			program := preamble()
			program = append(program, writeWord(payload(0)), idle(), idle())
			for i := 1; i <= 8; i++ {
				program = append(program, writeAndRead(payload(i)))
			}
			// Drain whatever the variant left behind.
			for i := 0; i < cfg.Depth+2; i++ {
				program = append(program, readWord())
			}
			program = append(program, idle(), idle())
			return program
		},
	}
}

// 5. Threshold Walk - sweeps occupancy from zero to N and back.
func thresholdWalk() Scenario {
	return Scenario{
		Name:        "threshold_walk",
		Description: "Walk occupancy 0..N..0 one request per cycle - threshold flag sweep",
		Build: func(cfg *ctrl.Config) []ctrl.Inputs {
			program := preamble()
			for i := 0; i < cfg.Depth; i++ {
				program = append(program, writeWord(payload(i)), idle())
			}
			for i := 0; i < cfg.Depth; i++ {
				program = append(program, readWord(), idle())
			}
			program = append(program, idle(), idle())
			return program
		},
	}
}

// 6. Enable Gaps - runs traffic with the clock enable dropping out.
func enableGaps() Scenario {
	return Scenario{
		Name:        "enable_gaps",
		Description: "Traffic with enable deasserted in stretches - gated variants must hold state",
		Config:      &ctrl.Config{Depth: 8, WordBits: 32, AlmostFullThreshold: 6, AlmostEmptyThreshold: 2},
		Build: func(cfg *ctrl.Config) []ctrl.Inputs {
			program := preamble()
			for i := 0; i < cfg.Depth/2; i++ {
				program = append(program, writeWord(payload(i)))
				held := writeWord(payload(100 + i))
				held.Enable = false
				program = append(program, held)
			}
			program = append(program, idle(), idle())
			for i := 0; i < cfg.Depth+2; i++ {
				program = append(program, readWord())
				held := readWord()
				held.Enable = false
				program = append(program, held)
			}
			program = append(program, idle(), idle())
			return program
		},
	}
}

// 7. Reset Mid Burst - asserts reset while the FIFO holds data.
func resetMidBurst() Scenario {
	return Scenario{
		Name:        "reset_mid_burst",
		Description: "Reset while half full - state must reinitialize and traffic must resume",
		Build: func(cfg *ctrl.Config) []ctrl.Inputs {
			program := preamble()
			for i := 0; i < cfg.Depth/2; i++ {
				program = append(program, writeWord(payload(i)))
			}
			program = append(program, resetCycle(), resetCycle(), idle(), idle())
			for i := 0; i < cfg.Depth/2; i++ {
				program = append(program, writeWord(payload(100 + i)))
			}
			for i := 0; i < cfg.Depth/2+2; i++ {
				program = append(program, readWord())
			}
			program = append(program, idle(), idle())
			return program
		},
	}
}

// 8. Random Soak - seeded mixed traffic.
func randomSoak() Scenario {
	return Scenario{
		Name:        "random_soak",
		Description: "500 cycles of seeded random traffic - order and occupancy must track the oracle",
		Build: func(cfg *ctrl.Config) []ctrl.Inputs {
			rng := rand.New(rand.NewSource(42))
			program := preamble()
			for i := 0; i < 500; i++ {
				in := idle()
				if rng.Float64() < 0.55 {
					in.Write = true
					in.WriteData = rng.Uint64()
				}
				if rng.Float64() < 0.45 {
					in.Read = true
				}
				program = append(program, in)
			}
			// Let in-flight reads land before the run ends.
			program = append(program, idle(), idle())
			return program
		},
	}
}
