// Command sweep runs every verification scenario on every FIFO
// controller variant.
//
// Usage:
//
//	go run ./cmd/sweep [flags]
//
// Flags:
//
//	-csv   Output results in CSV format (default: human-readable)
//	-json  Output results in JSON format
//	-core  Run only the core scenario set
//
// Example:
//
//	# Run the full sweep with human-readable output
//	go run ./cmd/sweep
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/sweep -csv > results.csv
//
// The sweep exits nonzero when any variant disagrees with the
// reference queue, so it can gate a CI pipeline.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/fifosim/harness"
)

func main() {
	// Parse flags
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	coreOnly := flag.Bool("core", false, "Run only the core scenario set")
	flag.Parse()

	// Configure harness
	config := harness.DefaultConfig()
	config.Output = os.Stdout

	// Create harness and add scenarios
	h := harness.NewHarness(config)
	if *coreOnly {
		h.AddScenarios(harness.GetCoreScenarios())
	} else {
		h.AddScenarios(harness.GetScenarios())
	}

	// Print configuration
	if !*csvOutput && !*jsonOutput {
		fmt.Println("Fifosim Verification Sweep")
		fmt.Println("==========================")
		for _, v := range harness.Variants() {
			fmt.Printf("Variant: %s\n", v.Name)
		}
		fmt.Println("")
	}

	// Run scenarios
	results := h.RunAll()

	// Output results
	switch {
	case *jsonOutput:
		if err := h.PrintJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	case *csvOutput:
		h.PrintCSV(results)
	default:
		h.PrintResults(results)
	}

	failed := 0
	for _, r := range results {
		if !r.Passed() {
			failed++
		}
	}

	if !*csvOutput && !*jsonOutput {
		fmt.Println("=== Summary ===")
		fmt.Printf("Runs:   %d\n", len(results))
		fmt.Printf("Failed: %d\n", failed)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
