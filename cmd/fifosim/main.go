// Package main provides the entry point for fifosim.
// Fifosim is a cycle-accurate simulator for synchronous FIFO queue
// controllers, checked against a transaction-level reference queue.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/fifosim/ctrl"
	"github.com/sarchlab/fifosim/harness"
)

var (
	variantName  = flag.String("variant", "RegisterFIFO", "Controller variant to simulate")
	scenarioName = flag.String("scenario", "", "Stimulus scenario to run")
	configPath   = flag.String("config", "", "Path to FIFO configuration JSON file")
	list         = flag.Bool("list", false, "List available variants and scenarios")
	verbose      = flag.Bool("v", false, "Print a per-cycle trace")
)

func main() {
	flag.Parse()

	if *list {
		printCatalog()
		return
	}

	if *scenarioName == "" {
		fmt.Fprintf(os.Stderr, "Usage: fifosim -scenario <name> [options]\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nRun with -list to see variants and scenarios.\n")
		os.Exit(1)
	}

	variant, ok := harness.FindVariant(*variantName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", *variantName)
		os.Exit(1)
	}

	scenario, ok := findScenario(*scenarioName)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", *scenarioName)
		os.Exit(1)
	}

	if *configPath != "" {
		cfg, err := ctrl.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
			os.Exit(1)
		}
		scenario.Config = cfg
	}

	config := harness.DefaultConfig()
	config.Verbose = *verbose

	h := harness.NewHarness(config)
	result := h.Run(variant, scenario)
	h.PrintResults([]harness.Result{result})

	if !result.Passed() {
		os.Exit(1)
	}
}

// findScenario looks up a stimulus scenario by name.
func findScenario(name string) (harness.Scenario, bool) {
	for _, s := range harness.GetScenarios() {
		if s.Name == name {
			return s, true
		}
	}
	return harness.Scenario{}, false
}

// printCatalog lists the controller variants and stimulus scenarios.
func printCatalog() {
	fmt.Println("Variants:")
	for _, v := range harness.Variants() {
		fmt.Printf("  %s\n", v.Name)
	}

	fmt.Println("")
	fmt.Println("Scenarios:")
	for _, s := range harness.GetScenarios() {
		fmt.Printf("  %-16s %s\n", s.Name, s.Description)
	}
}
