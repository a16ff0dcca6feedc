// Package main provides the entry point for fifosim.
// Fifosim is a cycle-accurate FIFO queue controller simulator built on
// Akita.
//
// For the full CLI, use: go run ./cmd/fifosim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("Fifosim - FIFO Queue Controller Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: fifosim -scenario <name> [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -variant   Controller variant to simulate")
	fmt.Println("  -scenario  Stimulus scenario to run")
	fmt.Println("  -config    Path to FIFO configuration JSON file")
	fmt.Println("  -list      List available variants and scenarios")
	fmt.Println("  -v         Print a per-cycle trace")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/fifosim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/fifosim' instead.")
	}
}
