package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "analyze":
		if err := analyze(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "deadlock":
		if err := deadlock(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "optimize":
		if err := optimize(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "runs":
		if err := runs(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("pnet version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`pnet - 1-safe Petri net state-space analysis tool

Usage:
  pnet <command> [options]

Commands:
  analyze    Compute the reachable state space (explicit and symbolic)
  deadlock   Search for a reachable dead marking
  optimize   Find the best reachable marking under a weight vector
  runs       List or show archived analysis runs
  help       Show this help message
  version    Show version information

Examples:
  # Count reachable markings of a PNML model
  pnet analyze model.pnml

  # Check for deadlocks with the SAT-based method
  pnet deadlock model.pnml --method solver

  # Maximize a weighted marking and archive the run
  pnet optimize model.pnml --weights "done=10,error=-5" --db runs.db

For command-specific help, run:
  pnet <command> --help`)
}
