package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	deadlockpkg "github.com/pnet-tools/go-pnet/deadlock"
	"github.com/pnet-tools/go-pnet/results"
)

func deadlock(args []string) error {
	fs := flag.NewFlagSet("deadlock", flag.ExitOnError)
	method := fs.String("method", "explicit", "Detection method: explicit, symbolic or solver")
	jsonOut := fs.String("json", "", "Write the report to a JSON file")
	dbOut := fs.String("db", "", "Archive the run in a SQLite database")
	verbose := fs.Bool("verbose", false, "Log parser and analysis warnings")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pnet deadlock <model.pnml> [options]

Search the reachable set for a marking that enables no transition. The
symbolic and solver methods cross-validate their verdict against the
explicit reachable set.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Scan the explicit reachable set
  pnet deadlock model.pnml

  # SAT-based search with warnings shown
  pnet deadlock model.pnml --method solver --verbose
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	logger, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer logger.Sync()

	net, err := loadNet(fs.Arg(0), logger)
	if err != nil {
		return err
	}

	start := time.Now()
	finder := deadlockpkg.NewFinder(net).WithLogger(logger)
	marking, found, err := finder.Find(deadlockpkg.Method(*method))
	if err != nil {
		return err
	}

	report := results.NewReport(netInfo(net))
	report.Duration = time.Since(start).String()
	section := &results.DeadlockReport{Method: *method, Found: found}
	report.Deadlock = section

	if found {
		section.Marking = marking.String()
		fmt.Printf("Deadlock found: %s\n", section.Marking)
	} else {
		fmt.Println("No deadlock: every reachable marking enables a transition")
	}

	return finishReport(report, *jsonOut, *dbOut)
}
