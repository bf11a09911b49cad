package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pnet-tools/go-pnet/results"
)

func runs(args []string) error {
	fs := flag.NewFlagSet("runs", flag.ExitOnError)
	dbPath := fs.String("db", "runs.db", "SQLite run archive to read")
	show := fs.String("show", "", "Print the full report of one run id")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: pnet runs [options]

List archived analysis runs, or print one run's full report as JSON.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # List all runs
  pnet runs --db runs.db

  # Show one report
  pnet runs --db runs.db --show 2f1c...
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	store, err := results.NewStore(*dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if *show != "" {
		report, err := store.Get(*show)
		if err != nil {
			return err
		}
		out, err := results.ToJSON(report)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	list, err := store.List()
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Println("No archived runs")
		return nil
	}
	for _, r := range list {
		fmt.Printf("%s  %-20s  %s\n", r.RunID, r.NetName, r.StartedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
