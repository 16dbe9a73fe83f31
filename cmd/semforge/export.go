package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/semforge/go-semforge/export"
	"github.com/semforge/go-semforge/store"
)

func exportCmd(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	db := fs.String("db", "semforge.db", "History database file")
	report := fs.String("report", "", "Write the run's validation report JSON to this file")
	modelOut := fs.String("model", "", "Write the run's model JSON to this file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: semforge export <run-id> [options]

Export a recorded run's report or model specification to files.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  semforge export 3f2a... --db runs.db --report report.json
  semforge export 3f2a... --db runs.db --model model.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("run ID required")
	}
	if *report == "" && *modelOut == "" {
		fs.Usage()
		return fmt.Errorf("--report or --model required")
	}

	st, err := store.NewSQLiteStore(*db)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.Get(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}

	if *report != "" {
		if err := export.WriteReportFile(*report, run.Report); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", *report)
	}
	if *modelOut != "" {
		if err := writeJSONFile(*modelOut, run.Model); err != nil {
			return err
		}
		fmt.Printf("Model written to %s\n", *modelOut)
	}
	return nil
}
