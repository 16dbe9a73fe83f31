package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/semforge/go-semforge/pipeline"
	"github.com/semforge/go-semforge/store"
	"go.uber.org/zap"
)

func run(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	db := fs.String("db", "semforge.db", "History database file")
	gf := registerGenFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: semforge run <model.json> [options]

Generate, validate and record the run in the history database.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  semforge run model.json --n 1000 --seed 42 --db runs.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("model file required")
	}

	sync := initLogger(*gf.verbose)
	defer sync()

	m, err := loadModel(fs.Arg(0))
	if err != nil {
		return err
	}

	res, err := pipeline.NewRunner(gf.options(), zap.S()).Run(m, *gf.n)
	if err != nil {
		return err
	}

	st, err := store.NewSQLiteStore(*db)
	if err != nil {
		return err
	}
	defer st.Close()

	rec := &store.Run{
		ID:           res.RunID,
		Seed:         res.Seed,
		SampleSize:   res.SampleSize,
		OverallValid: res.Report.OverallValid,
		Model:        res.Model,
		Report:       res.Report,
	}
	if err := st.Save(context.Background(), rec); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	printVerdict(res.Report)
	fmt.Printf("Run %s recorded in %s (%.2fs)\n", res.RunID, *db, res.Duration.Seconds())
	return nil
}
