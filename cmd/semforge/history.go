package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/semforge/go-semforge/store"
)

func history(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	db := fs.String("db", "semforge.db", "History database file")
	limit := fs.Int("limit", 20, "Maximum runs to list")
	show := fs.String("show", "", "Print the full record for a run ID")
	del := fs.String("delete", "", "Delete a run by ID")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: semforge history [options]

List, show or delete recorded runs.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  semforge history --db runs.db --limit 10
  semforge history --db runs.db --show 3f2a...
  semforge history --db runs.db --delete 3f2a...
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	st, err := store.NewSQLiteStore(*db)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()

	if *del != "" {
		if err := st.Delete(ctx, *del); err != nil {
			return err
		}
		fmt.Printf("Deleted run %s\n", *del)
		return nil
	}

	if *show != "" {
		run, err := st.Get(ctx, *show)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	}

	runs, err := st.List(ctx, *limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %8s  %6s  %s\n", "ID", "CREATED", "N", "SEED", "VALID")
	for _, r := range runs {
		fmt.Printf("%-36s  %-20s  %8d  %6d  %v\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.SampleSize, r.Seed, r.OverallValid)
	}
	return nil
}
