package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/semforge/go-semforge/export"
	"github.com/semforge/go-semforge/generator"
)

func generate(args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	output := fs.String("output", "", "Output CSV file (default: stdout)")
	gf := registerGenFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: semforge generate <model.json> [options]

Generate a synthetic survey sample from a model specification.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # 500 respondents to stdout
  semforge generate model.json --n 500

  # Reproducible noise-free sample to a file
  semforge generate model.json --n 1000 --seed 42 --noise=false --output sample.csv
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

	matrix, err := generator.New(m, *gf.n, gf.options()).Generate()
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}

	for _, w := range matrix.Warnings {
		fmt.Fprintf(os.Stderr, "Warning [%s] %s: %s\n", w.Category, w.Target, w.Message)
	}

	if *output == "" {
		return export.WriteCSV(os.Stdout, matrix)
	}
	if err := export.WriteCSVFile(*output, matrix); err != nil {
		return err
	}
	fmt.Printf("Wrote %d respondents x %d columns to %s\n", matrix.N(), len(matrix.Columns), *output)
	return nil
}
