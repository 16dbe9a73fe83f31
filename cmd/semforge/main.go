package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "generate":
		if err := generate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validate(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "run":
		if err := run(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "export":
		if err := exportCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "history":
		if err := history(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("semforge version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// initLogger installs the process-global zap logger. Verbose switches to
// the human-readable development encoder.
func initLogger(verbose bool) func() {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
		logger, err = cfg.Build()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: init logger: %v\n", err)
		os.Exit(1)
	}
	zap.ReplaceGlobals(logger)
	return func() { _ = logger.Sync() }
}

func printUsage() {
	fmt.Println(`semforge - synthetic survey data generation and PLS-SEM validation

Usage:
  semforge <command> [options]

Commands:
  generate    Generate a synthetic sample from a model file (CSV output)
  validate    Generate a sample and run the full validation battery
  run         Generate, validate and record a run in the history database
  export      Write a recorded run's report or model to files
  history     List, show or delete recorded runs
  help        Show this help
  version     Show version

Examples:
  semforge generate model.json --n 500 --output sample.csv
  semforge validate model.json --n 500 --seed 42 --report report.json
  semforge run model.json --n 1000 --db runs.db
  semforge history --db runs.db --limit 10

Run 'semforge <command> --help' for command options.`)
}
