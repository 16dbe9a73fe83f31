package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/semforge/go-semforge/export"
	"github.com/semforge/go-semforge/pipeline"
	"github.com/semforge/go-semforge/validation"
	"go.uber.org/zap"
)

func validate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	report := fs.String("report", "", "Output JSON report file (default: stdout)")
	csvOut := fs.String("csv", "", "Also write the generated sample as CSV")
	gf := registerGenFlags(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: semforge validate <model.json> [options]

Generate a sample and run the full statistical validation battery:
normality, reliability, discriminant validity, structural paths,
mediation, moderation, multicollinearity and model fit.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Report to stdout
  semforge validate model.json --n 500 --seed 42

  # Report and sample to files
  semforge validate model.json --n 500 --report report.json --csv sample.csv
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

	if *csvOut != "" {
		if err := export.WriteCSVFile(*csvOut, res.Matrix); err != nil {
			return err
		}
	}

	if *report == "" {
		return export.WriteReport(os.Stdout, res.Report)
	}
	if err := export.WriteReportFile(*report, res.Report); err != nil {
		return err
	}
	printVerdict(res.Report)
	fmt.Printf("Report written to %s\n", *report)
	return nil
}

func printVerdict(r *validation.Report) {
	verdict := "INVALID"
	if r.OverallValid {
		verdict = "VALID"
	}
	fmt.Printf("Overall: %s (GoF %.3f %s, %d warnings)\n",
		verdict, r.ModelFit.GoF, r.ModelFit.Interpretation, len(r.Warnings))
}
