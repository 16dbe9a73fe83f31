package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/semforge/go-semforge/generator"
	"github.com/semforge/go-semforge/model"
)

// genFlags holds the generator options shared by every subcommand that
// produces data.
type genFlags struct {
	n           *int
	seed        *int64
	likert      *int
	noise       *bool
	noiseLevel  *float64
	communality *float64
	verbose     *bool
}

func registerGenFlags(fs *flag.FlagSet) *genFlags {
	return &genFlags{
		n:           fs.Int("n", 200, "Sample size (respondents)"),
		seed:        fs.Int64("seed", 0, "Random seed (0 = time-based)"),
		likert:      fs.Int("likert", 7, "Likert scale upper bound"),
		noise:       fs.Bool("noise", true, "Add measurement noise"),
		noiseLevel:  fs.Float64("noise-level", 0.05, "Noise standard deviation as a fraction of the scale"),
		communality: fs.Float64("communality", 0.9, "Item communality (share of variance from the latent factor)"),
		verbose:     fs.Bool("verbose", false, "Verbose logging"),
	}
}

func (g *genFlags) options() *generator.Options {
	opts := generator.DefaultOptions()
	opts.LikertScale = *g.likert
	opts.AddNoise = *g.noise
	opts.NoiseLevel = *g.noiseLevel
	opts.Communality = *g.communality
	opts.Seed = *g.seed
	return opts
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// loadModel reads and validates a model specification file.
func loadModel(path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	var m model.Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse model: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model: %w", err)
	}
	return &m, nil
}
