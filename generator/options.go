package generator

// Options configures a generation run.
type Options struct {
	LikertScale int     // upper scale bound; items span [1, LikertScale]
	AddNoise    bool    // inject Gaussian response noise before rounding
	NoiseLevel  float64 // noise SD as a fraction of the Likert range
	Communality float64 // variance share each item draws from its latent factor
	Seed        int64   // RNG seed; 0 seeds from wall clock (non-reproducible)
}

// DefaultOptions returns the settings used by the hosted generator:
// 7-point Likert items, mild response noise, high internal consistency.
func DefaultOptions() *Options {
	return &Options{
		LikertScale: 7,
		AddNoise:    true,
		NoiseLevel:  0.05,
		Communality: 0.9,
	}
}

// CleanOptions returns noise-free settings. Use these when path-recovery
// accuracy matters more than response realism, e.g. calibration runs.
func CleanOptions() *Options {
	return &Options{
		LikertScale: 7,
		AddNoise:    false,
		NoiseLevel:  0,
		Communality: 0.9,
	}
}

// Sample-size bounds enforced per run.
const (
	MinSampleSize = 100
	MaxSampleSize = 10000
)

// residualFloor is the minimum residual variance kept when declared path
// betas over-specify an endogenous construct (sum of beta^2 >= 1).
const residualFloor = 0.05
