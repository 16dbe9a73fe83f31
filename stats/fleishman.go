package stats

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// FleishmanCoeffs are the power-method polynomial coefficients transforming
// a standard normal z into x = A + B*z + C*z^2 + D*z^3 with unit variance,
// zero mean and the requested skewness and excess kurtosis.
type FleishmanCoeffs struct {
	A, B, C, D float64
}

// Apply evaluates the polynomial at z.
func (f FleishmanCoeffs) Apply(z float64) float64 {
	return f.A + z*(f.B+z*(f.C+z*f.D))
}

// IsIdentity reports whether the transform is the identity (normal target).
func (f FleishmanCoeffs) IsIdentity() bool {
	return f.A == 0 && f.B == 1 && f.C == 0 && f.D == 0
}

// SolveFleishman solves the Fleishman moment system for the given target
// skewness and excess kurtosis via Newton iteration on
//
//	b^2 + 6bd + 2c^2 + 15d^2                 = 1
//	2c(b^2 + 24bd + 105d^2 + 2)              = skew
//	24[bd + c^2(1+b^2+28bd) + d^2(12+48bd+141c^2+225d^2)] = exKurt
//
// The second return value reports feasibility. For (skew, exKurt) pairs
// outside the Fleishman region the solver does not converge; a clamped
// first-order approximation is returned instead (c = skew/6, d = exKurt/24,
// scaled so b^2 stays positive) and ok is false so callers can attach a
// warning.
func SolveFleishman(skew, exKurt float64) (coeffs FleishmanCoeffs, ok bool) {
	// Normal target: exact identity, no iteration.
	if math.Abs(skew) < 1e-2 && math.Abs(exKurt) < 1e-2 {
		return FleishmanCoeffs{A: 0, B: 1, C: 0, D: 0}, true
	}

	b, c, d := 1.0, skew/6, exKurt/24

	converged := false
	for iter := 0; iter < 200; iter++ {
		f1 := b*b + 6*b*d + 2*c*c + 15*d*d - 1
		f2 := 2*c*(b*b+24*b*d+105*d*d+2) - skew
		f3 := 24*(b*d+c*c*(1+b*b+28*b*d)+d*d*(12+48*b*d+141*c*c+225*d*d)) - exKurt

		if math.Abs(f1)+math.Abs(f2)+math.Abs(f3) < 1e-10 {
			converged = true
			break
		}

		j := mat.NewDense(3, 3, []float64{
			2*b + 6*d, 4 * c, 6*b + 30*d,
			2 * c * (2*b + 24*d), 2 * (b*b + 24*b*d + 105*d*d + 2), 2 * c * (24*b + 210*d),
			24 * (d + c*c*(2*b+28*d) + 48*d*d*d), 24 * (2*c*(1+b*b+28*b*d) + 282*c*d*d), 24 * (b + 28*b*c*c + 24*d + 144*b*d*d + 282*c*c*d + 900*d*d*d),
		})
		rhs := mat.NewVecDense(3, []float64{-f1, -f2, -f3})

		var step mat.VecDense
		if err := step.SolveVec(j, rhs); err != nil {
			break
		}
		b += step.AtVec(0)
		c += step.AtVec(1)
		d += step.AtVec(2)

		if math.IsNaN(b) || math.IsNaN(c) || math.IsNaN(d) ||
			math.Abs(b) > 10 || math.Abs(c) > 10 || math.Abs(d) > 10 {
			break
		}
	}

	if converged && b > 0 {
		return FleishmanCoeffs{A: -c, B: b, C: c, D: d}, true
	}

	// Infeasible pair: clamped first-order fallback, best effort.
	c = skew / 6
	d = exKurt / 24
	if s := c*c + d*d; s >= 0.99 {
		scale := math.Sqrt(0.99 / s)
		c *= scale
		d *= scale
	}
	b = math.Sqrt(1 - c*c - d*d)
	return FleishmanCoeffs{A: -c, B: b, C: c, D: d}, false
}
