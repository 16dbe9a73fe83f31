package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// tStatCap bounds reported t statistics so near-perfect fits stay finite and
// serializable.
const tStatCap = 100.0

// OLS holds an ordinary least squares fit of y on one or more predictors,
// with an intercept.
type OLS struct {
	Predictors []string
	Coeffs     []float64 // aligned with Predictors
	Intercept  float64
	StdErrs    []float64
	TStats     []float64
	PValues    []float64
	R2         float64
	N          int
	ResidualDF int
}

// Coeff returns the coefficient and standard error for a named predictor.
func (o *OLS) Coeff(name string) (beta, se float64, ok bool) {
	for i, p := range o.Predictors {
		if p == name {
			return o.Coeffs[i], o.StdErrs[i], true
		}
	}
	return 0, 0, false
}

// FitOLS regresses y on the given predictor columns. Each column must have
// len(y) observations. It returns an error when the system is singular
// (collinear or constant predictors); callers degrade to sentinels.
func FitOLS(y []float64, columns [][]float64, names []string) (*OLS, error) {
	n := len(y)
	p := len(columns)
	if p == 0 {
		return nil, fmt.Errorf("regression: no predictors")
	}
	if n <= p+1 {
		return nil, fmt.Errorf("regression: %d observations for %d predictors", n, p)
	}
	for i, col := range columns {
		if len(col) != n {
			return nil, fmt.Errorf("regression: predictor %d has %d rows, want %d", i, len(col), n)
		}
	}

	// Design matrix with a leading intercept column.
	x := mat.NewDense(n, p+1, nil)
	yv := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		x.Set(i, 0, 1)
		for j, col := range columns {
			x.Set(i, j+1, col[i])
		}
		yv.SetVec(i, y[i])
	}

	// Least-squares solve via QR.
	var beta mat.VecDense
	if err := beta.SolveVec(x, yv); err != nil {
		return nil, fmt.Errorf("regression: singular design matrix: %w", err)
	}

	// Residual sum of squares and total sum of squares.
	var fitted mat.VecDense
	fitted.MulVec(x, &beta)
	rss := 0.0
	mean := MeanOf(y)
	tss := 0.0
	for i := 0; i < n; i++ {
		r := y[i] - fitted.AtVec(i)
		rss += r * r
		d := y[i] - mean
		tss += d * d
	}

	r2 := 0.0
	if tss > 0 {
		r2 = 1 - rss/tss
	}
	if r2 < 0 {
		r2 = 0
	}

	df := n - p - 1
	sigma2 := rss / float64(df)

	// Coefficient covariance: sigma^2 * (X'X)^-1.
	var xtx, xtxInv mat.Dense
	xtx.Mul(x.T(), x)
	if err := xtxInv.Inverse(&xtx); err != nil {
		return nil, fmt.Errorf("regression: X'X not invertible: %w", err)
	}

	out := &OLS{
		Predictors: append([]string(nil), names...),
		Coeffs:     make([]float64, p),
		StdErrs:    make([]float64, p),
		TStats:     make([]float64, p),
		PValues:    make([]float64, p),
		Intercept:  beta.AtVec(0),
		R2:         r2,
		N:          n,
		ResidualDF: df,
	}

	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(df)}
	for j := 0; j < p; j++ {
		b := beta.AtVec(j + 1)
		se := math.Sqrt(sigma2 * xtxInv.At(j+1, j+1))
		out.Coeffs[j] = b
		out.StdErrs[j] = se

		t := 0.0
		switch {
		case se > 0:
			t = b / se
		case b > 0:
			t = tStatCap
		case b < 0:
			t = -tStatCap
		}
		if t > tStatCap {
			t = tStatCap
		} else if t < -tStatCap {
			t = -tStatCap
		}
		out.TStats[j] = t
		out.PValues[j] = 2 * (1 - tDist.CDF(math.Abs(t)))
	}

	return out, nil
}
