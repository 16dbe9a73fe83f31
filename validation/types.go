// Package validation implements the statistical validation engine: given a
// generated sample matrix and the model it was generated from, it computes
// normality, reliability, discriminant validity, structural-model effects
// (direct, indirect, total, moderation), R², VIF and overall goodness of
// fit, and folds every acceptability flag into one overall verdict.
package validation

import (
	"time"

	"github.com/semforge/go-semforge/model"
	"github.com/semforge/go-semforge/stats"
)

const SchemaVersion = "1.0.0"

// Report is the complete validation output for one (matrix, model) pairing.
// It is created fresh per call, sanitized to finite values, and never
// mutated afterward.
type Report struct {
	Version  string   `json:"version"`
	Metadata Metadata `json:"metadata"`

	Normality         map[string]*ItemNormality        `json:"normality"`
	Reliability       map[string]*ConstructReliability `json:"reliability"`
	Validity          *ValidityReport                  `json:"validity"`
	Structural        *StructuralReport                `json:"structuralModel"`
	Multicollinearity map[string]*PredictorVIFs        `json:"multicollinearity"`
	Descriptives      map[string]*stats.Descriptive    `json:"descriptiveStats"`
	ModelFit          *ModelFit                        `json:"modelFit"`

	Warnings     []model.Warning `json:"warnings,omitempty"`
	OverallValid bool            `json:"overallValid"`
}

// Metadata records execution context for the report.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	SampleSize  int       `json:"sampleSize"`
	Constructs  int       `json:"constructs"`
	Items       int       `json:"items"`
	ComputeTime float64   `json:"computeTime"` // seconds
}

// TestResult is a single statistic/p-value pair with a pass verdict.
type TestResult struct {
	Statistic float64 `json:"statistic"`
	PValue    float64 `json:"pValue"`
	Normal    bool    `json:"normal"`
}

// ItemNormality holds per-item distribution diagnostics. KS and
// Shapiro-Wilk p-values are informational; only the skewness and kurtosis
// rule-of-thumb flags join the overall verdict. ShapiroWilk is nil when the
// sample is outside the test's valid range.
type ItemNormality struct {
	KolmogorovSmirnov  TestResult  `json:"kolmogorovSmirnov"`
	ShapiroWilk        *TestResult `json:"shapiroWilk,omitempty"`
	Skewness           float64     `json:"skewness"`
	Kurtosis           float64     `json:"kurtosis"`
	SkewnessAcceptable bool        `json:"skewnessAcceptable"` // |skew| < 2
	KurtosisAcceptable bool        `json:"kurtosisAcceptable"` // |kurt| < 7
	Degenerate         bool        `json:"degenerate,omitempty"` // zero-variance column
}

// ConstructReliability holds internal-consistency metrics for one
// construct. Applicable is false for single-item constructs, whose alpha,
// CR and AVE are undefined; such constructs are excluded from the overall
// verdict rather than silently passing or failing.
type ConstructReliability struct {
	CronbachAlpha        float64            `json:"cronbachAlpha"`
	AlphaAcceptable      bool               `json:"alphaAcceptable"` // >= 0.70
	CompositeReliability float64            `json:"compositeReliability"`
	CRAcceptable         bool               `json:"crAcceptable"` // >= 0.70
	AVE                  float64            `json:"ave"`
	AVEAcceptable        bool               `json:"aveAcceptable"` // >= 0.50
	Loadings             map[string]float64 `json:"loadings"`
	Applicable           bool               `json:"applicable"`
}

// ValidityReport groups the discriminant-validity criteria.
type ValidityReport struct {
	FornellLarcker map[string]*FornellLarckerPair `json:"fornellLarcker"`
	HTMT           map[string]*HTMTPair           `json:"htmt"`
	CrossLoadings  map[string]*CrossLoading       `json:"crossLoadings"`
}

// FornellLarckerPair compares each construct's sqrt(AVE) against the
// inter-construct correlation; valid iff both exceed it.
type FornellLarckerPair struct {
	ConstructA  string  `json:"constructA"`
	ConstructB  string  `json:"constructB"`
	Correlation float64 `json:"correlation"`
	SqrtAVEA    float64 `json:"sqrtAveA"`
	SqrtAVEB    float64 `json:"sqrtAveB"`
	Valid       bool    `json:"valid"`
	Degenerate  bool    `json:"degenerate,omitempty"`
}

// HTMTPair is the heterotrait-monotrait ratio for one construct pair;
// valid iff below 0.85.
type HTMTPair struct {
	ConstructA string  `json:"constructA"`
	ConstructB string  `json:"constructB"`
	HTMT       float64 `json:"htmt"`
	Valid      bool    `json:"valid"`
	Degenerate bool    `json:"degenerate,omitempty"`
}

// CrossLoading records an item's correlation with every construct score;
// valid iff the loading on its own construct strictly exceeds all others.
type CrossLoading struct {
	OwnConstruct    string             `json:"ownConstruct"`
	Loadings        map[string]float64 `json:"loadings"`
	OwnLoading      float64            `json:"ownLoading"`
	MaxCrossLoading float64            `json:"maxCrossLoading"`
	Valid           bool               `json:"valid"`
	Degenerate      bool               `json:"degenerate,omitempty"`
}

// StructuralReport holds the structural-model estimates.
type StructuralReport struct {
	Paths           []*PathResult        `json:"paths"`
	IndirectEffects []*IndirectEffect    `json:"indirectEffects"`
	TotalEffects    []*TotalEffect       `json:"totalEffects"`
	Moderation      []*ModerationResult  `json:"moderationAnalysis"`
	RSquared        map[string]*RSquared `json:"rSquared"`
}

// PathResult is the regression estimate for one declared direct path. The
// beta is the standardized coefficient from regressing the target construct
// score on all of its declared predictors.
type PathResult struct {
	From                string  `json:"from"`
	To                  string  `json:"to"`
	Beta                float64 `json:"beta"`
	StdError            float64 `json:"stdError"`
	TStatistic          float64 `json:"tStatistic"`
	PValue              float64 `json:"pValue"`
	Significant         bool    `json:"significant"` // p < 0.05
	ExpectedSignificant bool    `json:"expectedSignificant"`
	Degenerate          bool    `json:"degenerate,omitempty"`
}

// IndirectEffect is a derived mediation chain with its Sobel test. Betas
// are regression estimates, not the caller's declared values.
type IndirectEffect struct {
	From           string  `json:"from"`
	Mediator       string  `json:"mediator"`
	To             string  `json:"to"`
	BetaAM         float64 `json:"betaAm"` // from -> mediator
	BetaMC         float64 `json:"betaMc"` // mediator -> to
	IndirectEffect float64 `json:"indirectEffect"`
	ZScore         float64 `json:"zScore"`
	PValue         float64 `json:"pValue"`
	Significant    bool    `json:"significant"`
}

// Mediation classifications. VAF in [0.20, 0.80] is partial, above is
// full, below is none; when VAF is undefined the classification falls back
// to indirect-effect significance.
const (
	MediationFull    = "Full mediation"
	MediationPartial = "Partial mediation"
	MediationNone    = "No mediation"
)

// TotalEffect combines a chain's direct and indirect estimates.
type TotalEffect struct {
	From           string  `json:"from"`
	Mediator       string  `json:"mediator"`
	To             string  `json:"to"`
	DirectEffect   float64 `json:"directEffect"`
	DirectExists   bool    `json:"directExists"`
	IndirectEffect float64 `json:"indirectEffect"`
	TotalEffect    float64 `json:"totalEffect"`
	VAF            float64 `json:"vaf"` // |indirect| / |total|, in [0, 1]
	VAFDefined     bool    `json:"vafDefined"`
	MediationType  string  `json:"mediationType"`
}

// ModerationResult is one interaction test: the dependent construct
// regressed with and without the centered Independent x Moderator product.
type ModerationResult struct {
	Independent            string  `json:"independent"`
	Dependent              string  `json:"dependent"`
	Moderator              string  `json:"moderator"`
	InteractionCoefficient float64 `json:"interactionCoefficient"`
	R2Without              float64 `json:"r2Without"`
	R2With                 float64 `json:"r2With"`
	R2Change               float64 `json:"r2Change"`
	FSquared               float64 `json:"fSquared"`
	EffectSize             string  `json:"effectSize"` // Large / Medium / Small / None
}

// RSquared is the coefficient of determination for an endogenous construct.
type RSquared struct {
	RSquared       float64 `json:"rSquared"`
	Interpretation string  `json:"interpretation"` // Substantial / Moderate / Weak / Very Weak
}

// PredictorVIFs holds variance inflation factors for every predictor in a
// multi-predictor regression, keyed by predictor construct.
type PredictorVIFs struct {
	Target string                `json:"target"`
	VIFs   map[string]*VIFResult `json:"vifs"`
}

// VIFResult flags multicollinearity: < 3 good, [3, 5) acceptable,
// >= 5 unacceptable.
type VIFResult struct {
	VIF        float64 `json:"vif"`
	Acceptable bool    `json:"acceptable"`
	Good       bool    `json:"good"`
}

// ModelFit is the combined measurement/structural quality score.
type ModelFit struct {
	GoF            float64 `json:"gof"` // sqrt(avg AVE * avg R^2)
	Interpretation string  `json:"interpretation"`
	AvgAVE         float64 `json:"avgAve"`
	AvgR2          float64 `json:"avgR2"`
}
