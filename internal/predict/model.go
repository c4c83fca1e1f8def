// Package predict forecasts a learner's next quiz score with a fixed-weight
// linear model over a small named feature vector.
package predict

import (
	"math"
	"sort"
)

// Feature names understood by the default weights.
const (
	FeatureAvgMastery         = "avg_mastery"
	FeatureRecentAttemptScore = "recent_attempt_score"
	FeatureTimeSpentMinutes   = "time_spent_minutes"
	FeatureAttemptsLastWeek   = "attempts_last_week"
	FeatureQuestionDifficulty = "question_difficulty"
)

const (
	// MinScore and MaxScore bound a clipped score forecast.
	MinScore = 0.0
	MaxScore = 100.0
)

// Features maps a feature name to its value. Absent names read as 0.
type Features map[string]float64

// Weights is the intercept and per-feature coefficients of the model.
// Trained weights produced offline use the same shape.
type Weights struct {
	Intercept    float64            `yaml:"intercept" json:"intercept"`
	Coefficients map[string]float64 `yaml:"coefficients" json:"coefficients"`
}

// DefaultWeights returns the built-in weight set. time_spent_minutes is part
// of the feature vector but carries no weight.
func DefaultWeights() Weights {
	return Weights{
		Intercept: 5.0,
		Coefficients: map[string]float64{
			FeatureAvgMastery:         30.0,
			FeatureRecentAttemptScore: 0.6,
			FeatureAttemptsLastWeek:   0.5,
			FeatureQuestionDifficulty: -5.0,
		},
	}
}

// Model is an immutable linear predictor.
type Model struct {
	weights Weights
	// names fixes the summation order so predictions are bit-for-bit stable.
	names []string
}

// New creates a model from w, falling back to DefaultWeights when w is nil.
func New(w *Weights) *Model {
	if w == nil {
		d := DefaultWeights()
		w = &d
	}
	coef := make(map[string]float64, len(w.Coefficients))
	names := make([]string, 0, len(w.Coefficients))
	for name, c := range w.Coefficients {
		coef[name] = c
		names = append(names, name)
	}
	sort.Strings(names)
	return &Model{weights: Weights{Intercept: w.Intercept, Coefficients: coef}, names: names}
}

// Weights returns a copy of the model's weights.
func (m *Model) Weights() Weights {
	return New(&m.weights).weights
}

// Predict returns intercept + Σ coefficient·feature. Features without a
// coefficient are ignored; coefficients without a feature contribute 0.
func (m *Model) Predict(f Features) float64 {
	value := m.weights.Intercept
	for _, name := range m.names {
		value += m.weights.Coefficients[name] * f[name]
	}
	return value
}

// PredictClipped clamps Predict to [low, high]. A NaN prediction, which
// only arises from NaN or opposing infinite inputs, reads as low.
func (m *Model) PredictClipped(f Features, low, high float64) float64 {
	v := m.Predict(f)
	if math.IsNaN(v) || v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}

// PredictScore clamps Predict to the score range [0, 100].
func (m *Model) PredictScore(f Features) float64 {
	return m.PredictClipped(f, MinScore, MaxScore)
}
