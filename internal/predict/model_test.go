package predict

import (
	"math"
	"testing"
	"time"

	"github.com/abhisek/twotor/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredict_DefaultWeights(t *testing.T) {
	m := New(nil)
	f := Features{
		FeatureAvgMastery:         0.8,
		FeatureRecentAttemptScore: 100,
		FeatureTimeSpentMinutes:   3,
		FeatureAttemptsLastWeek:   1,
		FeatureQuestionDifficulty: 2,
	}
	assert.InDelta(t, 79.5, m.Predict(f), 1e-9)
}

func TestPredict_MissingFeaturesReadAsZero(t *testing.T) {
	m := New(nil)
	assert.Equal(t, 5.0, m.Predict(nil))
	assert.Equal(t, 5.0, m.Predict(Features{"unknown_feature": 42}))
}

func TestPredictClipped(t *testing.T) {
	m := New(nil)
	tests := []struct {
		name string
		f    Features
		want float64
	}{
		{"above range", Features{FeatureRecentAttemptScore: 1000}, 100},
		{"below range", Features{FeatureQuestionDifficulty: 50}, 0},
		{"empty", Features{}, 5},
		{"nan", Features{FeatureAvgMastery: math.NaN()}, 0},
		{"inf", Features{FeatureRecentAttemptScore: math.Inf(1)}, 100},
		{"neg inf", Features{FeatureRecentAttemptScore: math.Inf(-1)}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.PredictScore(tt.f))
		})
	}
}

func TestPredictClipped_AlwaysInRange(t *testing.T) {
	m := New(nil)
	values := []float64{-1e9, -100, -1, 0, 0.5, 1, 7, 100, 1e9, math.NaN(), math.Inf(1)}
	names := []string{FeatureAvgMastery, FeatureRecentAttemptScore, FeatureAttemptsLastWeek, FeatureQuestionDifficulty}
	for _, name := range names {
		for _, v := range values {
			got := m.PredictClipped(Features{name: v}, 10, 20)
			require.GreaterOrEqual(t, got, 10.0)
			require.LessOrEqual(t, got, 20.0)
		}
	}
}

func TestNew_CustomWeights(t *testing.T) {
	w := &Weights{Intercept: 1, Coefficients: map[string]float64{FeatureTimeSpentMinutes: 2}}
	m := New(w)
	w.Coefficients[FeatureTimeSpentMinutes] = 100 // must not leak into the model

	assert.Equal(t, 21.0, m.Predict(Features{FeatureTimeSpentMinutes: 10}))
	assert.Equal(t, 2.0, m.Weights().Coefficients[FeatureTimeSpentMinutes])
}

func attempt(quizID string, score float64, secs int) store.Attempt {
	return store.Attempt{QuizID: quizID, Score: score, TimeTakenSeconds: secs, SubmittedAt: time.Now()}
}

func TestComputeFeatures(t *testing.T) {
	history := []store.Attempt{attempt("q1", 50, 60), attempt("q2", 80, 150)}
	diff := func(id string) (float64, bool) {
		if id == "q2" {
			return 2.5, true
		}
		return 0, false
	}

	f, ok := ComputeFeatures(history, map[string]float64{"calculus": 0.8, "precalculus": 0.4}, diff)
	require.True(t, ok)
	assert.InDelta(t, 0.6, f[FeatureAvgMastery], 1e-12)
	assert.Equal(t, 80.0, f[FeatureRecentAttemptScore])
	assert.Equal(t, 2.5, f[FeatureTimeSpentMinutes])
	assert.Equal(t, 2.0, f[FeatureAttemptsLastWeek])
	assert.Equal(t, 2.5, f[FeatureQuestionDifficulty])
}

func TestComputeFeatures_Fallbacks(t *testing.T) {
	_, ok := ComputeFeatures(nil, nil, nil)
	assert.False(t, ok)

	var history []store.Attempt
	for i := 0; i < 12; i++ {
		history = append(history, attempt("gone", 70, 120))
	}
	f, ok := ComputeFeatures(history, nil, func(string) (float64, bool) { return 0, false })
	require.True(t, ok)
	assert.Equal(t, DefaultAvgMastery, f[FeatureAvgMastery])
	assert.Equal(t, 7.0, f[FeatureAttemptsLastWeek])
	assert.Equal(t, 0.0, f[FeatureQuestionDifficulty])
}

func TestForecast(t *testing.T) {
	m := New(nil)
	assert.Nil(t, m.Forecast(nil, map[string]float64{"calculus": 0.5}, nil))

	got := m.Forecast([]store.Attempt{attempt("q", 100, 60)}, map[string]float64{"calculus": 0.8}, nil)
	require.NotNil(t, got)
	// 5 + 30*0.8 + 0.6*100 + 0.5*1
	assert.InDelta(t, 89.5, *got, 1e-9)
}
