package predict

import (
	"sort"

	"github.com/abhisek/twotor/internal/store"
)

const (
	// DefaultAvgMastery stands in for avg_mastery when no skill is tracked.
	DefaultAvgMastery = 0.3

	// recentWindow is how many trailing attempts count as "last week".
	recentWindow = 7
)

// DifficultyFunc resolves the mean question difficulty of a quiz.
type DifficultyFunc func(quizID string) (float64, bool)

// ComputeFeatures derives the feature vector from a user's attempt history
// (oldest first) and current mastery. It reports false when the history is
// empty, in which case no prediction should be made.
//
// attempts_last_week counts the trailing attempts capped at seven; it is a
// recency proxy, not a calendar window.
func ComputeFeatures(history []store.Attempt, mastery map[string]float64, difficulty DifficultyFunc) (Features, bool) {
	if len(history) == 0 {
		return nil, false
	}
	last := history[len(history)-1]

	avg := DefaultAvgMastery
	if len(mastery) > 0 {
		avg = MeanMastery(mastery)
	}

	var diff float64
	if difficulty != nil {
		if d, ok := difficulty(last.QuizID); ok {
			diff = d
		}
	}

	recent := len(history)
	if recent > recentWindow {
		recent = recentWindow
	}

	return Features{
		FeatureAvgMastery:         avg,
		FeatureRecentAttemptScore: last.Score,
		FeatureTimeSpentMinutes:   float64(last.TimeTakenSeconds) / 60,
		FeatureAttemptsLastWeek:   float64(recent),
		FeatureQuestionDifficulty: diff,
	}, true
}

// MeanMastery averages the values in skill order, or returns 0 for an
// empty map.
func MeanMastery(mastery map[string]float64) float64 {
	if len(mastery) == 0 {
		return 0
	}
	skills := make([]string, 0, len(mastery))
	for s := range mastery {
		skills = append(skills, s)
	}
	sort.Strings(skills)

	sum := 0.0
	for _, s := range skills {
		sum += mastery[s]
	}
	return sum / float64(len(skills))
}

// Forecast computes features and the clipped score in one step. It returns
// nil when the history is empty.
func (m *Model) Forecast(history []store.Attempt, mastery map[string]float64, difficulty DifficultyFunc) *float64 {
	f, ok := ComputeFeatures(history, mastery, difficulty)
	if !ok {
		return nil
	}
	score := m.PredictScore(f)
	return &score
}
