package analytics

import (
	"math"

	"github.com/abhisek/twotor/internal/content"
	"github.com/abhisek/twotor/internal/store"
)

// Difficulty buckets.
const (
	BucketEasy   = "Easy"
	BucketMedium = "Medium"
	BucketHard   = "Hard"
)

// Bucket classifies a question difficulty: ≤1 easy, 2 medium, ≥3 hard.
func Bucket(difficulty int) string {
	switch {
	case difficulty <= 1:
		return BucketEasy
	case difficulty == 2:
		return BucketMedium
	default:
		return BucketHard
	}
}

// DifficultyBreakdown counts the questions of every quiz attempted by a
// member of roster and returns each bucket's share as a percentage rounded
// to one decimal. With nothing attempted every bucket is 0.
func DifficultyBreakdown(attempts []store.Attempt, roster map[string]bool, quiz func(id string) (*content.Quiz, error)) map[string]float64 {
	counts := map[string]int{BucketEasy: 0, BucketMedium: 0, BucketHard: 0}
	total := 0
	for _, a := range attempts {
		if !roster[a.UserID] {
			continue
		}
		q, err := quiz(a.QuizID)
		if err != nil {
			continue
		}
		for _, qu := range q.Questions {
			counts[Bucket(qu.Difficulty)]++
			total++
		}
	}

	out := make(map[string]float64, len(counts))
	for k, v := range counts {
		if total == 0 {
			out[k] = 0
			continue
		}
		out[k] = round1(100 * float64(v) / float64(total))
	}
	return out
}

// AttemptVelocity is the average number of attempts per distinct quiz,
// rounded to two decimals.
func AttemptVelocity(attempts []store.Attempt) float64 {
	if len(attempts) == 0 {
		return 0
	}
	quizzes := make(map[string]bool)
	for _, a := range attempts {
		quizzes[a.QuizID] = true
	}
	v := float64(len(attempts)) / float64(len(quizzes))
	return math.Round(v*100) / 100
}

// MasterySnapshot rounds every probability to three decimals.
func MasterySnapshot(mastery map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(mastery))
	for skill, v := range mastery {
		out[skill] = math.Round(v*1000) / 1000
	}
	return out
}

// MasteryPercent converts probabilities to percentages rounded to one decimal.
func MasteryPercent(mastery map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(mastery))
	for skill, v := range mastery {
		out[skill] = round1(v * 100)
	}
	return out
}

// ClassMastery averages the roster's progress rows per skill, as a
// percentage rounded to one decimal.
func ClassMastery(records []store.ProgressRecord, roster map[string]bool) map[string]float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range records {
		if !roster[r.UserID] {
			continue
		}
		sums[r.Skill] += r.MasteredProbability
		counts[r.Skill]++
	}
	out := make(map[string]float64, len(sums))
	for skill, sum := range sums {
		out[skill] = round1(100 * sum / float64(counts[skill]))
	}
	return out
}

// MeanScore averages attempt scores, rounded to one decimal. It reports
// false for an empty slice.
func MeanScore(attempts []store.Attempt) (float64, bool) {
	if len(attempts) == 0 {
		return 0, false
	}
	sum := 0.0
	for _, a := range attempts {
		sum += a.Score
	}
	return round1(sum / float64(len(attempts))), true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
