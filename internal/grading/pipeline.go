// Package grading scores quiz submissions and drives mastery updates.
package grading

import (
	"math"
	"time"

	"github.com/abhisek/twotor/internal/apperr"
	"github.com/abhisek/twotor/internal/content"
	"github.com/abhisek/twotor/internal/mastery"
	"github.com/abhisek/twotor/internal/predict"
	"github.com/abhisek/twotor/internal/store"
	"github.com/google/uuid"
)

// Submission is one learner's answers to a quiz.
type Submission struct {
	UserID           string
	Quiz             *content.Quiz
	Answers          []int // 0-based choice indices, one per question
	TimeTakenSeconds int
	SubmittedAt      time.Time
}

// Result is everything a grading run produces. Nothing in it has been
// persisted yet.
type Result struct {
	Attempt store.Attempt

	// SkillUpdates holds the final mastery per touched skill, rounded to
	// three decimals. Skills without parameters report 0.
	SkillUpdates map[string]float64

	// Prediction is the forecast next score, nil when unavailable.
	Prediction *float64

	Feedback []string
}

// Pipeline grades submissions against quiz definitions.
type Pipeline struct {
	predictor  *predict.Model
	difficulty predict.DifficultyFunc
	newID      func() string
}

// New creates a pipeline. difficulty resolves quiz difficulty for the
// forecast features; a nil predictor uses the default weights.
func New(predictor *predict.Model, difficulty predict.DifficultyFunc) *Pipeline {
	if predictor == nil {
		predictor = predict.New(nil)
	}
	return &Pipeline{
		predictor:  predictor,
		difficulty: difficulty,
		newID:      func() string { return uuid.New().String() },
	}
}

// Grade scores sub, applies each answer to model in submission order and
// forecasts the next score from history plus the new attempt.
//
// On an answer count mismatch it returns an InvalidSubmission error before
// touching model. Callers wanting all-or-nothing semantics pass a clone and
// adopt it once the result has been persisted.
func (p *Pipeline) Grade(sub Submission, model *mastery.Model, history []store.Attempt) (*Result, error) {
	quiz := sub.Quiz
	if quiz == nil {
		return nil, apperr.InvalidSubmission("no quiz given")
	}
	total := len(quiz.Questions)
	if len(sub.Answers) != total {
		return nil, apperr.InvalidSubmission("quiz %q has %d questions, got %d answers", quiz.ID, total, len(sub.Answers))
	}
	if total == 0 {
		return nil, apperr.InvalidSubmission("quiz %q has no questions", quiz.ID)
	}

	correct := 0
	for i, q := range quiz.Questions {
		if sub.Answers[i] == q.CorrectChoice {
			correct++
		}
	}

	submittedAt := sub.SubmittedAt
	if submittedAt.IsZero() {
		submittedAt = time.Now().UTC()
	}
	attempt := store.Attempt{
		ID:               p.newID(),
		UserID:           sub.UserID,
		QuizID:           quiz.ID,
		Answers:          append([]int(nil), sub.Answers...),
		CorrectCount:     correct,
		TotalQuestions:   total,
		TimeTakenSeconds: sub.TimeTakenSeconds,
		Score:            Score(correct, total),
		SubmittedAt:      submittedAt,
	}

	// Same-skill questions are applied one after another; only the last
	// value per skill is reported.
	updates := make(map[string]float64)
	for i, q := range quiz.Questions {
		v := model.Update(q.Skill, sub.Answers[i] == q.CorrectChoice)
		updates[q.Skill] = Round(v, 3)
	}

	full := make([]store.Attempt, 0, len(history)+1)
	full = append(full, history...)
	full = append(full, attempt)
	prediction := p.predictor.Forecast(full, model.Snapshot(), p.difficulty)

	return &Result{
		Attempt:      attempt,
		SkillUpdates: updates,
		Prediction:   prediction,
		Feedback:     Feedback(quiz, attempt.Answers),
	}, nil
}

// Score is the percentage of correct answers rounded to one decimal.
func Score(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round(100*float64(correct)/float64(total), 1)
}

// Round rounds v half away from zero to the given number of decimals.
func Round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
