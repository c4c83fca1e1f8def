package grading

import (
	"testing"
	"time"

	"github.com/abhisek/twotor/internal/apperr"
	"github.com/abhisek/twotor/internal/content"
	"github.com/abhisek/twotor/internal/mastery"
	"github.com/abhisek/twotor/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calcQuiz() *content.Quiz {
	return &content.Quiz{
		ID:    "quiz-calc",
		Title: "Limits",
		Questions: []content.Question{
			{ID: "q1", Prompt: "lim x->0 sin(x)/x", Choices: []string{"1", "0"}, CorrectChoice: 0, Skill: "calculus", Difficulty: 2},
			{ID: "q2", Prompt: "d/dx x^2", Choices: []string{"x", "2x"}, CorrectChoice: 1, Skill: "calculus", Difficulty: 2},
		},
	}
}

func newPipeline() *Pipeline {
	p := New(nil, func(string) (float64, bool) { return 2, true })
	p.newID = func() string { return "attempt-1" }
	return p
}

func TestGrade_AllCorrect(t *testing.T) {
	model := mastery.Default()
	prior := model.Predict("calculus")

	res, err := newPipeline().Grade(Submission{
		UserID:           "s1",
		Quiz:             calcQuiz(),
		Answers:          []int{0, 1},
		TimeTakenSeconds: 120,
	}, model, nil)
	require.NoError(t, err)

	assert.Equal(t, "attempt-1", res.Attempt.ID)
	assert.Equal(t, 2, res.Attempt.CorrectCount)
	assert.Equal(t, 2, res.Attempt.TotalQuestions)
	assert.Equal(t, 100.0, res.Attempt.Score)
	assert.False(t, res.Attempt.SubmittedAt.IsZero())
	assert.Greater(t, model.Predict("calculus"), prior)
	assert.Equal(t, map[string]float64{"calculus": 0.952}, res.SkillUpdates)
	require.NotNil(t, res.Prediction)
}

func TestGrade_AllWrong(t *testing.T) {
	model := mastery.Default()
	prior := model.Predict("calculus")

	res, err := newPipeline().Grade(Submission{UserID: "s1", Quiz: calcQuiz(), Answers: []int{1, 0}}, model, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, res.Attempt.CorrectCount)
	assert.Equal(t, 0.0, res.Attempt.Score)
	assert.Less(t, model.Predict("calculus"), prior)
	assert.Equal(t, 0.33, res.SkillUpdates["calculus"])
}

func TestGrade_LengthMismatch(t *testing.T) {
	for _, answers := range [][]int{nil, {0}, {0, 1, 1}} {
		model := mastery.Default()
		before := model.Snapshot()

		res, err := newPipeline().Grade(Submission{UserID: "s1", Quiz: calcQuiz(), Answers: answers}, model, nil)
		require.ErrorIs(t, err, apperr.ErrInvalidSubmission)
		assert.Nil(t, res)
		assert.Equal(t, before, model.Snapshot())
	}
}

func TestGrade_EmptyQuiz(t *testing.T) {
	_, err := newPipeline().Grade(Submission{Quiz: &content.Quiz{ID: "empty"}}, mastery.Default(), nil)
	require.ErrorIs(t, err, apperr.ErrInvalidSubmission)
}

func TestGrade_SequentialSameSkill(t *testing.T) {
	model := mastery.Default()
	_, err := newPipeline().Grade(Submission{Quiz: calcQuiz(), Answers: []int{0, 0}}, model, nil)
	require.NoError(t, err)

	want := mastery.Default()
	want.Update("calculus", true)
	want.Update("calculus", false)
	assert.Equal(t, want.Predict("calculus"), model.Predict("calculus"))
}

func TestGrade_UnknownSkillDoesNotAbort(t *testing.T) {
	quiz := &content.Quiz{ID: "geo", Questions: []content.Question{
		{ID: "g1", Choices: []string{"a", "b"}, CorrectChoice: 0, Skill: "geometry", Difficulty: 1},
	}}
	res, err := newPipeline().Grade(Submission{Quiz: quiz, Answers: []int{0}}, mastery.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Attempt.Score)
	assert.Equal(t, 0.0, res.SkillUpdates["geometry"])
}

func TestGrade_OutOfRangeAnswerIsWrong(t *testing.T) {
	res, err := newPipeline().Grade(Submission{Quiz: calcQuiz(), Answers: []int{7, -1}}, mastery.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Attempt.CorrectCount)
}

func TestGrade_PredictionUsesHistory(t *testing.T) {
	model := mastery.Default()
	history := []store.Attempt{{QuizID: "old", Score: 10, SubmittedAt: time.Now()}}

	res, err := newPipeline().Grade(Submission{Quiz: calcQuiz(), Answers: []int{0, 1}, TimeTakenSeconds: 60}, model, history)
	require.NoError(t, err)
	require.NotNil(t, res.Prediction)

	// 5 + 30*avg + 0.6*100 + 0.5*2 - 5*2
	avg := (model.Predict("calculus") + model.Predict("precalculus")) / 2
	assert.InDelta(t, 5+30*avg+60+1-10, *res.Prediction, 1e-9)
}

func TestGrade_CopiesAnswers(t *testing.T) {
	answers := []int{0, 1}
	res, err := newPipeline().Grade(Submission{Quiz: calcQuiz(), Answers: answers}, mastery.Default(), nil)
	require.NoError(t, err)
	answers[0] = 1
	assert.Equal(t, []int{0, 1}, res.Attempt.Answers)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 66.7, Score(2, 3))
	assert.Equal(t, 33.3, Score(1, 3))
	assert.Equal(t, 100.0, Score(3, 3))
	assert.Equal(t, 0.0, Score(0, 0))
}

func TestFeedback(t *testing.T) {
	lines := Feedback(calcQuiz(), []int{0, 0})
	require.Len(t, lines, 2)
	assert.Equal(t, "Q1: lim x->0 sin(x)/x\nChoices: 1. 1; 2. 0\nSelected: 1 - Correct (Answer: 1)\n", lines[0])
	assert.Equal(t, "Q2: d/dx x^2\nChoices: 1. x; 2. 2x\nSelected: 1 - Incorrect (Answer: 2)\n", lines[1])
}
