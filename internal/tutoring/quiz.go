package tutoring

import (
	"context"
	"fmt"

	"github.com/abhisek/twotor/internal/grading"
	"github.com/abhisek/twotor/internal/store"
	"go.uber.org/zap"
)

// GradeQuiz grades a student's answers (0-based choice indices), updates
// their mastery and records the attempt. Either both the attempt and the
// new mastery are persisted and visible, or neither is.
func (s *System) GradeQuiz(ctx context.Context, userID, quizID string, answers []int, timeTakenSeconds int) (*QuizResult, error) {
	if _, err := s.student(userID, "take quiz"); err != nil {
		return nil, err
	}
	quiz, err := s.catalog.Quiz(quizID)
	if err != nil {
		return nil, err
	}

	unlock := s.lockUser(userID)
	defer unlock()

	s.mu.Lock()
	model := s.modelLocked(userID).Clone()
	history := store.AttemptsFor(s.attempts, userID)
	s.mu.Unlock()

	res, err := s.pipeline.Grade(grading.Submission{
		UserID:           userID,
		Quiz:             quiz,
		Answers:          answers,
		TimeTakenSeconds: timeTakenSeconds,
		SubmittedAt:      s.now().UTC(),
	}, model, history)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := make([]store.Attempt, 0, len(s.attempts)+1)
	attempts = append(attempts, s.attempts...)
	attempts = append(attempts, res.Attempt)
	if err := s.store.SaveAttempts(ctx, attempts); err != nil {
		return nil, fmt.Errorf("save attempts: %w", err)
	}
	progress, err := s.saveProgressLocked(ctx, userID, model)
	if err != nil {
		if rerr := s.store.SaveAttempts(ctx, s.attempts); rerr != nil {
			s.log.Error("restoring attempts after failed progress save",
				zap.String("user", userID), zap.Error(rerr))
		}
		return nil, err
	}

	s.attempts = attempts
	s.progress = progress
	s.models[userID] = model

	s.log.Info("quiz graded",
		zap.String("user", userID),
		zap.String("quiz", quizID),
		zap.Float64("score", res.Attempt.Score))

	return &QuizResult{
		Attempt:      attemptView(res.Attempt),
		SkillUpdates: res.SkillUpdates,
		Prediction:   roundPtr(res.Prediction, 1),
		Feedback:     res.Feedback,
	}, nil
}

// PredictNextScore forecasts the user's next quiz score, nil when they
// have no attempts yet.
func (s *System) PredictNextScore(userID string) (*float64, error) {
	if _, err := s.student(userID, "predict score"); err != nil {
		return nil, err
	}
	unlock := s.lockUser(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.forecastLocked(userID), nil
}

// forecastLocked returns the rounded forecast for userID. s.mu must be held.
func (s *System) forecastLocked(userID string) *float64 {
	history := store.AttemptsFor(s.attempts, userID)
	mastery := s.modelLocked(userID).Snapshot()
	return roundPtr(s.predictor.Forecast(history, mastery, s.quizDifficulty), 1)
}

// ListQuizzes summarizes the catalog's quizzes, optionally only graded ones.
func (s *System) ListQuizzes(gradedOnly bool) []QuizSummary {
	var out []QuizSummary
	for _, q := range s.catalog.Quizzes() {
		if gradedOnly && !q.Graded {
			continue
		}
		out = append(out, QuizSummary{
			QuizID:           q.ID,
			Title:            q.Title,
			Graded:           q.Graded,
			TimeLimitMinutes: q.TimeLimitMinutes,
			QuestionCount:    len(q.Questions),
		})
	}
	return out
}

func roundPtr(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	r := grading.Round(*v, decimals)
	return &r
}
