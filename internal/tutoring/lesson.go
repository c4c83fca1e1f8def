package tutoring

import (
	"context"
	"fmt"

	"github.com/abhisek/twotor/internal/analytics"
	"github.com/abhisek/twotor/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecordLessonParticipation logs a lesson visit and nudges the lesson's
// skill toward mastery. Minutes below one count as one.
func (s *System) RecordLessonParticipation(ctx context.Context, userID, lessonID string, minutesSpent int) (*LessonResult, error) {
	if _, err := s.student(userID, "record lesson"); err != nil {
		return nil, err
	}
	lesson, err := s.catalog.Lesson(lessonID)
	if err != nil {
		return nil, err
	}
	if minutesSpent < 1 {
		minutesSpent = 1
	}

	unlock := s.lockUser(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	model := s.modelLocked(userID).Clone()
	model.ApplyLessonBoost(lesson.Skill, minutesSpent, lesson.EstimatedMinutes)

	act := store.LessonActivity{
		ID:           uuid.New().String(),
		UserID:       userID,
		LessonID:     lessonID,
		MinutesSpent: minutesSpent,
		CompletedAt:  s.now().UTC(),
	}
	activity := make([]store.LessonActivity, 0, len(s.activity)+1)
	activity = append(activity, s.activity...)
	activity = append(activity, act)
	if err := s.store.SaveLessonActivity(ctx, activity); err != nil {
		return nil, fmt.Errorf("save lesson activity: %w", err)
	}
	progress, err := s.saveProgressLocked(ctx, userID, model)
	if err != nil {
		if rerr := s.store.SaveLessonActivity(ctx, s.activity); rerr != nil {
			s.log.Error("restoring lesson activity after failed progress save",
				zap.String("user", userID), zap.Error(rerr))
		}
		return nil, err
	}

	s.activity = activity
	s.progress = progress
	s.models[userID] = model

	s.log.Info("lesson recorded",
		zap.String("user", userID),
		zap.String("lesson", lessonID),
		zap.Int("minutes", minutesSpent))

	return &LessonResult{
		Lesson:  lessonView(lesson, true),
		Mastery: analytics.MasterySnapshot(model.Snapshot()),
	}, nil
}

// ListLessons returns every lesson in the catalog.
func (s *System) ListLessons() []LessonView {
	var out []LessonView
	for _, l := range s.catalog.Lessons() {
		out = append(out, lessonView(l, false))
	}
	return out
}

// completedLessonsLocked returns the ids of lessons userID has visited.
// s.mu must be held.
func (s *System) completedLessonsLocked(userID string) map[string]bool {
	done := make(map[string]bool)
	for _, a := range store.LessonActivityFor(s.activity, userID) {
		done[a.LessonID] = true
	}
	return done
}
