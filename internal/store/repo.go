package store

import (
	"context"
	"time"
)

// Attempt is one graded quiz submission. Attempts are append-only.
type Attempt struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	QuizID           string    `json:"quiz_id"`
	Answers          []int     `json:"answers"`
	CorrectCount     int       `json:"correct_count"`
	TotalQuestions   int       `json:"total_questions"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	Score            float64   `json:"score"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

// ProgressRecord is the persisted mastery for one (user, skill) pair.
type ProgressRecord struct {
	UserID              string  `json:"user_id"`
	Skill               string  `json:"skill"`
	MasteredProbability float64 `json:"mastered_probability"`
}

// LessonActivity is one lesson engagement event. Append-only.
type LessonActivity struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	LessonID     string    `json:"lesson_id"`
	MinutesSpent int       `json:"minutes_spent"`
	CompletedAt  time.Time `json:"completed_at"`
}

// HelpTicket is a help request routed through the help desk.
type HelpTicket struct {
	TicketID  string    `json:"ticket_id"`
	UserID    string    `json:"user_id"`
	Channel   string    `json:"channel"`
	Question  string    `json:"question"`
	CreatedAt time.Time `json:"created_at"`
	Status    string    `json:"status"`
	Response  string    `json:"response,omitempty"`
}

// ProgressStore persists the engine's logs and mastery projection.
//
// Every Save fully replaces its section and is atomic from the caller's
// point of view. Every Load returns rows in the order they were saved.
type ProgressStore interface {
	LoadProgress(ctx context.Context) ([]ProgressRecord, error)
	SaveProgress(ctx context.Context, records []ProgressRecord) error

	LoadAttempts(ctx context.Context) ([]Attempt, error)
	SaveAttempts(ctx context.Context, attempts []Attempt) error

	LoadLessonActivity(ctx context.Context) ([]LessonActivity, error)
	SaveLessonActivity(ctx context.Context, activity []LessonActivity) error

	LoadHelpTickets(ctx context.Context) ([]HelpTicket, error)
	SaveHelpTickets(ctx context.Context, tickets []HelpTicket) error
}
