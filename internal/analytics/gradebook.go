// Package analytics aggregates attempt history into gradebook rows and
// class-level summaries.
package analytics

import (
	"fmt"
	"strconv"

	"github.com/abhisek/twotor/internal/content"
	"github.com/abhisek/twotor/internal/store"
)

// GradebookRow is one attempt formatted for a gradebook.
type GradebookRow struct {
	UserID      string `json:"user_id"`
	Student     string `json:"student"`
	Quiz        string `json:"quiz"`
	Score       string `json:"score"`
	Correct     string `json:"correct"`
	TimeSeconds string `json:"time_seconds"`
}

// GradebookHeader lists the column names in row order.
var GradebookHeader = []string{"user_id", "student", "quiz", "score", "correct", "time_seconds"}

// Values returns the row's cells in GradebookHeader order.
func (r GradebookRow) Values() []string {
	return []string{r.UserID, r.Student, r.Quiz, r.Score, r.Correct, r.TimeSeconds}
}

// Lookup resolves users and quizzes by id.
type Lookup interface {
	User(id string) (*content.User, error)
	Quiz(id string) (*content.Quiz, error)
}

// GradebookRows formats attempts in order, skipping attempts whose user or
// quiz no longer exists.
func GradebookRows(attempts []store.Attempt, lookup Lookup) []GradebookRow {
	var rows []GradebookRow
	for _, a := range attempts {
		u, err := lookup.User(a.UserID)
		if err != nil {
			continue
		}
		q, err := lookup.Quiz(a.QuizID)
		if err != nil {
			continue
		}
		rows = append(rows, GradebookRow{
			UserID:      u.ID,
			Student:     u.Name,
			Quiz:        q.Title,
			Score:       fmt.Sprintf("%.1f", a.Score),
			Correct:     fmt.Sprintf("%d/%d", a.CorrectCount, a.TotalQuestions),
			TimeSeconds: strconv.Itoa(a.TimeTakenSeconds),
		})
	}
	return rows
}
