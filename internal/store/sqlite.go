package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	tableAttempts       = "attempts"
	tableProgress       = "progress"
	tableLessonActivity = "lesson_activity"
	tableHelpTickets    = "help_tickets"
)

var (
	attemptColumns  = []string{"id", "user_id", "quiz_id", "answers", "correct_count", "total_questions", "time_taken_seconds", "score", "submitted_at"}
	progressColumns = []string{"user_id", "skill", "mastered_probability"}
	activityColumns = []string{"id", "user_id", "lesson_id", "minutes_spent", "completed_at"}
	ticketColumns   = []string{"ticket_id", "user_id", "channel", "question", "created_at", "status", "response"}
)

func (s *Store) LoadProgress(ctx context.Context) ([]ProgressRecord, error) {
	var out []ProgressRecord
	err := s.selectAll(ctx, tableProgress, progressColumns, func(rows *sql.Rows) error {
		var r ProgressRecord
		if err := rows.Scan(&r.UserID, &r.Skill, &r.MasteredProbability); err != nil {
			return err
		}
		out = append(out, r)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	return out, nil
}

func (s *Store) SaveProgress(ctx context.Context, records []ProgressRecord) error {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{r.UserID, r.Skill, r.MasteredProbability})
	}
	if err := s.replaceAll(ctx, tableProgress, progressColumns, rows); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *Store) LoadAttempts(ctx context.Context) ([]Attempt, error) {
	var out []Attempt
	err := s.selectAll(ctx, tableAttempts, attemptColumns, func(rows *sql.Rows) error {
		var (
			a           Attempt
			answers     string
			submittedAt string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizID, &answers, &a.CorrectCount,
			&a.TotalQuestions, &a.TimeTakenSeconds, &a.Score, &submittedAt); err != nil {
			return err
		}
		if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
			return fmt.Errorf("attempt %s answers: %w", a.ID, err)
		}
		t, err := parseTime(submittedAt)
		if err != nil {
			return fmt.Errorf("attempt %s submitted_at: %w", a.ID, err)
		}
		a.SubmittedAt = t
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	return out, nil
}

func (s *Store) SaveAttempts(ctx context.Context, attempts []Attempt) error {
	rows := make([][]any, 0, len(attempts))
	for _, a := range attempts {
		answers, err := json.Marshal(a.Answers)
		if err != nil {
			return fmt.Errorf("marshal attempt %s answers: %w", a.ID, err)
		}
		rows = append(rows, []any{a.ID, a.UserID, a.QuizID, string(answers), a.CorrectCount,
			a.TotalQuestions, a.TimeTakenSeconds, a.Score, formatTime(a.SubmittedAt)})
	}
	if err := s.replaceAll(ctx, tableAttempts, attemptColumns, rows); err != nil {
		return fmt.Errorf("save attempts: %w", err)
	}
	return nil
}

func (s *Store) LoadLessonActivity(ctx context.Context) ([]LessonActivity, error) {
	var out []LessonActivity
	err := s.selectAll(ctx, tableLessonActivity, activityColumns, func(rows *sql.Rows) error {
		var (
			a           LessonActivity
			completedAt string
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.LessonID, &a.MinutesSpent, &completedAt); err != nil {
			return err
		}
		t, err := parseTime(completedAt)
		if err != nil {
			return fmt.Errorf("lesson activity %s completed_at: %w", a.ID, err)
		}
		a.CompletedAt = t
		out = append(out, a)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load lesson activity: %w", err)
	}
	return out, nil
}

func (s *Store) SaveLessonActivity(ctx context.Context, activity []LessonActivity) error {
	rows := make([][]any, 0, len(activity))
	for _, a := range activity {
		rows = append(rows, []any{a.ID, a.UserID, a.LessonID, a.MinutesSpent, formatTime(a.CompletedAt)})
	}
	if err := s.replaceAll(ctx, tableLessonActivity, activityColumns, rows); err != nil {
		return fmt.Errorf("save lesson activity: %w", err)
	}
	return nil
}

func (s *Store) LoadHelpTickets(ctx context.Context) ([]HelpTicket, error) {
	var out []HelpTicket
	err := s.selectAll(ctx, tableHelpTickets, ticketColumns, func(rows *sql.Rows) error {
		var (
			t         HelpTicket
			createdAt string
			response  sql.NullString
		)
		if err := rows.Scan(&t.TicketID, &t.UserID, &t.Channel, &t.Question, &createdAt, &t.Status, &response); err != nil {
			return err
		}
		ts, err := parseTime(createdAt)
		if err != nil {
			return fmt.Errorf("ticket %s created_at: %w", t.TicketID, err)
		}
		t.CreatedAt = ts
		t.Response = response.String
		out = append(out, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load help tickets: %w", err)
	}
	return out, nil
}

func (s *Store) SaveHelpTickets(ctx context.Context, tickets []HelpTicket) error {
	rows := make([][]any, 0, len(tickets))
	for _, t := range tickets {
		var response any
		if t.Response != "" {
			response = t.Response
		}
		rows = append(rows, []any{t.TicketID, t.UserID, t.Channel, t.Question, formatTime(t.CreatedAt), t.Status, response})
	}
	if err := s.replaceAll(ctx, tableHelpTickets, ticketColumns, rows); err != nil {
		return fmt.Errorf("save help tickets: %w", err)
	}
	return nil
}

// selectAll scans every row of table in saved order.
func (s *Store) selectAll(ctx context.Context, table string, columns []string, scan func(*sql.Rows) error) error {
	query, args := s.builder().
		Select(columns...).
		From(entsql.Table(table)).
		OrderBy("seq").
		Query()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// replaceAll deletes every row of table and inserts rows in one transaction.
// The row position is stored in the seq column to preserve order.
func (s *Store) replaceAll(ctx context.Context, table string, columns []string, rows [][]any) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query, args := s.builder().Delete(table).Query()
	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	for i, row := range rows {
		query, args := s.builder().
			Insert(table).
			Columns(append([]string{"seq"}, columns...)...).
			Values(append([]any{i}, row...)...).
			Query()
		if _, err = tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s row %d: %w", table, i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
