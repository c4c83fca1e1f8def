package tutoring

import (
	"time"

	"github.com/abhisek/twotor/internal/analytics"
	"github.com/abhisek/twotor/internal/content"
	"github.com/abhisek/twotor/internal/store"
)

// Payloads returned to callers. They hold only primitives, slices and maps
// so nothing engine-internal crosses the boundary. Absent values (such as
// an unavailable prediction) are nil pointers.

type UserView struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Email  string `json:"email,omitempty"`
}

type AttemptView struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	QuizID           string  `json:"quiz_id"`
	Answers          []int   `json:"answers"`
	CorrectCount     int     `json:"correct_count"`
	TotalQuestions   int     `json:"total_questions"`
	TimeTakenSeconds int     `json:"time_taken_seconds"`
	Score            float64 `json:"score"`
	SubmittedAt      string  `json:"submitted_at"`
}

type QuizResult struct {
	Attempt      AttemptView        `json:"attempt"`
	SkillUpdates map[string]float64 `json:"skill_updates"`
	Prediction   *float64           `json:"prediction"`
	Feedback     []string           `json:"feedback"`
}

type QuizSummary struct {
	QuizID           string `json:"quiz_id"`
	Title            string `json:"title"`
	Graded           bool   `json:"graded"`
	TimeLimitMinutes *int   `json:"time_limit_minutes"`
	QuestionCount    int    `json:"question_count"`
}

type LessonView struct {
	LessonID         string `json:"lesson_id"`
	Title            string `json:"title"`
	Skill            string `json:"skill"`
	Summary          string `json:"summary"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	Completed        bool   `json:"completed"`
}

type LessonResult struct {
	Lesson  LessonView         `json:"lesson"`
	Mastery map[string]float64 `json:"mastery"`
}

type LessonActivityView struct {
	LessonID     string `json:"lesson_id"`
	MinutesSpent int    `json:"minutes_spent"`
	CompletedAt  string `json:"completed_at"`
}

type HelpTicketView struct {
	TicketID  string `json:"ticket_id"`
	UserID    string `json:"user_id"`
	Channel   string `json:"channel"`
	Question  string `json:"question"`
	CreatedAt string `json:"created_at"`
	Status    string `json:"status"`
	Response  string `json:"response,omitempty"`
}

type StudentDashboard struct {
	User                  UserView           `json:"user"`
	Navigation            []string           `json:"navigation"`
	Mastery               map[string]float64 `json:"mastery"`
	RecentAttempts        []AttemptView      `json:"recent_attempts"`
	PredictedNextScore    *float64           `json:"predicted_next_score"`
	Lessons               []LessonView       `json:"lessons"`
	LessonActivityMinutes int                `json:"lesson_activity_minutes"`
}

type CourseView struct {
	CourseID     string   `json:"course_id"`
	Title        string   `json:"title"`
	InstructorID string   `json:"instructor_id"`
	StudentIDs   []string `json:"student_ids"`
	ModuleCount  int      `json:"module_count"`
}

type RosterEntry struct {
	UserID         string   `json:"user_id"`
	Name           string   `json:"name"`
	Attempts       int      `json:"attempts"`
	AverageScore   *float64 `json:"average_score"`
	PredictedScore *float64 `json:"predicted_score"`
	LastQuiz       string   `json:"last_quiz,omitempty"`
}

type StudentMasteryScore struct {
	UserID       string             `json:"user_id"`
	Name         string             `json:"name"`
	MasteryScore float64            `json:"mastery_score"`
	Mastery      map[string]float64 `json:"mastery"`
}

type HelpRequestView struct {
	HelpTicketView
	Student string `json:"student"`
}

type GradebookRowView = analytics.GradebookRow

type TeacherDashboard struct {
	User                 UserView              `json:"user"`
	Navigation           []string              `json:"navigation"`
	Courses              []CourseView          `json:"courses"`
	ClassRoster          []RosterEntry         `json:"class_roster"`
	AtRiskStudents       []RosterEntry         `json:"at_risk_students"`
	GradebookPreview     []GradebookRowView    `json:"gradebook_preview"`
	AttemptVelocity      float64               `json:"attempt_velocity"`
	HelpRequests         []HelpRequestView     `json:"help_requests"`
	ClassMastery         map[string]float64    `json:"class_mastery"`
	StudentMasteryScores []StudentMasteryScore `json:"student_mastery_scores"`
	DifficultyBreakdown  map[string]float64    `json:"difficulty_breakdown"`
}

type AttemptStats struct {
	TotalAttempts int       `json:"total_attempts"`
	AverageScore  *float64  `json:"average_score"`
	LatestQuiz    string    `json:"latest_quiz,omitempty"`
	RecentTrend   []float64 `json:"recent_trend"`
}

type LessonProgress struct {
	CompletedCount int                  `json:"completed_count"`
	TotalMinutes   int                  `json:"total_minutes"`
	Recent         []LessonActivityView `json:"recent"`
}

type StudentProfile struct {
	User               UserView           `json:"user"`
	Mastery            map[string]float64 `json:"mastery"`
	PredictedNextScore *float64           `json:"predicted_next_score"`
	Attempts           []AttemptView      `json:"attempts"`
	AttemptStats       AttemptStats       `json:"attempt_stats"`
	LessonProgress     LessonProgress     `json:"lesson_progress"`
	HelpRequests       []HelpTicketView   `json:"help_requests"`
}

func userView(u *content.User) UserView {
	return UserView{UserID: u.ID, Name: u.Name, Role: u.Role.String(), Email: u.Email}
}

func attemptView(a store.Attempt) AttemptView {
	return AttemptView{
		ID:               a.ID,
		UserID:           a.UserID,
		QuizID:           a.QuizID,
		Answers:          append([]int(nil), a.Answers...),
		CorrectCount:     a.CorrectCount,
		TotalQuestions:   a.TotalQuestions,
		TimeTakenSeconds: a.TimeTakenSeconds,
		Score:            a.Score,
		SubmittedAt:      formatTime(a.SubmittedAt),
	}
}

func attemptViews(attempts []store.Attempt) []AttemptView {
	out := make([]AttemptView, 0, len(attempts))
	for _, a := range attempts {
		out = append(out, attemptView(a))
	}
	return out
}

func lessonView(l *content.Lesson, completed bool) LessonView {
	return LessonView{
		LessonID:         l.ID,
		Title:            l.Title,
		Skill:            l.Skill,
		Summary:          l.Summary,
		EstimatedMinutes: l.EstimatedMinutes,
		Completed:        completed,
	}
}

func ticketView(t store.HelpTicket) HelpTicketView {
	return HelpTicketView{
		TicketID:  t.TicketID,
		UserID:    t.UserID,
		Channel:   t.Channel,
		Question:  t.Question,
		CreatedAt: formatTime(t.CreatedAt),
		Status:    t.Status,
		Response:  t.Response,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// last returns the trailing n elements of s.
func last[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
