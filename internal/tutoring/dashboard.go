package tutoring

import (
	"fmt"
	"sort"

	"github.com/abhisek/twotor/internal/analytics"
	"github.com/abhisek/twotor/internal/content"
	"github.com/abhisek/twotor/internal/grading"
	"github.com/abhisek/twotor/internal/predict"
	"github.com/abhisek/twotor/internal/store"
)

const (
	recentAttemptsShown  = 3
	profileAttemptsShown = 10
	trendLength          = 5
	gradebookPreviewRows = 5
	helpRequestsShown    = 20
	atRiskThreshold      = 50.0
)

// Dashboard returns the home view matching the user's role: a
// *StudentDashboard or a *TeacherDashboard.
func (s *System) Dashboard(userID string) (any, error) {
	u, err := s.catalog.User(userID)
	if err != nil {
		return nil, err
	}
	switch u.Role {
	case content.RoleStudent:
		return s.StudentDashboard(userID)
	case content.RoleTeacher:
		return s.TeacherDashboard(userID)
	default:
		return nil, fmt.Errorf("user %q has unknown role %d", userID, u.Role)
	}
}

// StudentDashboard returns the student's home view: mastery, latest
// attempts, a score forecast and the lesson list with completion marks.
func (s *System) StudentDashboard(userID string) (*StudentDashboard, error) {
	u, err := s.student(userID, "student dashboard")
	if err != nil {
		return nil, err
	}
	unlock := s.lockUser(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := store.AttemptsFor(s.attempts, userID)
	done := s.completedLessonsLocked(userID)
	var lessons []LessonView
	for _, l := range s.catalog.Lessons() {
		lessons = append(lessons, lessonView(l, done[l.ID]))
	}
	minutes := 0
	for _, a := range store.LessonActivityFor(s.activity, userID) {
		minutes += a.MinutesSpent
	}

	return &StudentDashboard{
		User:                  userView(u),
		Navigation:            append([]string(nil), Navigation...),
		Mastery:               analytics.MasterySnapshot(s.modelLocked(userID).Snapshot()),
		RecentAttempts:        attemptViews(last(attempts, recentAttemptsShown)),
		PredictedNextScore:    s.forecastLocked(userID),
		Lessons:               lessons,
		LessonActivityMinutes: minutes,
	}, nil
}

// TeacherDashboard aggregates the teacher's roster. A teacher without
// enrolled students sees every student.
func (s *System) TeacherDashboard(userID string) (*TeacherDashboard, error) {
	teacher, err := s.catalog.User(userID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(teacher, content.RoleTeacher, "teacher dashboard"); err != nil {
		return nil, err
	}

	courses := s.catalog.CoursesTaughtBy(userID)
	roster := s.roster(courses)
	inRoster := make(map[string]bool, len(roster))
	for _, u := range roster {
		inRoster[u.ID] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d := &TeacherDashboard{
		User:                userView(teacher),
		Navigation:          append([]string(nil), Navigation...),
		Courses:             make([]CourseView, 0, len(courses)),
		ClassRoster:         make([]RosterEntry, 0, len(roster)),
		AtRiskStudents:      []RosterEntry{},
		AttemptVelocity:     analytics.AttemptVelocity(s.attempts),
		ClassMastery:        analytics.ClassMastery(s.progress, inRoster),
		DifficultyBreakdown: analytics.DifficultyBreakdown(s.attempts, inRoster, s.catalog.Quiz),
	}
	for _, c := range courses {
		d.Courses = append(d.Courses, CourseView{
			CourseID:     c.ID,
			Title:        c.Title,
			InstructorID: c.InstructorID,
			StudentIDs:   append([]string(nil), c.StudentIDs...),
			ModuleCount:  len(c.Modules),
		})
	}

	for _, u := range roster {
		attempts := store.AttemptsFor(s.attempts, u.ID)
		entry := RosterEntry{
			UserID:         u.ID,
			Name:           u.Name,
			Attempts:       len(attempts),
			PredictedScore: s.forecastLocked(u.ID),
		}
		if avg, ok := analytics.MeanScore(attempts); ok {
			entry.AverageScore = &avg
		}
		if len(attempts) > 0 {
			entry.LastQuiz = attempts[len(attempts)-1].QuizID
		}
		d.ClassRoster = append(d.ClassRoster, entry)
		if entry.PredictedScore != nil && *entry.PredictedScore < atRiskThreshold {
			d.AtRiskStudents = append(d.AtRiskStudents, entry)
		}

		snap := s.modelLocked(u.ID).Snapshot()
		score := 0.0
		if len(snap) > 0 {
			score = predict.MeanMastery(snap)
		}
		d.StudentMasteryScores = append(d.StudentMasteryScores, StudentMasteryScore{
			UserID:       u.ID,
			Name:         u.Name,
			MasteryScore: grading.Round(score*100, 1),
			Mastery:      analytics.MasteryPercent(snap),
		})
	}
	sort.SliceStable(d.StudentMasteryScores, func(i, j int) bool {
		return d.StudentMasteryScores[i].MasteryScore > d.StudentMasteryScores[j].MasteryScore
	})

	rows := analytics.GradebookRows(s.attempts, s.catalog)
	d.GradebookPreview = append([]GradebookRowView{}, last(rows, gradebookPreviewRows)...)

	d.HelpRequests = []HelpRequestView{}
	for _, t := range s.desk.Tickets() {
		if !inRoster[t.UserID] {
			continue
		}
		name := t.UserID
		if su, err := s.catalog.User(t.UserID); err == nil {
			name = su.Name
		}
		d.HelpRequests = append(d.HelpRequests, HelpRequestView{HelpTicketView: ticketView(t), Student: name})
	}
	sort.SliceStable(d.HelpRequests, func(i, j int) bool {
		return d.HelpRequests[i].CreatedAt > d.HelpRequests[j].CreatedAt
	})
	if len(d.HelpRequests) > helpRequestsShown {
		d.HelpRequests = d.HelpRequests[:helpRequestsShown]
	}
	return d, nil
}

// roster resolves the students enrolled in courses, sorted by name. With no
// enrollment at all it falls back to every student.
func (s *System) roster(courses []*content.Course) []*content.User {
	ids := make(map[string]bool)
	for _, c := range courses {
		for _, id := range c.StudentIDs {
			ids[id] = true
		}
	}

	var out []*content.User
	if len(ids) == 0 {
		out = s.catalog.Students()
	} else {
		for id := range ids {
			u, err := s.catalog.User(id)
			if err != nil || u.Role != content.RoleStudent {
				continue
			}
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// StudentProfile returns the student's full history summary.
func (s *System) StudentProfile(userID string) (*StudentProfile, error) {
	u, err := s.student(userID, "student profile")
	if err != nil {
		return nil, err
	}
	unlock := s.lockUser(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := store.AttemptsFor(s.attempts, userID)
	stats := AttemptStats{
		TotalAttempts: len(attempts),
		RecentTrend:   []float64{},
	}
	if avg, ok := analytics.MeanScore(attempts); ok {
		stats.AverageScore = &avg
	}
	if len(attempts) > 0 {
		stats.LatestQuiz = attempts[len(attempts)-1].QuizID
	}
	for _, a := range last(attempts, trendLength) {
		stats.RecentTrend = append(stats.RecentTrend, a.Score)
	}

	activity := store.LessonActivityFor(s.activity, userID)
	progress := LessonProgress{
		CompletedCount: len(s.completedLessonsLocked(userID)),
		Recent:         []LessonActivityView{},
	}
	for _, a := range activity {
		progress.TotalMinutes += a.MinutesSpent
	}
	for _, a := range last(activity, trendLength) {
		progress.Recent = append(progress.Recent, LessonActivityView{
			LessonID:     a.LessonID,
			MinutesSpent: a.MinutesSpent,
			CompletedAt:  formatTime(a.CompletedAt),
		})
	}

	help := []HelpTicketView{}
	for _, t := range last(s.desk.TicketsFor(userID), trendLength) {
		help = append(help, ticketView(t))
	}

	return &StudentProfile{
		User:               userView(u),
		Mastery:            analytics.MasterySnapshot(s.modelLocked(userID).Snapshot()),
		PredictedNextScore: s.forecastLocked(userID),
		Attempts:           attemptViews(last(attempts, profileAttemptsShown)),
		AttemptStats:       stats,
		LessonProgress:     progress,
		HelpRequests:       help,
	}, nil
}
