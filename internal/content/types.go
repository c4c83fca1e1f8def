package content

import (
	"encoding/json"
	"fmt"
)

// Role distinguishes the two kinds of users.
type Role int

const (
	RoleStudent Role = iota + 1
	RoleTeacher
)

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleTeacher:
		return "teacher"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// ParseRole converts a wire name into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "student":
		return RoleStudent, nil
	case "teacher":
		return RoleTeacher, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// User is a student or teacher known to the system.
type User struct {
	ID    string `json:"user_id"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
	Email string `json:"email,omitempty"`
}

// Question is a single multiple-choice item tagged with a skill.
type Question struct {
	ID            string   `json:"question_id"`
	Prompt        string   `json:"prompt"`
	Choices       []string `json:"choices"`
	CorrectChoice int      `json:"correct_choice"`
	Skill         string   `json:"skill"`
	Difficulty    int      `json:"difficulty"`
}

// Quiz is an ordered set of questions.
type Quiz struct {
	ID               string     `json:"quiz_id"`
	Title            string     `json:"title"`
	Questions        []Question `json:"questions"`
	Graded           bool       `json:"graded"`
	TimeLimitMinutes *int       `json:"time_limit_minutes,omitempty"`
}

// MeanDifficulty returns the average difficulty of the quiz's questions,
// or 0 for an empty quiz.
func (q *Quiz) MeanDifficulty() float64 {
	if len(q.Questions) == 0 {
		return 0
	}
	sum := 0
	for _, qu := range q.Questions {
		sum += qu.Difficulty
	}
	return float64(sum) / float64(len(q.Questions))
}

// Lesson is readable material associated with one skill.
type Lesson struct {
	ID               string `json:"lesson_id"`
	Title            string `json:"title"`
	Skill            string `json:"skill"`
	Summary          string `json:"summary"`
	Content          string `json:"content"`
	EstimatedMinutes int    `json:"estimated_minutes"`
}

// Module groups quizzes and lessons within a course.
type Module struct {
	ID          string   `json:"module_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Quizzes     []Quiz   `json:"quizzes"`
	Lessons     []Lesson `json:"lessons"`
}

// Course is taught by one instructor to an enrolled set of students.
type Course struct {
	ID           string   `json:"course_id"`
	Title        string   `json:"title"`
	InstructorID string   `json:"instructor_id"`
	StudentIDs   []string `json:"student_ids"`
	Modules      []Module `json:"modules"`
}

const (
	// DefaultDifficulty applies to questions that omit a difficulty.
	DefaultDifficulty = 1

	// DefaultEstimatedMinutes applies to lessons that omit a duration.
	DefaultEstimatedMinutes = 10
)

func (c *Course) applyDefaults() {
	for mi := range c.Modules {
		m := &c.Modules[mi]
		for qi := range m.Quizzes {
			for i := range m.Quizzes[qi].Questions {
				if m.Quizzes[qi].Questions[i].Difficulty == 0 {
					m.Quizzes[qi].Questions[i].Difficulty = DefaultDifficulty
				}
			}
		}
		for li := range m.Lessons {
			if m.Lessons[li].EstimatedMinutes == 0 {
				m.Lessons[li].EstimatedMinutes = DefaultEstimatedMinutes
			}
		}
	}
}
