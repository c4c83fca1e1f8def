package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/twotor/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample_Loads(t *testing.T) {
	cat, err := Sample()
	require.NoError(t, err)

	assert.Len(t, cat.Users(), 5)
	assert.Len(t, cat.Students(), 3)
	assert.Len(t, cat.Quizzes(), 2)
	assert.Len(t, cat.Lessons(), 2)

	q, err := cat.Quiz("quiz-calc-01")
	require.NoError(t, err)
	assert.True(t, q.Graded)
	require.NotNil(t, q.TimeLimitMinutes)
	assert.Equal(t, 15, *q.TimeLimitMinutes)
	assert.InDelta(t, 7.0/3.0, q.MeanDifficulty(), 1e-9)
}

func TestCatalog_NotFound(t *testing.T) {
	cat, err := Sample()
	require.NoError(t, err)

	_, err = cat.User("nobody")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	_, err = cat.Quiz("quiz-missing")
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "quiz", nf.Kind)

	_, err = cat.Lesson("lesson-missing")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCatalog_CoursesTaughtBy(t *testing.T) {
	cat, err := Sample()
	require.NoError(t, err)

	assert.Len(t, cat.CoursesTaughtBy("t-antonie"), 1)
	assert.Empty(t, cat.CoursesTaughtBy("t-noor"))
}

func TestParse_Defaults(t *testing.T) {
	raw := []byte(`{
		"users": [{"user_id": "u1", "name": "U", "role": "student"}],
		"courses": [{
			"course_id": "c1", "title": "C", "instructor_id": "t1",
			"modules": [{
				"module_id": "m1", "title": "M",
				"quizzes": [{"quiz_id": "q1", "title": "Q", "questions": [
					{"question_id": "a", "prompt": "p", "choices": ["x", "y"], "correct_choice": 0, "skill": "calculus"}
				]}],
				"lessons": [{"lesson_id": "l1", "title": "L", "skill": "calculus"}]
			}]
		}]
	}`)
	cat, err := Parse(raw)
	require.NoError(t, err)

	q, err := cat.Quiz("q1")
	require.NoError(t, err)
	assert.Equal(t, DefaultDifficulty, q.Questions[0].Difficulty)

	l, err := cat.Lesson("l1")
	require.NoError(t, err)
	assert.Equal(t, DefaultEstimatedMinutes, l.EstimatedMinutes)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `{`},
		{"missing courses", `{"users": []}`},
		{"bad role", `{"users": [{"user_id": "u", "name": "n", "role": "admin"}], "courses": []}`},
		{"answer key out of range", `{"users": [], "courses": [{"course_id": "c", "title": "t", "instructor_id": "i",
			"modules": [{"module_id": "m", "title": "t", "quizzes": [{"quiz_id": "q", "title": "t", "questions": [
				{"question_id": "a", "prompt": "p", "choices": ["x"], "correct_choice": 3, "skill": "s"}]}]}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.raw))
			require.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.json")
	require.NoError(t, os.WriteFile(path, sampleContent, 0o644))

	cat, err := LoadFile(path)
	require.NoError(t, err)
	u, err := cat.User("t-antonie")
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, u.Role)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "student", RoleStudent.String())
	assert.Equal(t, "teacher", RoleTeacher.String())

	r, err := ParseRole("teacher")
	require.NoError(t, err)
	assert.Equal(t, RoleTeacher, r)

	_, err = ParseRole("admin")
	require.Error(t, err)
}
