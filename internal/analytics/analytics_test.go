package analytics

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/twotor/internal/content"
	"github.com/abhisek/twotor/internal/store"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testCatalog() *content.Catalog {
	users := []content.User{
		{ID: "s1", Name: "Ada", Role: content.RoleStudent},
		{ID: "s2", Name: "Ben", Role: content.RoleStudent},
	}
	courses := []content.Course{{
		ID: "c1", InstructorID: "t1", StudentIDs: []string{"s1", "s2"},
		Modules: []content.Module{{
			ID: "m1",
			Quizzes: []content.Quiz{
				{ID: "q-easy", Title: "Warmup", Questions: []content.Question{
					{ID: "a", Difficulty: 1, Choices: []string{"x"}}, {ID: "b", Difficulty: 2, Choices: []string{"x"}},
				}},
				{ID: "q-hard", Title: "Challenge", Questions: []content.Question{
					{ID: "c", Difficulty: 3, Choices: []string{"x"}}, {ID: "d", Difficulty: 5, Choices: []string{"x"}},
				}},
			},
		}},
	}}
	return content.NewCatalog(users, courses)
}

func testAttempts() []store.Attempt {
	return []store.Attempt{
		{UserID: "s1", QuizID: "q-easy", CorrectCount: 2, TotalQuestions: 2, TimeTakenSeconds: 30, Score: 100},
		{UserID: "ghost", QuizID: "q-easy", Score: 50},
		{UserID: "s2", QuizID: "q-hard", CorrectCount: 1, TotalQuestions: 2, TimeTakenSeconds: 95, Score: 50},
		{UserID: "s2", QuizID: "q-gone", Score: 10},
	}
}

func TestGradebookRows(t *testing.T) {
	rows := GradebookRows(testAttempts(), testCatalog())

	want := []GradebookRow{
		{UserID: "s1", Student: "Ada", Quiz: "Warmup", Score: "100.0", Correct: "2/2", TimeSeconds: "30"},
		{UserID: "s2", Student: "Ben", Quiz: "Challenge", Score: "50.0", Correct: "1/2", TimeSeconds: "95"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("GradebookRows mismatch (-want +got):\n%s", diff)
	}
}

func TestExportGradebook_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "gradebook.csv")
	rows := GradebookRows(testAttempts(), testCatalog())
	require.NoError(t, ExportGradebook(path, rows))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, GradebookHeader, records[0])
	assert.Equal(t, rows[1].Values(), records[2])
}

func TestExportGradebook_EmptyCSVHasHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, ExportGradebook(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "user_id,student,quiz,score,correct,time_seconds\n", string(raw))
}

func TestExportGradebook_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gradebook.xlsx")
	rows := GradebookRows(testAttempts(), testCatalog())
	require.NoError(t, ExportGradebook(path, rows))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(gradebookSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, GradebookHeader, got[0])
	assert.Equal(t, rows[0].Values(), got[1])
}

func TestBucket(t *testing.T) {
	assert.Equal(t, BucketEasy, Bucket(0))
	assert.Equal(t, BucketEasy, Bucket(1))
	assert.Equal(t, BucketMedium, Bucket(2))
	assert.Equal(t, BucketHard, Bucket(3))
	assert.Equal(t, BucketHard, Bucket(9))
}

func TestDifficultyBreakdown(t *testing.T) {
	cat := testCatalog()
	roster := map[string]bool{"s1": true, "s2": true}

	got := DifficultyBreakdown(testAttempts(), roster, cat.Quiz)
	want := map[string]float64{BucketEasy: 25, BucketMedium: 25, BucketHard: 50}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DifficultyBreakdown mismatch (-want +got):\n%s", diff)
	}

	empty := DifficultyBreakdown(testAttempts(), map[string]bool{}, cat.Quiz)
	assert.Equal(t, map[string]float64{BucketEasy: 0, BucketMedium: 0, BucketHard: 0}, empty)
}

func TestAttemptVelocity(t *testing.T) {
	assert.Equal(t, 0.0, AttemptVelocity(nil))
	assert.Equal(t, 1.33, AttemptVelocity(testAttempts()))
}

func TestMasteryRounding(t *testing.T) {
	m := map[string]float64{"calculus": 0.80903, "precalculus": 0.35}
	assert.Equal(t, map[string]float64{"calculus": 0.809, "precalculus": 0.35}, MasterySnapshot(m))
	assert.Equal(t, map[string]float64{"calculus": 80.9, "precalculus": 35}, MasteryPercent(m))
}

func TestClassMastery(t *testing.T) {
	records := []store.ProgressRecord{
		{UserID: "s1", Skill: "calculus", MasteredProbability: 0.8},
		{UserID: "s2", Skill: "calculus", MasteredProbability: 0.4},
		{UserID: "s3", Skill: "calculus", MasteredProbability: 0.0},
		{UserID: "s1", Skill: "precalculus", MasteredProbability: 0.35},
	}
	got := ClassMastery(records, map[string]bool{"s1": true, "s2": true})
	assert.Equal(t, map[string]float64{"calculus": 60, "precalculus": 35}, got)
}

func TestMeanScore(t *testing.T) {
	_, ok := MeanScore(nil)
	assert.False(t, ok)

	got, ok := MeanScore([]store.Attempt{{Score: 100}, {Score: 33.3}, {Score: 0}})
	require.True(t, ok)
	assert.Equal(t, 44.4, got)
}
