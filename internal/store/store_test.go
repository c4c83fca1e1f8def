package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "twotor.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.db

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

// storeContract runs the full-replace contract against any ProgressStore.
func storeContract(t *testing.T, s ProgressStore) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 14, 30, 0, 123456789, time.UTC)

	// Empty store loads cleanly.
	if got, err := s.LoadAttempts(ctx); err != nil || len(got) != 0 {
		t.Fatalf("empty LoadAttempts = %v, %v", got, err)
	}

	attempts := []Attempt{
		{ID: "a2", UserID: "u1", QuizID: "q1", Answers: []int{0, 1}, CorrectCount: 2, TotalQuestions: 2, TimeTakenSeconds: 90, Score: 100, SubmittedAt: now},
		{ID: "a1", UserID: "u2", QuizID: "q1", Answers: []int{1, 0}, CorrectCount: 0, TotalQuestions: 2, TimeTakenSeconds: 45, Score: 0, SubmittedAt: now.Add(time.Minute)},
	}
	if err := s.SaveAttempts(ctx, attempts); err != nil {
		t.Fatalf("save attempts: %v", err)
	}
	gotAttempts, err := s.LoadAttempts(ctx)
	if err != nil {
		t.Fatalf("load attempts: %v", err)
	}
	if !reflect.DeepEqual(gotAttempts, attempts) {
		t.Errorf("attempts round trip:\n got %+v\nwant %+v", gotAttempts, attempts)
	}

	// A second save fully replaces the first.
	if err := s.SaveAttempts(ctx, attempts[:1]); err != nil {
		t.Fatalf("save attempts again: %v", err)
	}
	gotAttempts, _ = s.LoadAttempts(ctx)
	if len(gotAttempts) != 1 || gotAttempts[0].ID != "a2" {
		t.Errorf("after replace got %+v", gotAttempts)
	}

	progress := []ProgressRecord{
		{UserID: "u1", Skill: "calculus", MasteredProbability: 0.8090329355608592},
		{UserID: "u1", Skill: "precalculus", MasteredProbability: 0.35},
	}
	if err := s.SaveProgress(ctx, progress); err != nil {
		t.Fatalf("save progress: %v", err)
	}
	gotProgress, err := s.LoadProgress(ctx)
	if err != nil {
		t.Fatalf("load progress: %v", err)
	}
	if !reflect.DeepEqual(gotProgress, progress) {
		t.Errorf("progress round trip: got %+v", gotProgress)
	}

	activity := []LessonActivity{{ID: "l-1", UserID: "u1", LessonID: "lesson-1", MinutesSpent: 12, CompletedAt: now}}
	if err := s.SaveLessonActivity(ctx, activity); err != nil {
		t.Fatalf("save activity: %v", err)
	}
	gotActivity, err := s.LoadLessonActivity(ctx)
	if err != nil {
		t.Fatalf("load activity: %v", err)
	}
	if !reflect.DeepEqual(gotActivity, activity) {
		t.Errorf("activity round trip: got %+v", gotActivity)
	}

	tickets := []HelpTicket{
		{TicketID: "HELP-0001", UserID: "u1", Channel: "assignment", Question: "why?", CreatedAt: now, Status: "responded", Response: "soon"},
		{TicketID: "HELP-0002", UserID: "u2", Channel: "appointment", Question: "when?", CreatedAt: now, Status: "open"},
	}
	if err := s.SaveHelpTickets(ctx, tickets); err != nil {
		t.Fatalf("save tickets: %v", err)
	}
	gotTickets, err := s.LoadHelpTickets(ctx)
	if err != nil {
		t.Fatalf("load tickets: %v", err)
	}
	if !reflect.DeepEqual(gotTickets, tickets) {
		t.Errorf("tickets round trip: got %+v", gotTickets)
	}
}

func TestSQLiteStoreContract(t *testing.T) {
	storeContract(t, openTestStore(t))
}

func TestMemoryStoreContract(t *testing.T) {
	storeContract(t, NewMemory())
}

func TestSQLiteStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "twotor.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	rec := []ProgressRecord{{UserID: "u1", Skill: "calculus", MasteredProbability: 0.5}}
	if err := s.SaveProgress(ctx, rec); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.LoadProgress(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, rec) {
		t.Errorf("after reopen got %+v", got)
	}
}

func TestMemory_FailSave(t *testing.T) {
	m := NewMemory()
	boom := errors.New("disk full")
	m.FailSave = boom

	if err := m.SaveAttempts(context.Background(), []Attempt{{ID: "a"}}); !errors.Is(err, boom) {
		t.Fatalf("SaveAttempts err = %v, want %v", err, boom)
	}
	got, _ := m.LoadAttempts(context.Background())
	if len(got) != 0 {
		t.Errorf("failed save leaked %d attempts", len(got))
	}
}

func TestMemory_FailSaveProgress(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("progress table locked")
	m.FailSaveProgress = boom

	if err := m.SaveAttempts(ctx, []Attempt{{ID: "a"}}); err != nil {
		t.Fatalf("SaveAttempts: %v", err)
	}
	if err := m.SaveProgress(ctx, []ProgressRecord{{UserID: "u", Skill: "calculus"}}); !errors.Is(err, boom) {
		t.Fatalf("SaveProgress err = %v, want %v", err, boom)
	}
	if got, _ := m.LoadProgress(ctx); len(got) != 0 {
		t.Errorf("failed save leaked %d progress rows", len(got))
	}
}

func TestMemory_CopiesAnswers(t *testing.T) {
	m := NewMemory()
	answers := []int{0, 1}
	_ = m.SaveAttempts(context.Background(), []Attempt{{ID: "a", Answers: answers}})
	answers[0] = 9

	got, _ := m.LoadAttempts(context.Background())
	if got[0].Answers[0] != 0 {
		t.Errorf("stored answers aliased caller slice: %v", got[0].Answers)
	}
}

func TestReplaceProgress(t *testing.T) {
	all := []ProgressRecord{
		{UserID: "u2", Skill: "calculus", MasteredProbability: 0.4},
		{UserID: "u1", Skill: "calculus", MasteredProbability: 0.1},
		{UserID: "u1", Skill: "calculus", MasteredProbability: 0.2},
	}
	got := ReplaceProgress(all, "u1", map[string]float64{"precalculus": 0.6, "calculus": 0.7})

	want := []ProgressRecord{
		{UserID: "u2", Skill: "calculus", MasteredProbability: 0.4},
		{UserID: "u1", Skill: "calculus", MasteredProbability: 0.7},
		{UserID: "u1", Skill: "precalculus", MasteredProbability: 0.6},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReplaceProgress = %+v, want %+v", got, want)
	}

	seen := make(map[[2]string]bool)
	for _, r := range got {
		key := [2]string{r.UserID, r.Skill}
		if seen[key] {
			t.Errorf("duplicate row for %v", key)
		}
		seen[key] = true
	}
}

func TestProgressFor(t *testing.T) {
	all := []ProgressRecord{
		{UserID: "u1", Skill: "calculus", MasteredProbability: 0.1},
		{UserID: "u2", Skill: "calculus", MasteredProbability: 0.4},
		{UserID: "u1", Skill: "calculus", MasteredProbability: 0.2},
	}
	got := ProgressFor(all, "u1")
	if len(got) != 1 || got["calculus"] != 0.2 {
		t.Errorf("ProgressFor = %v", got)
	}
}
