package store

import (
	"context"
	"sync"
)

// Memory is an in-process ProgressStore. Saves copy their input so later
// caller mutation never leaks into stored state.
type Memory struct {
	mu       sync.Mutex
	progress []ProgressRecord
	attempts []Attempt
	activity []LessonActivity
	tickets  []HelpTicket

	// FailSave, when set, is returned by every Save call. Tests use it to
	// exercise persistence failures.
	FailSave error

	// FailSaveProgress, when set, is returned by SaveProgress only, so the
	// sections saved before it succeed.
	FailSaveProgress error
}

var _ ProgressStore = (*Memory)(nil)

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) LoadProgress(_ context.Context) ([]ProgressRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]ProgressRecord(nil), m.progress...), nil
}

func (m *Memory) SaveProgress(_ context.Context, records []ProgressRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	if m.FailSaveProgress != nil {
		return m.FailSaveProgress
	}
	m.progress = append([]ProgressRecord(nil), records...)
	return nil
}

func (m *Memory) LoadAttempts(_ context.Context) ([]Attempt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Attempt, len(m.attempts))
	for i, a := range m.attempts {
		out[i] = copyAttempt(a)
	}
	return out, nil
}

func (m *Memory) SaveAttempts(_ context.Context, attempts []Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	m.attempts = make([]Attempt, len(attempts))
	for i, a := range attempts {
		m.attempts[i] = copyAttempt(a)
	}
	return nil
}

func (m *Memory) LoadLessonActivity(_ context.Context) ([]LessonActivity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LessonActivity(nil), m.activity...), nil
}

func (m *Memory) SaveLessonActivity(_ context.Context, activity []LessonActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	m.activity = append([]LessonActivity(nil), activity...)
	return nil
}

func (m *Memory) LoadHelpTickets(_ context.Context) ([]HelpTicket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]HelpTicket(nil), m.tickets...), nil
}

func (m *Memory) SaveHelpTickets(_ context.Context, tickets []HelpTicket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSave != nil {
		return m.FailSave
	}
	m.tickets = append([]HelpTicket(nil), tickets...)
	return nil
}

func copyAttempt(a Attempt) Attempt {
	a.Answers = append([]int(nil), a.Answers...)
	return a
}
