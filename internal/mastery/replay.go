package mastery

import (
	"sort"
	"time"
)

// EventKind identifies an entry in a learner's mastery log.
type EventKind int

const (
	EventAnswer EventKind = iota + 1
	EventLesson
)

// Event is one mastery-affecting entry: a graded answer or a lesson visit.
type Event struct {
	Kind EventKind
	At   time.Time
	// Seq breaks ties between events with the same timestamp, such as the
	// answers of one quiz submission.
	Seq   int
	Skill string

	Correct bool // EventAnswer

	MinutesSpent     int // EventLesson
	EstimatedMinutes int // EventLesson
}

// Replay applies events to m in chronological order and returns m.
// Replaying the same log from the same initial state is deterministic.
func Replay(m *Model, events []Event) *Model {
	ordered := append([]Event(nil), events...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].At.Equal(ordered[j].At) {
			return ordered[i].At.Before(ordered[j].At)
		}
		return ordered[i].Seq < ordered[j].Seq
	})

	for _, e := range ordered {
		switch e.Kind {
		case EventAnswer:
			m.Update(e.Skill, e.Correct)
		case EventLesson:
			m.ApplyLessonBoost(e.Skill, e.MinutesSpent, e.EstimatedMinutes)
		}
	}
	return m
}
