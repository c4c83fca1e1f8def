package store

import "sort"

// ReplaceProgress returns a new record set where every row for userID is
// replaced by the rows derived from snapshot. Rows for other users keep
// their relative order; the user's rows are appended sorted by skill.
func ReplaceProgress(all []ProgressRecord, userID string, snapshot map[string]float64) []ProgressRecord {
	out := make([]ProgressRecord, 0, len(all)+len(snapshot))
	for _, r := range all {
		if r.UserID != userID {
			out = append(out, r)
		}
	}

	skills := make([]string, 0, len(snapshot))
	for skill := range snapshot {
		skills = append(skills, skill)
	}
	sort.Strings(skills)

	for _, skill := range skills {
		out = append(out, ProgressRecord{
			UserID:              userID,
			Skill:               skill,
			MasteredProbability: snapshot[skill],
		})
	}
	return out
}

// ProgressFor collects the skill → probability mapping for one user.
// A later row for the same skill wins.
func ProgressFor(all []ProgressRecord, userID string) map[string]float64 {
	out := make(map[string]float64)
	for _, r := range all {
		if r.UserID == userID {
			out[r.Skill] = r.MasteredProbability
		}
	}
	return out
}

// AttemptsFor returns the user's attempts in submission order.
func AttemptsFor(all []Attempt, userID string) []Attempt {
	var out []Attempt
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}

// LessonActivityFor returns the user's lesson events in recorded order.
func LessonActivityFor(all []LessonActivity, userID string) []LessonActivity {
	var out []LessonActivity
	for _, a := range all {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out
}
