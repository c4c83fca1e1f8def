package mastery

const (
	// MaxLessonBoost caps the mastery gain from a single lesson event.
	MaxLessonBoost = 0.12

	// lessonBoostRate is the boost for spending exactly the estimated time.
	lessonBoostRate = 0.02

	// minEstimatedMinutes floors a lesson's estimated duration.
	minEstimatedMinutes = 5
)

// LessonBoost returns the weight of a lesson engagement event.
func LessonBoost(minutesSpent, estimatedMinutes int) float64 {
	est := estimatedMinutes
	if est < minEstimatedMinutes {
		est = minEstimatedMinutes
	}
	boost := lessonBoostRate * float64(minutesSpent) / float64(est)
	return clamp(boost, 0, MaxLessonBoost)
}

// ApplyLessonBoost nudges mastery toward 1 after lesson engagement. Unlike
// Update this is not a graded observation, only a weak positive signal.
// Skills without registered parameters are ignored and 0.0 is returned.
func (m *Model) ApplyLessonBoost(skill string, minutesSpent, estimatedMinutes int) float64 {
	if _, ok := m.params[skill]; !ok {
		return 0.0
	}
	cur := m.mastery[skill]
	boost := LessonBoost(minutesSpent, estimatedMinutes)
	m.mastery[skill] = clamp(cur+boost*(1-cur), 0, 1)
	return m.mastery[skill]
}
