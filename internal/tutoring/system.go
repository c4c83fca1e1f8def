// Package tutoring is the engine facade. It owns the in-memory logs loaded
// from a ProgressStore, a per-user mastery cache and the help desk, and it
// exposes every user-facing operation.
package tutoring

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/twotor/internal/apperr"
	"github.com/abhisek/twotor/internal/content"
	"github.com/abhisek/twotor/internal/grading"
	"github.com/abhisek/twotor/internal/helpdesk"
	"github.com/abhisek/twotor/internal/mastery"
	"github.com/abhisek/twotor/internal/predict"
	"github.com/abhisek/twotor/internal/store"
	"go.uber.org/zap"
)

// Navigation lists the sections of the application in display order.
var Navigation = []string{"dashboard", "quizzes", "analytics", "help", "profile", "settings"}

// Options configures a System. Catalog and Store are required.
type Options struct {
	Catalog *content.Catalog
	Store   store.ProgressStore

	// MasteryParams defaults to mastery.DefaultParams; Priors and
	// DefaultPrior default the same way when MasteryParams is nil.
	MasteryParams map[string]mastery.Params
	Priors        map[string]float64
	DefaultPrior  float64

	// Predictor defaults to the built-in weights.
	Predictor *predict.Model
	Helpdesk  helpdesk.Config

	Now    func() time.Time
	Logger *zap.Logger
}

// System is safe for concurrent use. Operations touching one user run one
// at a time; operations on different users may interleave. Shared logs are
// guarded by mu and only replaced after the store accepted the new copy.
type System struct {
	catalog   *content.Catalog
	store     store.ProgressStore
	params    map[string]mastery.Params
	priors    map[string]float64
	prior     float64
	predictor *predict.Model
	pipeline  *grading.Pipeline
	now       func() time.Time
	log       *zap.Logger

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	mu       sync.Mutex
	attempts []store.Attempt
	progress []store.ProgressRecord
	activity []store.LessonActivity
	desk     *helpdesk.Desk
	models   map[string]*mastery.Model
}

// New loads every log from opts.Store once and returns a ready System.
func New(ctx context.Context, opts Options) (*System, error) {
	if opts.Catalog == nil {
		return nil, fmt.Errorf("tutoring: catalog is required")
	}
	if opts.Store == nil {
		return nil, fmt.Errorf("tutoring: store is required")
	}

	s := &System{
		catalog:   opts.Catalog,
		store:     opts.Store,
		params:    opts.MasteryParams,
		priors:    opts.Priors,
		prior:     opts.DefaultPrior,
		predictor: opts.Predictor,
		now:       opts.Now,
		log:       opts.Logger,
		locks:     make(map[string]*sync.Mutex),
		models:    make(map[string]*mastery.Model),
	}
	if s.params == nil {
		s.params = mastery.DefaultParams()
		s.priors = mastery.DefaultPriors()
		s.prior = mastery.DefaultPrior
	}
	if s.predictor == nil {
		s.predictor = predict.New(nil)
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	cfg := opts.Helpdesk
	if cfg.Instructor == "" {
		cfg = helpdesk.DefaultConfig()
	}
	s.pipeline = grading.New(s.predictor, s.quizDifficulty)

	var err error
	if s.progress, err = s.store.LoadProgress(ctx); err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if s.attempts, err = s.store.LoadAttempts(ctx); err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	if s.activity, err = s.store.LoadLessonActivity(ctx); err != nil {
		return nil, fmt.Errorf("load lesson activity: %w", err)
	}
	tickets, err := s.store.LoadHelpTickets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load help tickets: %w", err)
	}
	s.desk = helpdesk.New(cfg, tickets, s.now)

	s.log.Debug("engine loaded",
		zap.Int("progress_records", len(s.progress)),
		zap.Int("attempts", len(s.attempts)),
		zap.Int("lesson_activity", len(s.activity)),
		zap.Int("help_tickets", len(tickets)))
	return s, nil
}

// lockUser serializes operations on one user and returns the unlock func.
func (s *System) lockUser(userID string) func() {
	s.locksMu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.locksMu.Unlock()
	l.Lock()
	return l.Unlock
}

// requireRole returns a RoleMismatchError unless u holds want.
func requireRole(u *content.User, want content.Role, op string) error {
	switch u.Role {
	case content.RoleStudent, content.RoleTeacher:
		if u.Role == want {
			return nil
		}
		return &apperr.RoleMismatchError{
			UserID:    u.ID,
			Operation: op,
			Want:      want.String(),
			Got:       u.Role.String(),
		}
	default:
		return fmt.Errorf("user %q has unknown role %d", u.ID, u.Role)
	}
}

// student resolves userID and checks it is a student.
func (s *System) student(userID, op string) (*content.User, error) {
	u, err := s.catalog.User(userID)
	if err != nil {
		return nil, err
	}
	if err := requireRole(u, content.RoleStudent, op); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *System) newModel() *mastery.Model {
	return mastery.New(s.params, s.priors, s.prior)
}

// modelLocked returns the cached model for userID, seeding it from the
// progress log on first access. s.mu must be held.
func (s *System) modelLocked(userID string) *mastery.Model {
	if m, ok := s.models[userID]; ok {
		return m
	}
	m := s.newModel()
	m.Load(store.ProgressFor(s.progress, userID))
	s.models[userID] = m
	s.log.Debug("mastery cache seeded", zap.String("user", userID))
	return m
}

// saveProgressLocked persists the progress log with userID's rows replaced
// by m and returns the new log. s.mu must be held.
func (s *System) saveProgressLocked(ctx context.Context, userID string, m *mastery.Model) ([]store.ProgressRecord, error) {
	next := store.ReplaceProgress(s.progress, userID, m.Snapshot())
	if err := s.store.SaveProgress(ctx, next); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	return next, nil
}

func (s *System) quizDifficulty(quizID string) (float64, bool) {
	q, err := s.catalog.Quiz(quizID)
	if err != nil {
		return 0, false
	}
	return q.MeanDifficulty(), true
}

// ReloadMasteryFromStore discards the cached model for userID and rebuilds
// it from the progress section as currently persisted.
func (s *System) ReloadMasteryFromStore(ctx context.Context, userID string) (map[string]float64, error) {
	if _, err := s.student(userID, "reload mastery"); err != nil {
		return nil, err
	}
	unlock := s.lockUser(userID)
	defer unlock()

	records, err := s.store.LoadProgress(ctx)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}

	// Only this user's rows are taken from the store; other users may have
	// committed since the load.
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = store.ReplaceProgress(s.progress, userID, store.ProgressFor(records, userID))
	delete(s.models, userID)
	return s.modelLocked(userID).Snapshot(), nil
}

// RebuildMastery recomputes userID's mastery from scratch by replaying
// their attempts and lesson activity in time order, then persists and
// caches the result. Entries referring to content that no longer exists
// are skipped.
func (s *System) RebuildMastery(ctx context.Context, userID string) (map[string]float64, error) {
	if _, err := s.student(userID, "rebuild mastery"); err != nil {
		return nil, err
	}
	unlock := s.lockUser(userID)
	defer unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	var events []mastery.Event
	seq := 0
	for _, a := range store.AttemptsFor(s.attempts, userID) {
		q, err := s.catalog.Quiz(a.QuizID)
		if err != nil {
			s.log.Warn("rebuild: skipping attempt for unknown quiz",
				zap.String("user", userID), zap.String("quiz", a.QuizID))
			continue
		}
		for i, qu := range q.Questions {
			if i >= len(a.Answers) {
				break
			}
			events = append(events, mastery.Event{
				Kind:    mastery.EventAnswer,
				At:      a.SubmittedAt,
				Seq:     seq,
				Skill:   qu.Skill,
				Correct: a.Answers[i] == qu.CorrectChoice,
			})
			seq++
		}
	}
	for _, act := range store.LessonActivityFor(s.activity, userID) {
		l, err := s.catalog.Lesson(act.LessonID)
		if err != nil {
			s.log.Warn("rebuild: skipping activity for unknown lesson",
				zap.String("user", userID), zap.String("lesson", act.LessonID))
			continue
		}
		events = append(events, mastery.Event{
			Kind:             mastery.EventLesson,
			At:               act.CompletedAt,
			Seq:              seq,
			Skill:            l.Skill,
			MinutesSpent:     act.MinutesSpent,
			EstimatedMinutes: l.EstimatedMinutes,
		})
		seq++
	}

	m := mastery.Replay(s.newModel(), events)
	next, err := s.saveProgressLocked(ctx, userID, m)
	if err != nil {
		return nil, err
	}
	s.progress = next
	s.models[userID] = m
	s.log.Info("mastery rebuilt", zap.String("user", userID), zap.Int("events", len(events)))
	return m.Snapshot(), nil
}
