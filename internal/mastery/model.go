package mastery

// Model tracks one learner's probability of mastery for each registered skill.
type Model struct {
	params  map[string]Params
	mastery map[string]float64
}

// New creates a model where every registered skill starts at its prior.
// Skills without an entry in priors start at defaultPrior; an out-of-range
// defaultPrior falls back to DefaultPrior.
func New(params map[string]Params, priors map[string]float64, defaultPrior float64) *Model {
	if defaultPrior < 0 || defaultPrior > 1 {
		defaultPrior = DefaultPrior
	}
	m := &Model{
		params:  make(map[string]Params, len(params)),
		mastery: make(map[string]float64, len(params)),
	}
	for skill, p := range params {
		m.params[skill] = p
		prior, ok := priors[skill]
		if !ok {
			prior = defaultPrior
		}
		m.mastery[skill] = clamp(prior, 0, 1)
	}
	return m
}

// Default returns a model over the built-in skills and priors.
func Default() *Model {
	return New(DefaultParams(), DefaultPriors(), DefaultPrior)
}

// Update applies one knowledge-tracing step for a graded response and
// returns the new mastery probability. A skill with no registered
// parameters is left untouched and 0.0 is returned.
func (m *Model) Update(skill string, correct bool) float64 {
	p, ok := m.params[skill]
	if !ok {
		return 0.0
	}
	m.mastery[skill] = Step(m.mastery[skill], correct, p)
	return m.mastery[skill]
}

// Step computes the posterior-then-transition estimate for a single response
// given the prior probability of mastery.
func Step(prior float64, correct bool, p Params) float64 {
	var num, den float64
	if correct {
		num = prior * (1 - p.Slip)
		den = num + (1-prior)*p.Guess
	} else {
		num = prior * p.Slip
		den = num + (1-prior)*(1-p.Guess)
	}

	posterior := prior
	if den != 0 {
		posterior = num / den
	}

	learned := posterior + (1-posterior)*p.Learn
	next := learned*(1-p.Forget) + (1-learned)*p.Learn
	return clamp(next, 0, 1)
}

// Predict returns the current mastery for a skill, or 0.0 if it is untracked.
func (m *Model) Predict(skill string) float64 {
	return m.mastery[skill]
}

// Tracks reports whether the skill has registered parameters.
func (m *Model) Tracks(skill string) bool {
	_, ok := m.params[skill]
	return ok
}

// Snapshot returns a copy of the skill → probability mapping.
func (m *Model) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(m.mastery))
	for skill, v := range m.mastery {
		out[skill] = v
	}
	return out
}

// Load seeds mastery from persisted state. Only registered skills are
// accepted; values are clamped to [0,1].
func (m *Model) Load(values map[string]float64) {
	for skill, v := range values {
		if _, ok := m.params[skill]; ok {
			m.mastery[skill] = clamp(v, 0, 1)
		}
	}
}

// Clone returns an independent copy sharing the immutable parameters.
func (m *Model) Clone() *Model {
	return &Model{
		params:  m.params,
		mastery: m.Snapshot(),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
