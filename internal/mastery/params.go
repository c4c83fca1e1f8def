package mastery

const (
	// DefaultPrior is the starting mastery for a skill with no configured prior.
	DefaultPrior = 0.3

	// DefaultSkillPrior is the prior used by the built-in parameter set.
	DefaultSkillPrior = 0.35
)

// Params is the per-skill parameter tuple for a knowledge-tracing step.
// Every field is a probability in [0,1].
type Params struct {
	Learn  float64 `yaml:"learn" json:"learn"`
	Forget float64 `yaml:"forget" json:"forget"`
	Guess  float64 `yaml:"guess" json:"guess"`
	Slip   float64 `yaml:"slip" json:"slip"`
}

// Valid reports whether every field lies in [0,1].
func (p Params) Valid() bool {
	for _, v := range []float64{p.Learn, p.Forget, p.Guess, p.Slip} {
		if v < 0 || v > 1 {
			return false
		}
	}
	return true
}

// DefaultParams returns the built-in skill families.
func DefaultParams() map[string]Params {
	return map[string]Params{
		"precalculus": {Learn: 0.14, Forget: 0.02, Guess: 0.18, Slip: 0.1},
		"calculus":    {Learn: 0.16, Forget: 0.02, Guess: 0.16, Slip: 0.1},
	}
}

// DefaultPriors returns the starting mastery for every built-in skill.
func DefaultPriors() map[string]float64 {
	priors := make(map[string]float64)
	for skill := range DefaultParams() {
		priors[skill] = DefaultSkillPrior
	}
	return priors
}
