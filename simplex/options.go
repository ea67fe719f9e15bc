package simplex

const (
	defaultEpsilon       = 1e-9
	defaultMaxIterations = 1000
)

// Option configures a Solver.
type Option func(*Solver)

// WithMaxIterations sets the pivot ceiling of Run. Zero disables it.
func WithMaxIterations(n int) Option {
	return func(s *Solver) {
		s.maxIterations = n
	}
}

// WithEpsilon sets the tolerance used for sign tests on the objective row
// and for pivot column entries in the ratio test.
func WithEpsilon(eps float64) Option {
	return func(s *Solver) {
		s.epsilon = eps
	}
}
