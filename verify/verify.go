// Package verify cross-checks tableau results against gonum's revised
// simplex solver.
package verify

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"

	"q.log/tableau/model"
	"q.log/tableau/simplex"
)

var ErrMismatch = errors.New("verify: tableau result differs from reference")

// Result is the reference optimum of a tableau's problem.
type Result struct {
	Objective float64
	X         []float64
}

// Reference solves the problem encoded by an initial (never pivoted) tableau
// with lp.Simplex. The constraint rows without column 0 already are the
// standard form A = [A_orig | S], b = rhs.
func Reference(t *model.Tableau) (*Result, error) {
	if t.Action() == model.None {
		return nil, errors.New("verify: no optimization direction")
	}

	k, cols := t.Objective(), t.Width()-1
	A := mat.NewDense(k, cols, nil)
	b := make([]float64, k)
	for i := 0; i < k; i++ {
		A.SetRow(i, t.Row(i)[1:])
		b[i] = t.RHSAt(i)
	}

	// the objective row holds -c, lp.Simplex minimizes
	c := make([]float64, cols)
	copy(c, t.Row(t.Objective())[1:])
	if t.Action() == model.Minimize {
		floats.Scale(-1, c)
	}

	z, x, err := lp.Simplex(c, A, b, 0, nil)
	if err != nil {
		return nil, errors.Wrap(err, "verify: reference solve")
	}
	if t.Action() == model.Maximize {
		z = -z
	}

	return &Result{Objective: z, X: x[:t.N()]}, nil
}

// Check compares a tableau solution with a reference result. Only the
// objective value is compared strictly, degenerate problems may have several
// optimal vertices.
func Check(sol simplex.Solution, ref *Result, tol float64) error {
	if sol == nil {
		return errors.New("verify: no solution")
	}
	if math.Abs(sol.Objective()-ref.Objective) > tol {
		return errors.Wrapf(ErrMismatch, "objective %g, reference %g", sol.Objective(), ref.Objective)
	}
	return nil
}

// Equal reports whether the decision variables of sol match ref within tol.
func Equal(sol simplex.Solution, ref *Result, tol float64) bool {
	return floats.EqualApprox(sol.Values(len(ref.X)), ref.X, tol)
}
