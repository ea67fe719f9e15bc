package simplex

import "github.com/pkg/errors"

var (
	// ErrUnbounded is returned when the ratio test finds no leaving row.
	ErrUnbounded = errors.New("simplex: problem is unbounded")

	// ErrNotConverged is returned when the iteration ceiling is reached,
	// usually a sign of cycling on a degenerate problem.
	ErrNotConverged = errors.New("simplex: did not converge")

	// ErrZeroPivot is returned by Pivot when the pivot element is zero.
	ErrZeroPivot = errors.New("simplex: zero pivot element")
)
