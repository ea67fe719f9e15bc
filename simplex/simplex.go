package simplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"k8s.io/klog/v2"

	"q.log/tableau/model"
)

// Step is one performed pivot.
type Step struct {
	Row int
	Col int
}

// Solver runs the tableau simplex method on a single tableau, which it
// mutates in place. A Solver is not safe for concurrent use.
type Solver struct {
	t *model.Tableau

	epsilon       float64
	maxIterations int

	steps []Step
}

// NewSolver returns a Solver owning t.
func NewSolver(t *model.Tableau, opts ...Option) *Solver {
	s := &Solver{
		t:             t,
		epsilon:       defaultEpsilon,
		maxIterations: defaultMaxIterations,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tableau returns the tableau being solved.
func (s *Solver) Tableau() *model.Tableau {
	return s.t
}

// Steps returns the pivots performed so far, in order.
func (s *Solver) Steps() []Step {
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

// improves reports whether objective coefficient v makes the objective
// better when its column enters the basis.
func (s *Solver) improves(v float64) bool {
	switch s.t.Action() {
	case model.Maximize:
		return v < -s.epsilon
	case model.Minimize:
		return v > s.epsilon
	}
	return false
}

// better reports whether objective coefficient a is strictly more extreme
// than b in the improving direction. Ties keep the earlier column.
func (s *Solver) better(a, b float64) bool {
	if s.t.Action() == model.Minimize {
		return a > b
	}
	return a < b
}

// Optimal reports whether no objective row coefficient blocks termination.
// Column 0 is the objective column itself and is not inspected.
func (s *Solver) Optimal() bool {
	obj := s.t.Row(s.t.Objective())
	for _, v := range obj[1:] {
		if s.improves(v) {
			return false
		}
	}
	return true
}

// SelectPivot picks the entering column from the objective row and the
// leaving row by the minimum ratio test.
func (s *Solver) SelectPivot() (int, int, error) {
	t := s.t
	obj := t.Row(t.Objective())

	col := 1
	for j := 2; j < t.Width(); j++ {
		if s.better(obj[j], obj[col]) {
			col = j
		}
	}

	row := -1
	minimalRatio := math.Inf(1)
	for i := 0; i < t.Objective(); i++ {
		a := t.At(i, col)
		if a <= s.epsilon {
			continue
		}
		b := t.RHSAt(i)
		if b < 0 && b > -s.epsilon {
			b = 0
		}
		ratio := b / a
		if math.IsInf(ratio, 0) || math.IsNaN(ratio) || ratio < 0 {
			continue
		}
		if ratio < minimalRatio {
			minimalRatio = ratio
			row = i
		}
	}

	if row == -1 {
		return -1, col, errors.Wrapf(ErrUnbounded, "column x%d has no eligible row", col)
	}

	return row, col, nil
}

// Pivot makes column col the unit column of row row: the pivot row is
// scaled by the inverse of its lead and col is eliminated from every other
// row, the objective row included. The rhs follows the same combination.
func (s *Solver) Pivot(row, col int) error {
	t := s.t
	lead := t.At(row, col)
	if lead == 0 {
		return errors.Wrapf(ErrZeroPivot, "row %d col %d", row, col)
	}

	// snapshot of the new pivot row, other rows are updated against it
	pivotRow := make([]float64, t.Width())
	floats.ScaleTo(pivotRow, 1/lead, t.Row(row))
	pivotRow[col] = 1
	pivotRHS := t.RHSAt(row) / lead

	for r := 0; r < t.Rows(); r++ {
		if r == row {
			continue
		}
		cur := t.Row(r)
		f := cur[col]
		if f == 0 {
			continue
		}
		floats.AddScaled(cur, -f, pivotRow)
		cur[col] = 0
		t.SetRHS(r, t.RHSAt(r)-f*pivotRHS)
	}

	t.SetRow(row, pivotRow)
	t.SetRHS(row, pivotRHS)
	t.SetBasic(row, col)

	s.steps = append(s.steps, Step{Row: row, Col: col})
	return nil
}

// Run pivots until the objective row is optimal and returns the solution.
// A tableau without direction returns a nil Solution and performs no pivot.
//
// Run starts from the all-zero point and has no phase one. If that point
// violates a ">=" constraint the result is not feasible and no error is
// returned; use the verify package to cross-check such problems.
func (s *Solver) Run() (Solution, error) {
	if s.t.Action() == model.None {
		klog.V(2).InfoS("No optimization direction, nothing to do")
		return nil, nil
	}

	iter := 0
	for !s.Optimal() {
		if s.maxIterations > 0 && iter >= s.maxIterations {
			return nil, errors.Wrapf(ErrNotConverged, "after %d iterations", iter)
		}
		iter++

		row, col, err := s.SelectPivot()
		if err != nil {
			return nil, err
		}
		klog.V(2).InfoS("Pivot", "iteration", iter, "row", row, "col", col, "leaving", s.t.Basic(row))
		if err := s.Pivot(row, col); err != nil {
			return nil, err
		}
		if klogV := klog.V(4); klogV.Enabled() {
			klogV.InfoS("Tableau after pivot", "iteration", iter, "tableau", s.t.String())
		}
	}

	sol := s.Extract()
	klog.V(1).InfoS("Optimal", "iterations", iter, "objective", sol.Objective())
	return sol, nil
}
