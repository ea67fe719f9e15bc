package simplex

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/tableau/instance"
	"q.log/tableau/model"
)

const tol = 1e-9

func le(rhs float64, vars map[string]float64) instance.Constraint {
	return instance.Constraint{Vars: vars, Sign: "<=", Assign: rhs}
}

func ge(rhs float64, vars map[string]float64) instance.Constraint {
	return instance.Constraint{Vars: vars, Sign: ">=", Assign: rhs}
}

func build(t *testing.T, method string, x []float64, cond ...instance.Constraint) *model.Tableau {
	p := &instance.Problem{Method: method, X: x, Cond: cond}
	tab, err := p.Tableau()
	require.NoError(t, err)
	return tab
}

// maximize 3x1 + 2x2, x1 + x2 <= 4, x1 + 3x2 <= 6
func textbook(t *testing.T) *model.Tableau {
	return build(t, "max", []float64{3, 2},
		le(4, map[string]float64{"1": 1, "2": 1}),
		le(6, map[string]float64{"1": 1, "2": 3}),
	)
}

// maximize 2x1 + 3x2, x1 + 2x2 <= 14, 3x1 - x2 >= 0, x1 - x2 <= 2
func binding(t *testing.T) *model.Tableau {
	return build(t, "max", []float64{2, 3},
		le(14, map[string]float64{"1": 1, "2": 2}),
		ge(0, map[string]float64{"1": 3, "2": -1}),
		le(2, map[string]float64{"1": 1, "2": -1}),
	)
}

func assertSolution(t *testing.T, want map[int]float64, got Solution) {
	t.Helper()
	require.Len(t, got, len(want))
	for k, v := range want {
		assert.InDelta(t, v, got[k], tol, "x%d", k)
	}
}

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		tab   func(*testing.T) *model.Tableau
		want  map[int]float64
		steps []Step
	}{
		{
			name:  "textbook maximize",
			tab:   textbook,
			want:  map[int]float64{0: 12, 1: 4, 2: 0},
			steps: []Step{{Row: 0, Col: 1}},
		},
		{
			name:  "binding second constraint",
			tab:   binding,
			want:  map[int]float64{0: 24, 1: 6, 2: 4},
			steps: []Step{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSolver(tt.tab(t))
			sol, err := s.Run()
			require.NoError(t, err)
			assertSolution(t, tt.want, sol)
			assert.Equal(t, tt.steps, s.Steps())
			assert.True(t, s.Optimal())
		})
	}
}

func TestRunUnbounded(t *testing.T) {
	tab := build(t, "max", []float64{1, 0},
		le(1, map[string]float64{"1": 1, "2": -1}),
	)

	s := NewSolver(tab)
	sol, err := s.Run()
	assert.Nil(t, sol)
	assert.True(t, errors.Is(err, ErrUnbounded))
	assert.Equal(t, []Step{{Row: 0, Col: 1}}, s.Steps())

	// last complete pivot is kept
	assert.Equal(t, []float64{0, 1, -1, 1}, tab.Row(0))
	assert.Equal(t, 1, tab.Basic(0))
}

func TestRunNoDirection(t *testing.T) {
	tab := build(t, "maximize", []float64{3, 2},
		le(4, map[string]float64{"1": 1, "2": 1}),
	)
	before := tab.Clone()

	s := NewSolver(tab)
	sol, err := s.Run()
	require.NoError(t, err)
	assert.Nil(t, sol)
	assert.Empty(t, s.Steps())
	assert.Equal(t, before.String(), tab.String())
}

func TestRunInfeasibleOrigin(t *testing.T) {
	tab := build(t, "max", []float64{-1},
		ge(1, map[string]float64{"1": 1}),
	)

	s := NewSolver(tab)
	sol, err := s.Run()
	require.NoError(t, err)
	assert.Empty(t, s.Steps())
	assert.Equal(t, Solution{0: 0, 1: 0}, sol)
}

func TestRunNotConverged(t *testing.T) {
	s := NewSolver(binding(t), WithMaxIterations(1))
	_, err := s.Run()
	assert.True(t, errors.Is(err, ErrNotConverged))
	assert.Len(t, s.Steps(), 1)
}

func TestMinimizationMirrorsMaximization(t *testing.T) {
	tests := []struct {
		name string
		min  *instance.Problem
		max  *instance.Problem
	}{
		{
			name: "infeasible origin accepted",
			min: &instance.Problem{Method: "min", X: []float64{1, 1}, Cond: []instance.Constraint{
				ge(2, map[string]float64{"1": 1, "2": 1}),
			}},
			max: &instance.Problem{Method: "max", X: []float64{-1, -1}, Cond: []instance.Constraint{
				ge(2, map[string]float64{"1": 1, "2": 1}),
			}},
		},
		{
			name: "two pivots",
			min: &instance.Problem{Method: "min", X: []float64{-1, -1}, Cond: []instance.Constraint{
				le(4, map[string]float64{"1": 1, "2": 1}),
				le(3, map[string]float64{"1": 1}),
			}},
			max: &instance.Problem{Method: "max", X: []float64{1, 1}, Cond: []instance.Constraint{
				le(4, map[string]float64{"1": 1, "2": 1}),
				le(3, map[string]float64{"1": 1}),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			minTab, err := tt.min.Tableau()
			require.NoError(t, err)
			maxTab, err := tt.max.Tableau()
			require.NoError(t, err)

			minSolver, maxSolver := NewSolver(minTab), NewSolver(maxTab)
			minSol, err := minSolver.Run()
			require.NoError(t, err)
			maxSol, err := maxSolver.Run()
			require.NoError(t, err)

			assert.Equal(t, maxSolver.Steps(), minSolver.Steps())
			assert.InDelta(t, -maxSol.Objective(), minSol.Objective(), tol)
			assert.InDeltaSlice(t, maxSol.Values(2), minSol.Values(2), tol)
		})
	}
}

func TestMinimizationTwoPivots(t *testing.T) {
	tab := build(t, "min", []float64{-1, -1},
		le(4, map[string]float64{"1": 1, "2": 1}),
		le(3, map[string]float64{"1": 1}),
	)

	s := NewSolver(tab)
	sol, err := s.Run()
	require.NoError(t, err)
	assertSolution(t, map[int]float64{0: -4, 1: 3, 2: 1}, sol)
	assert.Equal(t, []Step{{Row: 1, Col: 1}, {Row: 0, Col: 2}}, s.Steps())
}

func TestPivotInvariants(t *testing.T) {
	tab := binding(t)
	s := NewSolver(tab)

	for !s.Optimal() {
		row, col, err := s.SelectPivot()
		require.NoError(t, err)
		require.NoError(t, s.Pivot(row, col))

		for r := 0; r < tab.Objective(); r++ {
			want := 0.0
			if r == row {
				want = 1
			}
			assert.InDelta(t, want, tab.At(r, col), tol, "row %d col %d", r, col)
			assert.GreaterOrEqual(t, tab.RHSAt(r), -tol, "rhs of row %d", r)
		}
		assert.InDelta(t, 0, tab.At(tab.Objective(), col), tol)
		assert.Equal(t, col, tab.Basic(row))
		for r := 0; r < tab.Rows(); r++ {
			assert.Len(t, tab.Row(r), tab.Width())
		}
	}
	assert.Len(t, s.Steps(), 3)
}

func TestPivotZero(t *testing.T) {
	tab := textbook(t)
	before := tab.Clone()

	s := NewSolver(tab)
	err := s.Pivot(0, 4)
	assert.True(t, errors.Is(err, ErrZeroPivot))
	assert.Equal(t, before.String(), tab.String())
	assert.Empty(t, s.Steps())
}

func TestSelectPivot(t *testing.T) {
	t.Run("most negative column, minimum ratio", func(t *testing.T) {
		row, col, err := NewSolver(binding(t)).SelectPivot()
		require.NoError(t, err)
		assert.Equal(t, 0, row)
		assert.Equal(t, 2, col)
	})

	t.Run("ties keep earliest", func(t *testing.T) {
		tab := build(t, "max", []float64{1, 1},
			le(2, map[string]float64{"1": 1}),
			le(2, map[string]float64{"1": 1, "2": 1}),
		)
		row, col, err := NewSolver(tab).SelectPivot()
		require.NoError(t, err)
		assert.Equal(t, 0, row)
		assert.Equal(t, 1, col)
	})

	t.Run("minimize picks most positive", func(t *testing.T) {
		tab := build(t, "min", []float64{-1, -5},
			le(10, map[string]float64{"1": 1, "2": 1}),
			le(6, map[string]float64{"2": 2}),
		)
		row, col, err := NewSolver(tab).SelectPivot()
		require.NoError(t, err)
		assert.Equal(t, 1, row)
		assert.Equal(t, 2, col)
	})

	t.Run("negative entries are not eligible", func(t *testing.T) {
		tab := build(t, "max", []float64{0, 1},
			ge(0, map[string]float64{"1": 3, "2": -1}),
			le(5, map[string]float64{"2": 1}),
		)
		row, col, err := NewSolver(tab).SelectPivot()
		require.NoError(t, err)
		assert.Equal(t, 1, row)
		assert.Equal(t, 2, col)
	})
}

func TestOptimal(t *testing.T) {
	tab := textbook(t)
	s := NewSolver(tab)
	assert.False(t, s.Optimal())

	// objective column 0 never blocks minimization
	tab = build(t, "min", []float64{1, 1}, le(1, map[string]float64{"1": 1}))
	assert.True(t, NewSolver(tab).Optimal())

	tab = build(t, "max", []float64{1e-12, 0}, le(1, map[string]float64{"1": 1}))
	assert.True(t, NewSolver(tab).Optimal())
	assert.False(t, NewSolver(tab, WithEpsilon(0)).Optimal())
}

func TestExtractIdempotent(t *testing.T) {
	s := NewSolver(binding(t))
	_, err := s.Run()
	require.NoError(t, err)

	first := s.Extract()
	second := s.Extract()
	assert.Equal(t, first, second)
	assert.False(t, math.IsNaN(first.Objective()))
}

func TestExtractDefaultsToZero(t *testing.T) {
	s := NewSolver(textbook(t))
	sol := s.Extract()
	assert.Equal(t, Solution{0: 0, 1: 0, 2: 0}, sol)
}

func TestSolutionString(t *testing.T) {
	sol := Solution{0: 12, 2: 0, 1: 4}
	assert.Equal(t, "z=12 x1=4 x2=0", sol.String())
	assert.Equal(t, []float64{4, 0}, sol.Values(2))
}
