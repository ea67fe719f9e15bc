package simplex

import (
	"fmt"
	"slices"
	"strings"
)

// Solution maps a variable index to its value. Index 0 holds the objective
// value, indices 1..n the decision variables.
type Solution map[int]float64

// Objective returns the optimal objective value.
func (s Solution) Objective() float64 {
	return s[0]
}

// Values returns the decision variables x1..xn in order.
func (s Solution) Values(n int) []float64 {
	x := make([]float64, n)
	for j := 1; j <= n; j++ {
		x[j-1] = s[j]
	}
	return x
}

func (s Solution) String() string {
	keys := make([]int, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == 0 {
			parts = append(parts, fmt.Sprintf("z=%g", s[k]))
			continue
		}
		parts = append(parts, fmt.Sprintf("x%d=%g", k, s[k]))
	}
	return strings.Join(parts, " ")
}

// Extract reads the current assignment off the tableau. It does not mutate
// the tableau, so calling it twice yields the same Solution.
func (s *Solver) Extract() Solution {
	t := s.t
	res := make(Solution, t.N()+1)
	for i := 0; i < t.Objective(); i++ {
		if v := t.Basic(i); 1 <= v && v <= t.N() {
			res[v] = t.RHSAt(i)
		}
	}

	for j := 1; j <= t.N(); j++ {
		if _, ok := res[j]; !ok {
			res[j] = 0
		}
	}
	res[0] = t.RHSAt(t.Objective())

	return res
}
