// Package mps reads linear programs in fixed MPS format through GLPK.
package mps

import (
	"runtime"
	"strconv"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"q.log/tableau/instance"
)

// ErrUnsupportedBound is returned for columns that may take negative values.
var ErrUnsupportedBound = errors.New("mps: column is not sign-constrained")

// ReadFile reads an MPS file and returns it as a problem document.
// Double-bounded and fixed rows become a "<=" and a ">=" constraint, finite
// non-zero column bounds become extra constraints, free rows are dropped.
// Free columns and columns with a negative lower bound are rejected with
// ErrUnsupportedBound, every variable of a tableau is non-negative.
func ReadFile(filename string) (*instance.Problem, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, filename); err != nil {
		return nil, errors.Wrapf(err, "mps: read %s", filename)
	}

	p := &instance.Problem{Method: "min"}
	if lp.ObjDir() == glpk.MAX {
		p.Method = "max"
	}
	klog.V(2).InfoS("Read MPS file", "file", filename, "rows", lp.NumRows(), "cols", lp.NumCols(), "method", p.Method)

	//populate obj function
	for c := 1; c <= lp.NumCols(); c++ {
		p.X = append(p.X, lp.ObjCoef(c))
	}

	//populate constraints
	for r := 1; r <= lp.NumRows(); r++ {
		vars := map[string]float64{}
		idxs, row := lp.MatRow(r)
		for i, v := range idxs {
			if v == 0 {
				continue
			}
			vars[strconv.Itoa(int(v))] = row[i]
		}
		if len(vars) == 0 {
			continue
		}

		switch lp.RowType(r) {
		case glpk.UP:
			p.Cond = append(p.Cond, instance.Constraint{Vars: vars, Sign: "<=", Assign: lp.RowUB(r)})
		case glpk.LO:
			p.Cond = append(p.Cond, instance.Constraint{Vars: vars, Sign: ">=", Assign: lp.RowLB(r)})
		case glpk.DB, glpk.FX:
			p.Cond = append(p.Cond,
				instance.Constraint{Vars: vars, Sign: "<=", Assign: lp.RowUB(r)},
				instance.Constraint{Vars: vars, Sign: ">=", Assign: lp.RowLB(r)},
			)
		}
	}

	//column bounds as rows
	for c := 1; c <= lp.NumCols(); c++ {
		vars := map[string]float64{strconv.Itoa(c): 1}
		switch lp.ColType(c) {
		case glpk.FR, glpk.UP:
			return nil, errors.Wrapf(ErrUnsupportedBound, "column %d has no lower bound", c)
		}
		lb := lp.ColLB(c)
		if lb < 0 {
			return nil, errors.Wrapf(ErrUnsupportedBound, "column %d has lower bound %g", c, lb)
		}
		if lb > 0 {
			p.Cond = append(p.Cond, instance.Constraint{Vars: vars, Sign: ">=", Assign: lb})
		}
		switch lp.ColType(c) {
		case glpk.DB, glpk.FX:
			p.Cond = append(p.Cond, instance.Constraint{Vars: vars, Sign: "<=", Assign: lp.ColUB(c)})
		}
	}

	return p, nil
}
