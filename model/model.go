package model

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Tableau is the live simplex state: constraint rows followed by the
// objective row, the right-hand side column and the basis bookkeeping.
//
// Column 0 is the objective column, columns 1..N are the decision variables
// and columns N+1..N+K the slack/surplus variables.
type Tableau struct {
	//m rows x (1+N+K) coefficients, objective row last
	m *mat.Dense

	//rhs right-hand side per row, objective value in the last slot
	rhs []float64

	//basis column basic in each row, 0 if the row was never pivoted
	basis []int

	action Direction

	n int
	k int
}

// New returns an empty tableau for n decision variables and k constraints.
// Rows are added with PushRow.
func New(n, k int, action Direction) *Tableau {
	return &Tableau{
		action: action,
		n:      n,
		k:      k,
	}
}

func (t *Tableau) N() int { return t.n }

func (t *Tableau) K() int { return t.k }

func (t *Tableau) Action() Direction { return t.action }

// Width is the number of columns of every row, 1+N+K.
func (t *Tableau) Width() int {
	return 1 + t.n + t.k
}

// Rows returns the number of rows, objective row included.
func (t *Tableau) Rows() int {
	return len(t.rhs)
}

// Objective returns the index of the objective row.
func (t *Tableau) Objective() int {
	return len(t.rhs) - 1
}

// PushRow appends a row at the end of the tableau.
func (t *Tableau) PushRow(row []float64, rhs float64) error {
	if len(row) != t.Width() {
		return errors.New("mismatch number of columns, i.e. wrong len of row")
	}

	data := make([]float64, len(row))
	copy(data, row)
	if t.m == nil {
		t.m = mat.NewDense(1, t.Width(), data)
	} else {
		t.m = mat.DenseCopyOf(t.m.Grow(1, 0))
		t.m.SetRow(t.Rows(), data)
	}

	t.rhs = append(t.rhs, rhs)
	t.basis = append(t.basis, 0)
	return nil
}

// PopRow removes the last row and returns it with its rhs.
func (t *Tableau) PopRow() ([]float64, float64, error) {
	r := t.Rows()
	if r == 0 {
		return nil, 0, errors.New("row does not exists")
	}

	row := mat.Row(nil, r-1, t.m)
	rhs := t.rhs[r-1]
	if r == 1 {
		t.m = nil
	} else {
		t.m = mat.DenseCopyOf(t.m.Slice(0, r-1, 0, t.Width()))
	}
	t.rhs = t.rhs[:r-1]
	t.basis = t.basis[:r-1]

	return row, rhs, nil
}

// Row returns row i as a slice backed by the tableau buffer, writes through
// it mutate the tableau. It panics if i is out of range.
func (t *Tableau) Row(i int) []float64 {
	t.checkRow(i)
	return t.m.RawRowView(i)
}

// SetRow copies row into row i.
func (t *Tableau) SetRow(i int, row []float64) {
	t.checkRow(i)
	t.m.SetRow(i, row)
}

func (t *Tableau) At(i, j int) float64 {
	t.checkRow(i)
	return t.m.At(i, j)
}

func (t *Tableau) Set(i, j int, v float64) {
	t.checkRow(i)
	t.m.Set(i, j, v)
}

// RHS returns a copy of the right-hand side column.
func (t *Tableau) RHS() []float64 {
	out := make([]float64, len(t.rhs))
	copy(out, t.rhs)
	return out
}

func (t *Tableau) RHSAt(i int) float64 {
	t.checkRow(i)
	return t.rhs[i]
}

func (t *Tableau) SetRHS(i int, v float64) {
	t.checkRow(i)
	t.rhs[i] = v
}

// Basis returns a copy of the row -> basic column mapping.
func (t *Tableau) Basis() []int {
	out := make([]int, len(t.basis))
	copy(out, t.basis)
	return out
}

func (t *Tableau) Basic(i int) int {
	t.checkRow(i)
	return t.basis[i]
}

func (t *Tableau) SetBasic(i, col int) {
	t.checkRow(i)
	if col < 0 || col >= t.Width() {
		panic(mat.ErrColAccess)
	}
	t.basis[i] = col
}

// Matrix returns a read-only view of the coefficients, nil while empty.
func (t *Tableau) Matrix() mat.Matrix {
	if t.m == nil {
		return nil
	}
	return t.m
}

// Clone returns a deep copy of the tableau.
func (t *Tableau) Clone() *Tableau {
	c := &Tableau{
		rhs:    t.RHS(),
		basis:  t.Basis(),
		action: t.action,
		n:      t.n,
		k:      t.k,
	}
	if t.m != nil {
		c.m = mat.DenseCopyOf(t.m)
	}
	return c
}

func (t *Tableau) checkRow(i int) {
	if i < 0 || i >= t.Rows() {
		panic(mat.ErrRowAccess)
	}
}
