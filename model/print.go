package model

import (
	"bytes"
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Print writes a human readable snapshot of the tableau: the header line,
// the column names and every row prefixed by its basic column, with the
// right-hand side as the last column.
func (t *Tableau) Print(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Action: %v, N: %d, K: %d\n", t.action, t.n, t.k); err != nil {
		return err
	}
	if t.Rows() == 0 {
		return nil
	}

	header := fmt.Sprintf("%8s", "z")
	for i := 1; i < t.Width(); i++ {
		header += fmt.Sprintf("%8s", fmt.Sprintf("x%d", i))
	}
	if _, err := fmt.Fprintf(w, "X:  %s | %s\n", header, "res"); err != nil {
		return err
	}

	aug := mat.NewDense(t.Rows(), t.Width()+1, nil)
	aug.Augment(t.m, mat.NewVecDense(t.Rows(), t.RHS()))
	for i := 0; i < t.Rows(); i++ {
		row := aug.Slice(i, i+1, 0, t.Width()+1)
		line := fmt.Sprintf("%8.3f", mat.Formatted(row, mat.Squeeze()))
		if _, err := fmt.Fprintf(w, "%2d: %s\n", t.basis[i], line); err != nil {
			return err
		}
	}

	return nil
}

func (t *Tableau) String() string {
	var buf bytes.Buffer
	_ = t.Print(&buf)
	return buf.String()
}
