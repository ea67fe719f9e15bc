package instance

import (
	"strconv"

	"github.com/pkg/errors"

	"q.log/tableau/model"
)

var (
	ErrNoObjective     = errors.New("instance: no objective coefficients")
	ErrEmptyConstraint = errors.New("instance: constraint has no variables")
	ErrBadSign         = errors.New("instance: unknown constraint sign")
	ErrBadVariable     = errors.New("instance: bad variable index")
)

// Constraint is one row of a problem: sum(Vars[j] * xj) Sign Assign.
// Vars is keyed by the 1-based variable index written as a string.
type Constraint struct {
	Vars   map[string]float64 `json:"vars"`
	Sign   string             `json:"sign"`
	Assign float64            `json:"assign"`
}

// Problem is a linear program as read from a problem document.
type Problem struct {
	//Method "max" or "min"
	Method string `json:"method"`

	//X objective function coefficients
	X []float64 `json:"x"`

	//Cond constraints
	Cond []Constraint `json:"cond"`
}

// slack returns the slack/surplus coefficient for sign, 0 for an equality.
func slack(sign string) (float64, bool) {
	switch sign {
	case ">", ">=":
		return -1, true
	case "<", "<=":
		return 1, true
	case "=", "==":
		return 0, true
	}
	return 0, false
}

// coefficients returns the dense coefficient vector x1..xn of c. Keys must
// be written in canonical form, "01" or "+1" would alias "1".
func (c Constraint) coefficients(n int) ([]float64, error) {
	row := make([]float64, n)
	for key, v := range c.Vars {
		j, err := strconv.Atoi(key)
		if err != nil || j < 1 || j > n {
			return nil, errors.Wrapf(ErrBadVariable, "%q not in 1..%d", key, n)
		}
		if strconv.Itoa(j) != key {
			return nil, errors.Wrapf(ErrBadVariable, "%q is not a canonical index", key)
		}
		row[j-1] = v
	}
	return row, nil
}

// Validate checks every constraint, reporting the first malformed one.
func (p *Problem) Validate() error {
	if len(p.X) == 0 {
		return ErrNoObjective
	}
	for line, c := range p.Cond {
		if len(c.Vars) == 0 {
			return errors.Wrapf(ErrEmptyConstraint, "row %d", line)
		}
		if _, ok := slack(c.Sign); !ok {
			return errors.Wrapf(ErrBadSign, "row %d: %q", line, c.Sign)
		}
		if _, err := c.coefficients(len(p.X)); err != nil {
			return errors.Wrapf(err, "row %d", line)
		}
	}
	return nil
}

// Normalized returns the constraints with every equality split into a
// "<=" and a ">=" row.
func (p *Problem) Normalized() []Constraint {
	out := make([]Constraint, 0, len(p.Cond))
	for _, c := range p.Cond {
		if s, _ := slack(c.Sign); s != 0 {
			out = append(out, c)
			continue
		}
		le, ge := c, c
		le.Sign, ge.Sign = "<=", ">="
		out = append(out, le, ge)
	}
	return out
}

// Tableau validates the problem and builds its initial tableau: one row per
// constraint with its slack/surplus column set to +1 for "<" and "<=", -1 for
// ">" and ">=", then the objective row with negated coefficients.
func (p *Problem) Tableau() (*model.Tableau, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	cond := p.Normalized()
	n, k := len(p.X), len(cond)
	t := model.New(n, k, model.ParseDirection(p.Method))

	for line, c := range cond {
		coefs, err := c.coefficients(n)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", line)
		}
		row := make([]float64, t.Width())
		copy(row[1:], coefs)
		row[1+n+line], _ = slack(c.Sign)
		if err := t.PushRow(row, c.Assign); err != nil {
			return nil, err
		}
	}

	obj := make([]float64, t.Width())
	obj[0] = 1
	for j, x := range p.X {
		obj[j+1] = -x
	}
	if err := t.PushRow(obj, 0); err != nil {
		return nil, err
	}

	return t, nil
}
