package model

// Direction is the optimization direction of a tableau.
type Direction int

const (
	// None means no recognized direction, a tableau with it is never run.
	None Direction = iota
	Maximize
	Minimize
)

// ParseDirection maps "max" and "min" to their direction, anything else to None.
func ParseDirection(s string) Direction {
	switch s {
	case "max":
		return Maximize
	case "min":
		return Minimize
	default:
		return None
	}
}

func (d Direction) String() string {
	switch d {
	case Maximize:
		return "Max"
	case Minimize:
		return "Min"
	default:
		return "None"
	}
}
