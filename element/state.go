package element

import "fmt"

// State tells which storage of an element holds the field.
type State uint8

const (
	Physical    State = iota // values at quadrature points are valid
	Transformed              // modal coefficients are valid
)

func (s State) String() string {
	switch s {
	case Physical:
		return "p"
	case Transformed:
		return "t"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}
