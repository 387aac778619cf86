package goshape

import "fmt"

// Operator is a strict comparison operator of a keyset boundary.
type Operator string

func (o Operator) Valid() bool {
	return o == OperatorLT || o == OperatorGT
}

// ForOrdering returns the direction a boundary with this operator pages in.
func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}

// accepts reports whether a three-way comparison result satisfies the
// operator.
func (o Operator) accepts(cmp int) bool {
	switch o {
	case OperatorGT:
		return cmp > 0
	case OperatorLT:
		return cmp < 0
	case operatorEq:
		return cmp == 0
	default:
		return false
	}
}

const (
	OperatorGT Operator = ">"
	OperatorLT Operator = "<"

	// operatorEq is used only when rendering equality filters.
	operatorEq Operator = "="
)
