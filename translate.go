package goshape

import (
	"database/sql/driver"
	"fmt"

	"gorm.io/gorm/clause"
)

// toGORMExpression converts a predicate into a clause.Expression over col.
//
// Example:
//
//	Equals{Value: nil}        -> "col IS NULL"
//	Equals{Value: 5}          -> "col = ?", 5
//	Boundary{Operator: ">"}   -> "col > ?"
func toGORMExpression(p Predicate, col clause.Column) clause.Expression {
	switch p := p.(type) {
	case *Equals:
		// clause.Eq renders IS NULL for a nil value.
		return clause.Eq{Column: col, Value: p.Value}
	case *Boundary:
		if p.Operator == OperatorLT {
			return clause.Lt{Column: col, Value: p.Value}
		}

		return clause.Gt{Column: col, Value: p.Value}
	default:
		panic(fmt.Errorf("unexpected predicate %T", p))
	}
}

func toGORMOrderByColumn(o Ordering, col clause.Column) clause.OrderByColumn {
	return clause.OrderByColumn{
		Column: col,
		Desc:   o.Desc(),
		// Replace any ordering the statement already carries.
		Reorder: true,
	}
}

// ToSQL renders the predicate as an SQL condition over column with a "?"
// placeholder, for callers composing raw SQL.
//
// Usage:
//
//	cond, args := p.ToSQL("users.age")
//	query := fmt.Sprintf("SELECT * FROM users WHERE %s", cond)
func (p *Equals) ToSQL(column string) (string, []driver.Value) {
	if p.IsNull() {
		return fmt.Sprintf("%s IS NULL", column), nil
	}

	return fmt.Sprintf("%s %s ?", column, operatorEq), []driver.Value{p.Value}
}

// ToSQL renders the boundary as an SQL condition over column with a "?"
// placeholder.
func (p *Boundary) ToSQL(column string) (string, []driver.Value) {
	return fmt.Sprintf("%s %s ?", column, p.Operator), []driver.Value{p.Value}
}

// ToSQL renders the ordering as "column ASC|DESC".
//
// Usage:
//
//	query := fmt.Sprintf("SELECT * FROM users ORDER BY %s", o.ToSQL("age"))
func (o Ordering) ToSQL(column string) string {
	return fmt.Sprintf("%s %s", column, o.Direction.OrDefault())
}
