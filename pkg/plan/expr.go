package plan

import (
	"fmt"
	"strconv"
	"strings"
)

// Expr is a scalar row expression.
type Expr interface {
	Type() Type
	String() string
}

// InputRef references a field of the node's input row by position.
type InputRef struct {
	Index int
	T     Type
}

// Ref returns a reference to input field i.
func Ref(i int) InputRef { return InputRef{Index: i, T: Integer} }

func (r InputRef) Type() Type     { return r.T }
func (r InputRef) String() string { return "$" + itoa(r.Index) }

// Literal is a constant value. A nil Value is SQL NULL.
type Literal struct {
	Value any
	T     Type
}

// Int returns an INTEGER literal.
func Int(v int64) Literal { return Literal{Value: v, T: Integer} }

// Str returns a VARCHAR literal.
func Str(s string) Literal { return Literal{Value: s, T: Text} }

// Bool returns a BOOLEAN literal.
func Bool(b bool) Literal { return Literal{Value: b, T: Boolean} }

// Null returns a NULL literal of type t.
func Null(t Type) Literal { return Literal{T: t.Null()} }

func (l Literal) Type() Type { return l.T }

func (l Literal) String() string {
	switch v := l.Value.(type) {
	case nil:
		return "null:" + l.T.Name
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	default:
		return fmt.Sprint(v)
	}
}

// Call applies an operator or function to operands.
type Call struct {
	Op       string
	Operands []Expr
	T        Type
}

// NewCall returns a call of op with result type t.
func NewCall(op string, t Type, operands ...Expr) Call {
	return Call{Op: op, Operands: operands, T: t}
}

func (c Call) Type() Type { return c.T }

func (c Call) String() string {
	parts := make([]string, len(c.Operands))
	for i, o := range c.Operands {
		parts[i] = o.String()
	}
	return c.Op + "(" + strings.Join(parts, ", ") + ")"
}

// AggCall is one aggregate function application in an [Aggregate].
type AggCall struct {
	Agg      string // e.g. "SUM", "COUNT"
	Distinct bool
	Operands []int // input field positions
	T        Type
	Name     string // output field name
}

func (a AggCall) String() string {
	var b strings.Builder
	b.WriteString(a.Agg)
	b.WriteByte('(')
	if a.Distinct {
		b.WriteString("DISTINCT ")
	}
	for i, o := range a.Operands {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("$" + itoa(o))
	}
	b.WriteByte(')')
	return b.String()
}

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "DESCENDING"
	}
	return "ASCENDING"
}

// NullDirection places nulls in a sort.
type NullDirection int

const (
	NullsUnspecified NullDirection = iota
	NullsFirst
	NullsLast
)

func (n NullDirection) String() string {
	switch n {
	case NullsFirst:
		return "FIRST"
	case NullsLast:
		return "LAST"
	}
	return "UNSPECIFIED"
}

// Collation orders rows by one field.
type Collation struct {
	Field     int
	Direction Direction
	Nulls     NullDirection
}

func (c Collation) String() string {
	s := itoa(c.Field)
	if c.Direction == Descending {
		s += " DESC"
	}
	switch c.Nulls {
	case NullsFirst:
		s += "-nulls-first"
	case NullsLast:
		s += "-nulls-last"
	}
	return s
}

// JoinType is the kind of a [Join].
type JoinType int

const (
	InnerJoin JoinType = iota
	LeftJoin
	RightJoin
	FullJoin
	SemiJoin
	AntiJoin
)

var joinTypeNames = [...]string{"inner", "left", "right", "full", "semi", "anti"}

func (j JoinType) String() string {
	if j < 0 || int(j) >= len(joinTypeNames) {
		return "unknown"
	}
	return joinTypeNames[j]
}

// ParseJoinType parses a lowercase join type name.
func ParseJoinType(s string) (JoinType, bool) {
	for i, n := range joinTypeNames {
		if strings.EqualFold(n, s) {
			return JoinType(i), true
		}
	}
	return InnerJoin, false
}

// ModifyOperation is the DML operation of a [TableModify].
type ModifyOperation int

const (
	Insert ModifyOperation = iota
	Update
	Delete
	Merge
)

var modifyNames = [...]string{"INSERT", "UPDATE", "DELETE", "MERGE"}

func (m ModifyOperation) String() string {
	if m < 0 || int(m) >= len(modifyNames) {
		return "UNKNOWN"
	}
	return modifyNames[m]
}

// ParseModifyOperation parses an operation name such as "insert".
func ParseModifyOperation(s string) (ModifyOperation, bool) {
	for i, n := range modifyNames {
		if strings.EqualFold(n, s) {
			return ModifyOperation(i), true
		}
	}
	return Insert, false
}

func itoa(i int) string { return strconv.Itoa(i) }
