package planfile

import (
	"fmt"
	"strings"

	"github.com/kkpan11/heavydb/pkg/plan"
)

// arity is the number of inputs each op takes; -1 means at least two.
var arity = map[string]int{
	"scan":      0,
	"values":    0,
	"project":   1,
	"filter":    1,
	"calc":      1,
	"aggregate": 1,
	"sort":      1,
	"modify":    1,
	"join":      2,
	"union":     -1,
}

func build(s nodeSpec, inputs []plan.Node) (plan.Node, error) {
	op := strings.ToLower(s.Op)
	want, ok := arity[op]
	if !ok {
		return nil, fmt.Errorf("unknown op %q", s.Op)
	}
	switch {
	case want < 0 && len(inputs) < 2:
		return nil, fmt.Errorf("%s needs at least 2 inputs, got %d", op, len(inputs))
	case want >= 0 && len(inputs) != want:
		return nil, fmt.Errorf("%s needs %d inputs, got %d", op, want, len(inputs))
	}

	hints, err := parseHints(s.Hints)
	if err != nil {
		return nil, err
	}

	switch op {
	case "scan":
		t, err := buildTable(s)
		if err != nil {
			return nil, err
		}
		return plan.NewTableScan(t, hints...), nil

	case "project":
		exprs, err := parseExprs(s.Exprs)
		if err != nil {
			return nil, err
		}
		return plan.NewProject(inputs[0], exprs, s.Fields, hints...), nil

	case "filter":
		if s.Condition == nil {
			return nil, fmt.Errorf("filter needs a condition")
		}
		cond, err := parseExpr(s.Condition)
		if err != nil {
			return nil, fmt.Errorf("condition: %w", err)
		}
		return plan.NewFilter(inputs[0], cond), nil

	case "calc":
		exprs, err := parseExprs(s.Exprs)
		if err != nil {
			return nil, err
		}
		var cond plan.Expr
		if s.Condition != nil {
			if cond, err = parseExpr(s.Condition); err != nil {
				return nil, fmt.Errorf("condition: %w", err)
			}
		}
		return plan.NewCalc(inputs[0], exprs, s.Fields, cond, hints...), nil

	case "aggregate":
		aggs := make([]plan.AggCall, len(s.Aggs))
		for i, a := range s.Aggs {
			t, err := ParseType(a.Type)
			if err != nil {
				return nil, fmt.Errorf("aggs[%d]: %w", i, err)
			}
			aggs[i] = plan.AggCall{Agg: a.Agg, Distinct: a.Distinct, Operands: a.Operands, T: t, Name: a.Name}
		}
		return plan.NewAggregate(inputs[0], s.Group, aggs, hints...), nil

	case "join":
		jt := plan.InnerJoin
		if s.JoinType != "" {
			if jt, ok = plan.ParseJoinType(s.JoinType); !ok {
				return nil, fmt.Errorf("unknown join_type %q", s.JoinType)
			}
		}
		cond := plan.Expr(plan.Bool(true))
		if s.Condition != nil {
			if cond, err = parseExpr(s.Condition); err != nil {
				return nil, fmt.Errorf("condition: %w", err)
			}
		}
		return plan.NewJoin(inputs[0], inputs[1], cond, jt, hints...), nil

	case "sort":
		coll := make([]plan.Collation, len(s.Collation))
		for i, c := range s.Collation {
			if coll[i], err = parseCollation(c); err != nil {
				return nil, fmt.Errorf("collation[%d]: %w", i, err)
			}
		}
		var offset, fetch plan.Expr
		if s.Offset != nil {
			if offset, err = parseExpr(s.Offset); err != nil {
				return nil, fmt.Errorf("offset: %w", err)
			}
		}
		if s.Fetch != nil {
			if fetch, err = parseExpr(s.Fetch); err != nil {
				return nil, fmt.Errorf("fetch: %w", err)
			}
		}
		return plan.NewSort(inputs[0], coll, offset, fetch), nil

	case "union":
		return plan.NewUnion(s.All, inputs...), nil

	case "values":
		cols, err := parseColumns(s.Columns)
		if err != nil {
			return nil, err
		}
		tuples := make([][]plan.Literal, len(s.Tuples))
		for i, row := range s.Tuples {
			if len(row) != len(cols) {
				return nil, fmt.Errorf("tuples[%d] has %d values, want %d", i, len(row), len(cols))
			}
			tuples[i] = make([]plan.Literal, len(row))
			for j, v := range row {
				if err := checkFinite(v); err != nil {
					return nil, fmt.Errorf("tuples[%d][%d]: %w", i, j, err)
				}
				tuples[i][j] = plan.Literal{Value: v, T: cols[j].Type}
			}
		}
		return plan.NewValues(cols, tuples), nil

	case "modify":
		t, err := buildTable(s)
		if err != nil {
			return nil, err
		}
		mop, ok := plan.ParseModifyOperation(s.Operation)
		if !ok {
			return nil, fmt.Errorf("unknown operation %q", s.Operation)
		}
		return plan.NewTableModify(inputs[0], t, mop, s.UpdateColumns, s.Flattened), nil
	}
	panic("unreachable: op " + op)
}

func buildTable(s nodeSpec) (*plan.Table, error) {
	if len(s.Table) == 0 {
		return nil, fmt.Errorf("%s needs a table name", s.Op)
	}
	cols, err := parseColumns(s.Columns)
	if err != nil {
		return nil, err
	}
	return plan.NewTable(s.Table, cols), nil
}

func parseColumns(specs []columnSpec) ([]plan.Column, error) {
	cols := make([]plan.Column, len(specs))
	for i, c := range specs {
		if c.Name == "" {
			return nil, fmt.Errorf("columns[%d] has no name", i)
		}
		t, err := ParseType(c.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", c.Name, err)
		}
		cols[i] = plan.Column{Name: c.Name, Type: t}
	}
	return cols, nil
}

func parseCollation(c collationSpec) (plan.Collation, error) {
	coll := plan.Collation{Field: c.Field}
	switch strings.ToUpper(c.Direction) {
	case "", "ASC", "ASCENDING":
		coll.Direction = plan.Ascending
	case "DESC", "DESCENDING":
		coll.Direction = plan.Descending
	default:
		return coll, fmt.Errorf("unknown direction %q", c.Direction)
	}
	switch strings.ToUpper(c.Nulls) {
	case "", "UNSPECIFIED":
		coll.Nulls = plan.NullsUnspecified
	case "FIRST":
		coll.Nulls = plan.NullsFirst
	case "LAST":
		coll.Nulls = plan.NullsLast
	default:
		return coll, fmt.Errorf("unknown nulls %q", c.Nulls)
	}
	return coll, nil
}
