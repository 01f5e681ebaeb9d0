package planfile

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kkpan11/heavydb/pkg/plan"
)

var namedTypes = map[string]plan.Type{
	"BOOLEAN": plan.Boolean,
	"INTEGER": plan.Integer,
	"BIGINT":  plan.BigInt,
	"DOUBLE":  plan.Double,
	"VARCHAR": plan.Text,
	"TEXT":    plan.Text,
}

// ParseType parses a SQL type name such as "BIGINT", "DECIMAL(10, 2)" or
// "VARCHAR NULL".
func ParseType(s string) (plan.Type, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return plan.Type{}, fmt.Errorf("missing type")
	}
	nullable := false
	if rest, ok := strings.CutSuffix(s, " NULL"); ok {
		s, nullable = strings.TrimSpace(rest), true
	}

	var t plan.Type
	if name, args, ok := strings.Cut(s, "("); ok {
		args, ok = strings.CutSuffix(args, ")")
		if !ok {
			return plan.Type{}, fmt.Errorf("type %q: missing )", s)
		}
		var nums []int
		for _, a := range strings.Split(args, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(a))
			if err != nil || n < 0 {
				return plan.Type{}, fmt.Errorf("type %q: bad precision %q", s, a)
			}
			nums = append(nums, n)
		}
		if len(nums) > 2 {
			return plan.Type{}, fmt.Errorf("type %q: too many arguments", s)
		}
		t = plan.Type{Name: strings.TrimSpace(name), Precision: nums[0]}
		if len(nums) == 2 {
			t.Scale = nums[1]
		}
	} else if known, ok := namedTypes[s]; ok {
		t = known
	} else {
		return plan.Type{}, fmt.Errorf("unknown type %q", s)
	}

	if nullable {
		t = t.Null()
	}
	return t, nil
}

func parseExprs(raw []map[string]any) ([]plan.Expr, error) {
	exprs := make([]plan.Expr, len(raw))
	for i, m := range raw {
		e, err := parseExpr(m)
		if err != nil {
			return nil, fmt.Errorf("exprs[%d]: %w", i, err)
		}
		exprs[i] = e
	}
	return exprs, nil
}

func parseExpr(m map[string]any) (plan.Expr, error) {
	typ := plan.Type{}
	if s, ok := m["type"].(string); ok {
		t, err := ParseType(s)
		if err != nil {
			return nil, err
		}
		typ = t
	}

	switch {
	case m["input"] != nil:
		idx, ok := m["input"].(int64)
		if !ok || idx < 0 {
			return nil, fmt.Errorf("input must be a non-negative integer, got %v", m["input"])
		}
		if typ.Name == "" {
			return plan.Ref(int(idx)), nil
		}
		return plan.InputRef{Index: int(idx), T: typ}, nil

	case m["null"] != nil:
		if typ.Name == "" {
			return nil, fmt.Errorf("null literal needs a type")
		}
		return plan.Null(typ), nil

	case m["literal"] != nil:
		v := m["literal"]
		if err := checkFinite(v); err != nil {
			return nil, err
		}
		if typ.Name != "" {
			return plan.Literal{Value: v, T: typ}, nil
		}
		switch x := v.(type) {
		case int64:
			return plan.Int(x), nil
		case string:
			return plan.Str(x), nil
		case bool:
			return plan.Bool(x), nil
		case float64:
			return plan.Literal{Value: x, T: plan.Double}, nil
		}
		return nil, fmt.Errorf("unsupported literal %v (%T)", v, v)

	case m["op"] != nil:
		op, ok := m["op"].(string)
		if !ok || op == "" {
			return nil, fmt.Errorf("op must be a string")
		}
		if typ.Name == "" {
			return nil, fmt.Errorf("call %s needs a type", op)
		}
		raw, err := operandTables(m["operands"])
		if err != nil {
			return nil, fmt.Errorf("call %s: %w", op, err)
		}
		operands := make([]plan.Expr, len(raw))
		for i, om := range raw {
			e, err := parseExpr(om)
			if err != nil {
				return nil, fmt.Errorf("call %s: operand %d: %w", op, i, err)
			}
			operands[i] = e
		}
		return plan.NewCall(op, typ, operands...), nil
	}
	return nil, fmt.Errorf("expression needs one of input, literal, null or op")
}

// operandTables accepts both shapes the TOML decoder produces for an array
// of inline tables.
func operandTables(v any) ([]map[string]any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case []map[string]any:
		return x, nil
	case []any:
		tables := make([]map[string]any, len(x))
		for i, r := range x {
			m, ok := r.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("operand %d is not a table", i)
			}
			tables[i] = m
		}
		return tables, nil
	}
	return nil, fmt.Errorf("operands must be a list of tables")
}

// ParseHint parses the text form of a hint: "name", "name(o1, o2)" or
// "name(k=v, ...)".
func ParseHint(s string) (plan.Hint, error) {
	s = strings.TrimSpace(s)
	name, args, hasArgs := strings.Cut(s, "(")
	name = strings.TrimSpace(name)
	if name == "" {
		return plan.Hint{}, fmt.Errorf("hint %q has no name", s)
	}
	h := plan.Hint{Name: name}
	if !hasArgs {
		return h, nil
	}
	args, ok := strings.CutSuffix(args, ")")
	if !ok {
		return plan.Hint{}, fmt.Errorf("hint %q: missing )", s)
	}
	for _, a := range strings.Split(args, ",") {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if k, v, isKV := strings.Cut(a, "="); isKV {
			h.KVOptions = append(h.KVOptions, plan.KV{Key: strings.TrimSpace(k), Value: strings.TrimSpace(v)})
		} else {
			h.Options = append(h.Options, a)
		}
	}
	if len(h.Options) > 0 && len(h.KVOptions) > 0 {
		return plan.Hint{}, fmt.Errorf("hint %q mixes list and key/value options", s)
	}
	return h, nil
}

func parseHints(raw []string) ([]plan.Hint, error) {
	hints := make([]plan.Hint, 0, len(raw))
	for _, s := range raw {
		h, err := ParseHint(s)
		if err != nil {
			return nil, err
		}
		hints = append(hints, h)
	}
	return hints, nil
}

// checkFinite rejects TOML nan and inf literals, which have no JSON form.
func checkFinite(v any) error {
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return fmt.Errorf("literal %v is not a finite number", f)
	}
	return nil
}
