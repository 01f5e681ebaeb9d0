package explain

import (
	stderrors "errors"
	"fmt"
	"reflect"

	"github.com/kkpan11/heavydb/pkg/jsonb"
	"github.com/kkpan11/heavydb/pkg/plan"
)

var errNodeValue = stderrors.New("plan node cannot be rendered as an attribute value")

// toJSON converts an attribute value into maps, lists and scalars the
// document builder can render.
func toJSON(v any) (any, error) {
	switch x := v.(type) {
	case nil, bool, string, int, int32, int64, float32, float64, *jsonb.Map:
		return x, nil
	case []string, []int:
		return x, nil
	case plan.Node:
		return nil, errNodeValue
	case plan.InputRef:
		m := jsonb.NewMap()
		m.Put("input", x.Index)
		return m, nil
	case plan.Literal:
		return literalJSON(x), nil
	case plan.Call:
		return callJSON(x)
	case plan.AggCall:
		m := jsonb.NewMap()
		m.Put("agg", x.Agg)
		m.Put("type", typeJSON(x.T))
		m.Put("distinct", x.Distinct)
		m.Put("operands", nonNil(x.Operands))
		return m, nil
	case plan.Collation:
		m := jsonb.NewMap()
		m.Put("field", x.Field)
		m.Put("direction", x.Direction.String())
		m.Put("nulls", x.Nulls.String())
		return m, nil
	case plan.Type:
		return typeJSON(x), nil
	case plan.Column:
		m := typeJSON(x.Type)
		m.Put("name", x.Name)
		return m, nil
	case *plan.Table:
		return x.Name, nil
	case fmt.Stringer:
		return x.String(), nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		list := make([]any, rv.Len())
		for i := range list {
			e, err := toJSON(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			list[i] = e
		}
		return list, nil
	}
	// Anything else is left to the renderer to accept or reject.
	return v, nil
}

func literalJSON(l plan.Literal) *jsonb.Map {
	m := jsonb.NewMap()
	m.Put("literal", l.Value)
	m.Put("type", l.T.Name)
	m.Put("target_type", l.T.Name)
	m.Put("scale", l.T.Scale)
	m.Put("precision", l.T.Precision)
	m.Put("type_scale", l.T.Scale)
	m.Put("type_precision", l.T.Precision)
	return m
}

func callJSON(c plan.Call) (*jsonb.Map, error) {
	operands := make([]any, len(c.Operands))
	for i, o := range c.Operands {
		v, err := toJSON(o)
		if err != nil {
			return nil, fmt.Errorf("%s operand %d: %w", c.Op, i, err)
		}
		operands[i] = v
	}
	m := jsonb.NewMap()
	m.Put("op", c.Op)
	m.Put("operands", operands)
	m.Put("type", typeJSON(c.T))
	return m, nil
}

func typeJSON(t plan.Type) *jsonb.Map {
	m := jsonb.NewMap()
	m.Put("type", t.Name)
	m.Put("nullable", t.Nullable)
	if t.Precision > 0 {
		m.Put("precision", t.Precision)
		m.Put("scale", t.Scale)
	}
	return m
}

func nonNil(ints []int) []int {
	if ints == nil {
		return []int{}
	}
	return ints
}
