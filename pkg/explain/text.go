package explain

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kkpan11/heavydb/pkg/errors"
	"github.com/kkpan11/heavydb/pkg/plan"
)

// TextOption configures [Text].
type TextOption func(*textWriter)

// WithOpStyle decorates each relOp name, e.g. with terminal colors.
func WithOpStyle(style func(string) string) TextOption {
	return func(t *textWriter) { t.opStyle = style }
}

// WithIDs prefixes each line with the node's id from a finished session.
func WithIDs(w *Writer) TextOption {
	return func(t *textWriter) { t.ids = w }
}

type textWriter struct {
	opStyle func(string) string
	ids     *Writer
	printed map[plan.NodeID]bool
	b       strings.Builder
}

// Text renders the plan under root as an indented operator tree, one node
// per line:
//
//	LogicalFilter(condition=>($1, 10))
//	  LogicalTableScan(table=[hr, emps])
//
// A node shared by several parents is printed in full under the first one
// only; later parents get a one-line back-reference marked with "^", e.g.
// "^0: LogicalTableScan" when ids are known. Output is linear in the number
// of distinct nodes.
func Text(root plan.Node, opts ...TextOption) (string, error) {
	if root == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "explain: nil root")
	}
	if err := plan.Validate(root); err != nil {
		return "", errors.Wrap(errors.ErrCodeUnresolvedChild, err, "explain text")
	}
	t := &textWriter{
		opStyle: func(s string) string { return s },
		printed: make(map[plan.NodeID]bool),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.node(root, 0)
	return t.b.String(), nil
}

func (t *textWriter) node(n plan.Node, depth int) {
	t.b.WriteString(strings.Repeat("  ", depth))
	seen := t.printed[n.ID()]
	if seen {
		t.b.WriteByte('^')
	}
	if t.ids != nil {
		if id, ok := t.ids.IDOf(n); ok {
			t.b.WriteString(id + ": ")
		}
	}
	t.b.WriteString(t.opStyle(n.Kind().String()))
	if seen {
		t.b.WriteByte('\n')
		return
	}
	t.printed[n.ID()] = true

	t.b.WriteString("(" + strings.Join(Terms(n), ", ") + ")\n")

	for _, in := range n.Inputs() {
		t.node(in, depth+1)
	}
}

// Terms returns n's attributes as name=value strings in the order n
// describes them, followed by its hints. Input nodes are left out.
func Terms(n plan.Node) []string {
	attrs := plan.NewAttributes()
	n.Explain(attrs)
	var terms []string
	for _, a := range attrs.Drain() {
		if _, ok := a.Value.(plan.Node); ok {
			continue
		}
		terms = append(terms, a.Name+"="+formatTerm(a.Value))
	}
	if hints := Hints(n); hints != "" {
		terms = append(terms, "hints=["+hints+"]")
	}
	return terms
}

func formatTerm(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatTerm(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprint(v)
}
