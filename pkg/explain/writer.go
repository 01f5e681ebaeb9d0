package explain

import (
	"github.com/charmbracelet/log"

	"github.com/kkpan11/heavydb/pkg/errors"
	"github.com/kkpan11/heavydb/pkg/jsonb"
	"github.com/kkpan11/heavydb/pkg/plan"
)

// Renderer turns a document into JSON text. [jsonb.Builder] is the default.
type Renderer interface {
	ToText(v any) (string, error)
}

// Option configures a [Writer].
type Option func(*Writer)

// WithRenderer sets the renderer used by [Writer.JSON].
func WithRenderer(r Renderer) Option { return func(w *Writer) { w.renderer = r } }

// WithLogger logs each emitted record at debug level.
func WithLogger(l *log.Logger) Option { return func(w *Writer) { w.logger = l } }

// Writer is one explain session. The zero value is not usable; create
// writers with [NewWriter].
type Writer struct {
	renderer   Renderer
	logger     *log.Logger
	registry   *Registry
	rels       []any
	previousID string
	err        error
}

// NewWriter returns an empty session.
func NewWriter(opts ...Option) *Writer {
	w := &Writer{
		renderer: jsonb.NewBuilder(),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// frame is a node whose inputs are being resolved.
type frame struct {
	node plan.Node
	next int      // index of the next input to resolve
	ids  []string // ids of inputs resolved so far
}

// Explain writes root and every node below it that has not been written
// yet. Explaining a node that already has an id does nothing. Once Explain
// fails, the session is abandoned and every later call returns the same
// error.
func (w *Writer) Explain(root plan.Node) error {
	if w.err != nil {
		return w.err
	}
	if root == nil {
		return w.fail(errors.New(errors.ErrCodeInvalidInput, "explain: nil root"))
	}
	if _, ok := w.registry.IDOf(root); ok {
		return nil
	}

	// Explicit work-list instead of recursion: deep plans must not exhaust
	// the stack. Emission order matches a recursive post-order walk.
	onStack := map[plan.NodeID]bool{root.ID(): true}
	stack := []*frame{{node: root}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		inputs := top.node.Inputs()

		if top.next < len(inputs) {
			in := inputs[top.next]
			if in == nil {
				return w.fail(errors.New(errors.ErrCodeUnresolvedChild,
					"%s node %d: input %d is nil", top.node.Kind(), top.node.ID(), top.next))
			}
			if id, ok := w.registry.IDOf(in); ok {
				top.ids = append(top.ids, id)
				top.next++
				continue
			}
			if onStack[in.ID()] {
				return w.fail(errors.New(errors.ErrCodeUnresolvedChild,
					"%s node %d: input %d (%s node %d) is its own ancestor",
					top.node.Kind(), top.node.ID(), top.next, in.Kind(), in.ID()))
			}
			onStack[in.ID()] = true
			stack = append(stack, &frame{node: in})
			continue
		}

		id, err := w.emit(top.node, top.ids)
		if err != nil {
			return w.fail(err)
		}
		delete(onStack, top.node.ID())
		stack = stack[:len(stack)-1]
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.ids = append(parent.ids, id)
			parent.next++
		}
	}
	return nil
}

// emit builds the record for n, whose inputs have ids inputIDs, assigns n
// its id and appends the record.
func (w *Writer) emit(n plan.Node, inputIDs []string) (string, error) {
	rec := jsonb.NewMap()
	rec.Put("id", nil) // keeps id the first key
	rec.Put("relOp", n.Kind().String())

	switch x := n.(type) {
	case plan.Scanner:
		if t := x.Table(); t != nil {
			rec.Put("fieldNames", t.FieldNames())
		}
	case *plan.Aggregate:
		rec.Put("fields", x.Fields())
	}

	if hints := Hints(n); hints != "" {
		rec.Put("hints", hints)
	}

	attrs := plan.NewAttributes()
	n.Explain(attrs)
	for _, a := range attrs.Drain() {
		if _, ok := a.Value.(plan.Node); ok {
			continue
		}
		v, err := toJSON(a.Value)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeCollaborator, err, "%s attribute %q", n.Kind(), a.Name)
		}
		rec.Put(a.Name, v)
	}

	// A single input that is the previous record is implied.
	if len(inputIDs) > 1 || (len(inputIDs) == 1 && inputIDs[0] != w.previousID) {
		rec.Put("inputs", inputIDs)
	}

	id, err := w.registry.Assign(n)
	if err != nil {
		return "", err
	}
	rec.Put("id", id)
	w.rels = append(w.rels, rec)
	w.previousID = id

	if w.logger != nil {
		w.logger.Debug("explained node", "id", id, "relOp", n.Kind(), "inputs", inputIDs)
	}
	return id, nil
}

func (w *Writer) fail(err error) error {
	w.err = err
	w.rels = nil
	return err
}

// IDOf returns the id written for n, if n has been explained.
func (w *Writer) IDOf(n plan.Node) (string, bool) {
	return w.registry.IDOf(n)
}

// Len returns the number of records written so far.
func (w *Writer) Len() int { return len(w.rels) }

// Err returns the error that abandoned the session, if any.
func (w *Writer) Err() error { return w.err }

// Document returns {"rels": [...]} holding every record written so far.
func (w *Writer) Document() (*jsonb.Map, error) {
	if w.err != nil {
		return nil, w.err
	}
	doc := jsonb.NewMap()
	rels := make([]any, len(w.rels))
	copy(rels, w.rels)
	doc.Put("rels", rels)
	return doc, nil
}

// JSON renders [Writer.Document] as JSON text.
func (w *Writer) JSON() (string, error) {
	doc, err := w.Document()
	if err != nil {
		return "", err
	}
	s, err := w.renderer.ToText(doc)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeCollaborator, err, "render explain document")
	}
	return s, nil
}

// ToJSON explains roots in a fresh session and returns the JSON text.
func ToJSON(roots ...plan.Node) (string, error) {
	w := NewWriter()
	for _, r := range roots {
		if err := w.Explain(r); err != nil {
			return "", err
		}
	}
	return w.JSON()
}
