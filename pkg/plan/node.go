package plan

import "sync/atomic"

// NodeID identifies a node for the lifetime of the process.
type NodeID int64

var nodeCounter atomic.Int64

func nextNodeID() NodeID { return NodeID(nodeCounter.Add(1)) }

// Kind is the operator variant of a node.
type Kind int

const (
	KindTableScan Kind = iota
	KindProject
	KindFilter
	KindCalc
	KindAggregate
	KindJoin
	KindSort
	KindUnion
	KindValues
	KindTableModify
)

var kindNames = [...]string{
	KindTableScan:   "LogicalTableScan",
	KindProject:     "LogicalProject",
	KindFilter:      "LogicalFilter",
	KindCalc:        "LogicalCalc",
	KindAggregate:   "LogicalAggregate",
	KindJoin:        "LogicalJoin",
	KindSort:        "LogicalSort",
	KindUnion:       "LogicalUnion",
	KindValues:      "LogicalValues",
	KindTableModify: "LogicalTableModify",
}

// String returns the stable type tag written as relOp.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// Node is one operator in a plan tree.
type Node interface {
	// ID returns the node's identity. Two nodes are the same node iff their
	// IDs are equal.
	ID() NodeID

	// Kind returns the operator variant.
	Kind() Kind

	// Inputs returns the child nodes in operator order.
	Inputs() []Node

	// Fields returns the names of the node's output columns.
	Fields() []string

	// Explain appends the node's attributes to a, in display order.
	Explain(a *Attributes)
}

// Scanner is implemented by nodes that read a table directly.
type Scanner interface {
	Node
	Table() *Table
}

// Hintable is implemented by nodes that may carry hints. A Hintable node
// with no hints returns an empty slice.
type Hintable interface {
	Node
	Hints() []Hint
}

type base struct {
	id     NodeID
	inputs []Node
}

func newBase(inputs ...Node) base {
	return base{id: nextNodeID(), inputs: inputs}
}

func (b *base) ID() NodeID     { return b.id }
func (b *base) Inputs() []Node { return b.inputs }

type hinted struct {
	hints []Hint
}

func (h *hinted) Hints() []Hint { return h.hints }

// fieldsOf returns the output field names of n, or nil when n is nil.
func fieldsOf(n Node) []string {
	if n == nil {
		return nil
	}
	return n.Fields()
}
