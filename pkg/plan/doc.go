// Package plan models relational plan trees: typed operator nodes with
// ordered inputs and attributes.
//
// # Overview
//
// A plan is built bottom-up from constructors such as [NewTableScan],
// [NewFilter] and [NewJoin]. Each constructor assigns the node a
// process-unique [NodeID]. Identity is carried by that id, never by
// structure: two scans of the same table built separately are distinct
// nodes, while a node passed as input to several parents is one node with
// several references.
//
//	emps := plan.NewTableScan(plan.NewTable([]string{"hr", "emps"}, cols), plan.Hint{Name: "HASH"})
//	f := plan.NewFilter(emps, plan.NewCall(">", plan.Boolean, plan.Ref(2), plan.Int(10)))
//	p := plan.NewProject(f, []plan.Expr{plan.Ref(0)}, []string{"empid"})
//
// # Describing Nodes
//
// Every node describes itself through [Node.Explain], which appends its
// attributes, in order, to an [Attributes] collector owned by the caller.
// Input nodes may be appended as attribute values; consumers treat those as
// structure and take children from [Node.Inputs].
//
// # Capabilities
//
// Optional behavior is exposed through small interfaces rather than variant
// checks: [Scanner] for nodes that read a table and [Hintable] for nodes
// that carry hints.
//
// # Concurrency
//
// Nodes are immutable after construction and safe to share between
// goroutines. [Attributes] is not safe for concurrent use.
package plan
