// Package explain serializes plan trees into self-contained JSON documents.
//
// # Overview
//
// A [Writer] walks a plan depth-first and appends one record per distinct
// node to a "rels" list. Children are always written before the parents
// that reference them, so a reader can rebuild the tree in a single pass:
//
//	{
//	  "rels": [
//	    {"id": "0", "relOp": "LogicalTableScan", "fieldNames": [...], "table": [...]},
//	    {"id": "1", "relOp": "LogicalFilter", "condition": {...}},
//	    {"id": "2", "relOp": "LogicalJoin", ..., "inputs": ["1", "0"]}
//	  ]
//	}
//
// # Identity
//
// Each node receives an id the first time it is written: "0", "1", ... in
// emission order, with no gaps. Identity is [plan.NodeID], not structure.
// A node referenced by several parents is written once; later references
// reuse its id.
//
// # Records
//
// A record holds, in order:
//   - id and relOp
//   - fieldNames for table scans, fields for aggregates
//   - hints, when the node carries any (see [Hints])
//   - the node's own attributes from [plan.Node.Explain], except those whose
//     value is a node
//   - inputs, the ids of the node's children
//
// inputs is omitted for leaves, and for a node whose only child is the
// record written immediately before it.
//
// # Errors
//
// A session that fails is abandoned: [Writer.Document] and [Writer.JSON]
// keep returning the first error and never a partial document. Errors carry
// codes from pkg/errors: UNRESOLVED_CHILD_REFERENCE for nil inputs and
// cycles, DUPLICATE_ASSIGNMENT for registry misuse and COLLABORATOR_FAILURE
// for values that cannot be rendered.
//
// # Concurrency
//
// A Writer is a single-use, single-goroutine session. Create one Writer per
// document.
package explain
