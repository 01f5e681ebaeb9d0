// Package pkg provides the libraries behind relexplain, which writes
// relational query plans as the flat JSON relation list an execution engine
// consumes.
//
// # Overview
//
// The pkg directory is organized by stage:
//
//  1. [plan] - The plan tree: nodes, expressions, types, hints
//  2. [planfile] - Loading plan trees from TOML
//  3. [explain] - The explain session: ids, records, the rels document
//  4. [jsonb] - Ordered maps and the JSON renderer
//  5. [render/nodelink] - Graphviz diagrams of an explained plan
//  6. [pipeline] - Orchestration (load → explain → render) with caching
//
// Supporting packages: [cache] (file and Redis backends), [errors] (coded
// errors), [observability] (hooks) and [buildinfo].
//
// # Architecture
//
//	TOML plan file
//	      ↓
//	 [planfile] package (build the node DAG)
//	      ↓
//	 [explain] package (assign ids, collect attributes, elide inputs)
//	      ↓
//	 JSON / text / DOT / SVG output
//
// # Quick Start
//
//	import (
//	    "github.com/kkpan11/heavydb/pkg/explain"
//	    "github.com/kkpan11/heavydb/pkg/planfile"
//	)
//
//	p, err := planfile.Load("plan.toml")
//	if err != nil {
//	    return err
//	}
//	doc, err := explain.ToJSON(p.Root)
//
// Each node is written once, children before parents. A node's "inputs"
// list is omitted when its only input is the record written just before it.
package pkg
