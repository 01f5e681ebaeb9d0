// Package nodelink renders plan trees as node-link diagrams.
//
// # Overview
//
// Each plan node becomes a box connected by arrows to its inputs, laid out
// top to bottom with the root first. Labels carry the ids assigned by an
// explain session, so the picture can be read side by side with the JSON
// form.
//
// # Usage
//
//	w := explain.NewWriter()
//	_ = w.Explain(root)
//	dot, err := nodelink.ToDOT(root, nodelink.Options{IDs: w, Detailed: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: node labels include attributes and hints, one per line
//   - IDs: prefixes labels with explain ids
//
// Scans are drawn bold and hinted nodes are highlighted.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
