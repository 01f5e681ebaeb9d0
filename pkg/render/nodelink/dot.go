package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/kkpan11/heavydb/pkg/explain"
	"github.com/kkpan11/heavydb/pkg/plan"
)

// IDLookup resolves the id an explain session gave a node.
// [*explain.Writer] implements it.
type IDLookup interface {
	IDOf(n plan.Node) (string, bool)
}

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node's attributes and hints to its label.
	// When false, only the id and relOp are shown.
	Detailed bool

	// IDs labels nodes with the ids of a finished explain session.
	// Nodes without an id, or all nodes when IDs is nil, are labeled by
	// relOp alone.
	IDs IDLookup
}

// ToDOT converts the plan under root to Graphviz DOT. Each distinct node is
// drawn once; edges run from a node to its inputs, so the root is at the
// top. A shared input drawn under several parents has several incoming
// edges, and a node that lists the same input twice gets two edges.
func ToDOT(root plan.Node, opts Options) (string, error) {
	var nodes []plan.Node
	if err := plan.Walk(root, func(n plan.Node) error {
		nodes = append(nodes, n)
		return nil
	}); err != nil {
		return "", fmt.Errorf("walk plan: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, fontname=\"monospace\", margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range nodes {
		fmt.Fprintf(&buf, "  %s [%s];\n", key(n), strings.Join(fmtAttrs(n, fmtLabel(n, opts)), ", "))
	}

	buf.WriteString("\n")
	for _, n := range nodes {
		for i, in := range n.Inputs() {
			if len(n.Inputs()) > 1 {
				fmt.Fprintf(&buf, "  %s -> %s [taillabel=%q];\n", key(n), key(in), strconv.Itoa(i))
				continue
			}
			fmt.Fprintf(&buf, "  %s -> %s;\n", key(n), key(in))
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func key(n plan.Node) string {
	return "n" + strconv.FormatInt(int64(n.ID()), 10)
}

func fmtLabel(n plan.Node, opts Options) string {
	label := n.Kind().String()
	if opts.IDs != nil {
		if id, ok := opts.IDs.IDOf(n); ok {
			label = id + ": " + label
		}
	}
	if !opts.Detailed {
		return label
	}
	terms := explain.Terms(n)
	if len(terms) == 0 {
		return label
	}
	return label + "\n" + strings.Join(terms, "\n")
}

func fmtAttrs(n plan.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if h, ok := n.(plan.Hintable); ok && len(h.Hints()) > 0 {
		attrs = append(attrs, "fillcolor=lightyellow")
	}
	if _, ok := n.(plan.Scanner); ok {
		attrs = append(attrs, "style=\"rounded,filled,bold\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// from its viewBox, so the SVG scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
