package plan

import "errors"

var (
	// ErrCycle is returned by [Walk] and [Validate] when a node is reachable
	// from itself.
	ErrCycle = errors.New("plan contains a cycle")

	// ErrNilInput is returned by [Walk] and [Validate] when a node lists a
	// nil input.
	ErrNilInput = errors.New("plan node has a nil input")
)

// Walk calls fn once for every distinct node reachable from root, children
// before parents, inputs in order. A node shared by several parents is
// visited once, the first time it is reached. Walk stops at the first error
// returned by fn.
func Walk(root Node, fn func(Node) error) error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[NodeID]int)

	var dfs func(n Node) error
	dfs = func(n Node) error {
		color[n.ID()] = gray
		for _, in := range n.Inputs() {
			if in == nil {
				return ErrNilInput
			}
			switch color[in.ID()] {
			case white:
				if err := dfs(in); err != nil {
					return err
				}
			case gray:
				return ErrCycle
			}
		}
		color[n.ID()] = black
		return fn(n)
	}

	if root == nil {
		return ErrNilInput
	}
	return dfs(root)
}

// Validate reports whether the plan under root is a finite DAG with no nil
// inputs.
func Validate(root Node) error {
	return Walk(root, func(Node) error { return nil })
}

// Count returns the number of distinct nodes reachable from root.
func Count(root Node) int {
	n := 0
	_ = Walk(root, func(Node) error { n++; return nil })
	return n
}
