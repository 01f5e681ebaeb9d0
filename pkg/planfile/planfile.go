package planfile

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/kkpan11/heavydb/pkg/errors"
	"github.com/kkpan11/heavydb/pkg/plan"
)

// Plan is a loaded plan file.
type Plan struct {
	Root  plan.Node
	Names []string // node names in declaration order

	nodes map[string]plan.Node
}

// Node returns the node declared under name.
func (p *Plan) Node(name string) (plan.Node, bool) {
	n, ok := p.nodes[name]
	return n, ok
}

type file struct {
	Root  string     `toml:"root"`
	Nodes []nodeSpec `toml:"node"`
}

type nodeSpec struct {
	Name   string   `toml:"name"`
	Op     string   `toml:"op"`
	Inputs []string `toml:"inputs"`
	Hints  []string `toml:"hints"`

	// scan, modify
	Table   []string     `toml:"table"`
	Columns []columnSpec `toml:"columns"`

	// project, calc, filter, join
	Fields    []string         `toml:"fields"`
	Exprs     []map[string]any `toml:"exprs"`
	Condition map[string]any   `toml:"condition"`

	// aggregate
	Group []int     `toml:"group"`
	Aggs  []aggSpec `toml:"aggs"`

	// join
	JoinType string `toml:"join_type"`

	// sort
	Collation []collationSpec `toml:"collation"`
	Offset    map[string]any  `toml:"offset"`
	Fetch     map[string]any  `toml:"fetch"`

	// union
	All bool `toml:"all"`

	// values
	Tuples [][]any `toml:"tuples"`

	// modify
	Operation     string   `toml:"operation"`
	UpdateColumns []string `toml:"update_columns"`
	Flattened     bool     `toml:"flattened"`
}

type columnSpec struct {
	Name string `toml:"name"`
	Type string `toml:"type"`
}

type aggSpec struct {
	Agg      string `toml:"agg"`
	Distinct bool   `toml:"distinct"`
	Operands []int  `toml:"operands"`
	Type     string `toml:"type"`
	Name     string `toml:"name"`
}

type collationSpec struct {
	Field     int    `toml:"field"`
	Direction string `toml:"direction"`
	Nulls     string `toml:"nulls"`
}

// Load reads and parses the plan file at path.
func Load(path string) (*Plan, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "plan file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read plan file %s", path)
	}
	return Parse(data)
}

// Parse builds the plan described by TOML data. Unknown keys are rejected
// so that typos do not silently drop attributes.
func Parse(data []byte) (*Plan, error) {
	var f file
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "decode plan")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidPlan, "unknown keys: %s", strings.Join(keys, ", "))
	}
	if len(f.Nodes) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidPlan, "plan has no nodes")
	}

	p := &Plan{nodes: make(map[string]plan.Node, len(f.Nodes))}
	for i, spec := range f.Nodes {
		if err := errors.ValidateNodeName(spec.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "node %d", i)
		}
		if _, dup := p.nodes[spec.Name]; dup {
			return nil, errors.New(errors.ErrCodeInvalidPlan, "node %q declared twice", spec.Name)
		}
		inputs := make([]plan.Node, len(spec.Inputs))
		for j, name := range spec.Inputs {
			in, ok := p.nodes[name]
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidPlan, "node %q: unknown input %q (inputs must be declared first)", spec.Name, name)
			}
			inputs[j] = in
		}
		n, err := build(spec, inputs)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPlan, err, "node %q", spec.Name)
		}
		p.nodes[spec.Name] = n
		p.Names = append(p.Names, spec.Name)
	}

	rootName := f.Root
	if rootName == "" {
		rootName = p.Names[len(p.Names)-1]
	}
	root, ok := p.nodes[rootName]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidPlan, "root %q is not a declared node", rootName)
	}
	p.Root = root
	return p, nil
}
