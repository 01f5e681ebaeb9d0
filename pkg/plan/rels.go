package plan

import "strconv"

// TableScan reads every row of a table.
type TableScan struct {
	base
	hinted
	table *Table
}

// NewTableScan returns a scan of t. A scan of a nil table has no fields and
// describes no table attribute.
func NewTableScan(t *Table, hints ...Hint) *TableScan {
	return &TableScan{base: newBase(), hinted: hinted{hints: hints}, table: t}
}

func (s *TableScan) Kind() Kind       { return KindTableScan }
func (s *TableScan) Table() *Table    { return s.table }
func (s *TableScan) Fields() []string { return s.table.FieldNames() }

func (s *TableScan) Explain(a *Attributes) {
	a.ItemIf("table", s.table.QualifiedName(), s.table != nil)
}

// Project computes a list of expressions over its input.
type Project struct {
	base
	hinted
	exprs []Expr
	names []string
}

// NewProject returns a projection of exprs named names.
func NewProject(input Node, exprs []Expr, names []string, hints ...Hint) *Project {
	return &Project{base: newBase(input), hinted: hinted{hints: hints}, exprs: exprs, names: names}
}

func (p *Project) Kind() Kind       { return KindProject }
func (p *Project) Input() Node      { return p.inputs[0] }
func (p *Project) Exprs() []Expr    { return p.exprs }
func (p *Project) Fields() []string { return p.names }

func (p *Project) Explain(a *Attributes) {
	a.Item("input", p.Input()).
		Item("fields", p.names).
		Item("exprs", p.exprs)
}

// Filter keeps the input rows for which the condition holds.
type Filter struct {
	base
	condition Expr
}

// NewFilter returns a filter of input on condition.
func NewFilter(input Node, condition Expr) *Filter {
	return &Filter{base: newBase(input), condition: condition}
}

func (f *Filter) Kind() Kind       { return KindFilter }
func (f *Filter) Input() Node      { return f.inputs[0] }
func (f *Filter) Condition() Expr  { return f.condition }
func (f *Filter) Fields() []string { return fieldsOf(f.Input()) }

func (f *Filter) Explain(a *Attributes) {
	a.Item("input", f.Input()).
		Item("condition", f.condition)
}

// Calc is a fused projection and optional filter.
type Calc struct {
	base
	hinted
	exprs     []Expr
	names     []string
	condition Expr
}

// NewCalc returns a calc over input. condition may be nil.
func NewCalc(input Node, exprs []Expr, names []string, condition Expr, hints ...Hint) *Calc {
	return &Calc{base: newBase(input), hinted: hinted{hints: hints}, exprs: exprs, names: names, condition: condition}
}

func (c *Calc) Kind() Kind       { return KindCalc }
func (c *Calc) Input() Node      { return c.inputs[0] }
func (c *Calc) Fields() []string { return c.names }

func (c *Calc) Explain(a *Attributes) {
	a.Item("input", c.Input()).
		Item("fields", c.names).
		Item("exprs", c.exprs).
		ItemIf("condition", c.condition, c.condition != nil)
}

// Aggregate groups its input by a set of fields and computes aggregate calls.
type Aggregate struct {
	base
	hinted
	group []int
	aggs  []AggCall
}

// NewAggregate returns an aggregation of input grouped by the fields at
// positions group.
func NewAggregate(input Node, group []int, aggs []AggCall, hints ...Hint) *Aggregate {
	return &Aggregate{base: newBase(input), hinted: hinted{hints: hints}, group: group, aggs: aggs}
}

func (g *Aggregate) Kind() Kind          { return KindAggregate }
func (g *Aggregate) Input() Node         { return g.inputs[0] }
func (g *Aggregate) Group() []int        { return g.group }
func (g *Aggregate) AggCalls() []AggCall { return g.aggs }

// Fields returns the group keys' input names followed by the aggregate
// names. Unnamed aggregates are called $fN after their output position.
func (g *Aggregate) Fields() []string {
	in := fieldsOf(g.Input())
	out := make([]string, 0, len(g.group)+len(g.aggs))
	for _, i := range g.group {
		if i >= 0 && i < len(in) {
			out = append(out, in[i])
		} else {
			out = append(out, "$f"+strconv.Itoa(len(out)))
		}
	}
	for _, c := range g.aggs {
		if c.Name != "" {
			out = append(out, c.Name)
		} else {
			out = append(out, "$f"+strconv.Itoa(len(out)))
		}
	}
	return out
}

func (g *Aggregate) Explain(a *Attributes) {
	a.Item("input", g.Input()).
		Item("group", g.group).
		Item("aggs", g.aggs)
}

// Join combines two inputs on a condition.
type Join struct {
	base
	hinted
	condition Expr
	joinType  JoinType
}

// NewJoin returns a join of left and right.
func NewJoin(left, right Node, condition Expr, joinType JoinType, hints ...Hint) *Join {
	return &Join{base: newBase(left, right), hinted: hinted{hints: hints}, condition: condition, joinType: joinType}
}

func (j *Join) Kind() Kind         { return KindJoin }
func (j *Join) Left() Node         { return j.inputs[0] }
func (j *Join) Right() Node        { return j.inputs[1] }
func (j *Join) JoinType() JoinType { return j.joinType }

// Fields returns the left fields, followed by the right fields unless the
// join is a semi or anti join.
func (j *Join) Fields() []string {
	out := append([]string(nil), fieldsOf(j.Left())...)
	if j.joinType == SemiJoin || j.joinType == AntiJoin {
		return out
	}
	return append(out, fieldsOf(j.Right())...)
}

func (j *Join) Explain(a *Attributes) {
	a.Item("left", j.Left()).
		Item("right", j.Right()).
		Item("condition", j.condition).
		Item("joinType", j.joinType.String())
}

// Sort orders its input and optionally applies offset and fetch.
type Sort struct {
	base
	collation []Collation
	offset    Expr
	fetch     Expr
}

// NewSort returns a sort of input. offset and fetch may be nil.
func NewSort(input Node, collation []Collation, offset, fetch Expr) *Sort {
	return &Sort{base: newBase(input), collation: collation, offset: offset, fetch: fetch}
}

func (s *Sort) Kind() Kind       { return KindSort }
func (s *Sort) Input() Node      { return s.inputs[0] }
func (s *Sort) Fields() []string { return fieldsOf(s.Input()) }

func (s *Sort) Explain(a *Attributes) {
	a.Item("input", s.Input()).
		Item("collation", s.collation).
		ItemIf("offset", s.offset, s.offset != nil).
		ItemIf("fetch", s.fetch, s.fetch != nil)
}

// Union concatenates its inputs, removing duplicates unless all is set.
type Union struct {
	base
	all bool
}

// NewUnion returns a union of inputs.
func NewUnion(all bool, inputs ...Node) *Union {
	return &Union{base: newBase(inputs...), all: all}
}

func (u *Union) Kind() Kind { return KindUnion }
func (u *Union) All() bool  { return u.all }

func (u *Union) Fields() []string {
	if len(u.inputs) == 0 {
		return nil
	}
	return fieldsOf(u.inputs[0])
}

func (u *Union) Explain(a *Attributes) {
	for i, in := range u.inputs {
		a.Item("input#"+strconv.Itoa(i), in)
	}
	a.Item("all", u.all)
}

// Values produces a fixed set of rows.
type Values struct {
	base
	columns []Column
	tuples  [][]Literal
}

// NewValues returns a node producing tuples with the given row type.
func NewValues(columns []Column, tuples [][]Literal) *Values {
	return &Values{base: newBase(), columns: columns, tuples: tuples}
}

func (v *Values) Kind() Kind { return KindValues }

func (v *Values) Fields() []string {
	names := make([]string, len(v.columns))
	for i, c := range v.columns {
		names[i] = c.Name
	}
	return names
}

func (v *Values) Explain(a *Attributes) {
	a.Item("type", v.columns).
		Item("tuples", v.tuples)
}

// TableModify writes its input rows to a table.
type TableModify struct {
	base
	table         *Table
	operation     ModifyOperation
	updateColumns []string
	flattened     bool
}

// NewTableModify returns a modification of table t by op. updateColumns
// is only meaningful for updates.
func NewTableModify(input Node, t *Table, op ModifyOperation, updateColumns []string, flattened bool) *TableModify {
	return &TableModify{base: newBase(input), table: t, operation: op, updateColumns: updateColumns, flattened: flattened}
}

func (m *TableModify) Kind() Kind                 { return KindTableModify }
func (m *TableModify) Input() Node                { return m.inputs[0] }
func (m *TableModify) Operation() ModifyOperation { return m.operation }
func (m *TableModify) Fields() []string           { return []string{"ROWCOUNT"} }

func (m *TableModify) Explain(a *Attributes) {
	a.Item("input", m.Input()).
		ItemIf("table", m.table.QualifiedName(), m.table != nil).
		Item("operation", m.operation.String()).
		ItemIf("updateColumnList", m.updateColumns, len(m.updateColumns) > 0).
		Item("flattened", m.flattened)
}

var (
	_ Scanner  = (*TableScan)(nil)
	_ Hintable = (*TableScan)(nil)
	_ Hintable = (*Project)(nil)
	_ Hintable = (*Calc)(nil)
	_ Hintable = (*Aggregate)(nil)
	_ Hintable = (*Join)(nil)
	_ Node     = (*Filter)(nil)
	_ Node     = (*Sort)(nil)
	_ Node     = (*Union)(nil)
	_ Node     = (*Values)(nil)
	_ Node     = (*TableModify)(nil)
)
