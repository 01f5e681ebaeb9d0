package plan

// Attribute is one named value in a node description.
type Attribute struct {
	Name  string
	Value any
}

// Attributes collects the attributes of the node being described. A
// collector is populated by exactly one [Node.Explain] call and then drained
// once.
type Attributes struct {
	entries []Attribute
}

// NewAttributes returns an empty collector.
func NewAttributes() *Attributes { return &Attributes{} }

// Item appends a name/value pair.
func (a *Attributes) Item(name string, value any) *Attributes {
	a.entries = append(a.entries, Attribute{Name: name, Value: value})
	return a
}

// ItemIf appends a name/value pair when cond is true.
func (a *Attributes) ItemIf(name string, value any, cond bool) *Attributes {
	if cond {
		a.Item(name, value)
	}
	return a
}

// Len returns the number of collected attributes.
func (a *Attributes) Len() int { return len(a.entries) }

// Drain returns the collected attributes and resets the collector.
func (a *Attributes) Drain() []Attribute {
	out := a.entries
	a.entries = nil
	return out
}
