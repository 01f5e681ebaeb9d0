package plan

// Type is a SQL column type.
type Type struct {
	Name      string // e.g. "INTEGER", "DECIMAL"
	Nullable  bool
	Precision int // 0 when the type has no precision
	Scale     int
}

// Common types.
var (
	Boolean = Type{Name: "BOOLEAN"}
	Integer = Type{Name: "INTEGER"}
	BigInt  = Type{Name: "BIGINT"}
	Double  = Type{Name: "DOUBLE"}
	Text    = Type{Name: "VARCHAR"}
)

// Decimal returns a DECIMAL(precision, scale) type.
func Decimal(precision, scale int) Type {
	return Type{Name: "DECIMAL", Precision: precision, Scale: scale}
}

// Null returns a nullable copy of t.
func (t Type) Null() Type {
	t.Nullable = true
	return t
}

// String formats t as SQL, e.g. "DECIMAL(10, 2)".
func (t Type) String() string {
	if t.Precision > 0 {
		if t.Scale > 0 {
			return t.Name + "(" + itoa(t.Precision) + ", " + itoa(t.Scale) + ")"
		}
		return t.Name + "(" + itoa(t.Precision) + ")"
	}
	return t.Name
}

// Column is a named, typed table column.
type Column struct {
	Name string
	Type Type
}

func (c Column) String() string { return c.Name + " " + c.Type.String() }

// Table is a catalog table referenced by scans and modifications.
type Table struct {
	Name    []string // qualified name, e.g. ["hr", "emps"]
	Columns []Column
}

// NewTable returns a table with the given qualified name and columns.
func NewTable(name []string, cols []Column) *Table {
	return &Table{Name: name, Columns: cols}
}

// QualifiedName returns the table's name parts. A nil table has none.
func (t *Table) QualifiedName() []string {
	if t == nil {
		return nil
	}
	return t.Name
}

// FieldNames returns the column names in declaration order. A nil table
// has none.
func (t *Table) FieldNames() []string {
	if t == nil {
		return nil
	}
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}
