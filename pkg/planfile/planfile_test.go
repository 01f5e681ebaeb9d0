package planfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kkpan11/heavydb/pkg/errors"
	"github.com/kkpan11/heavydb/pkg/plan"
)

func TestLoad(t *testing.T) {
	p, err := Load(filepath.Join("testdata", "join_agg.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if diff := cmp.Diff([]string{"emps", "rich", "depts", "j", "agg", "top"}, p.Names); diff != "" {
		t.Errorf("Names mismatch (-want +got):\n%s", diff)
	}
	if p.Root.Kind() != plan.KindSort {
		t.Errorf("Root kind = %s, want LogicalSort", p.Root.Kind())
	}
	if n := plan.Count(p.Root); n != 6 {
		t.Errorf("Count(root) = %d, want 6", n)
	}

	agg, _ := p.Node("agg")
	if diff := cmp.Diff([]string{"name", "headcount"}, agg.Fields()); diff != "" {
		t.Errorf("agg fields mismatch (-want +got):\n%s", diff)
	}

	emps, _ := p.Node("emps")
	scan := emps.(plan.Scanner)
	salary := scan.Table().Columns[2].Type
	if salary != plan.Decimal(10, 2).Null() {
		t.Errorf("salary type = %+v, want nullable DECIMAL(10, 2)", salary)
	}

	j, _ := p.Node("j")
	hints := j.(plan.Hintable).Hints()
	if len(hints) != 1 || hints[0].String() != "overlaps_bucket_threshold(0.718)" {
		t.Errorf("join hints = %v", hints)
	}
}

func TestParseDefaultRootIsLast(t *testing.T) {
	p, err := Parse([]byte(`
[[node]]
name = "a"
op = "values"
columns = [{ name = "x", type = "INTEGER" }]
tuples = [[1], [2]]

[[node]]
name = "b"
op = "project"
inputs = ["a"]
fields = ["x"]
exprs = [{ input = 0 }]
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	b, _ := p.Node("b")
	if p.Root != b {
		t.Errorf("Root = %v, want node b", p.Root)
	}
}

func TestParseSharedInput(t *testing.T) {
	p, err := Parse([]byte(`
[[node]]
name = "s"
op = "scan"
table = ["t"]

[[node]]
name = "u"
op = "union"
inputs = ["s", "s"]
all = true
`))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	ins := p.Root.Inputs()
	if len(ins) != 2 || ins[0] != ins[1] {
		t.Errorf("union inputs = %v, want the same node twice", ins)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ``},
		{"syntax", `[[node]`},
		{"unknown key", "[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]\ncolour = \"red\""},
		{"unknown op", "[[node]]\nname = \"a\"\nop = \"teleport\""},
		{"bad name", "[[node]]\nname = \"a b\"\nop = \"scan\"\ntable = [\"t\"]"},
		{"duplicate", "[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]\n[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]"},
		{"forward reference", "[[node]]\nname = \"f\"\nop = \"filter\"\ninputs = [\"a\"]\ncondition = { literal = true }\n[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]"},
		{"arity", "[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]\n[[node]]\nname = \"j\"\nop = \"join\"\ninputs = [\"a\"]"},
		{"missing condition", "[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]\n[[node]]\nname = \"f\"\nop = \"filter\"\ninputs = [\"a\"]"},
		{"bad type", "[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]\ncolumns = [{ name = \"x\", type = \"BLOB\" }]"},
		{"bad root", "root = \"zz\"\n[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]"},
		{"nan literal", "[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]\n[[node]]\nname = \"f\"\nop = \"filter\"\ninputs = [\"a\"]\ncondition = { literal = nan, type = \"DOUBLE\" }"},
		{"inf literal", "[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]\n[[node]]\nname = \"f\"\nop = \"filter\"\ninputs = [\"a\"]\ncondition = { literal = -inf }"},
		{"inf tuple", "[[node]]\nname = \"v\"\nop = \"values\"\ncolumns = [{ name = \"x\", type = \"DOUBLE\" }]\ntuples = [[inf]]"},
		{"tuple width", "[[node]]\nname = \"v\"\nop = \"values\"\ncolumns = [{ name = \"x\", type = \"INTEGER\" }]\ntuples = [[1, 2]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidPlan) {
				t.Errorf("Parse() error = %v, want %s", err, errors.ErrCodeInvalidPlan)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load() error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestLoadFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.toml")
	if err := os.WriteFile(path, []byte("[[node]]\nname = \"a\"\nop = \"scan\"\ntable = [\"t\"]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.Root.Kind() != plan.KindTableScan {
		t.Errorf("Root kind = %s", p.Root.Kind())
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    plan.Type
		wantErr bool
	}{
		{"INTEGER", plan.Integer, false},
		{"bigint", plan.BigInt, false},
		{"VARCHAR NULL", plan.Text.Null(), false},
		{"DECIMAL(10, 2)", plan.Decimal(10, 2), false},
		{"TIMESTAMP(3)", plan.Type{Name: "TIMESTAMP", Precision: 3}, false},
		{"", plan.Type{}, true},
		{"BLOB", plan.Type{}, true},
		{"DECIMAL(10", plan.Type{}, true},
		{"DECIMAL(a)", plan.Type{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseType(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseType(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseType(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseHint(t *testing.T) {
	tests := []struct {
		in      string
		want    plan.Hint
		wantErr bool
	}{
		{"cpu_mode", plan.Hint{Name: "cpu_mode"}, false},
		{"overlaps_max_size(2021)", plan.Hint{Name: "overlaps_max_size", Options: []string{"2021"}}, false},
		{"g(a, b)", plan.Hint{Name: "g", Options: []string{"a", "b"}}, false},
		{"g(k=v, x = y)", plan.Hint{Name: "g", KVOptions: []plan.KV{{Key: "k", Value: "v"}, {Key: "x", Value: "y"}}}, false},
		{"(a)", plan.Hint{}, true},
		{"g(a", plan.Hint{}, true},
		{"g(a, k=v)", plan.Hint{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHint(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHint(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseHint(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
			if !tt.wantErr && got.String() != tt.in && tt.in != "g(k=v, x = y)" {
				t.Errorf("String() = %q, want round trip of %q", got.String(), tt.in)
			}
		})
	}
}

func TestParseExpr(t *testing.T) {
	e, err := parseExpr(map[string]any{
		"op":   "+",
		"type": "BIGINT",
		"operands": []any{
			map[string]any{"input": int64(0)},
			map[string]any{"literal": int64(1)},
			map[string]any{"null": true, "type": "BIGINT"},
		},
	})
	if err != nil {
		t.Fatalf("parseExpr() error: %v", err)
	}
	if got := e.String(); got != "+($0, 1, null:BIGINT)" {
		t.Errorf("String() = %q", got)
	}

	for _, bad := range []map[string]any{
		{},
		{"input": "x"},
		{"null": true},
		{"op": "+"},
		{"op": "+", "type": "INTEGER", "operands": []any{int64(1)}},
	} {
		if _, err := parseExpr(bad); err == nil {
			t.Errorf("parseExpr(%v) succeeded", bad)
		}
	}
}

func TestLoadExamplePlans(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "plans", "*.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example plans")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			p, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if err := plan.Validate(p.Root); err != nil {
				t.Errorf("Validate() error: %v", err)
			}
			if got, want := plan.Count(p.Root), len(p.Names); got != want {
				t.Errorf("Count() = %d, want %d declared nodes", got, want)
			}
		})
	}
}
