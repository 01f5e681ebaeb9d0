package planfile_test

import (
	"fmt"

	"github.com/kkpan11/heavydb/pkg/explain"
	"github.com/kkpan11/heavydb/pkg/planfile"
)

func ExampleParse() {
	p, err := planfile.Parse([]byte(`
[[node]]
name    = "emps"
op      = "scan"
table   = ["hr", "emps"]
columns = [{ name = "empid", type = "INTEGER" }]

[[node]]
name      = "f"
op        = "filter"
inputs    = ["emps"]
condition = { op = ">", type = "BOOLEAN", operands = [{ input = 0 }, { literal = 10 }] }
`))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	out, _ := explain.Text(p.Root)
	fmt.Print(out)
	// Output:
	// LogicalFilter(condition=>($0, 10))
	//   LogicalTableScan(table=[hr, emps])
}
