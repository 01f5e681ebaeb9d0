// Package planfile loads plan trees from TOML.
//
// A plan file is a list of [[node]] tables. Each node has a unique name and
// an op, and refers to its inputs by the names of nodes declared earlier in
// the file, so every file describes a DAG. The root is the node named by the
// top-level root key, or the last node when root is omitted.
//
//	root = "big"
//
//	[[node]]
//	name    = "emps"
//	op      = "scan"
//	table   = ["hr", "emps"]
//	columns = [{ name = "empid", type = "INTEGER" }, { name = "salary", type = "DECIMAL(10, 2)" }]
//	hints   = ["cpu_mode"]
//
//	[[node]]
//	name      = "big"
//	op        = "filter"
//	inputs    = ["emps"]
//	condition = { op = ">", type = "BOOLEAN", operands = [{ input = 1 }, { literal = 1000, type = "INTEGER" }] }
//
// # Expressions
//
// Expressions are inline tables in one of three shapes:
//
//	{ input = 0 }                                  column reference
//	{ literal = 10, type = "INTEGER" }             literal; { null = true, type = "INTEGER" } for NULL
//	{ op = "+", type = "BIGINT", operands = [...] } operator call
//
// Types are SQL names (BOOLEAN, INTEGER, BIGINT, DOUBLE, VARCHAR,
// DECIMAL(p, s)); a trailing " NULL" marks a nullable type.
//
// # Hints
//
// Hints use the text form the explain output prints: "name",
// "name(o1, o2)" or "name(k=v, ...)".
package planfile
