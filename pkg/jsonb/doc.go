// Package jsonb builds JSON documents from ordered maps and lists.
//
// Explain output is compared and diffed as text, so key order matters:
// a [Map] keeps keys in insertion order, and re-putting an existing key
// updates its value in place. This lets a caller reserve a key up front
// ("id" first) and fill it in later.
//
//	b := jsonb.NewBuilder()
//	m := b.Map()
//	m.Put("id", nil)
//	m.Put("relOp", "LogicalTableScan")
//	m.Put("id", "0")
//	s, err := b.ToText(m) // {"id": "0", "relOp": "LogicalTableScan"}
//
// A [Map] marshals through sequencedmap, so encoding/json writes it in key
// order; [Builder.ToText] is json.Marshal plus json.Indent. Plain Go maps
// are written with sorted keys. Values encoding/json cannot represent, such
// as NaN, Inf or channels, produce an error wrapping [ErrUnsupportedValue].
package jsonb
