package jsonb

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnsupportedValue is returned when a value has no JSON representation.
var ErrUnsupportedValue = errors.New("unsupported JSON value")

// Builder creates maps and lists and renders them as JSON text.
type Builder struct {
	// Indent is repeated once per nesting level. Empty renders compact JSON.
	Indent string

	// EscapeHTML escapes <, > and & inside strings.
	EscapeHTML bool
}

// NewBuilder returns a builder producing two-space indented output.
func NewBuilder() *Builder {
	return &Builder{Indent: "  "}
}

// Map returns a new empty ordered map.
func (b *Builder) Map() *Map { return NewMap() }

// List returns a new empty list.
func (b *Builder) List() []any { return []any{} }

// ToText renders v as JSON.
func (b *Builder) ToText(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	if !b.EscapeHTML {
		data = unescapeHTML(data)
	}
	if b.Indent == "" {
		return string(data), nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", b.Indent); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
	}
	return buf.String(), nil
}

// unescapeHTML undoes the \u003c, \u003e and \u0026 escapes json.Marshal
// always applies. Other escape pairs are copied as is, so an escaped
// backslash followed by "u003c" is left alone.
func unescapeHTML(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u00`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' || i+1 >= len(data) {
			out = append(out, c)
			continue
		}
		if data[i+1] == 'u' && i+6 <= len(data) {
			switch string(data[i : i+6]) {
			case `\u003c`:
				out = append(out, '<')
				i += 5
				continue
			case `\u003e`:
				out = append(out, '>')
				i += 5
				continue
			case `\u0026`:
				out = append(out, '&')
				i += 5
				continue
			}
		}
		out = append(out, c, data[i+1])
		i++
	}
	return out
}
