package jsonb

import (
	"errors"
	"math"
	"testing"
)

func TestMapOrder(t *testing.T) {
	m := NewMap()
	m.Put("id", nil)
	m.Put("relOp", "LogicalTableScan")
	m.Put("table", []string{"hr", "emps"})
	m.Put("id", "0")

	keys := m.Keys()
	want := []string{"id", "relOp", "table"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
	if v, _ := m.Get("id"); v != "0" {
		t.Errorf("Get(id) = %v, want 0", v)
	}
	if !m.Has("table") || m.Has("inputs") {
		t.Error("Has() reports wrong membership")
	}
}

func TestToTextCompact(t *testing.T) {
	m := NewMap()
	m.Put("id", "1")
	m.Put("inputs", []string{"0"})
	m.Put("all", true)
	m.Put("fetch", 10)
	m.Put("ratio", 0.5)
	m.Put("empty", []any{})
	m.Put("none", nil)
	m.Put("nested", map[string]any{"b": 2, "a": 1})

	got, err := (&Builder{}).ToText(m)
	if err != nil {
		t.Fatalf("ToText() error: %v", err)
	}
	want := `{"id":"1","inputs":["0"],"all":true,"fetch":10,"ratio":0.5,"empty":[],"none":null,"nested":{"a":1,"b":2}}`
	if got != want {
		t.Errorf("ToText() =\n%s\nwant\n%s", got, want)
	}
}

func TestToTextIndented(t *testing.T) {
	b := NewBuilder()
	rel := b.Map()
	rel.Put("id", "0")
	rel.Put("table", []string{"hr", "emps"})
	doc := b.Map()
	doc.Put("rels", []any{rel})

	got, err := b.ToText(doc)
	if err != nil {
		t.Fatalf("ToText() error: %v", err)
	}
	want := `{
  "rels": [
    {
      "id": "0",
      "table": [
        "hr",
        "emps"
      ]
    }
  ]
}`
	if got != want {
		t.Errorf("ToText() =\n%s\nwant\n%s", got, want)
	}
}

func TestToTextEscaping(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
		in   string
		want string
	}{
		{"quote and backslash", &Builder{}, `a"b\c`, `"a\"b\\c"`},
		{"newline and tab", &Builder{}, "a\nb\tc", `"a\nb\tc"`},
		{"control", &Builder{}, "\x01", `"\u0001"`},
		{"html kept", &Builder{}, "<a&b>", `"<a&b>"`},
		{"html escaped", &Builder{EscapeHTML: true}, "<a>", `"\u003ca\u003e"`},
		{"unicode", &Builder{}, "naïve", `"naïve"`},
		{"escaped backslash before u003c", &Builder{}, `\u003c`, `"\\u003c"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.b.ToText(tt.in)
			if err != nil {
				t.Fatalf("ToText() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ToText(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestToTextUnsupported(t *testing.T) {
	tests := []struct {
		name string
		in   any
	}{
		{"NaN", math.NaN()},
		{"Inf", math.Inf(1)},
		{"nested NaN", []any{1, math.NaN()}},
		{"NaN in map", mapWith("ratio", math.NaN())},
		{"func", func() {}},
		{"channel", make(chan int)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBuilder().ToText(tt.in)
			if !errors.Is(err, ErrUnsupportedValue) {
				t.Errorf("ToText() error = %v, want ErrUnsupportedValue", err)
			}
		})
	}
}

func TestMapMarshalJSON(t *testing.T) {
	m := NewMap()
	m.Put("z", 1)
	m.Put("a", 2)
	data, err := m.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}
	if string(data) != `{"z":1,"a":2}` {
		t.Errorf("MarshalJSON() = %s", data)
	}
}

func mapWith(k string, v any) *Map {
	m := NewMap()
	m.Put(k, v)
	return m
}

func TestToTextHTMLInsideMaps(t *testing.T) {
	inner := NewMap()
	inner.Put("op", ">")
	inner.Put("text", "a<b&c")
	outer := NewMap()
	outer.Put("condition", inner)

	got, err := (&Builder{}).ToText(outer)
	if err != nil {
		t.Fatalf("ToText() error: %v", err)
	}
	if want := `{"condition":{"op":">","text":"a<b&c"}}`; got != want {
		t.Errorf("ToText() = %s, want %s", got, want)
	}

	got, err = (&Builder{EscapeHTML: true}).ToText(outer)
	if err != nil {
		t.Fatalf("ToText() error: %v", err)
	}
	if want := `{"condition":{"op":"\u003e","text":"a\u003cb\u0026c"}}`; got != want {
		t.Errorf("ToText(EscapeHTML) = %s, want %s", got, want)
	}
}
