package plan

import "strings"

// Hint is an execution directive attached to a node, e.g. cpu_mode or
// overlaps_max_size(2021).
type Hint struct {
	Name string

	// Options holds positional options. Ignored when KVOptions is set.
	Options []string

	// KVOptions holds key/value options in declaration order.
	KVOptions []KV
}

// KV is one key/value hint option.
type KV struct {
	Key   string
	Value string
}

// String renders the hint as name, name(o1, o2) or name(k=v, ...).
func (h Hint) String() string {
	switch {
	case len(h.KVOptions) > 0:
		parts := make([]string, len(h.KVOptions))
		for i, kv := range h.KVOptions {
			parts[i] = kv.Key + "=" + kv.Value
		}
		return h.Name + "(" + strings.Join(parts, ", ") + ")"
	case len(h.Options) > 0:
		return h.Name + "(" + strings.Join(h.Options, ", ") + ")"
	}
	return h.Name
}
