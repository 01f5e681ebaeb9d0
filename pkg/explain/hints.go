package explain

import (
	"strings"

	"github.com/kkpan11/heavydb/pkg/plan"
)

// Hints returns the hints of n, lowercased and joined with "|" in their
// original order. It returns "" when n cannot carry hints or has none.
func Hints(n plan.Node) string {
	h, ok := n.(plan.Hintable)
	if !ok {
		return ""
	}
	hints := h.Hints()
	if len(hints) == 0 {
		return ""
	}
	parts := make([]string, len(hints))
	for i, hint := range hints {
		parts[i] = strings.ToLower(hint.String())
	}
	return strings.Join(parts, "|")
}
