package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys.
type Keyer interface {
	// ExplainKey returns the key for planHash rendered with opts.
	ExplainKey(planHash string, opts ExplainKeyOpts) string
}

// ExplainKeyOpts are the output options that change the rendered bytes.
type ExplainKeyOpts struct {
	Format   string `json:"format"`             // json, text, dot or svg
	Compact  bool   `json:"compact,omitempty"`  // json without indentation
	Detailed bool   `json:"detailed,omitempty"` // dot/svg labels with attributes
}

// DefaultKeyer produces keys of the form "explain:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ExplainKey hashes planHash together with opts.
func (DefaultKeyer) ExplainKey(planHash string, opts ExplainKeyOpts) string {
	return hashKey("explain", planHash, opts)
}

// Hash returns the hex SHA-256 of data. Plan files are identified by it.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "prefix:<sha256 of the JSON-encoded parts>".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}
