// Package pipeline runs the load → explain → render pipeline shared by the
// CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: parse a TOML plan file into a plan tree ([planfile])
//  2. Explain: assign ids and build the relation records ([explain])
//  3. Render: write the records as JSON, an indented text tree, Graphviz
//     DOT or SVG
//
// The rendered bytes are cached under the plan's content hash and the
// output options, so explaining an unchanged file is a single cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Plan:   data,
//	    Format: pipeline.FormatJSON,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kkpan11/heavydb/pkg/cache"
	"github.com/kkpan11/heavydb/pkg/errors"
	"github.com/kkpan11/heavydb/pkg/planfile"
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// DefaultFormat is the output format when none is given.
const DefaultFormat = FormatJSON

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatText: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Plan is the TOML plan file content.
	Plan []byte `json:"-"`

	Format   string `json:"format,omitempty"`
	Compact  bool   `json:"compact,omitempty"`  // json on a single line
	Detailed bool   `json:"detailed,omitempty"` // dot/svg labels with attributes
	Refresh  bool   `json:"refresh,omitempty"`  // bypass cache reads

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Plan is the loaded plan. It is nil when Output came from the cache.
	Plan *planfile.Plan

	// PlanHash is the content hash of the plan file.
	PlanHash string

	// Output is the rendered document.
	Output []byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether Output came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics. Counts are zero on a
// cache hit.
type Stats struct {
	NodeCount   int // distinct plan nodes
	Records     int // relation records written
	LoadTime    time.Duration
	ExplainTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, text, dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Plan) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "plan is required")
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// KeyOpts returns the cache key options for the rendered output. Options
// that do not affect the chosen format are left out so they do not split
// the cache.
func (o *Options) KeyOpts() cache.ExplainKeyOpts {
	k := cache.ExplainKeyOpts{Format: o.Format}
	switch o.Format {
	case FormatJSON:
		k.Compact = o.Compact
	case FormatDOT, FormatSVG:
		k.Detailed = o.Detailed
	}
	return k
}
