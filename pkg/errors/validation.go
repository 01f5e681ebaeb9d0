package errors

import (
	"strings"
	"unicode"
)

// ValidateNodeName validates the name a plan file gives to a node.
// Names are referenced by later nodes' inputs, so they must be non-empty
// identifiers without whitespace or control characters.
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPlan, "node name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidPlan, "node name too long (max 128 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidPlan, "node name %q contains whitespace or control characters", name)
		}
	}
	return nil
}

// ValidatePath validates a plan file path given on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid control characters")
		}
	}
	return nil
}

// ValidateFormat checks that format is one of allowed (case-insensitive).
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if strings.EqualFold(format, a) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}
