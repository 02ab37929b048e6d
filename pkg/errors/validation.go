package errors

import (
	"strings"
	"unicode"
)

// maxSelectorLength bounds a single growth selector (a column or series label).
const maxSelectorLength = 256

// ValidateSelectorList validates a comma-separated growth selector list.
// Empty entries are allowed (they select the default column), but entries may
// not contain control characters or exceed a reasonable length.
func ValidateSelectorList(list string) error {
	for _, sel := range strings.Split(list, ",") {
		sel = strings.TrimSpace(sel)
		if len(sel) > maxSelectorLength {
			return New(ErrCodeInvalidInput, "growth selector too long (max %d characters)", maxSelectorLength)
		}
		for _, r := range sel {
			if unicode.IsControl(r) {
				return New(ErrCodeInvalidInput, "growth selector %q contains control characters", sel)
			}
		}
	}
	return nil
}

// ValidatePath validates an output or input file path given on the command
// line or in a request.
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
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
