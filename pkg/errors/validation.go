package errors

import (
	"strings"
)

// Output formats accepted by render operations.
var validFormats = map[string]bool{
	"dot": true,
	"svg": true,
	"png": true,
}

// ValidateScanPath checks that a user-supplied path is safe to hand to the
// scanner. It rejects empty paths and paths containing control characters.
func ValidateScanPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}
	for _, r := range path {
		if r < 0x20 || r == 0x7f {
			return New(ErrCodeInvalidPath, "path contains control characters")
		}
	}
	if strings.ContainsRune(path, '\x00') {
		return New(ErrCodeInvalidPath, "path contains NUL byte")
	}
	return nil
}

// ValidateFormat checks that format names a supported render output format.
func ValidateFormat(format string) error {
	if !validFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "unsupported format: %s (expected dot, svg, or png)", format)
	}
	return nil
}

// ValidateDepth checks that a max-depth value is positive.
func ValidateDepth(depth int) error {
	if depth <= 0 {
		return New(ErrCodeInvalidDepth, "max depth must be positive, got %d", depth)
	}
	return nil
}
