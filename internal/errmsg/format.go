// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Search operations
	OpSearch Op = "search options"

	// Option catalog operations
	OpLoadOptions   Op = "load options"
	OpImportOptions Op = "import options"
	OpOpenStore     Op = "open option store"

	// Configuration
	OpLoadConfig  Op = "load configuration"
	OpBuildPicker Op = "build picker"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
