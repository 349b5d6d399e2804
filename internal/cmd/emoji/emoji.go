// Package emoji provides the symbols used in CLI output.
package emoji

const (
	// Success marks a completed operation.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a notice the user should read.
	Warning = "!"

	// Info marks general information.
	Info = "i"

	// Current marks the active filter category.
	Current = "*"

	// Unknown marks an unrecognized state.
	Unknown = "?"
)
