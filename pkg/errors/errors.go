// Package errors provides custom error types for the quotebook system.
// These errors enable programmatic error checking by the presentation
// adapters, which map every failure to a short status string.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is and As are aliases for the standard library functions so callers
// need a single errors import.
var (
	Is = errors.Is
	As = errors.As
)

// Common sentinel errors for the quotebook system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrImportFormat indicates that an imported payload had the wrong shape
	ErrImportFormat = errors.New("invalid import format")

	// ErrSync indicates that reconciling with the remote source failed
	ErrSync = errors.New("sync failed")

	// ErrNoQuotes indicates that there is nothing to display in the current view
	ErrNoQuotes = errors.New("no quotes available")

	// ErrRemoteUnavailable indicates that the remote gateway answered with a server error
	ErrRemoteUnavailable = errors.New("remote unavailable")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ImportFormatError represents an import payload that is not a list of
// quotes or could not be parsed at all.
type ImportFormatError struct {
	Format  string // "json" or "yaml"
	Message string
	Err     error
}

// Error implements the error interface
func (e *ImportFormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s import: %s: %v", e.Format, e.Message, e.Err)
	}
	return fmt.Sprintf("invalid %s import: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ImportFormatError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ImportFormatError) Is(target error) bool {
	return target == ErrImportFormat
}

// NewImportFormatError creates a new ImportFormatError
func NewImportFormatError(format, message string, err error) *ImportFormatError {
	return &ImportFormatError{Format: format, Message: message, Err: err}
}

// APIError represents an unexpected answer from a remote gateway
type APIError struct {
	Gateway    string
	StatusCode int
	Message    string
	Endpoint   string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.Gateway, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.Gateway, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	return e.StatusCode >= 500 && target == ErrRemoteUnavailable
}

// NewAPIError creates a new APIError
func NewAPIError(gateway string, statusCode int, message string) *APIError {
	return &APIError{
		Gateway:    gateway,
		StatusCode: statusCode,
		Message:    message,
	}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// SyncError represents a failed read from the remote gateway during a sync.
// The store is never mutated when a SyncError is returned.
type SyncError struct {
	Gateway string
	RunID   string
	Err     error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	if e.RunID != "" {
		return fmt.Sprintf("sync error for gateway %s (run %s): %v", e.Gateway, e.RunID, e.Err)
	}
	return fmt.Sprintf("sync error for gateway %s: %v", e.Gateway, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SyncError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SyncError) Is(target error) bool {
	return target == ErrSync
}

// NewSyncError creates a new SyncError
func NewSyncError(gateway, runID string, err error) *SyncError {
	return &SyncError{
		Gateway: gateway,
		RunID:   runID,
		Err:     err,
	}
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsImportFormatError checks if an error is an import format error
func IsImportFormatError(err error) bool {
	return errors.Is(err, ErrImportFormat)
}

// IsSyncError checks if an error is a sync error
func IsSyncError(err error) bool {
	return errors.Is(err, ErrSync)
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "delete", "open", "close"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// ResourceError represents an error during resource operations
type ResourceError struct {
	Operation string // "create", "load", "save", "fetch"
	Resource  string // "store", "storage", "gateway", "quote"
	ID        string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s: %s", e.Operation, e.Resource, e.ID, e.Message)
	}
	return fmt.Sprintf("failed to %s %s: %s", e.Operation, e.Resource, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ResourceError) Unwrap() error {
	return e.Err
}

// NewResourceError creates a new ResourceError
func NewResourceError(operation, resource, id string, err error) *ResourceError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ResourceError{
		Operation: operation,
		Resource:  resource,
		ID:        id,
		Message:   message,
		Err:       err,
	}
}

// Helper wrapping functions for common patterns

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapResource wraps an error as a ResourceError
func WrapResource(operation, resource, id string, err error) error {
	if err == nil {
		return nil
	}
	return NewResourceError(operation, resource, id, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}
