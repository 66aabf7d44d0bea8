package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arthur-debert/nanodoc/types"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "create", "find", "get")
	Cause       string   // The underlying cause (e.g., "document not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for malformed user input
func NewValidationError(operation, field, value string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("invalid %s: %q", field, value),
		Suggestions: suggestions,
	}
}

// NewNotFoundError creates an error for missing documents
func NewNotFoundError(operation, collection, id string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("document %q not found in %s", id, collection),
		Suggestions: suggestions,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation, issue string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %s", issue),
		Suggestions: suggestions,
	}
}

// NewStoreError creates an error for store failures, describing the known
// error kinds in user terms
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "store operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		var se *types.SchemaError
		switch {
		case errors.As(underlying, &se):
			cause = fmt.Sprintf("document does not match schema (%s)", se.Kind)
			details = se.Error()
			suggestions = append(suggestions, CommonSuggestions.CheckSchema)
		case errors.Is(underlying, types.ErrCorruptCollection):
			cause = "collection file is corrupt"
			suggestions = append(suggestions, CommonSuggestions.CheckFile)
		case errors.Is(underlying, types.ErrMissingCollection):
			cause = "collection does not exist"
			suggestions = append(suggestions, CommonSuggestions.ListCollections)
		case errors.Is(underlying, types.ErrStorage):
			cause = "could not access collection file"
			suggestions = append(suggestions, CommonSuggestions.CheckPerms)
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	return NewStoreError(operation, err, suggestions...)
}

// Common error messages and suggestions
var (
	CommonSuggestions = struct {
		CheckSchema     string
		CheckFile       string
		CheckData       string
		CheckID         string
		CheckPerms      string
		ListCollections string
		RunHelp         string
	}{
		CheckSchema:     "Compare the document with 'nanodoc schema export <collection>'",
		CheckFile:       "The file must hold a JSON array of objects; restore it or run 'nanodoc wipe'",
		CheckData:       "Verify --data points to the right directory",
		CheckID:         "Verify the document ID exists (try 'find' first)",
		CheckPerms:      "Check file permissions and directory access",
		ListCollections: "Run 'nanodoc collections' to see existing collections",
		RunHelp:         "Run command with --help for usage information",
	}
)
