package types

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors returned by the store match one of these
// through errors.Is.
var (
	// ErrSchemaViolation is returned when a document does not conform to its
	// schema (undeclared field, type mismatch, missing required field).
	ErrSchemaViolation = errors.New("schema violation")

	// ErrCorruptCollection is returned when a collection file cannot be parsed
	// as a sequence of documents.
	ErrCorruptCollection = errors.New("corrupt collection")

	// ErrMissingCollection is returned by operations that require a
	// collection file to exist already.
	ErrMissingCollection = errors.New("missing collection")

	// ErrIdentifierFormat is returned when a string is not a well-formed
	// document identifier.
	ErrIdentifierFormat = errors.New("invalid identifier format")

	// ErrStorage covers file system failures while reading or writing a
	// collection.
	ErrStorage = errors.New("storage failure")
)

// ViolationKind distinguishes the ways a document can violate its schema.
type ViolationKind int

const (
	// UndeclaredField means the document carries a field the schema does not
	// declare.
	UndeclaredField ViolationKind = iota
	// TypeMismatch means a field's runtime type differs from its declaration.
	TypeMismatch
	// MissingRequiredField means a required field is absent. Only reported
	// by schemas built with strict required checking.
	MissingRequiredField
)

// String returns the string representation of the ViolationKind
func (k ViolationKind) String() string {
	switch k {
	case UndeclaredField:
		return "undeclared field"
	case TypeMismatch:
		return "type mismatch"
	case MissingRequiredField:
		return "missing required field"
	default:
		return "unknown violation"
	}
}

// SchemaError describes a single schema violation.
type SchemaError struct {
	Kind     ViolationKind
	Path     string // Dotted path of the offending field (e.g. "profile.age")
	Expected string // Declared kind, for type mismatches
	Got      string // Runtime kind, for type mismatches
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	switch e.Kind {
	case TypeMismatch:
		return fmt.Sprintf("schema violation: field %q must be %s, got %s", e.Path, e.Expected, e.Got)
	default:
		return fmt.Sprintf("schema violation: %s %q", e.Kind, e.Path)
	}
}

// Is matches ErrSchemaViolation
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaViolation
}

// CollectionError reports a failure loading or saving a collection file.
type CollectionError struct {
	Op   string // "load", "save", "wipe", ...
	Name string // Canonical collection name
	Path string // Collection file path
	Kind error  // One of ErrCorruptCollection, ErrMissingCollection, ErrStorage
	Err  error  // Underlying cause, may be nil
}

// Error implements the error interface
func (e *CollectionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s collection %q (%s): %v", e.Op, e.Name, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s collection %q (%s): %v: %v", e.Op, e.Name, e.Path, e.Kind, e.Err)
}

// Is matches the error kind
func (e *CollectionError) Is(target error) bool {
	return target == e.Kind
}

// Unwrap returns the underlying cause
func (e *CollectionError) Unwrap() error {
	return e.Err
}

// IdentifierFormatError is returned when parsing a malformed identifier.
type IdentifierFormatError struct {
	Value  string
	Prefix string
}

// Error implements the error interface
func (e *IdentifierFormatError) Error() string {
	return fmt.Sprintf("invalid identifier %q: expected %s:<uuid-v4>", e.Value, e.Prefix)
}

// Is matches ErrIdentifierFormat
func (e *IdentifierFormatError) Is(target error) bool {
	return target == ErrIdentifierFormat
}
