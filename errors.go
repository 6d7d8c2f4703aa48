package fieldgate

import (
	"errors"
	"fmt"
	"strings"
)

// Standard sentinel errors for common operations.
var (
	// ErrInvalidParameter is matched by every ValidationError raised
	// while checking a request against an ability.
	ErrInvalidParameter = errors.New("fieldgate: invalid parameter")

	// ErrUnknownModel is returned when a model UID is not present in
	// the schema registry.
	ErrUnknownModel = errors.New("fieldgate: unknown model")
)

// ValidationError reports a request key the principal may not reference.
// The first violation found during traversal aborts the walk and
// propagates unchanged to the caller.
type ValidationError struct {
	Key  string // Offending request key
	Path string // Dotted attribute path; empty at the top level
}

// Error returns the error string. The path is included only when it
// differs from the bare key.
func (e *ValidationError) Error() string {
	if e.Path != "" && e.Path != e.Key {
		return fmt.Sprintf("Invalid parameter %s at %s", e.Key, e.Path)
	}
	return fmt.Sprintf("Invalid parameter %s", e.Key)
}

// Is reports whether the target error matches ValidationError.
// This allows errors.Is(validationErr, ErrInvalidParameter) to return true.
func (e *ValidationError) Is(err error) bool {
	return err == ErrInvalidParameter
}

// NewValidationError returns a new ValidationError for the given request key.
func NewValidationError(key string) *ValidationError {
	return &ValidationError{Key: key}
}

// NewValidationErrorAt returns a new ValidationError with the dotted
// attribute path at which the key was found.
func NewValidationErrorAt(key, path string) *ValidationError {
	return &ValidationError{Key: key, Path: path}
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	var e *ValidationError
	return errors.As(err, &e) || errors.Is(err, ErrInvalidParameter)
}

// UnknownModelError represents an error when a model UID is not registered.
type UnknownModelError struct {
	uid string
}

// Error returns the error string.
func (e *UnknownModelError) Error() string {
	return fmt.Sprintf("fieldgate: model %q not registered", e.uid)
}

// Is reports whether the target error matches UnknownModelError.
// This allows errors.Is(unknownErr, ErrUnknownModel) to return true.
func (e *UnknownModelError) Is(err error) bool {
	return err == ErrUnknownModel
}

// UID returns the model identifier that failed to resolve.
func (e *UnknownModelError) UID() string {
	return e.uid
}

// NewUnknownModelError returns a new UnknownModelError for the given UID.
func NewUnknownModelError(uid string) *UnknownModelError {
	return &UnknownModelError{uid: uid}
}

// IsUnknownModel returns true if the error is an UnknownModelError.
func IsUnknownModel(err error) bool {
	if err == nil {
		return false
	}
	var e *UnknownModelError
	return errors.As(err, &e) || errors.Is(err, ErrUnknownModel)
}

// SchemaError represents an invalid model definition detected while
// building or validating a registry.
type SchemaError struct {
	UID  string // Model the problem belongs to
	Attr string // Attribute name, if the problem is attribute-scoped
	Err  error  // Underlying problem
}

// Error returns the error string.
func (e *SchemaError) Error() string {
	if e.Attr != "" {
		return fmt.Sprintf("fieldgate: schema %s: attribute %q: %v", e.UID, e.Attr, e.Err)
	}
	return fmt.Sprintf("fieldgate: schema %s: %v", e.UID, e.Err)
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// NewSchemaError returns a new SchemaError for the given model.
func NewSchemaError(uid, attr string, err error) *SchemaError {
	return &SchemaError{UID: uid, Attr: attr, Err: err}
}

// IsSchemaError returns true if the error is a SchemaError.
func IsSchemaError(err error) bool {
	if err == nil {
		return false
	}
	var e *SchemaError
	return errors.As(err, &e)
}

// AggregateError represents multiple errors collected during an operation.
type AggregateError struct {
	Errors []error
}

// Error returns the error string.
func (e *AggregateError) Error() string {
	if len(e.Errors) == 0 {
		return "fieldgate: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString("fieldgate: multiple errors:")
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "\n  [%d] %v", i+1, err)
	}
	return sb.String()
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// NewAggregateError returns a new AggregateError if there are errors,
// otherwise returns nil.
func NewAggregateError(errs ...error) error {
	var filtered []error
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &AggregateError{Errors: filtered}
}
