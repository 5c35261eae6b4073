// Package apperr defines the error taxonomy shared by all features.
// Usecases raise these at the point of detection; transport maps them
// to HTTP status codes in one place.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the authentication layer.
var (
	// ErrAuthenticationRequired indicates that the request carries no
	// usable credentials. Maps to 401.
	ErrAuthenticationRequired = errors.New("authentication required")

	// ErrPermissionDenied indicates that the caller is authenticated but
	// not allowed to perform the operation. Maps to 403.
	ErrPermissionDenied = errors.New("permission denied")
)

// NotFoundError reports a lookup miss. Entity names the entity kind,
// Field and Value identify the lookup key. Id lookups always use
// Field == "id".
type NotFoundError struct {
	Entity string
	Field  string
	Value  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entity [%s] not found by field [%s] with value [%s]", e.Entity, e.Field, e.Value)
}

// NotFoundByID builds a NotFoundError for an id lookup.
func NotFoundByID(entity string, id uint) *NotFoundError {
	return &NotFoundError{Entity: entity, Field: "id", Value: fmt.Sprint(id)}
}

// UniqueViolationError reports a write that would duplicate a unique field.
type UniqueViolationError struct {
	Field string
	Value string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("value [%s] for field [%s] already exists", e.Value, e.Field)
}

// ValidationError reports an input constraint failure detected past the
// binding layer.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field [%s]: %s", e.Field, e.Message)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsUniqueViolation reports whether err is (or wraps) a UniqueViolationError.
func IsUniqueViolation(err error) bool {
	var target *UniqueViolationError
	return errors.As(err, &target)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}
