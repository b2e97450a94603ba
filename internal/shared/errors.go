package shared

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrCompanyScopeMissing occurs when a request has no resolved company.
	ErrCompanyScopeMissing = errors.New("company scope missing")
)

// ValidationError carries field-scoped messages for a rejected write. The
// write is never attempted while the map is non-empty.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError wraps a field error map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// BackendError wraps a storage failure. The message is surfaced to the user
// verbatim and the write is considered failed with no local state mutated.
type BackendError struct {
	Op  string
	Err error
}

func (e *BackendError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// AsValidation reports the field map when err is a ValidationError.
func AsValidation(err error) (map[string]string, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields, true
	}
	return nil, false
}
