package record

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrUnknownField reports a property the entity type does not declare
	ErrUnknownField = errors.New("unknown field")
	// ErrReadOnlyField reports a write to a read-only property
	ErrReadOnlyField = errors.New("field is read-only")
	// ErrGuardedField reports a write to a property that is not fillable
	ErrGuardedField = errors.New("field is not fillable")
	// ErrInvalidValue reports a value the property cannot hold
	ErrInvalidValue = errors.New("invalid value")
)

// FieldError represents a rejected write on a specific field
type FieldError struct {
	Field string
	Kind  error
}

// Error implements the error interface
func (fe FieldError) Error() string {
	return fmt.Sprintf("%s: %s", fe.Field, fe.Kind)
}

// Unwrap returns the sentinel kind
func (fe FieldError) Unwrap() error {
	return fe.Kind
}

// NewFieldError creates a new FieldError
func NewFieldError(field string, kind error) FieldError {
	return FieldError{
		Field: field,
		Kind:  kind,
	}
}

// FieldErrors contains every rejected write of a Fill
type FieldErrors struct {
	Fields map[string]FieldError `json:"fields"`
}

// NewFieldErrors creates a new FieldErrors instance
func NewFieldErrors() *FieldErrors {
	return &FieldErrors{
		Fields: make(map[string]FieldError),
	}
}

// Add records a rejected write
func (fe *FieldErrors) Add(err FieldError) {
	if fe.Fields == nil {
		fe.Fields = make(map[string]FieldError)
	}
	fe.Fields[err.Field] = err
}

// HasErrors returns true if any write was rejected
func (fe *FieldErrors) HasErrors() bool {
	return len(fe.Fields) > 0
}

// Count returns the number of rejected fields
func (fe *FieldErrors) Count() int {
	return len(fe.Fields)
}

func (fe *FieldErrors) sorted() []FieldError {
	result := make([]FieldError, 0, len(fe.Fields))
	for _, err := range fe.Fields {
		result = append(result, err)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Field < result[j].Field
	})
	return result
}

// Error implements the error interface
func (fe *FieldErrors) Error() string {
	if !fe.HasErrors() {
		return "fill failed"
	}

	errs := fe.sorted()
	if len(errs) == 1 {
		return fmt.Sprintf("fill failed: %s", errs[0])
	}

	messages := make([]string, len(errs))
	for i, err := range errs {
		messages[i] = "  - " + err.Error()
	}
	return fmt.Sprintf("fill failed:\n%s", strings.Join(messages, "\n"))
}

// Unwrap exposes each field error to errors.Is and errors.As
func (fe *FieldErrors) Unwrap() []error {
	errs := fe.sorted()
	result := make([]error, len(errs))
	for i, err := range errs {
		result[i] = err
	}
	return result
}

// MarshalJSON implements json.Marshaler for custom JSON serialization
func (fe *FieldErrors) MarshalJSON() ([]byte, error) {
	fields := make(map[string]string, len(fe.Fields))
	for name, err := range fe.Fields {
		fields[name] = err.Kind.Error()
	}
	return json.Marshal(struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}{
		Error:  "fill_failed",
		Fields: fields,
	})
}
