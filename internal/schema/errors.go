package schema

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedMetadata reports a type or property missing a required attribute
	ErrMalformedMetadata = errors.New("malformed metadata")
	// ErrDuplicateType reports an entity or complex type declared twice
	ErrDuplicateType = errors.New("duplicate type")
	// ErrComplexTypeCycle reports complex types that reference each other
	ErrComplexTypeCycle = errors.New("complex type cycle")
	// ErrNestingTooDeep reports complex nesting beyond the configured depth
	ErrNestingTooDeep = errors.New("complex type nesting too deep")
)

// MetadataError is a single problem found while building a Schema
type MetadataError struct {
	Kind    error  // one of the Err* sentinels
	Element string // EntityType, ComplexType, Property, document
	Name    string
	Message string
}

// Error implements the error interface
func (e *MetadataError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s: %s: %s", e.Element, e.Name, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Element, e.Kind, e.Message)
}

// Unwrap returns the sentinel kind
func (e *MetadataError) Unwrap() error {
	return e.Kind
}

// MetadataErrors aggregates every problem found in a metadata document
type MetadataErrors struct {
	Errors []*MetadataError
}

// Add records a problem
func (me *MetadataErrors) Add(kind error, element, name, format string, args ...any) {
	me.Errors = append(me.Errors, &MetadataError{
		Kind:    kind,
		Element: element,
		Name:    name,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors returns true if any problem was recorded
func (me *MetadataErrors) HasErrors() bool {
	return len(me.Errors) > 0
}

// Error implements the error interface
func (me *MetadataErrors) Error() string {
	if !me.HasErrors() {
		return "invalid metadata"
	}
	if len(me.Errors) == 1 {
		return fmt.Sprintf("invalid metadata: %s", me.Errors[0])
	}

	messages := make([]string, len(me.Errors))
	for i, err := range me.Errors {
		messages[i] = "  - " + err.Error()
	}
	return fmt.Sprintf("invalid metadata:\n%s", strings.Join(messages, "\n"))
}

// Unwrap exposes each problem to errors.Is and errors.As
func (me *MetadataErrors) Unwrap() []error {
	errs := make([]error, len(me.Errors))
	for i, err := range me.Errors {
		errs[i] = err
	}
	return errs
}
