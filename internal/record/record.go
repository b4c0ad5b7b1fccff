// Package record holds the attribute values of one entity. A Record only
// accepts the properties its EntityType declares, converts every value
// through the declaring Property, and enforces the write policy.
package record

import (
	"sort"

	"github.com/google/uuid"

	"github.com/business-central-sdk/bcschema/internal/edm"
	"github.com/business-central-sdk/bcschema/internal/schema"
)

// Record is a fixed-key attribute container. It is not safe for concurrent
// writes.
type Record struct {
	entity     *schema.EntityType
	attributes map[string]any
	dirty      map[string]struct{}
}

// New creates an empty record for the entity type
func New(et *schema.EntityType) *Record {
	return &Record{
		entity:     et,
		attributes: make(map[string]any),
		dirty:      make(map[string]struct{}),
	}
}

// Hydrate creates a record from server data. Every declared property present
// in raw is converted; unknown keys are dropped. Write policy does not apply.
func Hydrate(et *schema.EntityType, raw map[string]any) *Record {
	r := New(et)
	for key, value := range raw {
		if p, ok := et.Property(key); ok {
			r.attributes[key] = p.Convert(value)
		}
	}
	return r
}

// EntityType returns the entity type the record belongs to
func (r *Record) EntityType() *schema.EntityType {
	return r.entity
}

// Get returns an attribute value and whether it is set
func (r *Record) Get(name string) (any, bool) {
	value, ok := r.attributes[name]
	return value, ok
}

// Set converts and stores a value, rejecting unknown, read-only and
// non-fillable properties.
func (r *Record) Set(name string, value any) error {
	p, ok := r.entity.Property(name)
	if !ok {
		return NewFieldError(name, ErrUnknownField)
	}
	if p.ReadOnly() {
		return NewFieldError(name, ErrReadOnlyField)
	}
	if !p.Fillable() {
		return NewFieldError(name, ErrGuardedField)
	}

	converted := p.Convert(value)
	if !validGUID(p, converted) {
		return NewFieldError(name, ErrInvalidValue)
	}

	r.attributes[name] = converted
	r.dirty[name] = struct{}{}
	return nil
}

// Fill sets every value in attrs. Accepted values are stored even when other
// fields are rejected; the rejections are returned together as *FieldErrors.
func (r *Record) Fill(attrs map[string]any) error {
	errs := NewFieldErrors()
	for name, value := range attrs {
		if err := r.Set(name, value); err != nil {
			if fe, ok := err.(FieldError); ok {
				errs.Add(fe)
			}
		}
	}
	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Attributes returns a copy of the attribute values
func (r *Record) Attributes() map[string]any {
	result := make(map[string]any, len(r.attributes))
	for key, value := range r.attributes {
		result[key] = value
	}
	return result
}

// Dirty returns the sorted names of attributes written since the record was
// created or hydrated.
func (r *Record) Dirty() []string {
	names := make([]string, 0, len(r.dirty))
	for name := range r.dirty {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsDirty returns true if any attribute was written
func (r *Record) IsDirty() bool {
	return len(r.dirty) > 0
}

// Rules returns the validation rules of the entity type
func (r *Record) Rules() schema.RuleSet {
	return r.entity.ValidationRules()
}

// validGUID rejects malformed GUID strings written to guid properties. The
// nil GUID has already been converted to nil.
func validGUID(p *schema.Property, value any) bool {
	ref := p.TypeRef()
	if ref.Kind != edm.KindGuid || ref.Collection {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return true
	}
	_, err := uuid.Parse(s)
	return err == nil
}
