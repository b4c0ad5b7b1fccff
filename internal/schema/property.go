package schema

import (
	"strconv"
	"strings"

	"github.com/business-central-sdk/bcschema/internal/csdl"
	"github.com/business-central-sdk/bcschema/internal/edm"
)

// Property is a single field definition. Its type is resolved and its policy
// flags are read once, when the Schema is built.
type Property struct {
	name      string
	ref       edm.TypeRef
	nullable  bool
	maxLength int
	readOnly  bool
	fillable  bool
	owner     string

	// not owned; the Schema outlives its properties
	schema *Schema
}

func newProperty(def csdl.Property, s *Schema, owner string) *Property {
	p := &Property{
		name:     def.Name,
		ref:      edm.Resolve(def.Type),
		nullable: true,
		owner:    owner,
		schema:   s,
	}

	if def.Nullable != "" {
		p.nullable = ParseBool(def.Nullable)
	}

	// "max" and other non-numeric lengths mean unbounded
	if n, err := strconv.Atoi(strings.TrimSpace(def.MaxLength)); err == nil && n > 0 {
		p.maxLength = n
	}

	p.readOnly = s.PropertyIsReadOnly(owner, p.name)
	p.fillable = s.PropertyIsFillable(owner, p.name)

	return p
}

// Name returns the property name
func (p *Property) Name() string {
	return p.name
}

// Type returns the declared wire type
func (p *Property) Type() string {
	return p.ref.Raw
}

// TypeRef returns the resolved type
func (p *Property) TypeRef() edm.TypeRef {
	return p.ref
}

// Nullable reports whether null is an acceptable value
func (p *Property) Nullable() bool {
	return p.nullable
}

// MaxLength returns the declared maximum length, if any
func (p *Property) MaxLength() (int, bool) {
	return p.maxLength, p.maxLength > 0
}

// ReadOnly reports whether client code must not write the property
func (p *Property) ReadOnly() bool {
	return p.readOnly
}

// Fillable reports whether client code may write the property
func (p *Property) Fillable() bool {
	return p.fillable
}

// Owner returns the name of the entity or complex type declaring the property
func (p *Property) Owner() string {
	return p.owner
}

// ComplexType resolves the referenced complex type, if the property has one
func (p *Property) ComplexType() (*ComplexType, bool) {
	if p.ref.Kind != edm.KindComplex {
		return nil, false
	}
	return p.schema.ComplexType(p.ref.Complex)
}

// EntityType resolves the entity type named by the declared type. This is
// how navigation properties reach their target.
func (p *Property) EntityType() (*EntityType, bool) {
	return p.schema.EntityType(p.ref.Raw)
}

// DocType returns the documentation type: string, bool, float, int, or the
// name of a resolved complex type.
func (p *Property) DocType() string {
	if p.ref.Kind == edm.KindComplex {
		if _, ok := p.ComplexType(); !ok {
			return "string"
		}
	}
	return p.ref.DocType()
}
