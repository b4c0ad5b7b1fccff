// Package schema is the parsed form of a Business Central metadata document.
// A Schema is built once, is read-only afterwards, and may be shared freely
// between goroutines. Its Properties convert raw wire values into typed values
// and derive validation rules for them.
package schema

import (
	"github.com/business-central-sdk/bcschema/internal/edm"
	"github.com/business-central-sdk/bcschema/internal/policy"
)

// ComplexTypeKey tags converted complex values with their type name
const ComplexTypeKey = "$complex_type"

// RuleSet maps a field path to its ordered rule tokens
type RuleSet map[string][]string

// Schema is the immutable root of a parsed metadata document
type Schema struct {
	namespace    string
	entityTypes  map[string]*EntityType
	complexTypes map[string]*ComplexType
	entityOrder  []*EntityType
	complexOrder []*ComplexType
	policy       policy.Source
}

// TypeName strips the vendor namespace from a raw type name
func TypeName(raw string) string {
	return edm.TypeName(raw)
}

// Namespace returns the namespace of the metadata document
func (s *Schema) Namespace() string {
	return s.namespace
}

// EntityType looks up an entity type. Raw type names are normalized first.
func (s *Schema) EntityType(name string) (*EntityType, bool) {
	et, ok := s.entityTypes[edm.TypeName(name)]
	return et, ok
}

// ComplexType looks up a complex type. Raw type names are normalized first.
func (s *Schema) ComplexType(name string) (*ComplexType, bool) {
	ct, ok := s.complexTypes[edm.TypeName(name)]
	return ct, ok
}

// EntityTypes returns all entity types in document order
func (s *Schema) EntityTypes() []*EntityType {
	result := make([]*EntityType, len(s.entityOrder))
	copy(result, s.entityOrder)
	return result
}

// ComplexTypes returns all complex types in document order
func (s *Schema) ComplexTypes() []*ComplexType {
	result := make([]*ComplexType, len(s.complexOrder))
	copy(result, s.complexOrder)
	return result
}

// EntityTypeNames returns the names of all entity types in document order
func (s *Schema) EntityTypeNames() []string {
	names := make([]string, len(s.entityOrder))
	for i, et := range s.entityOrder {
		names[i] = et.name
	}
	return names
}

// PropertyIsReadOnly reports whether client code must not write the property
func (s *Schema) PropertyIsReadOnly(entityType, property string) bool {
	return s.policy.IsReadOnly(entityType, property)
}

// PropertyIsFillable reports whether client code may write the property
func (s *Schema) PropertyIsFillable(entityType, property string) bool {
	return s.policy.IsFillable(entityType, property)
}

// structure is the shared shape of entity and complex types
type structure struct {
	name       string
	properties []*Property
	byName     map[string]*Property
}

func newStructure(name string) structure {
	return structure{
		name:   name,
		byName: make(map[string]*Property),
	}
}

func (s *structure) add(p *Property) {
	s.properties = append(s.properties, p)
	s.byName[p.name] = p
}

// Name returns the type name
func (s *structure) Name() string {
	return s.name
}

// Properties returns the properties in document order
func (s *structure) Properties() []*Property {
	result := make([]*Property, len(s.properties))
	copy(result, s.properties)
	return result
}

// Property looks up a property by exact name
func (s *structure) Property(name string) (*Property, bool) {
	p, ok := s.byName[name]
	return p, ok
}

// HasProperty returns true if the type declares the property
func (s *structure) HasProperty(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// ValidationRules merges the rule sets of every property
func (s *structure) ValidationRules() RuleSet {
	rules := RuleSet{}
	for _, p := range s.properties {
		for key, tokens := range p.ValidationRules() {
			rules[key] = tokens
		}
	}
	return rules
}

// EntityType is a named top-level record shape
type EntityType struct {
	structure
	key        []string
	navigation []*Property
}

// Key returns the names of the key properties
func (et *EntityType) Key() []string {
	result := make([]string, len(et.key))
	copy(result, et.key)
	return result
}

// NavigationProperties returns the navigation properties in document order
func (et *EntityType) NavigationProperties() []*Property {
	result := make([]*Property, len(et.navigation))
	copy(result, et.navigation)
	return result
}

// ComplexType is a named nested structure
type ComplexType struct {
	structure
}

// Convert builds the tagged mapping for a raw complex value. Keys that do not
// match a declared property are dropped; missing properties stay absent.
func (ct *ComplexType) Convert(value any) map[string]any {
	data := map[string]any{ComplexTypeKey: ct.name}

	for key, attr := range toMap(value) {
		if p, ok := ct.byName[key]; ok {
			data[key] = p.Convert(attr)
		}
	}

	return data
}
