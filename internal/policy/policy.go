// Package policy holds the per-entity write policy consulted by the schema:
// which properties client code may fill, and which are read-only.
package policy

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/business-central-sdk/bcschema/internal/models"
)

// Source answers read-only and fillable queries by entity type and property
type Source interface {
	IsReadOnly(entityType, property string) bool
	IsFillable(entityType, property string) bool
}

// Table is an immutable policy table keyed by entity type name
type Table struct {
	entities map[string]*entityPolicy
}

type entityPolicy struct {
	fillable map[string]struct{}
	guarded  map[string]struct{}
	readOnly map[string]struct{}
}

// Document is the YAML shape of a policy file
type Document struct {
	Entities map[string]EntityDocument `yaml:"entities"`
}

// EntityDocument is the policy of a single entity type
type EntityDocument struct {
	Fillable []string `yaml:"fillable"`
	Guarded  []string `yaml:"guarded"`
	ReadOnly []string `yaml:"read_only"`
}

// NewTable builds a table from a policy document
func NewTable(doc Document) *Table {
	t := &Table{entities: make(map[string]*entityPolicy, len(doc.Entities))}
	for name, e := range doc.Entities {
		t.entities[name] = &entityPolicy{
			fillable: toSet(e.Fillable),
			guarded:  toSet(e.Guarded),
			readOnly: toSet(e.ReadOnly),
		}
	}
	return t
}

// FromDescriptors builds a table from model descriptors. Guarded fields are
// read-only.
func FromDescriptors(descriptors []models.Descriptor) *Table {
	doc := Document{Entities: make(map[string]EntityDocument, len(descriptors))}
	for _, d := range descriptors {
		doc.Entities[d.SchemaType] = EntityDocument{
			Fillable: d.Fillable,
			Guarded:  d.Guarded,
		}
	}
	return NewTable(doc)
}

// Default returns the table built from every known model descriptor
func Default() *Table {
	return FromDescriptors(models.All())
}

// LoadYAML reads a policy document
func LoadYAML(r io.Reader) (*Table, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return NewTable(Document{}), nil
		}
		return nil, fmt.Errorf("failed to decode policy document: %w", err)
	}

	for name, e := range doc.Entities {
		for _, f := range e.Fillable {
			if contains(e.Guarded, f) {
				return nil, fmt.Errorf("policy for %s: property %s is both fillable and guarded", name, f)
			}
		}
	}

	return NewTable(doc), nil
}

// LoadFile reads a policy document from a file
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open policy file: %w", err)
	}
	defer f.Close()

	return LoadYAML(f)
}

// Merge returns a new table holding every entity of base, with entities
// present in override replacing base entries wholesale.
func Merge(base, override *Table) *Table {
	merged := &Table{entities: make(map[string]*entityPolicy)}
	for _, t := range []*Table{base, override} {
		if t == nil {
			continue
		}
		for name, p := range t.entities {
			merged.entities[name] = p
		}
	}
	return merged
}

// IsReadOnly implements Source
func (t *Table) IsReadOnly(entityType, property string) bool {
	p, ok := t.entities[entityType]
	if !ok {
		return false
	}
	_, guarded := p.guarded[property]
	_, readOnly := p.readOnly[property]
	return guarded || readOnly
}

// IsFillable implements Source
func (t *Table) IsFillable(entityType, property string) bool {
	p, ok := t.entities[entityType]
	if !ok {
		return false
	}
	_, fillable := p.fillable[property]
	return fillable
}

// Entities returns the entity type names covered by the table, sorted
func (t *Table) Entities() []string {
	names := make([]string, 0, len(t.entities))
	for name := range t.entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open is a Source with no restrictions: nothing is read-only and every
// property is fillable.
type Open struct{}

// IsReadOnly implements Source
func (Open) IsReadOnly(string, string) bool { return false }

// IsFillable implements Source
func (Open) IsFillable(string, string) bool { return true }

// OrOpen returns src, or Open when src is nil or a nil *Table
func OrOpen(src Source) Source {
	if t, ok := src.(*Table); src == nil || (ok && t == nil) {
		return Open{}
	}
	return src
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
