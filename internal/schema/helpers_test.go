package schema

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/business-central-sdk/bcschema/internal/csdl"
)

func newDocument(entities []csdl.EntityType, complexTypes []csdl.ComplexType) *csdl.Document {
	return &csdl.Document{
		DataServices: csdl.DataServices{
			Schemas: []csdl.Schema{
				{
					Namespace:    "Microsoft.NAV",
					EntityTypes:  entities,
					ComplexTypes: complexTypes,
				},
			},
		},
	}
}

func buildSchema(t *testing.T, doc *csdl.Document, opts ...Option) *Schema {
	t.Helper()
	s, err := Build(doc, opts...)
	require.NoError(t, err)
	return s
}

func loadFixture(t *testing.T, opts ...Option) *Schema {
	t.Helper()
	f, err := os.Open("testdata/metadata.xml")
	require.NoError(t, err)
	defer f.Close()

	s, err := Parse(f, opts...)
	require.NoError(t, err)
	return s
}

// singleProperty builds a schema holding one entity "holder" with one
// property, plus the given complex types, and returns that property.
func singleProperty(t *testing.T, def csdl.Property, complexTypes ...csdl.ComplexType) *Property {
	t.Helper()
	s := buildSchema(t, newDocument(
		[]csdl.EntityType{{Name: "holder", Properties: []csdl.Property{def}}},
		complexTypes,
	))
	et, ok := s.EntityType("holder")
	require.True(t, ok)
	p, ok := et.Property(def.Name)
	require.True(t, ok)
	return p
}

func pairType() csdl.ComplexType {
	return csdl.ComplexType{
		Name: "pair",
		Properties: []csdl.Property{
			{Name: "a", Type: "Edm.String"},
			{Name: "b", Type: "Edm.Int32"},
		},
	}
}
