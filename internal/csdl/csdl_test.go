package csdl

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	f, err := os.Open("testdata/metadata.xml")
	require.NoError(t, err)
	defer f.Close()

	doc, err := Decode(f)
	require.NoError(t, err)

	assert.Equal(t, "4.0", doc.Version)
	assert.Equal(t, "Microsoft.NAV", doc.Namespace())

	entities := doc.EntityTypes()
	require.Len(t, entities, 5)
	assert.Equal(t, "dimensionValue", entities[0].Name)
	require.NotNil(t, entities[0].Key)
	assert.Equal(t, "id", entities[0].Key.PropertyRefs[0].Name)

	id := entities[0].Properties[0]
	assert.Equal(t, "id", id.Name)
	assert.Equal(t, "Edm.Guid", id.Type)
	assert.Equal(t, "false", id.Nullable)

	code := entities[0].Properties[1]
	assert.Equal(t, "20", code.MaxLength)
	assert.Empty(t, code.Nullable)

	customer := entities[4]
	assert.Equal(t, "customer", customer.Name)
	require.Len(t, customer.NavigationProperties, 1)
	assert.Equal(t, "customerFinancialDetails", customer.NavigationProperties[0].Name)

	complexTypes := doc.ComplexTypes()
	require.Len(t, complexTypes, 2)
	assert.Equal(t, "postalAddressType", complexTypes[0].Name)
	assert.Len(t, complexTypes[0].Properties, 3)

	require.Len(t, doc.DataServices.Schemas[0].EnumTypes, 1)
	assert.Len(t, doc.DataServices.Schemas[0].EnumTypes[0].Members, 2)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(strings.NewReader("<edmx:Edmx><unclosed>"))
	assert.Error(t, err)
}

func TestDocument_EmptyNamespace(t *testing.T) {
	doc := &Document{}
	assert.Empty(t, doc.Namespace())
	assert.Empty(t, doc.EntityTypes())
	assert.Empty(t, doc.ComplexTypes())
}
