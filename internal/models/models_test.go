package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll(t *testing.T) {
	all := All()
	assert.Len(t, all, 4)

	seen := make(map[string]bool)
	for _, d := range all {
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.SchemaType)
		assert.False(t, seen[d.SchemaType], "duplicate schema type %s", d.SchemaType)
		seen[d.SchemaType] = true
	}
}

func TestBySchemaType(t *testing.T) {
	d, ok := BySchemaType("dimensionValue")
	assert.True(t, ok)
	assert.Equal(t, "DimensionValue", d.Name)
	assert.Equal(t, []string{"id", "lastModifiedDateTime"}, d.Guarded)

	d, ok = BySchemaType("G_LBudgetEntries")
	assert.True(t, ok)
	assert.Contains(t, d.Fillable, "dimensionSetID")
	assert.Empty(t, d.Guarded)

	_, ok = BySchemaType("DimensionValue")
	assert.False(t, ok, "lookup is by schema type, not model name")
}

func TestFillableAndGuardedAreDisjoint(t *testing.T) {
	for _, d := range All() {
		for _, g := range d.Guarded {
			assert.NotContains(t, d.Fillable, g, "%s: %s is both fillable and guarded", d.Name, g)
		}
	}
}
