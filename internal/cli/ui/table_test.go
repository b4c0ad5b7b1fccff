package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"NAME", "TYPE", "NULLABLE"}, &TableOptions{NoColor: true})

	table.AddRow("id", "string", "no")
	table.AddRow("displayName", "string", "yes")
	table.AddRow("address", "postalAddressType", "yes")
	table.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "NAME         TYPE               NULLABLE", lines[0])
	assert.Equal(t, "───────────  ─────────────────  ────────", lines[1])
	assert.Equal(t, "id           string             no", lines[2])
	assert.Equal(t, "address      postalAddressType  yes", lines[4])
	assert.Equal(t, 3, table.Len())
}

func TestTable_RaggedRows(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, []string{"A", "B"}, &TableOptions{NoColor: true})

	table.AddRow("only")
	table.AddRow("x", "y", "dropped")
	table.Render()

	output := buf.String()
	assert.Contains(t, output, "only\n")
	assert.Contains(t, output, "x     y\n")
	assert.NotContains(t, output, "dropped")
}

func TestTable_NoHeaders(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, nil, nil)
	table.AddRow("ignored")
	table.Render()

	assert.Empty(t, buf.String())
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Entity", "customer")
	kv.AddRow("Key", "id")
	kv.Render()

	assert.Equal(t, "Entity: customer\nKey:    id\n", buf.String())
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "customer", true)
	assert.Equal(t, "customer\n────────\n", buf.String())
}

func TestYesNo(t *testing.T) {
	assert.Equal(t, "yes", YesNo(true))
	assert.Equal(t, "no", YesNo(false))
}
