package commands

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertCommand_Stdin(t *testing.T) {
	input := `{
  "@odata.etag": "W/\"JzQ0O0\"",
  "id": "3fa85f64-5717-4562-b3fc-2c963f66afa6",
  "number": 10000,
  "blocked": "yes",
  "paymentTermsId": "00000000-0000-0000-0000-000000000000",
  "address": {"city": "Aarhus", "postalCode": 8000, "country": "DK"},
  "dimensions": [{"code": "AREA", "valueCode": 30}]
}`

	out, err := run(t, strings.NewReader(input), "--metadata", fixture, "convert", "customer", "-")
	require.NoError(t, err)

	var converted map[string]any
	decodeJSON(t, out, &converted)
	assert.Equal(t, map[string]any{
		"id":             "3fa85f64-5717-4562-b3fc-2c963f66afa6",
		"number":         "10000",
		"blocked":        true,
		"paymentTermsId": nil,
		"address": map[string]any{
			"$complex_type": "postalAddressType",
			"city":          "Aarhus",
			"postalCode":    "8000",
		},
		"dimensions": []any{
			map[string]any{"$complex_type": "dimensionType", "code": "AREA", "valueCode": "30"},
		},
	}, converted)
}

func TestConvertCommand_FileArray(t *testing.T) {
	path := writeFile(t, "lines.json", `[{"lineNumber": "10", "balance": "12.5"}, {"lineNumber": 20.7, "indentation": "x"}]`)

	out, err := run(t, nil, "--metadata", fixture, "convert", "balanceSheet", path)
	require.NoError(t, err)

	var converted []map[string]any
	decodeJSON(t, out, &converted)
	assert.Equal(t, []map[string]any{
		{"lineNumber": float64(10), "balance": 12.5},
		{"lineNumber": float64(20), "indentation": float64(0)},
	}, converted)
}

func TestConvertCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		args     []string
		contains string
	}{
		{"empty input", "  ", []string{"convert", "customer"}, "no input records"},
		{"invalid json", "{", []string{"convert", "customer"}, "failed to decode input record"},
		{"invalid array", "[1, 2]", []string{"convert", "customer"}, "failed to decode input records"},
		{"missing file", "", []string{"convert", "customer", "testdata/missing.json"}, "failed to open input"},
		{"unknown entity", "{}", []string{"convert", "vendor"}, `entity type "vendor" not found`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--metadata", fixture}, tt.args...)
			_, err := run(t, strings.NewReader(tt.stdin), args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
