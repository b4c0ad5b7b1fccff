package edm

import (
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		kind       Kind
		complex    string
		collection bool
	}{
		{"date", "Edm.DateTimeOffset", KindDate, "", false},
		{"string", "Edm.String", KindString, "", false},
		{"stream", "Edm.Stream", KindString, "", false},
		{"guid", "Edm.Guid", KindGuid, "", false},
		{"bool", "Edm.Boolean", KindBool, "", false},
		{"decimal", "Edm.Decimal", KindFloat, "", false},
		{"int32", "Edm.Int32", KindInt, "", false},
		{"int64", "Edm.Int64", KindInt64, "", false},
		{"complex", "Microsoft.NAV.postalAddressType", KindComplex, "postalAddressType", false},
		{"collection of complex", "Collection(Microsoft.NAV.dimension)", KindComplex, "dimension", true},
		{"collection of primitive", "Collection(Edm.String)", KindString, "", true},
		{"case sensitive", "edm.string", KindUnknown, "", false},
		{"unknown", "Edm.Binary", KindUnknown, "", false},
		{"empty", "", KindUnknown, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := Resolve(tt.raw)
			if ref.Kind != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, ref.Kind)
			}
			if ref.Complex != tt.complex {
				t.Errorf("expected complex %q, got %q", tt.complex, ref.Complex)
			}
			if ref.Collection != tt.collection {
				t.Errorf("expected collection %v, got %v", tt.collection, ref.Collection)
			}
			if ref.Raw != tt.raw {
				t.Errorf("expected raw %q, got %q", tt.raw, ref.Raw)
			}
		})
	}
}

func TestKindValidationToken(t *testing.T) {
	tests := []struct {
		kind     Kind
		expected string
	}{
		{KindString, "string"},
		{KindGuid, "guid"},
		{KindBool, "bool"},
		{KindFloat, "float"},
		{KindInt, "int"},
		{KindInt64, "int"},
		{KindDate, "date"},
		{KindComplex, ""},
		{KindUnknown, ""},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := tt.kind.ValidationToken(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTypeRefDocType(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Edm.String", "string"},
		{"Edm.Guid", "string"},
		{"Edm.DateTimeOffset", "string"},
		{"Edm.Stream", "string"},
		{"Edm.Boolean", "bool"},
		{"Edm.Decimal", "float"},
		{"Edm.Int32", "int"},
		{"Edm.Int64", "int"},
		{"Microsoft.NAV.dimension", "dimension"},
		{"Edm.Binary", "string"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := Resolve(tt.raw).DocType(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"Microsoft.NAV.dimension", "dimension"},
		{"Collection(Microsoft.NAV.dimension)", "dimension"},
		{"dimensionValue", "dimensionValue"},
		{"Edm.String", "Edm.String"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := TypeName(tt.raw); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestKindIsPrimitive(t *testing.T) {
	if KindComplex.IsPrimitive() {
		t.Error("complex kind should not be primitive")
	}
	if KindUnknown.IsPrimitive() {
		t.Error("unknown kind should not be primitive")
	}
	if !KindGuid.IsPrimitive() {
		t.Error("guid kind should be primitive")
	}
	if !KindInt64.IsPrimitive() {
		t.Error("int64 kind should be primitive")
	}
}
