// Package edm classifies OData Entity Data Model type names into the small
// closed set of kinds the schema layer knows how to convert and validate.
package edm

import "strings"

// VendorNamespace prefixes every Business Central complex type name.
const VendorNamespace = "Microsoft.NAV."

// Kind is the resolved classification of a declared wire type
type Kind int

const (
	// KindUnknown is any type the resolver does not recognize
	KindUnknown Kind = iota
	KindString
	KindGuid
	KindBool
	KindFloat
	KindInt
	// KindInt64 validates and documents as int but is not coerced
	KindInt64
	KindDate
	// KindComplex references a named complex type in the vendor namespace
	KindComplex
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindGuid:
		return "guid"
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindInt:
		return "int"
	case KindInt64:
		return "int64"
	case KindDate:
		return "date"
	case KindComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// ValidationToken returns the rule token for primitive kinds, or "" when
// the kind emits no type rule.
func (k Kind) ValidationToken() string {
	switch k {
	case KindString, KindGuid, KindBool, KindFloat, KindInt, KindDate:
		return k.String()
	case KindInt64:
		return KindInt.String()
	default:
		return ""
	}
}

// IsPrimitive returns true for kinds backed by a single EDM primitive
func (k Kind) IsPrimitive() bool {
	return k != KindComplex && k != KindUnknown
}

// TypeRef is a declared wire type resolved once into its kind
type TypeRef struct {
	Raw        string // Type attribute as declared in metadata
	Kind       Kind
	Complex    string // complex type name for KindComplex
	Collection bool   // declared as Collection(T)
}

// DocType returns the documentation type of the reference. Complex types
// document as their own name; everything unrecognized documents as string.
func (t TypeRef) DocType() string {
	switch t.Kind {
	case KindBool:
		return "bool"
	case KindFloat:
		return "float"
	case KindInt, KindInt64:
		return "int"
	case KindComplex:
		return t.Complex
	default:
		return "string"
	}
}

// String returns the declared type
func (t TypeRef) String() string {
	return t.Raw
}

// Resolve classifies a declared wire type. Matching is case-sensitive.
func Resolve(raw string) TypeRef {
	ref := TypeRef{Raw: raw}

	name := raw
	if inner, ok := unwrapCollection(raw); ok {
		ref.Collection = true
		name = inner
	}

	switch name {
	case "Edm.DateTimeOffset":
		ref.Kind = KindDate
	case "Edm.String", "Edm.Stream":
		ref.Kind = KindString
	case "Edm.Guid":
		ref.Kind = KindGuid
	case "Edm.Boolean":
		ref.Kind = KindBool
	case "Edm.Decimal":
		ref.Kind = KindFloat
	case "Edm.Int32":
		ref.Kind = KindInt
	case "Edm.Int64":
		ref.Kind = KindInt64
	default:
		if strings.Contains(name, VendorNamespace) {
			ref.Kind = KindComplex
			ref.Complex = TypeName(name)
		}
	}

	return ref
}

// TypeName strips the vendor namespace (and any Collection wrapper) from a
// raw type, yielding the bare type name. Names without the prefix are
// returned unchanged.
func TypeName(raw string) string {
	if inner, ok := unwrapCollection(raw); ok {
		raw = inner
	}
	if i := strings.Index(raw, VendorNamespace); i >= 0 {
		return raw[i+len(VendorNamespace):]
	}
	return raw
}

func unwrapCollection(raw string) (string, bool) {
	if strings.HasPrefix(raw, "Collection(") && strings.HasSuffix(raw, ")") {
		return raw[len("Collection(") : len(raw)-1], true
	}
	return raw, false
}
