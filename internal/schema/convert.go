package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/business-central-sdk/bcschema/internal/edm"
)

// nilGUID is the API's sentinel for "no value" on guid fields
var nilGUID = uuid.Nil.String()

// Convert turns a raw wire value into the property's typed value:
// string, bool, int64, float64, nil, a tagged map for complex types, or a
// slice of those for collections.
//
// Conversion never fails. Numeric strings are read up to their longest
// numeric prefix and become 0 when there is none. Unrecognized booleans
// become false. Int64, unknown and unresolved types pass through unchanged.
// nil stays nil for string, date and guid kinds; Int32, Decimal and Boolean
// convert nil to their zero value.
func (p *Property) Convert(value any) any {
	if p.ref.Collection {
		return p.convertCollection(value)
	}
	return p.convertValue(value)
}

func (p *Property) convertCollection(value any) any {
	if value == nil {
		return nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return value
	}

	result := make([]any, rv.Len())
	for i := range result {
		result[i] = p.convertValue(rv.Index(i).Interface())
	}
	return result
}

func (p *Property) convertValue(value any) any {
	switch p.ref.Kind {
	case edm.KindString, edm.KindDate:
		return toString(value)
	case edm.KindGuid:
		s := toString(value)
		if s == nilGUID {
			return nil
		}
		return s
	case edm.KindBool:
		return toBool(value)
	case edm.KindFloat:
		return toFloat(value)
	case edm.KindInt:
		return toInt(value)
	case edm.KindComplex:
		ct, ok := p.schema.ComplexType(p.ref.Complex)
		if !ok {
			return value
		}
		return ct.Convert(value)
	default:
		// Int64 is typed for rules and docs only
		return value
	}
}

// ParseBool is the permissive boolean parse used for wire values and
// metadata attributes: true, 1, yes and on (any case, surrounding space
// ignored) are true; everything else is false.
func ParseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}

// toString returns nil for nil and a string otherwise. Booleans render as
// "1" and "".
func toString(value any) any {
	switch v := value.(type) {
	case nil:
		return nil
	case bool:
		if v {
			return "1"
		}
		return ""
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Sprint(value)
	}
	return s
}

func toBool(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return ParseBool(v)
	case []byte:
		return ParseBool(string(v))
	case json.Number:
		return ParseBool(string(v))
	}

	f, err := cast.ToFloat64E(value)
	if err != nil {
		return false
	}
	return f == 1
}

func toFloat(value any) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return parseFloat(v)
	case json.Number:
		return parseFloat(string(v))
	}

	f, err := cast.ToFloat64E(value)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toInt(value any) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return parseInt(v)
	case json.Number:
		return parseInt(string(v))
	case float64:
		return truncate(v)
	case float32:
		return truncate(float64(v))
	case uint:
		return clampUint(uint64(v))
	case uint64:
		return clampUint(v)
	case uintptr:
		return clampUint(uint64(v))
	}

	i, err := cast.ToInt64E(value)
	if err != nil {
		return 0
	}
	return i
}

func parseFloat(s string) float64 {
	prefix, _ := numericPrefix(s)
	if prefix == "" {
		return 0
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// parseInt reads the leading number of s, truncating any fraction or
// exponent toward zero
func parseInt(s string) int64 {
	prefix, integral := numericPrefix(s)
	if prefix == "" {
		return 0
	}
	if integral {
		if i, err := strconv.ParseInt(prefix, 10, 64); err == nil {
			return i
		}
	}
	f, err := strconv.ParseFloat(prefix, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return truncate(f)
}

// numericPrefix returns the longest leading decimal number of s, after
// leading whitespace: an optional sign, digits, an optional fraction and an
// optional exponent. integral reports whether the prefix has no fraction or
// exponent. The prefix is empty when s does not start with a number.
func numericPrefix(s string) (prefix string, integral bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	integral = true
	if i < len(s) && s[i] == '.' {
		j := i + 1
		fraction := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			fraction++
		}
		if digits+fraction > 0 {
			i = j
			digits += fraction
			integral = false
		}
	}
	if digits == 0 {
		return "", false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		exponent := 0
		for j < len(s) && isDigit(s[j]) {
			j++
			exponent++
		}
		if exponent > 0 {
			i = j
			integral = false
		}
	}

	return s[:i], integral
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func clampUint(u uint64) int64 {
	if u > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(u)
}

func truncate(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}

// toMap reads a raw complex value as a field map. Anything that is not a
// mapping yields an empty map.
func toMap(value any) map[string]any {
	switch v := value.(type) {
	case nil:
		return nil
	case map[string]any:
		return v
	case map[string]string:
		m := make(map[string]any, len(v))
		for k, s := range v {
			m[k] = s
		}
		return m
	}

	m, err := cast.ToStringMapE(value)
	if err != nil {
		return nil
	}
	return m
}
