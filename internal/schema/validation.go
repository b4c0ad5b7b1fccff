package schema

import (
	"fmt"

	"github.com/business-central-sdk/bcschema/internal/edm"
)

// identity fields are server-assigned and never validated
const identityField = "id"

// ValidationRules derives the rule set for the property. The first token is
// "nullable" or "required". Primitive types add their type token, bounded by
// the max length when one is declared ("string:120"). Complex types
// contribute their own rules under dotted paths ("address.city"), and
// collections add "array" with element rules under "<name>.*".
func (p *Property) ValidationRules() RuleSet {
	rules := RuleSet{}
	if p.name == identityField {
		return rules
	}

	head := []string{"required"}
	if p.nullable {
		head = []string{"nullable"}
	}
	if p.ref.Collection {
		head = append(head, "array")
	}
	rules[p.name] = head

	if p.ref.Kind == edm.KindComplex {
		ct, ok := p.ComplexType()
		if !ok {
			return rules
		}
		prefix := p.name + "."
		if p.ref.Collection {
			prefix = p.name + ".*."
		}
		for key, tokens := range ct.ValidationRules() {
			rules[prefix+key] = tokens
		}
		return rules
	}

	token := p.typeToken()
	if token == "" {
		return rules
	}
	if p.ref.Collection {
		rules[p.name+".*"] = []string{token}
	} else {
		rules[p.name] = append(rules[p.name], token)
	}

	return rules
}

// ValidationType returns the primitive rule token of the property, or the
// referenced complex type. Unknown types return neither.
func (p *Property) ValidationType() (string, *ComplexType) {
	if ct, ok := p.ComplexType(); ok {
		return "", ct
	}
	return p.ref.Kind.ValidationToken(), nil
}

func (p *Property) typeToken() string {
	token := p.ref.Kind.ValidationToken()
	if token == "" {
		return ""
	}
	if p.maxLength > 0 {
		return fmt.Sprintf("%s:%d", token, p.maxLength)
	}
	return token
}
