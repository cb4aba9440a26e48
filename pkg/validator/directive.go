package validator

import (
	"slices"
	"strings"
	"unicode"
)

// RuleRef is one token of a directive: a rule name with its parameters.
type RuleRef struct {
	Name   string
	Params []string
}

// String renders the token as name[:param...].
func (r RuleRef) String() string {
	if len(r.Params) == 0 {
		return r.Name
	}
	return r.Name + ":" + strings.Join(r.Params, ":")
}

// Directive is the ordered rule list declared on a field. Order matters: the
// evaluator stops at the first failing rule.
type Directive []RuleRef

// ParseDirective splits s on runs of whitespace and each token on colons. The
// first segment of a token is the rule name and the rest are its parameters.
// Tokens with an empty name (":8") are dropped; parsing never fails.
func ParseDirective(s string) Directive {
	tokens := strings.FieldsFunc(s, isDirectiveSpace)
	if len(tokens) == 0 {
		return nil
	}

	d := make(Directive, 0, len(tokens))
	for _, tok := range tokens {
		parts := strings.Split(tok, ":")
		if parts[0] == "" {
			continue
		}
		ref := RuleRef{Name: parts[0]}
		if len(parts) > 1 {
			ref.Params = parts[1:]
		}
		d = append(d, ref)
	}
	return d
}

// String renders the directive in canonical form, tokens joined by a single
// space. The result parses back to an equal Directive.
func (d Directive) String() string {
	tokens := make([]string, len(d))
	for i, ref := range d {
		tokens[i] = ref.String()
	}
	return strings.Join(tokens, " ")
}

// Names returns the rule names in declared order.
func (d Directive) Names() []string {
	names := make([]string, len(d))
	for i, ref := range d {
		names[i] = ref.Name
	}
	return names
}

// Has reports whether the directive references the named rule.
func (d Directive) Has(name string) bool {
	return slices.ContainsFunc(d, func(ref RuleRef) bool { return ref.Name == name })
}

func isDirectiveSpace(r rune) bool {
	return unicode.IsSpace(r)
}
