package validator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// RuleSpec declares a custom rule in a rule set document. Exactly one of
// Pattern and OneOf must be set.
type RuleSpec struct {
	Name    string   `yaml:"name"`
	Pattern string   `yaml:"pattern,omitempty"`
	OneOf   []string `yaml:"one_of,omitempty"`
	Message string   `yaml:"message,omitempty"`
}

// RuleSet is a decoded and compiled set of custom rules.
type RuleSet struct {
	specs []RuleSpec
	rules []Rule
}

type ruleSetDocument struct {
	Rules []RuleSpec `yaml:"rules"`
}

// ParseRuleSet decodes a YAML rule set:
//
//	rules:
//	  - name: zip
//	    pattern: '^\d{5}$'
//	    message: "Please enter a 5 digit ZIP code"
//	  - name: plan
//	    one_of: [free, pro, team]
//
// Patterns are compiled here, so a broken expression is reported at load time
// rather than failing every evaluation.
func ParseRuleSet(r io.Reader) (*RuleSet, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc ruleSetDocument
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &RuleSet{}, nil
		}
		return nil, errors.Join(ErrInvalidRuleSet, err)
	}

	rs := &RuleSet{
		specs: make([]RuleSpec, 0, len(doc.Rules)),
		rules: make([]Rule, 0, len(doc.Rules)),
	}
	for i, spec := range doc.Rules {
		rule, err := compileSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: rule #%d (%q): %w", ErrInvalidRuleSet, i, spec.Name, err)
		}
		rs.specs = append(rs.specs, spec)
		rs.rules = append(rs.rules, rule)
	}
	return rs, nil
}

// LoadRuleSetFile reads and parses the rule set at path.
func LoadRuleSetFile(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Join(ErrRuleSetNotFound, err)
	}
	defer f.Close()

	return ParseRuleSet(f)
}

// Specs returns the rule declarations in document order.
func (rs *RuleSet) Specs() []RuleSpec {
	if rs == nil {
		return nil
	}
	return slices.Clone(rs.specs)
}

// Len returns the number of rules in the set.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// WithRuleSet registers every rule of rs in document order. A nil set
// registers nothing.
func WithRuleSet(rs *RuleSet) Option {
	return func(c *registryConfig) {
		if rs == nil {
			return
		}
		for i, spec := range rs.specs {
			c.register(spec.Name, rs.rules[i])
		}
	}
}

func compileSpec(spec RuleSpec) (Rule, error) {
	if !validRuleName(spec.Name) {
		return nil, ErrInvalidRuleName
	}

	hasPattern := spec.Pattern != ""
	hasOneOf := len(spec.OneOf) > 0
	switch {
	case hasPattern && hasOneOf:
		return nil, errors.New("pattern and one_of are mutually exclusive")
	case hasPattern:
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return nil, err
		}
		return RuleFunc{
			Check:    func(value string, _ []string) bool { return re.MatchString(value) },
			Template: spec.Message,
		}, nil
	case hasOneOf:
		options := slices.Clone(spec.OneOf)
		return RuleFunc{
			Check: func(value string, _ []string) bool {
				return slices.Contains(options, strings.TrimSpace(value))
			},
			Template: spec.Message,
		}, nil
	default:
		return nil, errors.New("either pattern or one_of is required")
	}
}
