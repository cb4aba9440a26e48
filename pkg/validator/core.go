package validator

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Rule is a named predicate together with its default error message.
type Rule interface {
	// Evaluate reports whether value satisfies the rule. params are the
	// colon-separated directive arguments, possibly empty.
	Evaluate(value string, params []string) bool
	// DefaultMessage returns the message shown when the rule fails and the
	// field declares no custom message.
	DefaultMessage(params []string) string
}

// CheckFunc reports whether value satisfies a rule with the given parameters.
type CheckFunc func(value string, params []string) bool

// RuleFunc adapts a CheckFunc and a message template to the Rule interface.
// The template may reference directive parameters as {0}, {1}, ...
type RuleFunc struct {
	Check    CheckFunc
	Template string
}

// Evaluate runs the check. A RuleFunc without a check never passes.
func (r RuleFunc) Evaluate(value string, params []string) bool {
	if r.Check == nil {
		return false
	}
	return r.Check(value, params)
}

// DefaultMessage renders the template with params.
func (r RuleFunc) DefaultMessage(params []string) string {
	return FormatMessage(r.Template, params)
}

// Registry maps rule names to rules. It is built once by New and is read-only
// afterwards.
type Registry struct {
	rules map[string]Rule
}

// Option registers additional rules while a Registry is being built.
type Option func(*registryConfig)

type registryConfig struct {
	rules map[string]Rule
	errs  []error
}

func (c *registryConfig) register(name string, rule Rule) {
	if !validRuleName(name) {
		c.errs = append(c.errs, fmt.Errorf("%w: %q", ErrInvalidRuleName, name))
		return
	}
	if rule == nil {
		c.errs = append(c.errs, fmt.Errorf("%w: %q", ErrNilRule, name))
		return
	}
	if rf, ok := rule.(RuleFunc); ok && rf.Check == nil {
		c.errs = append(c.errs, fmt.Errorf("%w: %q has no check", ErrNilRule, name))
		return
	}
	c.rules[name] = rule
}

// WithRule registers rule under name. A later registration of the same name,
// including a built-in one, replaces the earlier.
func WithRule(name string, rule Rule) Option {
	return func(c *registryConfig) {
		c.register(name, rule)
	}
}

// WithCheck registers a predicate with its message template under name.
func WithCheck(name string, check CheckFunc, template string) Option {
	return func(c *registryConfig) {
		c.register(name, RuleFunc{Check: check, Template: template})
	}
}

// WithRules registers every entry of rules. Names are applied in sorted order
// so the outcome does not depend on map iteration.
func WithRules(rules map[string]Rule) Option {
	return func(c *registryConfig) {
		for _, name := range slices.Sorted(maps.Keys(rules)) {
			c.register(name, rules[name])
		}
	}
}

// New builds a Registry holding the built-in rules plus any rules supplied by
// opts, applied in order.
func New(opts ...Option) (*Registry, error) {
	cfg := &registryConfig{rules: builtinRules()}
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	if len(cfg.errs) > 0 {
		return nil, errors.Join(cfg.errs...)
	}
	return &Registry{rules: cfg.rules}, nil
}

// MustNew works like New but panics on invalid registrations.
func MustNew(opts ...Option) *Registry {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("validator: %v", err))
	}
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return &Registry{rules: builtinRules()}
})

// Default returns a shared Registry containing only the built-in rules.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (Rule, bool) {
	if r == nil {
		return nil, false
	}
	rule, ok := r.rules[name]
	return rule, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns the registered rule names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(r.rules))
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.rules)
}

func builtinRules() map[string]Rule {
	return map[string]Rule{
		RuleRequired: RuleFunc{Check: checkRequired, Template: MessageRequired},
		RuleEmail:    RuleFunc{Check: checkEmail, Template: MessageEmail},
		RuleMin:      RuleFunc{Check: checkMinLength, Template: MessageMin},
		RuleMax:      RuleFunc{Check: checkMaxLength, Template: MessageMax},
		RuleMinValue: RuleFunc{Check: checkMinValue, Template: MessageMinValue},
		RuleMaxValue: RuleFunc{Check: checkMaxValue, Template: MessageMaxValue},
		RulePattern:  RuleFunc{Check: checkPattern, Template: MessagePattern},
		RuleNumeric:  RuleFunc{Check: checkNumeric, Template: MessageNumeric},
		RulePhone:    RuleFunc{Check: checkPhone, Template: MessagePhone},
		RuleURL:      RuleFunc{Check: checkURL, Template: MessageURL},
	}
}

func validRuleName(name string) bool {
	if name == "" {
		return false
	}
	return !strings.ContainsFunc(name, func(r rune) bool {
		return r == ':' || isDirectiveSpace(r)
	})
}
