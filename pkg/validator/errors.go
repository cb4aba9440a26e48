package validator

import "errors"

// Registry construction and rule set loading errors.
var (
	// ErrInvalidRuleName is returned when a rule name is empty or contains a colon or whitespace.
	ErrInvalidRuleName = errors.New("invalid rule name")

	// ErrNilRule is returned when a rule or its check function is nil.
	ErrNilRule = errors.New("rule is nil")

	// ErrInvalidRuleSet is returned when a rule set document cannot be decoded or declares a broken rule.
	ErrInvalidRuleSet = errors.New("invalid rule set")

	// ErrRuleSetNotFound is returned when a rule set file cannot be opened.
	ErrRuleSetNotFound = errors.New("rule set file not found")
)
