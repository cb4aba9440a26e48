package form

import "errors"

var (
	// ErrNilAdapter is returned by New when no adapter is supplied.
	ErrNilAdapter = errors.New("form adapter is nil")

	// ErrInvalidConcurrency is returned for a negative concurrency limit.
	ErrInvalidConcurrency = errors.New("concurrency must not be negative")

	// ErrCallbackType is returned by New when a callback was built for a
	// different field type than the form's.
	ErrCallbackType = errors.New("callback field type does not match form")

	// ErrRuleSet is returned when the configured rule set cannot be loaded.
	ErrRuleSet = errors.New("failed to load rule set")
)
