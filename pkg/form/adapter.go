package form

import "github.com/dmitrymomot/formguard/pkg/validator"

// Adapter connects a Form to a concrete document. F identifies a field, e.g.
// a DOM node.
type Adapter[F any] interface {
	// Fields returns the fields that declare a directive, in document order.
	Fields() []F
	// FieldName returns a stable name used in verdicts and logs.
	FieldName(field F) string
	// ReadValue returns the current text of the field.
	ReadValue(field F) string
	// ReadDirective returns the field's parsed rules. ok is false when the
	// field declares none and must not be validated.
	ReadDirective(field F) (d validator.Directive, ok bool)
	// ReadCustomMessage returns the author's message for rule on this field.
	ReadCustomMessage(field F, rule string) (string, bool)
	// ApplyStatus sets the status classes exclusively and updates the field's
	// single error slot, creating it on first use.
	ApplyStatus(field F, status Status)
}

// Status is what an adapter needs to reflect a verdict.
type Status struct {
	validator.Verdict

	ErrorClass   string
	ValidClass   string
	InvalidClass string
}

// Class returns the class the field must carry.
func (s Status) Class() string {
	if s.Valid {
		return s.ValidClass
	}
	return s.InvalidClass
}

// StaleClass returns the class the field must not carry.
func (s Status) StaleClass() string {
	if s.Valid {
		return s.InvalidClass
	}
	return s.ValidClass
}
