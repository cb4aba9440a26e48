package form

import (
	"github.com/google/uuid"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// FieldResult is the verdict of one field within a submission.
type FieldResult struct {
	Name    string
	Verdict validator.Verdict
}

// Verdict aggregates the field verdicts of one submission.
type Verdict struct {
	SubmissionID uuid.UUID
	Form         string
	// Valid is true when every field is valid.
	Valid bool
	// Fields holds one result per validated field in document order.
	Fields []FieldResult
}

// Invalid returns the failing fields in document order.
func (v Verdict) Invalid() []FieldResult {
	var out []FieldResult
	for _, f := range v.Fields {
		if !f.Verdict.Valid {
			out = append(out, f)
		}
	}
	return out
}

// Field returns the verdict of the first field with the given name.
func (v Verdict) Field(name string) (validator.Verdict, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Verdict, true
		}
	}
	return validator.Verdict{}, false
}

// Messages maps each failing field name to its message.
func (v Verdict) Messages() map[string]string {
	out := make(map[string]string)
	for _, f := range v.Invalid() {
		if _, seen := out[f.Name]; !seen {
			out[f.Name] = f.Verdict.Message
		}
	}
	return out
}
