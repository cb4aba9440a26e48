package form

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/formguard/pkg/validator"
)

// Default class names.
const (
	DefaultErrorClass   = "error-message"
	DefaultValidClass   = "is-valid"
	DefaultInvalidClass = "is-invalid"
)

// Submission is what a callback receives: the form that ran the submission
// and its aggregated verdict. Form gives access to the adapter and therefore
// to the document the statuses were applied to.
type Submission[F any] struct {
	Form *Form[F]
	Verdict
}

// Callback is invoked once per submission.
type Callback[F any] func(ctx context.Context, s Submission[F])

// Options are the class names of a form. Zero values mean "keep the default".
type Options struct {
	ErrorClass   string
	ValidClass   string
	InvalidClass string
}

// DefaultOptions returns the defaults: "error-message", "is-valid" and
// "is-invalid".
func DefaultOptions() Options {
	return Options{
		ErrorClass:   DefaultErrorClass,
		ValidClass:   DefaultValidClass,
		InvalidClass: DefaultInvalidClass,
	}
}

// Merge returns o with every non-zero field of other applied on top.
func (o Options) Merge(other Options) Options {
	if other.ErrorClass != "" {
		o.ErrorClass = other.ErrorClass
	}
	if other.ValidClass != "" {
		o.ValidClass = other.ValidClass
	}
	if other.InvalidClass != "" {
		o.InvalidClass = other.InvalidClass
	}
	return o
}

// Observer receives evaluation events. Implementations must be safe for
// concurrent use when shared between forms.
type Observer interface {
	FieldEvaluated(form, field string, v validator.Verdict)
	SubmissionCompleted(form string, valid bool, elapsed time.Duration)
}

// Option configures a Form.
type Option func(*settings)

type settings struct {
	name        string
	options     Options
	registry    *validator.Registry
	logger      *slog.Logger
	observer    Observer
	concurrency int
	// onSuccess and onError hold a Callback[F]; New checks F.
	onSuccess any
	onError   any
	errs      []error
}

// WithName sets the form name used in verdicts, logs and metrics.
func WithName(name string) Option {
	return func(s *settings) {
		if name != "" {
			s.name = name
		}
	}
}

// WithOptions merges o into the current options by key.
func WithOptions(o Options) Option {
	return func(s *settings) { s.options = s.options.Merge(o) }
}

// WithErrorClass sets the class that marks (and identifies) error slots.
func WithErrorClass(class string) Option {
	return WithOptions(Options{ErrorClass: class})
}

// WithValidClass sets the class applied to valid fields.
func WithValidClass(class string) Option {
	return WithOptions(Options{ValidClass: class})
}

// WithInvalidClass sets the class applied to invalid fields.
func WithInvalidClass(class string) Option {
	return WithOptions(Options{InvalidClass: class})
}

// WithOnSuccess sets the callback for submissions where every field is valid.
// F must match the field type of the form; New reports ErrCallbackType
// otherwise. A nil callback keeps the current one.
func WithOnSuccess[F any](cb Callback[F]) Option {
	return func(s *settings) {
		if cb != nil {
			s.onSuccess = cb
		}
	}
}

// WithOnError sets the callback for submissions with at least one invalid
// field. F must match the field type of the form.
func WithOnError[F any](cb Callback[F]) Option {
	return func(s *settings) {
		if cb != nil {
			s.onError = cb
		}
	}
}

// WithRegistry sets the rule registry. Nil keeps validator.Default.
func WithRegistry(r *validator.Registry) Option {
	return func(s *settings) {
		if r != nil {
			s.registry = r
		}
	}
}

// WithLogger sets the logger. Nil keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver sets the evaluation observer.
func WithObserver(o Observer) Option {
	return func(s *settings) { s.observer = o }
}

// WithConcurrency evaluates up to n fields at once during a submission.
// 0 and 1 mean sequential evaluation.
func WithConcurrency(n int) Option {
	return func(s *settings) {
		if n < 0 {
			s.errs = append(s.errs, ErrInvalidConcurrency)
			return
		}
		s.concurrency = n
	}
}
