// Package form reconciles field verdicts with a form's visual state.
//
// A Form drives an Adapter, the thin layer that knows how to read a field's
// value, directive and custom messages from a concrete document and how to
// reflect a verdict back as status classes and error text. Form itself owns no
// document and subscribes to nothing; the surrounding code calls its two entry
// points:
//
//   - OnValueChanged evaluates and reflects a single field, typically on input.
//   - OnSubmitRequested evaluates every field, reflects each status, and calls
//     exactly one of the OnSuccess / OnError callbacks.
//
// # Architecture
//
// Evaluation is delegated to a validator.Evaluator built from the configured
// Registry (validator.Default unless WithRegistry or a rule set is supplied).
// During a submission Form first snapshots every field through the adapter,
// then evaluates the snapshots, sequentially or on up to WithConcurrency
// goroutines, and finally applies statuses in document order. Adapter methods
// are always called from the goroutine that called the entry point.
//
// # Configuration
//
// Options mirror the classic settings of client-side validators: ErrorClass
// (default "error-message"), ValidClass ("is-valid") and InvalidClass
// ("is-invalid"). WithOnSuccess and WithOnError take a Callback[F] that
// receives a Submission: the verdict plus the Form, and through it the
// adapter the statuses were applied to. Config holds the same class names
// plus concurrency and a rule set path, loadable from FORM_* environment
// variables with LoadConfig.
//
// # Observability
//
// WithLogger receives submissions at info level, invalid fields and unknown
// rule names at debug level, and recovered rule panics at warn level.
// WithObserver receives every field verdict and submission outcome; see
// package formmetrics for a Prometheus implementation.
package form
