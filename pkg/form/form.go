package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

// Form evaluates the fields exposed by an Adapter and reflects the verdicts
// through it.
type Form[F any] struct {
	name        string
	adapter     Adapter[F]
	options     Options
	evaluator   *validator.Evaluator
	log         *slog.Logger
	observer    Observer
	concurrency int
	onSuccess   Callback[F]
	onError     Callback[F]
}

// New creates a Form over adapter.
func New[F any](adapter Adapter[F], opts ...Option) (*Form[F], error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}

	s := &settings{
		name:     "form",
		options:  DefaultOptions(),
		registry: validator.Default(),
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	onSuccess, err := callbackFor[F](s.onSuccess)
	if err != nil {
		s.errs = append(s.errs, fmt.Errorf("on success: %w", err))
	}
	onError, err := callbackFor[F](s.onError)
	if err != nil {
		s.errs = append(s.errs, fmt.Errorf("on error: %w", err))
	}
	if len(s.errs) > 0 {
		return nil, errors.Join(s.errs...)
	}

	f := &Form[F]{
		name:        s.name,
		adapter:     adapter,
		options:     s.options,
		log:         s.logger.With(logger.Form(s.name)),
		observer:    s.observer,
		concurrency: s.concurrency,
		onSuccess:   onSuccess,
		onError:     onError,
	}
	f.evaluator = validator.NewEvaluator(s.registry, validator.WithPanicHandler(func(rule string, r any) {
		f.log.Warn("rule panicked", logger.Rule(rule), logger.Panic(r))
	}))
	return f, nil
}

// For returns a copy of f driving adapter. The copy shares the registry,
// options, callbacks, logger and observer of f, which makes it cheap to validate a fresh
// document per request.
func (f *Form[F]) For(adapter Adapter[F]) (*Form[F], error) {
	if adapter == nil {
		return nil, ErrNilAdapter
	}
	c := *f
	c.adapter = adapter
	return &c, nil
}

// Name returns the form name.
func (f *Form[F]) Name() string { return f.name }

// Options returns the effective options.
func (f *Form[F]) Options() Options { return f.options }

// Adapter returns the adapter the form drives.
func (f *Form[F]) Adapter() Adapter[F] { return f.adapter }

// Evaluate scores field without touching its visual state. ok is false when
// the field declares no directive.
func (f *Form[F]) Evaluate(field F) (v validator.Verdict, ok bool) {
	snap, ok := f.snapshot(field)
	if !ok {
		return validator.Valid, false
	}
	return f.evaluate(context.Background(), snap), true
}

// OnValueChanged evaluates field and applies its status. Fields without a
// directive are left untouched and reported valid with ok false.
func (f *Form[F]) OnValueChanged(ctx context.Context, field F) (v validator.Verdict, ok bool) {
	snap, ok := f.snapshot(field)
	if !ok {
		return validator.Valid, false
	}
	v = f.evaluate(ctx, snap)
	f.adapter.ApplyStatus(field, f.status(v))
	return v, true
}

// OnSubmitRequested evaluates all fields, applies every status and then calls
// OnSuccess when all are valid or OnError otherwise. Exactly one callback runs
// per call. ctx is handed to the callback and the logger; evaluation never
// blocks, so it is not abandoned when ctx ends.
func (f *Form[F]) OnSubmitRequested(ctx context.Context) Verdict {
	start := time.Now()
	verdict := Verdict{SubmissionID: uuid.New(), Form: f.name}
	log := f.log.With(logger.SubmissionID(verdict.SubmissionID))

	fields := f.adapter.Fields()
	targets := make([]F, 0, len(fields))
	snaps := make([]snapshot, 0, len(fields))
	for _, field := range fields {
		if snap, ok := f.snapshot(field); ok {
			targets = append(targets, field)
			snaps = append(snaps, snap)
		}
	}

	results := f.evaluateAll(ctx, snaps)

	verdict.Valid = true
	verdict.Fields = make([]FieldResult, len(snaps))
	for i, field := range targets {
		f.adapter.ApplyStatus(field, f.status(results[i]))
		verdict.Fields[i] = FieldResult{Name: snaps[i].name, Verdict: results[i]}
		if !results[i].Valid {
			verdict.Valid = false
		}
	}

	elapsed := time.Since(start)
	if f.observer != nil {
		f.observer.SubmissionCompleted(f.name, verdict.Valid, elapsed)
	}
	log.InfoContext(ctx, "form submitted",
		logger.Outcome(verdict.Valid),
		logger.Count("fields", len(verdict.Fields)),
		logger.Count("invalid", len(verdict.Invalid())),
		logger.Duration(elapsed),
	)

	sub := Submission[F]{Form: f, Verdict: verdict}
	if verdict.Valid {
		if f.onSuccess != nil {
			f.onSuccess(ctx, sub)
		}
	} else if f.onError != nil {
		f.onError(ctx, sub)
	}
	return verdict
}

// snapshot is everything the evaluator needs from one field, read through the
// adapter up front so evaluation can run off the caller's goroutine.
type snapshot struct {
	name      string
	value     string
	directive validator.Directive
	messages  map[string]string
}

func (s snapshot) lookup(rule string) (string, bool) {
	msg, ok := s.messages[rule]
	return msg, ok
}

func (f *Form[F]) snapshot(field F) (snapshot, bool) {
	d, ok := f.adapter.ReadDirective(field)
	if !ok {
		return snapshot{}, false
	}
	snap := snapshot{
		name:      f.adapter.FieldName(field),
		value:     f.adapter.ReadValue(field),
		directive: d,
	}
	for _, ref := range d {
		if _, seen := snap.messages[ref.Name]; seen {
			continue
		}
		if msg, ok := f.adapter.ReadCustomMessage(field, ref.Name); ok && msg != "" {
			if snap.messages == nil {
				snap.messages = make(map[string]string, len(d))
			}
			snap.messages[ref.Name] = msg
		}
	}
	return snap, true
}

func (f *Form[F]) evaluate(ctx context.Context, snap snapshot) validator.Verdict {
	if unknown := f.evaluator.Unknown(snap.directive); len(unknown) > 0 {
		f.log.DebugContext(ctx, "skipping unknown rules", logger.Field(snap.name), logger.Rules(unknown))
	}

	v := f.evaluator.Evaluate(snap.directive, snap.value, snap.lookup)
	if !v.Valid {
		f.log.DebugContext(ctx, "field invalid", logger.Field(snap.name), logger.Rule(v.Rule))
	}
	if f.observer != nil {
		f.observer.FieldEvaluated(f.name, snap.name, v)
	}
	return v
}

func (f *Form[F]) evaluateAll(ctx context.Context, snaps []snapshot) []validator.Verdict {
	results := make([]validator.Verdict, len(snaps))
	if f.concurrency <= 1 || len(snaps) <= 1 {
		for i, snap := range snaps {
			results[i] = f.evaluate(ctx, snap)
		}
		return results
	}

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, snap := range snaps {
		g.Go(func() error {
			results[i] = f.evaluate(ctx, snap)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (f *Form[F]) status(v validator.Verdict) Status {
	return Status{
		Verdict:      v,
		ErrorClass:   f.options.ErrorClass,
		ValidClass:   f.options.ValidClass,
		InvalidClass: f.options.InvalidClass,
	}
}

func callbackFor[F any](cb any) (Callback[F], error) {
	if cb == nil {
		return nil, nil
	}
	typed, ok := cb.(Callback[F])
	if !ok {
		var zero F
		return nil, fmt.Errorf("%w: got %T, want callback for %T", ErrCallbackType, cb, zero)
	}
	return typed, nil
}
