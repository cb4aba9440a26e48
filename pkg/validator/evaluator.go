package validator

// Verdict is the outcome of evaluating one field.
type Verdict struct {
	Valid bool
	// Rule is the name of the first failing rule; empty when Valid.
	Rule string
	// Message is the text to show next to the field; empty when Valid.
	Message string
}

// Invalid builds a failing verdict.
func Invalid(rule, message string) Verdict {
	return Verdict{Rule: rule, Message: message}
}

// Valid is the verdict of a field whose rules all passed.
var Valid = Verdict{Valid: true}

// MessageLookup returns the author-declared message for a rule on a single
// field, if one exists.
type MessageLookup func(rule string) (string, bool)

// PanicHandler is called when a rule's Evaluate panics. The rule is reported
// as failed.
type PanicHandler func(rule string, recovered any)

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithPanicHandler sets the callback invoked for recovered rule panics.
func WithPanicHandler(h PanicHandler) EvaluatorOption {
	return func(e *Evaluator) {
		if h != nil {
			e.onPanic = h
		}
	}
}

// Evaluator scores directives against a Registry. It holds no mutable state
// and is safe for concurrent use.
type Evaluator struct {
	registry *Registry
	onPanic  PanicHandler
}

// NewEvaluator creates an Evaluator over r. A nil registry means Default().
func NewEvaluator(r *Registry, opts ...EvaluatorOption) *Evaluator {
	if r == nil {
		r = Default()
	}
	e := &Evaluator{registry: r}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Registry returns the registry the evaluator reads from.
func (e *Evaluator) Registry() *Registry {
	return e.registry
}

// Evaluate walks d in order and returns the verdict of the first failing rule.
// Unknown rule names are skipped. The failing rule's message comes from lookup
// when it returns a non-empty string, otherwise from the rule's default
// template. lookup may be nil.
func (e *Evaluator) Evaluate(d Directive, value string, lookup MessageLookup) Verdict {
	for _, ref := range d {
		rule, ok := e.registry.Lookup(ref.Name)
		if !ok {
			continue
		}
		if e.passes(ref, rule, value) {
			continue
		}
		return Invalid(ref.Name, e.message(ref, rule, lookup))
	}
	return Valid
}

// EvaluateString parses directive and evaluates it.
func (e *Evaluator) EvaluateString(directive, value string, lookup MessageLookup) Verdict {
	return e.Evaluate(ParseDirective(directive), value, lookup)
}

// Unknown returns the names in d that are not registered, in declared order.
func (e *Evaluator) Unknown(d Directive) []string {
	var unknown []string
	for _, ref := range d {
		if !e.registry.Has(ref.Name) {
			unknown = append(unknown, ref.Name)
		}
	}
	return unknown
}

func (e *Evaluator) passes(ref RuleRef, rule Rule, value string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if e.onPanic != nil {
				e.onPanic(ref.Name, r)
			}
		}
	}()
	return rule.Evaluate(value, ref.Params)
}

func (e *Evaluator) message(ref RuleRef, rule Rule, lookup MessageLookup) (msg string) {
	if lookup != nil {
		if custom, ok := lookup(ref.Name); ok && custom != "" {
			return custom
		}
	}
	defer func() {
		if r := recover(); r != nil {
			msg = MessageFallback
			if e.onPanic != nil {
				e.onPanic(ref.Name, r)
			}
		}
	}()
	if msg = rule.DefaultMessage(ref.Params); msg == "" {
		msg = MessageFallback
	}
	return msg
}
