// Package validator provides the rule registry and field evaluator behind
// declarative form validation.
//
// Fields declare their rules as compact directive strings such as
//
//	required min:8 pattern:^[A-Z].*
//
// Each whitespace-separated token names a rule, optionally followed by
// colon-separated parameters. The Registry maps rule names to Rule values and
// the Evaluator walks a parsed Directive in order, stopping at the first rule
// that fails.
//
// # Architecture
//
// Each source file groups a family of built-in rules (`string_rules.go`,
// `numeric_rules.go`, `format_rules.go`, `pattern_rules.go`). Default message
// templates live in `messages.go`, directive parsing in `directive.go` and the
// evaluation loop in `evaluator.go`.
//
// Core building blocks:
//   - Rule       – predicate plus default message template
//   - RuleFunc   – adapts a CheckFunc and template string to Rule
//   - Registry   – immutable name → Rule table built once with New
//   - Directive  – ordered list of RuleRef values parsed from a string
//   - Evaluator  – pure short-circuit evaluation producing a Verdict
//   - RuleSet    – YAML-declared custom rules registered with WithRuleSet
//
// A Registry is never mutated after New returns, so a single instance can be
// shared by any number of goroutines.
//
// # Usage
//
//	reg, err := validator.New(
//	    validator.WithCheck("even", func(v string, _ []string) bool {
//	        n, err := strconv.Atoi(v)
//	        return err == nil && n%2 == 0
//	    }, "Please enter an even number"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	ev := validator.NewEvaluator(reg)
//	verdict := ev.Evaluate(validator.ParseDirective("required min:8"), value, nil)
//	if !verdict.Valid {
//	    fmt.Println(verdict.Rule, verdict.Message)
//	}
//
// # Error Handling
//
// Evaluation never returns an error. Malformed parameters (a non-numeric
// bound, an invalid pattern) make the rule fail closed, unknown rule names are
// skipped, and a panicking custom predicate is recovered and reported as a
// failure. Errors are only returned while building a Registry or loading a
// RuleSet; they wrap the sentinels declared in errors.go.
package validator
