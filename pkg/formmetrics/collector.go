package formmetrics

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

// DefaultNamespace prefixes metric names when New is given an empty namespace.
const DefaultNamespace = "formguard"

const (
	outcomeValid   = "valid"
	outcomeInvalid = "invalid"
	ruleNone       = "none"
)

// DurationBuckets cover in-process evaluation, 100µs to about 1.6s.
var DurationBuckets = prometheus.ExponentialBuckets(0.0001, 4, 8)

// Collector records form verdicts. It is safe for concurrent use.
type Collector struct {
	evaluations *prometheus.CounterVec
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	gatherer    prometheus.Gatherer
}

var _ form.Observer = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg. A nil reg is
// replaced by a fresh prometheus.Registry, exposed through Handler.
func New(namespace string, reg prometheus.Registerer) (*Collector, error) {
	if namespace == "" {
		namespace = DefaultNamespace
	}

	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg == nil {
		r := prometheus.NewRegistry()
		reg, gatherer = r, r
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{
		evaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "field_evaluations_total",
				Help:      "Total number of field evaluations by failing rule and outcome",
			},
			[]string{"form", "rule", "outcome"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Total number of completed form submissions by outcome",
			},
			[]string{"form", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "submission_duration_seconds",
				Help:      "Time spent evaluating a form submission in seconds",
				Buckets:   DurationBuckets,
			},
			[]string{"form"},
		),
		gatherer: gatherer,
	}

	var errs []error
	for _, m := range []prometheus.Collector{c.evaluations, c.submissions, c.duration} {
		if err := reg.Register(m); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrRegister}, errs...)...)
	}
	return c, nil
}

// FieldEvaluated counts one field verdict.
func (c *Collector) FieldEvaluated(formName, _ string, v validator.Verdict) {
	rule := v.Rule
	if rule == "" {
		rule = ruleNone
	}
	c.evaluations.WithLabelValues(formName, rule, outcome(v.Valid)).Inc()
}

// SubmissionCompleted counts a submission and observes its duration.
func (c *Collector) SubmissionCompleted(formName string, valid bool, elapsed time.Duration) {
	c.submissions.WithLabelValues(formName, outcome(valid)).Inc()
	c.duration.WithLabelValues(formName).Observe(elapsed.Seconds())
}

// Handler serves the registry the collector was registered with.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

func outcome(valid bool) string {
	if valid {
		return outcomeValid
	}
	return outcomeInvalid
}
