// Package formmetrics exports form validation activity as Prometheus metrics.
//
// Collector implements form.Observer. Plug it into every form with
// form.WithObserver:
//
//	reg := prometheus.NewRegistry()
//	metrics, err := formmetrics.New("formguard", reg)
//	if err != nil {
//	    return err
//	}
//	f, err := form.New[*html.Node](doc, form.WithObserver(metrics))
//	...
//	http.Handle("/metrics", metrics.Handler())
//
// Metrics:
//   - <ns>_field_evaluations_total{form,rule,outcome}: field verdicts; rule is
//     the failing rule or "none"
//   - <ns>_submissions_total{form,outcome}: completed submissions
//   - <ns>_submission_duration_seconds{form}: time from submit to verdict
//
// Field names are deliberately not a label so that dynamic forms cannot
// inflate cardinality.
package formmetrics
