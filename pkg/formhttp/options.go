package formhttp

import (
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/formguard/pkg/form"
)

// DefaultMaxBodyBytes caps submission bodies unless WithMaxBodyBytes says otherwise.
const DefaultMaxBodyBytes int64 = 1 << 20

// SubmitFunc handles a valid submission. r.PostForm holds the submitted
// values and v the verdict of every field.
type SubmitFunc func(w http.ResponseWriter, r *http.Request, v form.Verdict) error

// Option configures a Handler.
type Option func(*Handler)

// WithFormOptions passes options to every form.Form the handler builds.
func WithFormOptions(opts ...form.Option) Option {
	return func(h *Handler) { h.formOpts = append(h.formOpts, opts...) }
}

// WithSubmit sets the handler for valid submissions. It replaces the default
// redirect.
func WithSubmit(fn SubmitFunc) Option {
	return func(h *Handler) {
		if fn != nil {
			h.submit = fn
		}
	}
}

// WithSuccessURL sets where the default submit handler redirects with 303.
// Without it valid submissions are answered with 204.
func WithSuccessURL(url string) Option {
	return func(h *Handler) { h.successURL = url }
}

// WithMaxBodyBytes limits the size of submission and signal bodies.
// Non-positive values disable the limit.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) { h.maxBodyBytes = n }
}

// WithLogger sets the logger for transport errors and submissions.
func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}
