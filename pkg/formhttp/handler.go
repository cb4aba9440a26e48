package formhttp

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/net/html"

	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/htmlform"
	"github.com/dmitrymomot/formguard/pkg/logger"
)

const formMediaType = "application/x-www-form-urlencoded"

// Handler serves, submits and live-validates one form template.
type Handler struct {
	source       string
	proto        *form.Form[*html.Node]
	formOpts     []form.Option
	submit       SubmitFunc
	successURL   string
	maxBodyBytes int64
	log          *slog.Logger
}

// New parses source once to check it and returns a Handler for it.
func New(source string, opts ...Option) (*Handler, error) {
	doc, err := htmlform.ParseString(source)
	if err != nil {
		return nil, errors.Join(ErrInvalidTemplate, err)
	}
	if len(doc.Fields()) == 0 {
		return nil, fmt.Errorf("%w: no element declares %s", ErrInvalidTemplate, htmlform.DirectiveAttr)
	}

	h := &Handler{
		source:       source,
		maxBodyBytes: DefaultMaxBodyBytes,
		log:          logger.Discard(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(h)
		}
	}
	h.log = h.log.With(logger.Component("formhttp"))
	if h.submit == nil {
		h.submit = h.redirect
	}

	formOpts := append([]form.Option{form.WithLogger(h.log)}, h.formOpts...)
	if h.proto, err = form.New[*html.Node](doc, formOpts...); err != nil {
		return nil, err
	}
	return h, nil
}

// Mount registers the form routes under path on r.
func (h *Handler) Mount(r chi.Router, path string) {
	path = "/" + strings.Trim(path, "/")
	r.Get(path, h.ServeForm)
	r.Post(path, h.Submit)
	r.Post(strings.TrimSuffix(path, "/")+"/validate", h.Validate)
}

// Router returns a chi router with the form mounted at "/".
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	h.Mount(r, "/")
	return r
}

// ServeForm renders the pristine form.
func (h *Handler) ServeForm(w http.ResponseWriter, r *http.Request) {
	doc, err := h.document()
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := doc.Component().Render(r.Context(), w); err != nil {
		h.log.ErrorContext(r.Context(), "failed to render form", logger.Error(err))
	}
}

// Submit validates an urlencoded submission. Invalid submissions are answered
// with 422 and the annotated form; valid ones are passed to the SubmitFunc.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := checkMediaType(r); err != nil {
		h.fail(w, r, err)
		return
	}
	h.limitBody(w, r)
	if err := r.ParseForm(); err != nil {
		h.fail(w, r, bodyError(ErrInvalidForm, err))
		return
	}

	doc, f, err := h.bind(r.PostForm)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v := f.OnSubmitRequested(r.Context())
	if r.Context().Err() != nil {
		// The client is gone; there is nobody to answer.
		return
	}
	if !v.Valid {
		h.renderInvalid(w, r, doc)
		return
	}
	if err := h.submit(w, r, v); err != nil {
		h.fail(w, r, err)
	}
}

// Validate reads datastar signals, validates every field they name and
// patches those fields and their error slots.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	h.limitBody(w, r)
	signals := make(map[string]any)
	if err := datastar.ReadSignals(r, &signals); err != nil {
		h.fail(w, r, bodyError(ErrInvalidSignals, err))
		return
	}
	values := signalValues(signals)

	doc, f, err := h.bind(values)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	var patch []*html.Node
	whole := false
	for _, field := range doc.Fields() {
		if _, ok := values[doc.FieldName(field)]; !ok {
			continue
		}
		if _, ok := f.OnValueChanged(r.Context(), field); !ok {
			continue
		}
		slot, ok := doc.ErrorSlot(field, f.Options().ErrorClass)
		if !ok || elementID(field) == "" || elementID(slot) == "" {
			whole = true
			continue
		}
		patch = append(patch, field, slot)
	}

	sse := datastar.NewSSE(w, r)
	switch {
	case whole:
		err = sse.PatchElementTempl(doc.Component())
	case len(patch) > 0:
		err = sse.PatchElementTempl(htmlform.Fragment(patch...))
	}
	if err != nil {
		h.log.WarnContext(r.Context(), "failed to patch fields", logger.Error(err))
	}
}

func (h *Handler) document() (*htmlform.Document, error) {
	return htmlform.ParseString(h.source)
}

func (h *Handler) bind(values map[string][]string) (*htmlform.Document, *form.Form[*html.Node], error) {
	doc, err := h.document()
	if err != nil {
		return nil, nil, err
	}
	doc.Bind(values)
	f, err := h.proto.For(doc)
	if err != nil {
		return nil, nil, err
	}
	return doc, f, nil
}

func (h *Handler) renderInvalid(w http.ResponseWriter, r *http.Request, doc *htmlform.Document) {
	if isDataStar(r) {
		sse := datastar.NewSSE(w, r)
		if err := sse.PatchElementTempl(doc.Component()); err != nil {
			h.log.WarnContext(r.Context(), "failed to patch form", logger.Error(err))
		}
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := doc.Component().Render(r.Context(), w); err != nil {
		h.log.ErrorContext(r.Context(), "failed to render form", logger.Error(err))
	}
}

// redirect is the default SubmitFunc.
func (h *Handler) redirect(w http.ResponseWriter, r *http.Request, _ form.Verdict) error {
	if h.successURL == "" {
		w.WriteHeader(http.StatusNoContent)
		return nil
	}
	if isDataStar(r) {
		return datastar.NewSSE(w, r).Redirect(h.successURL)
	}
	http.Redirect(w, r, h.successURL, http.StatusSeeOther)
	return nil
}

func (h *Handler) limitBody(w http.ResponseWriter, r *http.Request) {
	if h.maxBodyBytes > 0 && r.Body != nil {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	code := statusCode(err)
	level := slog.LevelError
	if code < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	h.log.LogAttrs(r.Context(), level, "request failed",
		logger.Error(err),
		slog.Int("status_code", code),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Bool("is_datastar", isDataStar(r)),
	)
	http.Error(w, http.StatusText(code), code)
}

func checkMediaType(r *http.Request) error {
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		return fmt.Errorf("%w: missing content type, expected %s", ErrUnsupportedMediaType, formMediaType)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedMediaType, err)
	}
	if mediaType != formMediaType {
		return fmt.Errorf("%w: got %s, expected %s", ErrUnsupportedMediaType, mediaType, formMediaType)
	}
	return nil
}

func bodyError(sentinel, err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errors.Join(ErrRequestTooLarge, err)
	}
	return errors.Join(sentinel, err)
}

func elementID(n *html.Node) string {
	for _, a := range n.Attr {
		if a.Key == "id" {
			return a.Val
		}
	}
	return ""
}
