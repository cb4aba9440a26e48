// Package formhttp serves an HTML form template with server-side validation.
//
// A Handler owns one template. Every request parses a fresh htmlform.Document,
// so handlers are safe for concurrent use and never leak state between users.
//
// # Routes
//
// Mount registers three routes on a chi router:
//
//   - GET  {path}           renders the pristine form
//   - POST {path}           binds an application/x-www-form-urlencoded body and
//     submits the form; valid submissions go to the SubmitFunc, invalid ones
//     are answered with 422 and the annotated form
//   - POST {path}/validate  reads datastar signals, validates the fields they
//     name and patches each field and its error slot over SSE
//
// # Usage
//
//	h, err := formhttp.New(signupTemplate,
//	    formhttp.WithFormOptions(form.WithName("signup")),
//	    formhttp.WithSuccessURL("/welcome"),
//	)
//	if err != nil {
//	    return err
//	}
//	r := chi.NewRouter()
//	h.Mount(r, "/signup")
//
// # Datastar
//
// A submission made by datastar (Accept: text/event-stream) is answered over
// SSE: the whole form is patched when invalid and the browser is redirected
// to the success URL when valid. Field ids drive the morphing; fields without
// an id fall back to patching the whole form, which then needs an id itself.
//
// # Error Handling
//
// Transport problems (wrong media type, malformed body or signals, oversized
// requests) are answered with the matching 4xx status and logged at warn
// level. Errors wrap the sentinels in errors.go.
package formhttp
