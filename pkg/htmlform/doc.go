// Package htmlform adapts an HTML document parsed with golang.org/x/net/html
// to form.Adapter, so forms can be validated and annotated on the server.
//
// Fields opt in with a data-validate attribute holding a directive, and may
// override the message of any rule with data-<rule>-message:
//
//	<input id="password" name="password" type="password"
//	       data-validate="required min:8"
//	       data-min-message="Use at least 8 characters">
//	<div class="error-message"></div>
//
// ApplyStatus toggles the valid and invalid classes on the field and writes
// the message into its error slot: the next element sibling when it carries
// the error class, otherwise a <div> created right after the field.
//
// # Usage
//
//	doc, err := htmlform.ParseString(source)
//	if err != nil {
//	    return err
//	}
//	doc.Bind(r.PostForm)
//
//	f, err := form.New[*html.Node](doc, form.WithName("signup"))
//	if err != nil {
//	    return err
//	}
//	verdict := f.OnSubmitRequested(ctx)
//	_ = doc.Render(w)
//
// A Document is not safe for concurrent use. Parse one per request.
package htmlform
