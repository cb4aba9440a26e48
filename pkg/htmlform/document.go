package htmlform

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/url"
	"slices"
	"strings"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is a parsed HTML form template.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document or fragment. Sources starting with a doctype
// or an <html> element are parsed as full documents; anything else is parsed
// as body content and rendered back without the implied html, head and body
// elements.
func Parse(r io.Reader) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}

	if isFullDocument(src) {
		root, err := html.Parse(bytes.NewReader(src))
		if err != nil {
			return nil, errors.Join(ErrInvalidDocument, err)
		}
		return &Document{root: root}, nil
	}

	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(bytes.NewReader(src), body)
	if err != nil {
		return nil, errors.Join(ErrInvalidDocument, err)
	}
	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func isFullDocument(src []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(src))
	return bytes.HasPrefix(head, []byte("<!doctype")) || bytes.HasPrefix(head, []byte("<html"))
}

// Root returns the document node.
func (d *Document) Root() *html.Node {
	return d.root
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document to a string.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// Component exposes the document as a templ component.
func (d *Document) Component() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return d.Render(w)
	})
}

// Fragment renders the given nodes one after another as a templ component.
// Nil nodes are skipped.
func Fragment(nodes ...*html.Node) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		for _, n := range nodes {
			if n == nil {
				continue
			}
			if err := html.Render(w, n); err != nil {
				return err
			}
		}
		return nil
	})
}

// OuterHTML renders n including its own tag.
func OuterHTML(n *html.Node) string {
	var buf bytes.Buffer
	_ = html.Render(&buf, n)
	return buf.String()
}

// FieldByName returns the first validated field whose FieldName is name.
func (d *Document) FieldByName(name string) (*html.Node, bool) {
	for _, f := range d.Fields() {
		if d.FieldName(f) == name {
			return f, true
		}
	}
	return nil, false
}

// ElementByID returns the element with the given id.
func (d *Document) ElementByID(id string) (*html.Node, bool) {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attrOr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Bind copies submitted values into the controls of the document, keyed by
// FieldName so a control without a name attribute binds by its id. Only
// names present in values are touched. Checkboxes and radios become
// checked when their value is among the submitted ones; file and button
// inputs are left alone.
func (d *Document) Bind(values url.Values) {
	for _, n := range d.controls() {
		name := d.FieldName(n)
		if name == "" {
			continue
		}
		submitted, ok := values[name]
		if !ok {
			continue
		}
		if isCheckable(n) {
			setChecked(n, slices.Contains(submitted, checkableValue(n)))
			continue
		}
		if len(submitted) > 0 {
			d.SetValue(n, submitted[0])
		}
	}
}

// SetValue writes v into a control: the value attribute of an input, the text
// of a textarea, or the selected option of a select. Checkboxes and radios
// are checked when v equals their value.
func (d *Document) SetValue(n *html.Node, v string) {
	switch {
	case isElement(n, "textarea"):
		setText(n, v)
	case isElement(n, "select"):
		for _, opt := range options(n) {
			if optionValue(opt) == v {
				setAttr(opt, "selected", "")
			} else {
				removeAttr(opt, "selected")
			}
		}
	case isCheckable(n):
		setChecked(n, checkableValue(n) == v)
	case isElement(n, "input"):
		if !ignoredInput(n) {
			setAttr(n, "value", v)
		}
	}
}

func (d *Document) controls() []*html.Node {
	var out []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if isElement(n, "input") || isElement(n, "textarea") || isElement(n, "select") {
			out = append(out, n)
		}
		return true
	})
	return out
}

func inputType(n *html.Node) string {
	t := strings.ToLower(strings.TrimSpace(attrOr(n, "type")))
	if t == "" {
		return "text"
	}
	return t
}

func isCheckable(n *html.Node) bool {
	if !isElement(n, "input") {
		return false
	}
	t := inputType(n)
	return t == "checkbox" || t == "radio"
}

func ignoredInput(n *html.Node) bool {
	switch inputType(n) {
	case "file", "submit", "button", "reset", "image":
		return true
	}
	return false
}

func checkableValue(n *html.Node) string {
	if v, ok := getAttr(n, "value"); ok {
		return v
	}
	return "on"
}

func setChecked(n *html.Node, checked bool) {
	if checked {
		setAttr(n, "checked", "")
	} else {
		removeAttr(n, "checked")
	}
}

func options(sel *html.Node) []*html.Node {
	var out []*html.Node
	walk(sel, func(n *html.Node) bool {
		if isElement(n, "option") {
			out = append(out, n)
		}
		return true
	})
	return out
}

func optionValue(opt *html.Node) string {
	if v, ok := getAttr(opt, "value"); ok {
		return v
	}
	return strings.Join(strings.Fields(textContent(opt)), " ")
}
