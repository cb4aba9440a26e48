package htmlform

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dmitrymomot/formguard/pkg/form"
	"github.com/dmitrymomot/formguard/pkg/validator"
)

// DirectiveAttr is the attribute holding a field's rules.
const DirectiveAttr = "data-validate"

// MessageAttr returns the attribute overriding the message of rule, e.g.
// "data-min-message". HTML attribute names are case-insensitive, so
// "minValue" maps to "data-minvalue-message".
func MessageAttr(rule string) string {
	return "data-" + strings.ToLower(rule) + "-message"
}

var _ form.Adapter[*html.Node] = (*Document)(nil)

// Fields returns every element carrying data-validate in document order.
func (d *Document) Fields() []*html.Node {
	var out []*html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			if _, ok := getAttr(n, DirectiveAttr); ok {
				out = append(out, n)
			}
		}
		return true
	})
	return out
}

// FieldName returns the name attribute, falling back to the id.
func (d *Document) FieldName(n *html.Node) string {
	if name := attrOr(n, "name"); name != "" {
		return name
	}
	return attrOr(n, "id")
}

// ReadValue returns the current value of a control. Unchecked checkboxes and
// radios read as empty so that "required" means checked.
func (d *Document) ReadValue(n *html.Node) string {
	switch {
	case isElement(n, "textarea"):
		return textContent(n)
	case isElement(n, "select"):
		opts := options(n)
		for _, opt := range opts {
			if _, ok := getAttr(opt, "selected"); ok {
				return optionValue(opt)
			}
		}
		if len(opts) > 0 {
			return optionValue(opts[0])
		}
		return ""
	case isCheckable(n):
		if _, ok := getAttr(n, "checked"); ok {
			return checkableValue(n)
		}
		return ""
	default:
		return attrOr(n, "value")
	}
}

// ReadDirective parses data-validate. ok is false when the attribute is absent.
func (d *Document) ReadDirective(n *html.Node) (validator.Directive, bool) {
	raw, ok := getAttr(n, DirectiveAttr)
	if !ok {
		return nil, false
	}
	return validator.ParseDirective(raw), true
}

// ReadCustomMessage reads data-<rule>-message.
func (d *Document) ReadCustomMessage(n *html.Node, rule string) (string, bool) {
	return getAttr(n, MessageAttr(rule))
}

// ApplyStatus sets exactly one of the status classes on the field and shows or
// hides its error slot, creating the slot on first use.
func (d *Document) ApplyStatus(n *html.Node, s form.Status) {
	replaceClasses(n, s.Class(), s.ValidClass, s.InvalidClass)

	slot := ensureSlot(n, s.ErrorClass)
	setText(slot, s.Message)
	if s.Valid {
		setDisplay(slot, "none")
	} else {
		setDisplay(slot, "block")
	}
}

// ErrorSlot returns the field's error slot: its next element sibling when it
// carries errorClass.
func (d *Document) ErrorSlot(n *html.Node, errorClass string) (*html.Node, bool) {
	return errorSlot(n, slotClass(errorClass))
}

// SlotID returns the id given to a created error slot, or "" when the field
// has no id.
func SlotID(n *html.Node) string {
	if id := attrOr(n, "id"); id != "" {
		return id + "-error"
	}
	return ""
}

func slotClass(errorClass string) string {
	if errorClass == "" {
		return form.DefaultErrorClass
	}
	return errorClass
}

func errorSlot(n *html.Node, class string) (*html.Node, bool) {
	if next := nextElementSibling(n); next != nil && hasClass(next, class) {
		return next, true
	}
	return nil, false
}

func ensureSlot(n *html.Node, errorClass string) *html.Node {
	class := slotClass(errorClass)
	if slot, ok := errorSlot(n, class); ok {
		return slot
	}

	slot := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr:     []html.Attribute{{Key: "class", Val: class}},
	}
	if id := SlotID(n); id != "" {
		slot.Attr = append(slot.Attr, html.Attribute{Key: "id", Val: id})
	}
	if n.Parent != nil {
		n.Parent.InsertBefore(slot, n.NextSibling)
	}
	return slot
}

// setDisplay replaces the display declaration of the inline style and keeps
// the others.
func setDisplay(n *html.Node, value string) {
	var decls []string
	for _, decl := range strings.Split(attrOr(n, "style"), ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		prop, _, _ := strings.Cut(decl, ":")
		if strings.EqualFold(strings.TrimSpace(prop), "display") {
			continue
		}
		decls = append(decls, decl)
	}
	decls = append(decls, "display: "+value)
	setAttr(n, "style", strings.Join(decls, "; "))
}
