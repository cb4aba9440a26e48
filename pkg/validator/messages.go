package validator

import (
	"strconv"
	"strings"
)

// Built-in rule names.
const (
	RuleRequired = "required"
	RuleEmail    = "email"
	RuleMin      = "min"
	RuleMax      = "max"
	RuleMinValue = "minValue"
	RuleMaxValue = "maxValue"
	RulePattern  = "pattern"
	RuleNumeric  = "numeric"
	RulePhone    = "phone"
	RuleURL      = "url"
)

// Default message templates for the built-in rules. {0} is replaced with the
// first directive parameter.
const (
	MessageRequired = "This field is required"
	MessageEmail    = "Please enter a valid email address"
	MessageMin      = "Minimum length is {0} characters"
	MessageMax      = "Maximum length is {0} characters"
	MessageMinValue = "Minimum value is {0}"
	MessageMaxValue = "Maximum value is {0}"
	MessagePattern  = "Please match the requested format"
	MessageNumeric  = "Please enter numbers only"
	MessagePhone    = "Please enter a valid phone number"
	MessageURL      = "Please enter a valid URL"

	// MessageFallback is used for rules registered without a template.
	MessageFallback = "Invalid input"
)

// FormatMessage substitutes {0}, {1}, ... in template with the matching
// parameters. {0} renders as an empty string when no parameters were given. An
// empty template yields MessageFallback.
func FormatMessage(template string, params []string) string {
	if template == "" {
		return MessageFallback
	}
	if !strings.Contains(template, "{") {
		return template
	}

	pairs := make([]string, 0, 2*(len(params)+1))
	for i, p := range params {
		pairs = append(pairs, "{"+strconv.Itoa(i)+"}", p)
	}
	if len(params) == 0 {
		pairs = append(pairs, "{0}", "")
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
