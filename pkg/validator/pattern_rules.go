package validator

import "regexp"

// checkPattern compiles the first parameter on every call and reports whether
// it matches anywhere in value. A missing or invalid expression fails the rule.
// Anchor the expression with ^ and $ to require a full match. Expressions
// use RE2 syntax: lookarounds and backreferences such as ^(?=.*\d) do not
// compile, so such a rule fails every value.
func checkPattern(value string, params []string) bool {
	if len(params) == 0 {
		return false
	}
	re, err := regexp.Compile(params[0])
	if err != nil {
		return false
	}
	return re.MatchString(value)
}
