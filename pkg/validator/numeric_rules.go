package validator

import (
	"regexp"
	"strconv"
	"strings"
)

var numericRegex = regexp.MustCompile(`^[0-9]+$`)

// checkNumeric passes for a non-empty run of ASCII digits.
func checkNumeric(value string, _ []string) bool {
	return numericRegex.MatchString(value)
}

func checkMinValue(value string, params []string) bool {
	v, bound, ok := floatOperands(value, params)
	return ok && v >= bound
}

func checkMaxValue(value string, params []string) bool {
	v, bound, ok := floatOperands(value, params)
	return ok && v <= bound
}

// floatOperands parses both the value and the first parameter as decimal
// numbers. Anything else on either side is a parse failure.
func floatOperands(value string, params []string) (float64, float64, bool) {
	if len(params) == 0 {
		return 0, 0, false
	}
	v, ok := parseFloat(value)
	if !ok {
		return 0, 0, false
	}
	bound, ok := parseFloat(params[0])
	if !ok {
		return 0, 0, false
	}
	return v, bound, true
}

// decimalRegex is the decimal notation a form number may use. It keeps
// strconv's extras (hex floats, "inf", underscores) out.
var decimalRegex = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if !decimalRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
