package validator

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// checkRequired passes when the value is non-empty after trimming whitespace.
func checkRequired(value string, _ []string) bool {
	return strings.TrimSpace(value) != ""
}

func checkMinLength(value string, params []string) bool {
	min, ok := intParam(params)
	if !ok {
		return false
	}
	return CharCount(value) >= min
}

func checkMaxLength(value string, params []string) bool {
	max, ok := intParam(params)
	if !ok {
		return false
	}
	return CharCount(value) <= max
}

// CharCount returns the number of characters in s as used by the min and max
// rules: code points of the NFC normal form, so "é" counts once whether it was
// typed precomposed or as e + combining accent.
func CharCount(s string) int {
	if s == "" {
		return 0
	}
	return utf8.RuneCountInString(norm.NFC.String(s))
}

// intParam parses the first parameter as a base-10 integer.
func intParam(params []string) (int, bool) {
	if len(params) == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(params[0]))
	if err != nil {
		return 0, false
	}
	return n, true
}
