package validator

import (
	"net/url"
	"regexp"
)

var (
	// local@domain.tld with no whitespace or extra @ in any part. RE2's \s is
	// ASCII only, so vertical tab, Unicode separators and BOM are listed too.
	emailRegex = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

	// digits, whitespace and + - ( )
	phoneRegex = regexp.MustCompile(`^[\d\s\v\p{Z}\x{FEFF}+()-]+$`)
)

func checkEmail(value string, _ []string) bool {
	return emailRegex.MatchString(value)
}

func checkPhone(value string, _ []string) bool {
	return phoneRegex.MatchString(value)
}

// checkURL passes for an absolute URL with both a scheme and a host name.
// A bare port ("http://:80") is not a host.
func checkURL(value string, _ []string) bool {
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Hostname() != ""
}
