package formhttp

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	// dataStarAccept is the Accept value datastar sends with its requests.
	dataStarAccept = "text/event-stream"
	// dataStarHeader is set to "true" on every datastar fetch.
	dataStarHeader = "Datastar-Request"
	// dataStarQueryParam carries signals on GET requests.
	dataStarQueryParam = "datastar"
)

// isDataStar reports whether r was issued by datastar and expects SSE.
func isDataStar(r *http.Request) bool {
	if r.Header.Get(dataStarHeader) == "true" {
		return true
	}
	if strings.Contains(r.Header.Get("Accept"), dataStarAccept) {
		return true
	}
	return r.URL.Query().Has(dataStarQueryParam)
}

// signalValues flattens datastar signals into form values. Nested objects
// use dotted names ("address.zip"), arrays become repeated values, and
// booleans map to "on" or nothing, matching how a browser submits a checkbox
// without a value attribute.
func signalValues(signals map[string]any) url.Values {
	values := make(url.Values, len(signals))
	flattenSignals(values, "", signals)
	return values
}

func flattenSignals(values url.Values, prefix string, signals map[string]any) {
	for key, raw := range signals {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}
		if nested, ok := raw.(map[string]any); ok {
			flattenSignals(values, name, nested)
			continue
		}
		if list, ok := raw.([]any); ok {
			values[name] = []string{}
			for _, item := range list {
				if s, ok := signalString(item); ok {
					values.Add(name, s)
				}
			}
			continue
		}
		if s, ok := signalString(raw); ok {
			values.Set(name, s)
		} else {
			values[name] = []string{}
		}
	}
}

func signalString(v any) (string, bool) {
	switch v := v.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		if v {
			return "on", true
		}
		return "", false
	case nil:
		return "", true
	default:
		return "", false
	}
}
