package formhttp

import (
	"errors"
	"net/http"
)

var (
	// ErrUnsupportedMediaType is returned for submissions that are not
	// application/x-www-form-urlencoded.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrInvalidForm is returned when the request body cannot be parsed.
	ErrInvalidForm = errors.New("invalid form data")

	// ErrInvalidSignals is returned when datastar signals cannot be decoded.
	ErrInvalidSignals = errors.New("invalid datastar signals")

	// ErrRequestTooLarge is returned when the body exceeds the configured limit.
	ErrRequestTooLarge = errors.New("request body too large")

	// ErrInvalidTemplate is returned by New when the form template cannot be
	// parsed or declares no validated field.
	ErrInvalidTemplate = errors.New("invalid form template")
)

// statusCode maps an error to the HTTP status it is answered with.
func statusCode(err error) int {
	switch {
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrRequestTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrInvalidForm), errors.Is(err, ErrInvalidSignals):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
