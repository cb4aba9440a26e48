package htmlform

import "errors"

// ErrInvalidDocument is returned when the source cannot be read or parsed.
var ErrInvalidDocument = errors.New("invalid html document")
