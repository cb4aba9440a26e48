package formmetrics

import "errors"

// ErrRegister is returned when a metric cannot be registered, typically
// because a collector with the same namespace already exists.
var ErrRegister = errors.New("failed to register form metrics")
