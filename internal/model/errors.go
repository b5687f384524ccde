package model

import "errors"

// ErrInvalidData indicates that the binary's container format was not
// understood or the aggregated resolution could not be produced. Callers can
// match it with errors.Is.
var ErrInvalidData = errors.New("invalid data")
