package domain

import "errors"

// Input validation failures. Callers match them with errors.Is; the wrapped
// message names the offending field.
var (
	ErrInvalidProfile       = errors.New("invalid profile")
	ErrInvalidStrategy      = errors.New("invalid strategy")
	ErrInvalidTaxParameters = errors.New("invalid tax parameters")
)
