package domain

import "errors"

var (
	// ErrMalformedPayload is returned when an API payload is missing a
	// required field or carries a value that cannot be coerced
	ErrMalformedPayload = errors.New("malformed API payload")

	// ErrInvalidDate is returned when a date string is not YYYY-MM-DD
	ErrInvalidDate = errors.New("invalid date, want YYYY-MM-DD")
)
