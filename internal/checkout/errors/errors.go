package errors

import "errors"

var (
	ErrUnparseableDates = errors.New("check-in or check-out is not a valid calendar date")

	ErrZeroNights = errors.New("date range spans less than one night")

	ErrMissingClientSecret = errors.New("provider response missing client_secret")
)
