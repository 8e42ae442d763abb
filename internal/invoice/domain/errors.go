package domain

import "errors"

var (
	// ErrAlreadyBilled is returned by Save when the (cups, period_start)
	// uniqueness constraint rejects the invoice. Callers treat it as
	// "someone else billed this point first", not as a failure.
	ErrAlreadyBilled = errors.New("already_billed")
	ErrNotFound      = errors.New("not_found")
)
