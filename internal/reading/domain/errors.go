package domain

import "errors"

var (
	ErrInvalidCUPS    = errors.New("invalid_cups")
	ErrInvalidDate    = errors.New("invalid_date")
	ErrInvalidVolume  = errors.New("invalid_volume")
	ErrNegativeVolume = errors.New("negative_volume")
	ErrInvalidKind    = errors.New("invalid_kind")
	ErrNotFound       = errors.New("not_found")
	ErrAlreadyExists  = errors.New("already_exists")
)
