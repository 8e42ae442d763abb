package domain

import "errors"

var (
	ErrInvalidCUPS       = errors.New("invalid_cups")
	ErrInvalidZone       = errors.New("invalid_zone")
	ErrInvalidTariffCode = errors.New("invalid_tariff_code")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrNotFound          = errors.New("not_found")
	ErrAlreadyExists     = errors.New("already_exists")
)
