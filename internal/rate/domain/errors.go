package domain

import "errors"

var (
	ErrInvalidCode          = errors.New("invalid_code")
	ErrInvalidZone          = errors.New("invalid_zone")
	ErrInvalidPeriod        = errors.New("invalid_period")
	ErrInvalidCharge        = errors.New("invalid_charge")
	ErrInvalidFactor        = errors.New("invalid_factor")
	ErrInvalidRate          = errors.New("invalid_rate")
	ErrInvalidEffectiveFrom = errors.New("invalid_effective_from")
	ErrAlreadyExists        = errors.New("already_exists")
)
