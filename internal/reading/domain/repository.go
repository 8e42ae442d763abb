package domain

import (
	"context"
	"time"
)

type Repository interface {
	// LastBefore returns the latest reading strictly before date, or nil.
	LastBefore(ctx context.Context, cups string, date time.Time) (*MeterReading, error)
	// LastOnOrBefore returns the latest reading on or before date, or nil.
	LastOnOrBefore(ctx context.Context, cups string, date time.Time) (*MeterReading, error)
	Create(ctx context.Context, reading *MeterReading) error
	ListByCUPS(ctx context.Context, cups string) ([]MeterReading, error)
}
