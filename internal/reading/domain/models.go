// Package domain contains persistence models for meter readings.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Kind distinguishes how a reading was obtained. Billing accepts both kinds
// as period boundaries; the distinction is informational.
type Kind string

const (
	KindReal      Kind = "REAL"
	KindEstimated Kind = "ESTIMATED"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return k == KindReal || k == KindEstimated
}

// MeterReading is one cumulative meter value for a supply point on a date.
// Readings are immutable once created; (cups, date) is unique.
type MeterReading struct {
	ID        snowflake.ID    `json:"id" gorm:"primaryKey"`
	CUPS      string          `json:"cups" gorm:"column:cups;type:text;not null;uniqueIndex:ux_meter_readings_cups_date,priority:1"`
	Date      time.Time       `json:"date" gorm:"type:date;not null;uniqueIndex:ux_meter_readings_cups_date,priority:2"`
	Volume    decimal.Decimal `json:"volume_m3" gorm:"column:volume_m3;type:numeric(12,3);not null"`
	Kind      Kind            `json:"kind" gorm:"type:text;not null"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (MeterReading) TableName() string { return "meter_readings" }

func (r *MeterReading) Validate() error {
	if r.CUPS == "" {
		return ErrInvalidCUPS
	}
	if r.Date.IsZero() {
		return ErrInvalidDate
	}
	if r.Volume.IsNegative() {
		return ErrNegativeVolume
	}
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	return nil
}
