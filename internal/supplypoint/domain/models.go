// Package domain contains persistence models for supply points.
package domain

import "time"

// Status represents supply point lifecycle states.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// SupplyPoint is a single gas metering point. The CUPS code identifies it
// for its whole life; zone and tariff assignment drive rate resolution.
type SupplyPoint struct {
	CUPS       string    `json:"cups" gorm:"column:cups;primaryKey;type:text"`
	Zone       string    `json:"zone" gorm:"type:text;not null"`
	TariffCode string    `json:"tariff_code" gorm:"column:tariff_code;type:text;not null"`
	Status     Status    `json:"status" gorm:"type:text;not null;default:'ACTIVE'"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (SupplyPoint) TableName() string { return "supply_points" }

func (p *SupplyPoint) Validate() error {
	if p.CUPS == "" {
		return ErrInvalidCUPS
	}
	if p.Zone == "" {
		return ErrInvalidZone
	}
	if p.TariffCode == "" {
		return ErrInvalidTariffCode
	}
	if !p.Status.Valid() {
		return ErrInvalidStatus
	}
	return nil
}
