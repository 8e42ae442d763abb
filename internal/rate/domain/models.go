// Package domain contains the effective-dated rate tables: tariff versions,
// zone/month conversion factors, and tax versions.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// TariffVersion is one time-ordered version of a tariff plan.
// (code, effective_from) is unique; resolution picks the latest version
// whose effective_from does not exceed the reference date.
type TariffVersion struct {
	ID             snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code           string          `json:"code" gorm:"type:text;not null;uniqueIndex:ux_tariff_versions_code_from,priority:1"`
	FixedMonthly   decimal.Decimal `json:"fixed_monthly_eur" gorm:"column:fixed_monthly_eur;type:numeric(10,4);not null"`
	VariablePerKWh decimal.Decimal `json:"variable_eur_kwh" gorm:"column:variable_eur_kwh;type:numeric(10,6);not null"`
	EffectiveFrom  time.Time       `json:"effective_from" gorm:"type:date;not null;uniqueIndex:ux_tariff_versions_code_from,priority:2"`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (TariffVersion) TableName() string { return "tariff_versions" }

func (t *TariffVersion) Validate() error {
	if t.Code == "" {
		return ErrInvalidCode
	}
	if t.FixedMonthly.IsNegative() || t.VariablePerKWh.IsNegative() {
		return ErrInvalidCharge
	}
	if t.EffectiveFrom.IsZero() {
		return ErrInvalidEffectiveFrom
	}
	return nil
}

// ConversionFactor converts metered volume to billed energy for one zone and
// month: energy_kwh = volume_m3 * coefficient * calorific_value. Looked up by
// exact (zone, period) match, not effective-dating.
type ConversionFactor struct {
	ID             snowflake.ID    `json:"id" gorm:"primaryKey"`
	Zone           string          `json:"zone" gorm:"type:text;not null;uniqueIndex:ux_conversion_factors_zone_period,priority:1"`
	Period         string          `json:"period" gorm:"type:text;not null;uniqueIndex:ux_conversion_factors_zone_period,priority:2"` // YYYY-MM
	Coefficient    decimal.Decimal `json:"coefficient" gorm:"type:numeric(10,6);not null"`
	CalorificValue decimal.Decimal `json:"calorific_kwh_m3" gorm:"column:calorific_kwh_m3;type:numeric(10,6);not null"`
	CreatedAt      time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (ConversionFactor) TableName() string { return "conversion_factors" }

func (f *ConversionFactor) Validate() error {
	if f.Zone == "" {
		return ErrInvalidZone
	}
	if _, err := time.Parse("2006-01", f.Period); err != nil {
		return ErrInvalidPeriod
	}
	if !f.Coefficient.IsPositive() || !f.CalorificValue.IsPositive() {
		return ErrInvalidFactor
	}
	return nil
}

// TaxVersion is one time-ordered version of a tax rate.
// (code, effective_from) is unique; the rate is a fraction of the base.
type TaxVersion struct {
	ID            snowflake.ID    `json:"id" gorm:"primaryKey"`
	Code          string          `json:"code" gorm:"type:text;not null;uniqueIndex:ux_tax_versions_code_from,priority:1"`
	Rate          decimal.Decimal `json:"rate" gorm:"type:numeric(5,4);not null"`
	EffectiveFrom time.Time       `json:"effective_from" gorm:"type:date;not null;uniqueIndex:ux_tax_versions_code_from,priority:2"`
	CreatedAt     time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (TaxVersion) TableName() string { return "tax_versions" }

func (t *TaxVersion) Validate() error {
	if t.Code == "" {
		return ErrInvalidCode
	}
	if t.Rate.IsNegative() {
		return ErrInvalidRate
	}
	if t.EffectiveFrom.IsZero() {
		return ErrInvalidEffectiveFrom
	}
	return nil
}
