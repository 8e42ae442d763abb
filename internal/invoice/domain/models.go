// Package domain contains persistence models for invoices and their lines.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// LineType classifies an invoice line.
type LineType string

const (
	LineFixedTerm    LineType = "FIXED_TERM"
	LineVariableTerm LineType = "VARIABLE_TERM"
	LineRental       LineType = "RENTAL"
	LineTax          LineType = "TAX"
)

// Invoice is one billed period for one supply point. (cups, period_start) is
// the idempotency key for the whole system; invoices are never mutated after
// creation.
type Invoice struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	Number      string          `json:"number" gorm:"type:text;not null;uniqueIndex:ux_invoices_number"`
	CUPS        string          `json:"cups" gorm:"column:cups;type:text;not null;uniqueIndex:ux_invoices_cups_period,priority:1"`
	PeriodStart time.Time       `json:"period_start" gorm:"type:date;not null;uniqueIndex:ux_invoices_cups_period,priority:2"`
	PeriodEnd   time.Time       `json:"period_end" gorm:"type:date;not null"`
	Base        decimal.Decimal `json:"base" gorm:"type:numeric(12,2);not null"`
	Tax         decimal.Decimal `json:"tax" gorm:"type:numeric(12,2);not null"`
	Total       decimal.Decimal `json:"total" gorm:"type:numeric(12,2);not null"`
	IssuedAt    time.Time       `json:"issued_at" gorm:"type:date;not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Lines []InvoiceLine `json:"lines" gorm:"foreignKey:InvoiceID"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceLine is one amount component of an invoice. Lines live and die with
// their invoice.
type InvoiceLine struct {
	ID          snowflake.ID    `json:"id" gorm:"primaryKey"`
	InvoiceID   snowflake.ID    `json:"invoice_id" gorm:"not null;index"`
	Type        LineType        `json:"type" gorm:"type:text;not null"`
	Description string          `json:"description" gorm:"type:text;not null"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:numeric(14,4);not null"`
	UnitPrice   decimal.Decimal `json:"unit_price" gorm:"type:numeric(12,6);not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Position    int             `json:"position" gorm:"not null"`
}

// TableName sets the database table name.
func (InvoiceLine) TableName() string { return "invoice_lines" }
