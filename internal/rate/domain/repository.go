package domain

import (
	"context"
	"time"
)

// Catalog resolves the rate configuration the billing engine prices with.
// Tariffs and taxes are effective-dated: the version with the greatest
// effective_from on or before the reference date wins. Absent resolutions
// return nil, nil.
type Catalog interface {
	ActiveTariff(ctx context.Context, code string, asOf time.Time) (*TariffVersion, error)
	ConversionFactor(ctx context.Context, zone, period string) (*ConversionFactor, error)
	ActiveTax(ctx context.Context, code string, asOf time.Time) (*TaxVersion, error)
}

// Repository is the Catalog plus the write side used by the admin API.
type Repository interface {
	Catalog

	CreateTariff(ctx context.Context, tariff *TariffVersion) error
	ListTariffs(ctx context.Context, code string) ([]TariffVersion, error)
	CreateConversionFactor(ctx context.Context, factor *ConversionFactor) error
	ListConversionFactors(ctx context.Context, zone string) ([]ConversionFactor, error)
	CreateTax(ctx context.Context, tax *TaxVersion) error
	ListTaxes(ctx context.Context, code string) ([]TaxVersion, error)
}
