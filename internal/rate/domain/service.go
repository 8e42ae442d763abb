package domain

import "context"

type Service interface {
	CreateTariff(ctx context.Context, req CreateTariffRequest) (*TariffVersion, error)
	ListTariffs(ctx context.Context, code string) ([]TariffVersion, error)
	CreateConversionFactor(ctx context.Context, req CreateConversionFactorRequest) (*ConversionFactor, error)
	ListConversionFactors(ctx context.Context, zone string) ([]ConversionFactor, error)
	CreateTax(ctx context.Context, req CreateTaxRequest) (*TaxVersion, error)
	ListTaxes(ctx context.Context, code string) ([]TaxVersion, error)
}

type CreateTariffRequest struct {
	Code           string `json:"code"`
	FixedMonthly   string `json:"fixed_monthly_eur"`
	VariablePerKWh string `json:"variable_eur_kwh"`
	EffectiveFrom  string `json:"effective_from"` // YYYY-MM-DD
}

type CreateConversionFactorRequest struct {
	Zone           string `json:"zone"`
	Period         string `json:"period"` // YYYY-MM
	Coefficient    string `json:"coefficient"`
	CalorificValue string `json:"calorific_kwh_m3"`
}

type CreateTaxRequest struct {
	Code          string `json:"code"`
	Rate          string `json:"rate"`
	EffectiveFrom string `json:"effective_from"` // YYYY-MM-DD
}
