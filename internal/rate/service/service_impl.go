package service

import (
	"context"
	"strings"
	"time"

	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type service struct {
	repo  ratedomain.Repository
	genID *snowflake.Node
	log   *zap.Logger
}

func NewService(repo ratedomain.Repository, genID *snowflake.Node, log *zap.Logger) ratedomain.Service {
	return &service{repo: repo, genID: genID, log: log.Named("rate")}
}

func (s *service) CreateTariff(ctx context.Context, req ratedomain.CreateTariffRequest) (*ratedomain.TariffVersion, error) {
	fixed, err := decimal.NewFromString(strings.TrimSpace(req.FixedMonthly))
	if err != nil {
		return nil, ratedomain.ErrInvalidCharge
	}
	variable, err := decimal.NewFromString(strings.TrimSpace(req.VariablePerKWh))
	if err != nil {
		return nil, ratedomain.ErrInvalidCharge
	}
	from, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.EffectiveFrom), time.UTC)
	if err != nil {
		return nil, ratedomain.ErrInvalidEffectiveFrom
	}

	tariff := &ratedomain.TariffVersion{
		ID:             s.genID.Generate(),
		Code:           strings.TrimSpace(req.Code),
		FixedMonthly:   fixed,
		VariablePerKWh: variable,
		EffectiveFrom:  from,
	}
	if err := tariff.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTariff(ctx, tariff); err != nil {
		return nil, err
	}

	s.log.Info("tariff version created",
		zap.String("code", tariff.Code),
		zap.Time("effective_from", tariff.EffectiveFrom),
	)
	return tariff, nil
}

func (s *service) ListTariffs(ctx context.Context, code string) ([]ratedomain.TariffVersion, error) {
	return s.repo.ListTariffs(ctx, strings.TrimSpace(code))
}

func (s *service) CreateConversionFactor(ctx context.Context, req ratedomain.CreateConversionFactorRequest) (*ratedomain.ConversionFactor, error) {
	coefficient, err := decimal.NewFromString(strings.TrimSpace(req.Coefficient))
	if err != nil {
		return nil, ratedomain.ErrInvalidFactor
	}
	calorific, err := decimal.NewFromString(strings.TrimSpace(req.CalorificValue))
	if err != nil {
		return nil, ratedomain.ErrInvalidFactor
	}

	factor := &ratedomain.ConversionFactor{
		ID:             s.genID.Generate(),
		Zone:           strings.TrimSpace(req.Zone),
		Period:         strings.TrimSpace(req.Period),
		Coefficient:    coefficient,
		CalorificValue: calorific,
	}
	if err := factor.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateConversionFactor(ctx, factor); err != nil {
		return nil, err
	}

	s.log.Info("conversion factor created",
		zap.String("zone", factor.Zone),
		zap.String("period", factor.Period),
	)
	return factor, nil
}

func (s *service) ListConversionFactors(ctx context.Context, zone string) ([]ratedomain.ConversionFactor, error) {
	return s.repo.ListConversionFactors(ctx, strings.TrimSpace(zone))
}

func (s *service) CreateTax(ctx context.Context, req ratedomain.CreateTaxRequest) (*ratedomain.TaxVersion, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(req.Rate))
	if err != nil {
		return nil, ratedomain.ErrInvalidRate
	}
	from, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.EffectiveFrom), time.UTC)
	if err != nil {
		return nil, ratedomain.ErrInvalidEffectiveFrom
	}

	tax := &ratedomain.TaxVersion{
		ID:            s.genID.Generate(),
		Code:          strings.TrimSpace(req.Code),
		Rate:          rate,
		EffectiveFrom: from,
	}
	if err := tax.Validate(); err != nil {
		return nil, err
	}
	if err := s.repo.CreateTax(ctx, tax); err != nil {
		return nil, err
	}

	s.log.Info("tax version created",
		zap.String("code", tax.Code),
		zap.String("rate", tax.Rate.String()),
		zap.Time("effective_from", tax.EffectiveFrom),
	)
	return tax, nil
}

func (s *service) ListTaxes(ctx context.Context, code string) ([]ratedomain.TaxVersion, error) {
	return s.repo.ListTaxes(ctx, strings.TrimSpace(code))
}
