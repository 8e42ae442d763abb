package repository

import (
	"context"
	"time"

	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) ratedomain.Repository {
	return &repository{db: conn}
}

func (r *repository) ActiveTariff(ctx context.Context, code string, asOf time.Time) (*ratedomain.TariffVersion, error) {
	var tariff ratedomain.TariffVersion
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, code, fixed_monthly_eur, variable_eur_kwh, effective_from, created_at
		 FROM tariff_versions
		 WHERE code = ? AND effective_from <= ?
		 ORDER BY effective_from DESC
		 LIMIT 1`,
		code,
		asOf,
	).Scan(&tariff).Error
	if err != nil {
		return nil, err
	}
	if tariff.ID == 0 {
		return nil, nil
	}
	return &tariff, nil
}

func (r *repository) ConversionFactor(ctx context.Context, zone, period string) (*ratedomain.ConversionFactor, error) {
	var factor ratedomain.ConversionFactor
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, zone, period, coefficient, calorific_kwh_m3, created_at
		 FROM conversion_factors
		 WHERE zone = ? AND period = ?`,
		zone,
		period,
	).Scan(&factor).Error
	if err != nil {
		return nil, err
	}
	if factor.ID == 0 {
		return nil, nil
	}
	return &factor, nil
}

func (r *repository) ActiveTax(ctx context.Context, code string, asOf time.Time) (*ratedomain.TaxVersion, error) {
	var tax ratedomain.TaxVersion
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, code, rate, effective_from, created_at
		 FROM tax_versions
		 WHERE code = ? AND effective_from <= ?
		 ORDER BY effective_from DESC
		 LIMIT 1`,
		code,
		asOf,
	).Scan(&tax).Error
	if err != nil {
		return nil, err
	}
	if tax.ID == 0 {
		return nil, nil
	}
	return &tax, nil
}

func (r *repository) CreateTariff(ctx context.Context, tariff *ratedomain.TariffVersion) error {
	tariff.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(tariff).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return ratedomain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repository) ListTariffs(ctx context.Context, code string) ([]ratedomain.TariffVersion, error) {
	var tariffs []ratedomain.TariffVersion
	stmt := r.db.WithContext(ctx).Model(&ratedomain.TariffVersion{})
	if code != "" {
		stmt = stmt.Where("code = ?", code)
	}
	if err := stmt.Order("code ASC, effective_from ASC").Find(&tariffs).Error; err != nil {
		return nil, err
	}
	return tariffs, nil
}

func (r *repository) CreateConversionFactor(ctx context.Context, factor *ratedomain.ConversionFactor) error {
	factor.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(factor).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return ratedomain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repository) ListConversionFactors(ctx context.Context, zone string) ([]ratedomain.ConversionFactor, error) {
	var factors []ratedomain.ConversionFactor
	stmt := r.db.WithContext(ctx).Model(&ratedomain.ConversionFactor{})
	if zone != "" {
		stmt = stmt.Where("zone = ?", zone)
	}
	if err := stmt.Order("zone ASC, period ASC").Find(&factors).Error; err != nil {
		return nil, err
	}
	return factors, nil
}

func (r *repository) CreateTax(ctx context.Context, tax *ratedomain.TaxVersion) error {
	tax.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(tax).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return ratedomain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repository) ListTaxes(ctx context.Context, code string) ([]ratedomain.TaxVersion, error) {
	var taxes []ratedomain.TaxVersion
	stmt := r.db.WithContext(ctx).Model(&ratedomain.TaxVersion{})
	if code != "" {
		stmt = stmt.Where("code = ?", code)
	}
	if err := stmt.Order("code ASC, effective_from ASC").Find(&taxes).Error; err != nil {
		return nil, err
	}
	return taxes, nil
}
