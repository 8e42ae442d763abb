// Package seed installs a small demo dataset for local development: two
// supply points, boundary readings, one tariff, conversion factors and the
// IVA tax. Seeding is idempotent; existing rows are left alone.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
	readingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/domain"
	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
)

// EnsureDemoData seeds demo supply points, readings and rates.
func EnsureDemoData(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSupplyPoints(ctx, tx); err != nil {
			return err
		}
		if err := ensureReadings(ctx, tx, node); err != nil {
			return err
		}
		if err := ensureTariffs(ctx, tx, node); err != nil {
			return err
		}
		if err := ensureConversionFactors(ctx, tx, node); err != nil {
			return err
		}
		return ensureTaxes(ctx, tx, node)
	})
}

func ensureSupplyPoints(ctx context.Context, tx *gorm.DB) error {
	points := []spdomain.SupplyPoint{
		{CUPS: "ES001AB", Zone: "Z1", TariffCode: "RL1", Status: spdomain.StatusActive},
		{CUPS: "ES002CD", Zone: "Z2", TariffCode: "RL2", Status: spdomain.StatusActive},
	}
	for _, point := range points {
		var existing spdomain.SupplyPoint
		err := tx.WithContext(ctx).Where("cups = ?", point.CUPS).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.WithContext(ctx).Create(&point).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureReadings(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	readings := []readingdomain.MeterReading{
		{CUPS: "ES001AB", Date: date(2026, 1, 31), Volume: decimal.RequireFromString("100.000"), Kind: readingdomain.KindReal},
		{CUPS: "ES001AB", Date: date(2026, 2, 28), Volume: decimal.RequireFromString("150.000"), Kind: readingdomain.KindReal},
		{CUPS: "ES002CD", Date: date(2026, 1, 31), Volume: decimal.RequireFromString("200.000"), Kind: readingdomain.KindReal},
		{CUPS: "ES002CD", Date: date(2026, 2, 28), Volume: decimal.RequireFromString("230.500"), Kind: readingdomain.KindEstimated},
	}
	for _, reading := range readings {
		var existing readingdomain.MeterReading
		err := tx.WithContext(ctx).Where("cups = ? AND date = ?", reading.CUPS, reading.Date).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		reading.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&reading).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureTariffs(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	tariffs := []ratedomain.TariffVersion{
		{
			Code:           "RL1",
			FixedMonthly:   decimal.RequireFromString("5.00"),
			VariablePerKWh: decimal.RequireFromString("0.045"),
			EffectiveFrom:  date(2025, 1, 1),
		},
		{
			Code:           "RL2",
			FixedMonthly:   decimal.RequireFromString("9.50"),
			VariablePerKWh: decimal.RequireFromString("0.041"),
			EffectiveFrom:  date(2025, 1, 1),
		},
	}
	for _, tariff := range tariffs {
		var existing ratedomain.TariffVersion
		err := tx.WithContext(ctx).Where("code = ? AND effective_from = ?", tariff.Code, tariff.EffectiveFrom).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		tariff.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&tariff).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureConversionFactors(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	factors := []ratedomain.ConversionFactor{
		{
			Zone:           "Z1",
			Period:         "2026-02",
			Coefficient:    decimal.RequireFromString("1.0"),
			CalorificValue: decimal.RequireFromString("11.5"),
		},
		{
			Zone:           "Z2",
			Period:         "2026-02",
			Coefficient:    decimal.RequireFromString("0.98"),
			CalorificValue: decimal.RequireFromString("11.7"),
		},
	}
	for _, factor := range factors {
		var existing ratedomain.ConversionFactor
		err := tx.WithContext(ctx).Where("zone = ? AND period = ?", factor.Zone, factor.Period).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		factor.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&factor).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureTaxes(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	tax := ratedomain.TaxVersion{
		Code:          "IVA",
		Rate:          decimal.RequireFromString("0.21"),
		EffectiveFrom: date(2025, 1, 1),
	}
	var existing ratedomain.TaxVersion
	err := tx.WithContext(ctx).Where("code = ? AND effective_from = ?", tax.Code, tax.EffectiveFrom).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	tax.ID = node.Generate()
	return tx.WithContext(ctx).Create(&tax).Error
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
