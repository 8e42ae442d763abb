package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
)

func setup(t *testing.T) (ratedomain.Repository, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&ratedomain.TariffVersion{},
		&ratedomain.ConversionFactor{},
		&ratedomain.TaxVersion{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return NewRepository(db), node
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestActiveTariff_PicksLatestEffectiveVersion(t *testing.T) {
	repo, node := setup(t)
	ctx := context.Background()

	for _, v := range []struct {
		fixed string
		from  time.Time
	}{
		{"4.00", date(2025, 1, 1)},
		{"5.00", date(2026, 2, 1)},
		{"6.00", date(2026, 3, 1)},
	} {
		require.NoError(t, repo.CreateTariff(ctx, &ratedomain.TariffVersion{
			ID:             node.Generate(),
			Code:           "RL1",
			FixedMonthly:   decimal.RequireFromString(v.fixed),
			VariablePerKWh: decimal.RequireFromString("0.045"),
			EffectiveFrom:  v.from,
		}))
	}

	tariff, err := repo.ActiveTariff(ctx, "RL1", date(2026, 2, 28))
	require.NoError(t, err)
	require.NotNil(t, tariff)
	assert.Equal(t, "5.00", tariff.FixedMonthly.StringFixed(2))

	// A version effective exactly on the reference date is in force.
	tariff, err = repo.ActiveTariff(ctx, "RL1", date(2026, 3, 1))
	require.NoError(t, err)
	require.NotNil(t, tariff)
	assert.Equal(t, "6.00", tariff.FixedMonthly.StringFixed(2))

	// Before any version takes effect there is no tariff.
	tariff, err = repo.ActiveTariff(ctx, "RL1", date(2024, 12, 31))
	require.NoError(t, err)
	assert.Nil(t, tariff)

	tariff, err = repo.ActiveTariff(ctx, "UNKNOWN", date(2026, 2, 28))
	require.NoError(t, err)
	assert.Nil(t, tariff)
}

func TestCreateTariff_DuplicateVersion(t *testing.T) {
	repo, node := setup(t)
	ctx := context.Background()

	tariff := ratedomain.TariffVersion{
		ID:             node.Generate(),
		Code:           "RL1",
		FixedMonthly:   decimal.RequireFromString("5.00"),
		VariablePerKWh: decimal.RequireFromString("0.045"),
		EffectiveFrom:  date(2025, 1, 1),
	}
	require.NoError(t, repo.CreateTariff(ctx, &tariff))

	dup := tariff
	dup.ID = node.Generate()
	assert.ErrorIs(t, repo.CreateTariff(ctx, &dup), ratedomain.ErrAlreadyExists)
}

func TestConversionFactor_ExactMatchOnly(t *testing.T) {
	repo, node := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateConversionFactor(ctx, &ratedomain.ConversionFactor{
		ID:             node.Generate(),
		Zone:           "Z1",
		Period:         "2026-02",
		Coefficient:    decimal.RequireFromString("1.0"),
		CalorificValue: decimal.RequireFromString("11.5"),
	}))

	factor, err := repo.ConversionFactor(ctx, "Z1", "2026-02")
	require.NoError(t, err)
	require.NotNil(t, factor)
	assert.Equal(t, "11.5", factor.CalorificValue.String())

	// Adjacent month and other zone do not match.
	factor, err = repo.ConversionFactor(ctx, "Z1", "2026-01")
	require.NoError(t, err)
	assert.Nil(t, factor)

	factor, err = repo.ConversionFactor(ctx, "Z2", "2026-02")
	require.NoError(t, err)
	assert.Nil(t, factor)
}

func TestActiveTax_EffectiveDating(t *testing.T) {
	repo, node := setup(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateTax(ctx, &ratedomain.TaxVersion{
		ID:            node.Generate(),
		Code:          "IVA",
		Rate:          decimal.RequireFromString("0.18"),
		EffectiveFrom: date(2020, 1, 1),
	}))
	require.NoError(t, repo.CreateTax(ctx, &ratedomain.TaxVersion{
		ID:            node.Generate(),
		Code:          "IVA",
		Rate:          decimal.RequireFromString("0.21"),
		EffectiveFrom: date(2025, 1, 1),
	}))

	tax, err := repo.ActiveTax(ctx, "IVA", date(2026, 2, 28))
	require.NoError(t, err)
	require.NotNil(t, tax)
	assert.Equal(t, "0.21", tax.Rate.String())

	tax, err = repo.ActiveTax(ctx, "IVA", date(2024, 6, 1))
	require.NoError(t, err)
	require.NotNil(t, tax)
	assert.Equal(t, "0.18", tax.Rate.String())
}

func TestListTariffs_FilterAndOrder(t *testing.T) {
	repo, node := setup(t)
	ctx := context.Background()

	for _, v := range []struct {
		code string
		from time.Time
	}{
		{"RL2", date(2025, 1, 1)},
		{"RL1", date(2026, 2, 1)},
		{"RL1", date(2025, 1, 1)},
	} {
		require.NoError(t, repo.CreateTariff(ctx, &ratedomain.TariffVersion{
			ID:             node.Generate(),
			Code:           v.code,
			FixedMonthly:   decimal.RequireFromString("5.00"),
			VariablePerKWh: decimal.RequireFromString("0.045"),
			EffectiveFrom:  v.from,
		}))
	}

	all, err := repo.ListTariffs(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "RL1", all[0].Code)
	assert.True(t, all[0].EffectiveFrom.Equal(date(2025, 1, 1)))
	assert.Equal(t, "RL2", all[2].Code)

	rl1, err := repo.ListTariffs(ctx, "RL1")
	require.NoError(t, err)
	assert.Len(t, rl1, 2)
}
