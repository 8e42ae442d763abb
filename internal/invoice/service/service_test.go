package service

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
	"go.uber.org/zap"
	"gorm.io/gorm"

	invoicedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/domain"
	invoicerepo "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/repository"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/providers/pdf"
	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
	sprepo "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/repository"
)

func setup(t *testing.T) (invoicedomain.Service, invoicedomain.Ledger) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&spdomain.SupplyPoint{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLine{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	ledger := invoicerepo.NewLedger(db, node)
	points := sprepo.NewRepository(db)
	svc := NewService(ledger, points, &pdf.NoOpProvider{}, zap.NewNop())
	return svc, ledger
}

func storedInvoice(t *testing.T, ledger invoicedomain.Ledger) *invoicedomain.Invoice {
	t.Helper()

	inv := &invoicedomain.Invoice{
		Number:      "GAS-202602-ES001AB-001",
		CUPS:        "ES001AB",
		PeriodStart: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC),
		Base:        decimal.RequireFromString("30.88"),
		Tax:         decimal.RequireFromString("6.48"),
		Total:       decimal.RequireFromString("37.36"),
		IssuedAt:    time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Lines: []invoicedomain.InvoiceLine{
			{
				Type:        invoicedomain.LineFixedTerm,
				Description: "Fixed term",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   decimal.RequireFromString("5.00"),
				Amount:      decimal.RequireFromString("5.00"),
			},
		},
	}
	require.NoError(t, ledger.Save(context.Background(), inv))
	return inv
}

func TestGetByID(t *testing.T) {
	svc, ledger := setup(t)
	ctx := context.Background()
	inv := storedInvoice(t, ledger)

	got, err := svc.GetByID(ctx, inv.ID.String())
	require.NoError(t, err)
	assert.Equal(t, inv.Number, got.Number)
	assert.Len(t, got.Lines, 1)
}

func TestGetByID_NotFound(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.GetByID(ctx, "99999999999")
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)

	_, err = svc.GetByID(ctx, "not-a-number")
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}

func TestRenderPDF_UsesProvider(t *testing.T) {
	svc, ledger := setup(t)
	ctx := context.Background()
	inv := storedInvoice(t, ledger)

	// NoOpProvider renders nothing; the call succeeding proves the
	// invoice and its lines resolved into a render model.
	reader, err := svc.RenderPDF(ctx, inv.ID.String())
	require.NoError(t, err)
	assert.Nil(t, reader)

	_, err = svc.RenderPDF(ctx, "99999999999")
	assert.ErrorIs(t, err, invoicedomain.ErrNotFound)
}
