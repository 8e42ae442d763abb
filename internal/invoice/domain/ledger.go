package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Ledger is the durable record of issued invoices. The schema enforces
// uniqueness on (cups, period_start); Save surfaces a violation as
// ErrAlreadyBilled so concurrent duplicate runs degrade to a skip.
type Ledger interface {
	Exists(ctx context.Context, cups string, periodStart time.Time) (bool, error)
	CountForPeriod(ctx context.Context, periodStart time.Time) (int64, error)
	// Save persists the invoice and its lines in one transaction, assigning
	// IDs. The invoice-plus-lines write is the unit of atomicity; there is no
	// cross-invoice transaction.
	Save(ctx context.Context, invoice *Invoice) error
	FindWithLines(ctx context.Context, id snowflake.ID) (*Invoice, error)
	List(ctx context.Context, filter ListRequest) ([]Invoice, error)
}

type ListRequest struct {
	CUPS        string
	PeriodStart *time.Time
}
