package repository

import (
	"context"
	"time"

	invoicedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/pkg/db"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ledger struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewLedger(conn *gorm.DB, genID *snowflake.Node) invoicedomain.Ledger {
	return &ledger{db: conn, genID: genID}
}

func (l *ledger) Exists(ctx context.Context, cups string, periodStart time.Time) (bool, error) {
	var count int64
	err := l.db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM invoices WHERE cups = ? AND period_start = ?`,
		cups,
		periodStart,
	).Scan(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (l *ledger) CountForPeriod(ctx context.Context, periodStart time.Time) (int64, error) {
	var count int64
	err := l.db.WithContext(ctx).Raw(
		`SELECT COUNT(1) FROM invoices WHERE period_start = ?`,
		periodStart,
	).Scan(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (l *ledger) Save(ctx context.Context, invoice *invoicedomain.Invoice) error {
	if invoice.ID == 0 {
		invoice.ID = l.genID.Generate()
	}
	invoice.CreatedAt = time.Now().UTC()

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Create(invoice).Error; err != nil {
			return err
		}
		for i := range invoice.Lines {
			line := &invoice.Lines[i]
			if line.ID == 0 {
				line.ID = l.genID.Generate()
			}
			line.InvoiceID = invoice.ID
			line.Position = i + 1
			if err := tx.Create(line).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if db.IsDuplicateKeyErr(err) {
			return invoicedomain.ErrAlreadyBilled
		}
		return err
	}
	return nil
}

func (l *ledger) FindWithLines(ctx context.Context, id snowflake.ID) (*invoicedomain.Invoice, error) {
	var invoice invoicedomain.Invoice
	err := l.db.WithContext(ctx).Raw(
		`SELECT id, number, cups, period_start, period_end, base, tax, total, issued_at, created_at
		 FROM invoices
		 WHERE id = ?`,
		id,
	).Scan(&invoice).Error
	if err != nil {
		return nil, err
	}
	if invoice.ID == 0 {
		return nil, nil
	}

	err = l.db.WithContext(ctx).Raw(
		`SELECT id, invoice_id, type, description, quantity, unit_price, amount, position
		 FROM invoice_lines
		 WHERE invoice_id = ?
		 ORDER BY position ASC`,
		id,
	).Scan(&invoice.Lines).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (l *ledger) List(ctx context.Context, filter invoicedomain.ListRequest) ([]invoicedomain.Invoice, error) {
	var invoices []invoicedomain.Invoice
	stmt := l.db.WithContext(ctx).Model(&invoicedomain.Invoice{})

	if filter.CUPS != "" {
		stmt = stmt.Where("cups = ?", filter.CUPS)
	}
	if filter.PeriodStart != nil {
		stmt = stmt.Where("period_start = ?", *filter.PeriodStart)
	}

	if err := stmt.Order("period_start ASC, cups ASC").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}
