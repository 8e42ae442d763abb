package service

import (
	"context"
	"fmt"
	"io"
	"strings"

	invoicedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/providers/pdf"
	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
)

type service struct {
	ledger invoicedomain.Ledger
	points spdomain.Repository
	pdf    pdf.Provider
	log    *zap.Logger
}

func NewService(ledger invoicedomain.Ledger, points spdomain.Repository, provider pdf.Provider, log *zap.Logger) invoicedomain.Service {
	return &service{ledger: ledger, points: points, pdf: provider, log: log.Named("invoice")}
}

func (s *service) List(ctx context.Context, req invoicedomain.ListRequest) ([]invoicedomain.Invoice, error) {
	return s.ledger.List(ctx, req)
}

func (s *service) GetByID(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	parsed, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, invoicedomain.ErrNotFound
	}
	invoice, err := s.ledger.FindWithLines(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, invoicedomain.ErrNotFound
	}
	return invoice, nil
}

func (s *service) RenderPDF(ctx context.Context, id string) (io.Reader, error) {
	invoice, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	zone := ""
	if point, err := s.points.FindByCUPS(ctx, invoice.CUPS); err == nil && point != nil {
		zone = point.Zone
	}

	data := pdf.InvoiceData{
		Number: invoice.Number,
		CUPS:   invoice.CUPS,
		Zone:   zone,
		ServicePeriod: fmt.Sprintf("%s to %s",
			invoice.PeriodStart.Format("2006-01-02"),
			invoice.PeriodEnd.Format("2006-01-02"),
		),
		IssueDate: invoice.IssuedAt.Format("2006-01-02"),
		Base:      invoice.Base.StringFixed(2) + " EUR",
		Tax:       invoice.Tax.StringFixed(2) + " EUR",
		Total:     invoice.Total.StringFixed(2) + " EUR",
	}
	for _, line := range invoice.Lines {
		data.Items = append(data.Items, pdf.InvoiceItem{
			Description: line.Description,
			Qty:         line.Quantity.String(),
			UnitPrice:   line.UnitPrice.String(),
			Amount:      line.Amount.StringFixed(2),
		})
	}

	return s.pdf.GenerateInvoice(ctx, data)
}
