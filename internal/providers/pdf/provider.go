package pdf

import (
	"context"
	"io"
)

// Provider renders billing documents. Rendering is read-only: it never
// touches billing state.
type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}

// InvoiceData is the render model for a gas invoice document.
type InvoiceData struct {
	Number        string
	CUPS          string
	Zone          string
	ServicePeriod string
	IssueDate     string

	Items []InvoiceItem

	Base  string
	Tax   string
	Total string
}

// InvoiceItem is one printed line.
type InvoiceItem struct {
	Description string
	Qty         string
	UnitPrice   string
	Amount      string
}

type NoOpProvider struct{}

func (p *NoOpProvider) GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error) {
	return nil, nil
}
