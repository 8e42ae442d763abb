package domain

import (
	"context"
	"io"
)

type Service interface {
	List(ctx context.Context, req ListRequest) ([]Invoice, error)
	GetByID(ctx context.Context, id string) (*Invoice, error)
	// RenderPDF produces a printable document for an issued invoice.
	// Rendering never mutates billing state.
	RenderPDF(ctx context.Context, id string) (io.Reader, error)
}
