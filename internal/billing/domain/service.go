// Package domain defines the billing engine contract.
package domain

import (
	"context"
	"errors"

	invoicedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/domain"
)

// ErrInvalidPeriod rejects a run whose period does not parse as "YYYY-MM".
// Nothing is attempted and nothing is persisted.
var ErrInvalidPeriod = errors.New("invalid_period")

// RunResult reports one billing run: the invoices created by this call, in
// processing order, and one error string per supply point that failed.
// Skipped already-billed points appear in neither list.
type RunResult struct {
	Invoices []invoicedomain.Invoice `json:"invoices"`
	Errors   []string                `json:"errors"`
}

type Service interface {
	// RunBilling bills every ACTIVE supply point for the given "YYYY-MM"
	// period. Per-point failures are collected in the result; one failure
	// never aborts the run.
	RunBilling(ctx context.Context, period string) (*RunResult, error)
}
