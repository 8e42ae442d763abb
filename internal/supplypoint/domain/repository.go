package domain

import "context"

type Repository interface {
	// ListActive returns every ACTIVE supply point in CUPS order. The billing
	// engine iterates this slice, so the order must be stable across calls.
	ListActive(ctx context.Context) ([]SupplyPoint, error)
	Create(ctx context.Context, point *SupplyPoint) error
	FindByCUPS(ctx context.Context, cups string) (*SupplyPoint, error)
	List(ctx context.Context, filter ListRequest) ([]SupplyPoint, error)
	UpdateStatus(ctx context.Context, cups string, status Status) error
}
