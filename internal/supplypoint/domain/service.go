package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*SupplyPoint, error)
	List(ctx context.Context, req ListRequest) ([]SupplyPoint, error)
	GetByCUPS(ctx context.Context, cups string) (*SupplyPoint, error)
	UpdateStatus(ctx context.Context, cups string, status Status) (*SupplyPoint, error)
}

type CreateRequest struct {
	CUPS       string `json:"cups"`
	Zone       string `json:"zone"`
	TariffCode string `json:"tariff_code"`
	Status     Status `json:"status"`
}

type ListRequest struct {
	Zone   string
	Status *Status
}
