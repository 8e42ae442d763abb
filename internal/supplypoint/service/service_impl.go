package service

import (
	"context"
	"strings"

	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
	"go.uber.org/zap"
)

type service struct {
	repo spdomain.Repository
	log  *zap.Logger
}

func NewService(repo spdomain.Repository, log *zap.Logger) spdomain.Service {
	return &service{repo: repo, log: log.Named("supplypoint")}
}

func (s *service) Create(ctx context.Context, req spdomain.CreateRequest) (*spdomain.SupplyPoint, error) {
	status := req.Status
	if status == "" {
		status = spdomain.StatusActive
	}

	point := &spdomain.SupplyPoint{
		CUPS:       strings.TrimSpace(req.CUPS),
		Zone:       strings.TrimSpace(req.Zone),
		TariffCode: strings.TrimSpace(req.TariffCode),
		Status:     status,
	}
	if err := point.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, point); err != nil {
		return nil, err
	}

	s.log.Info("supply point created",
		zap.String("cups", point.CUPS),
		zap.String("zone", point.Zone),
		zap.String("tariff_code", point.TariffCode),
	)
	return point, nil
}

func (s *service) List(ctx context.Context, req spdomain.ListRequest) ([]spdomain.SupplyPoint, error) {
	if req.Status != nil && !req.Status.Valid() {
		return nil, spdomain.ErrInvalidStatus
	}
	return s.repo.List(ctx, req)
}

func (s *service) GetByCUPS(ctx context.Context, cups string) (*spdomain.SupplyPoint, error) {
	point, err := s.repo.FindByCUPS(ctx, strings.TrimSpace(cups))
	if err != nil {
		return nil, err
	}
	if point == nil {
		return nil, spdomain.ErrNotFound
	}
	return point, nil
}

func (s *service) UpdateStatus(ctx context.Context, cups string, status spdomain.Status) (*spdomain.SupplyPoint, error) {
	if !status.Valid() {
		return nil, spdomain.ErrInvalidStatus
	}
	cups = strings.TrimSpace(cups)
	if err := s.repo.UpdateStatus(ctx, cups, status); err != nil {
		return nil, err
	}
	return s.GetByCUPS(ctx, cups)
}
