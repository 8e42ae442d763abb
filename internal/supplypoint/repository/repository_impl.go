package repository

import (
	"context"
	"time"

	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) spdomain.Repository {
	return &repository{db: conn}
}

func (r *repository) ListActive(ctx context.Context) ([]spdomain.SupplyPoint, error) {
	var points []spdomain.SupplyPoint
	err := r.db.WithContext(ctx).Raw(
		`SELECT cups, zone, tariff_code, status, created_at, updated_at
		 FROM supply_points
		 WHERE status = ?
		 ORDER BY cups ASC`,
		spdomain.StatusActive,
	).Scan(&points).Error
	if err != nil {
		return nil, err
	}
	return points, nil
}

func (r *repository) Create(ctx context.Context, point *spdomain.SupplyPoint) error {
	now := time.Now().UTC()
	point.CreatedAt = now
	point.UpdatedAt = now
	if err := r.db.WithContext(ctx).Create(point).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return spdomain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repository) FindByCUPS(ctx context.Context, cups string) (*spdomain.SupplyPoint, error) {
	var point spdomain.SupplyPoint
	err := r.db.WithContext(ctx).Raw(
		`SELECT cups, zone, tariff_code, status, created_at, updated_at
		 FROM supply_points
		 WHERE cups = ?`,
		cups,
	).Scan(&point).Error
	if err != nil {
		return nil, err
	}
	if point.CUPS == "" {
		return nil, nil
	}
	return &point, nil
}

func (r *repository) List(ctx context.Context, filter spdomain.ListRequest) ([]spdomain.SupplyPoint, error) {
	var points []spdomain.SupplyPoint
	stmt := r.db.WithContext(ctx).Model(&spdomain.SupplyPoint{})

	if filter.Zone != "" {
		stmt = stmt.Where("zone = ?", filter.Zone)
	}
	if filter.Status != nil {
		stmt = stmt.Where("status = ?", *filter.Status)
	}

	if err := stmt.Order("cups ASC").Find(&points).Error; err != nil {
		return nil, err
	}
	return points, nil
}

func (r *repository) UpdateStatus(ctx context.Context, cups string, status spdomain.Status) error {
	res := r.db.WithContext(ctx).Exec(
		`UPDATE supply_points SET status = ?, updated_at = ? WHERE cups = ?`,
		status,
		time.Now().UTC(),
		cups,
	)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return spdomain.ErrNotFound
	}
	return nil
}
