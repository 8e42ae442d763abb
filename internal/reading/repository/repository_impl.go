package repository

import (
	"context"
	"time"

	readingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/pkg/db"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(conn *gorm.DB) readingdomain.Repository {
	return &repository{db: conn}
}

func (r *repository) LastBefore(ctx context.Context, cups string, date time.Time) (*readingdomain.MeterReading, error) {
	var reading readingdomain.MeterReading
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, cups, date, volume_m3, kind, created_at
		 FROM meter_readings
		 WHERE cups = ? AND date < ?
		 ORDER BY date DESC
		 LIMIT 1`,
		cups,
		date,
	).Scan(&reading).Error
	if err != nil {
		return nil, err
	}
	if reading.ID == 0 {
		return nil, nil
	}
	return &reading, nil
}

func (r *repository) LastOnOrBefore(ctx context.Context, cups string, date time.Time) (*readingdomain.MeterReading, error) {
	var reading readingdomain.MeterReading
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, cups, date, volume_m3, kind, created_at
		 FROM meter_readings
		 WHERE cups = ? AND date <= ?
		 ORDER BY date DESC
		 LIMIT 1`,
		cups,
		date,
	).Scan(&reading).Error
	if err != nil {
		return nil, err
	}
	if reading.ID == 0 {
		return nil, nil
	}
	return &reading, nil
}

func (r *repository) Create(ctx context.Context, reading *readingdomain.MeterReading) error {
	reading.CreatedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return readingdomain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repository) ListByCUPS(ctx context.Context, cups string) ([]readingdomain.MeterReading, error) {
	var readings []readingdomain.MeterReading
	err := r.db.WithContext(ctx).Raw(
		`SELECT id, cups, date, volume_m3, kind, created_at
		 FROM meter_readings
		 WHERE cups = ?
		 ORDER BY date ASC`,
		cups,
	).Scan(&readings).Error
	if err != nil {
		return nil, err
	}
	return readings, nil
}
