package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	readingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type service struct {
	repo  readingdomain.Repository
	genID *snowflake.Node
	log   *zap.Logger
}

func NewService(repo readingdomain.Repository, genID *snowflake.Node, log *zap.Logger) readingdomain.Service {
	return &service{repo: repo, genID: genID, log: log.Named("reading")}
}

func (s *service) Create(ctx context.Context, req readingdomain.CreateRequest) (*readingdomain.MeterReading, error) {
	reading, err := s.build(req.CUPS, req.Date, req.Volume, req.Kind)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, reading); err != nil {
		return nil, err
	}

	s.log.Info("reading created",
		zap.String("cups", reading.CUPS),
		zap.Time("date", reading.Date),
		zap.String("volume_m3", reading.Volume.String()),
	)
	return reading, nil
}

func (s *service) ListByCUPS(ctx context.Context, cups string) ([]readingdomain.MeterReading, error) {
	cups = strings.TrimSpace(cups)
	if cups == "" {
		return nil, readingdomain.ErrInvalidCUPS
	}
	return s.repo.ListByCUPS(ctx, cups)
}

func (s *service) ImportCSV(ctx context.Context, req readingdomain.ImportRequest) (*readingdomain.ImportResult, error) {
	result := &readingdomain.ImportResult{Errors: []string{}}

	for i, cols := range req.Rows {
		row := i + 2 // header is row 1
		if len(cols) < 4 {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: expected 4 columns, got %d", row, len(cols)))
			continue
		}

		reading, err := s.build(cols[0], cols[1], cols[2], cols[3])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}

		if err := s.repo.Create(ctx, reading); err != nil {
			if err == readingdomain.ErrAlreadyExists {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate reading %s/%s", row, reading.CUPS, reading.Date.Format(dateLayout)))
				continue
			}
			return nil, err
		}
		result.Inserted++
	}

	s.log.Info("readings imported",
		zap.Int("inserted", result.Inserted),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (s *service) build(cups, date, volume, kind string) (*readingdomain.MeterReading, error) {
	cups = strings.TrimSpace(cups)
	if cups == "" {
		return nil, readingdomain.ErrInvalidCUPS
	}

	day, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), time.UTC)
	if err != nil {
		return nil, readingdomain.ErrInvalidDate
	}

	vol, err := decimal.NewFromString(strings.TrimSpace(volume))
	if err != nil {
		return nil, readingdomain.ErrInvalidVolume
	}

	reading := &readingdomain.MeterReading{
		ID:     s.genID.Generate(),
		CUPS:   cups,
		Date:   day,
		Volume: vol.Round(3),
		Kind:   readingdomain.Kind(strings.ToUpper(strings.TrimSpace(kind))),
	}
	if err := reading.Validate(); err != nil {
		return nil, err
	}
	return reading, nil
}
