package domain

import "context"

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*MeterReading, error)
	ListByCUPS(ctx context.Context, cups string) ([]MeterReading, error)
	// ImportCSV ingests readings from a CSV stream with columns
	// cups,date,volume_m3,kind. Bad rows are reported, not fatal.
	ImportCSV(ctx context.Context, req ImportRequest) (*ImportResult, error)
}

type CreateRequest struct {
	CUPS   string `json:"cups"`
	Date   string `json:"date"` // YYYY-MM-DD
	Volume string `json:"volume_m3"`
	Kind   string `json:"kind"`
}

type ImportRequest struct {
	Rows [][]string
}

type ImportResult struct {
	Inserted int      `json:"inserted"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors"`
}
