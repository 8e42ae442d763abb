package domain

import (
	"strings"
	"time"
)

const periodLayout = "2006-01"

// Period names one calendar month, the unit of billing.
type Period struct {
	year  int
	month time.Month
}

// ParsePeriod parses a "YYYY-MM" period string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.ParseInLocation(periodLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return Period{year: t.Year(), month: t.Month()}, nil
}

// Start returns the first day of the month at UTC midnight.
func (p Period) Start() time.Time {
	return time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the last day of the month at UTC midnight.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, -1)
}

// Days returns the number of days in the month. Kept for a future
// pro-ration factor; the fixed charge is currently applied in full.
func (p Period) Days() int {
	return p.End().Day()
}

// String renders the period as "YYYY-MM".
func (p Period) String() string {
	return p.Start().Format(periodLayout)
}

// Key renders the period as "YYYYMM" for invoice numbers.
func (p Period) Key() string {
	return p.Start().Format("200601")
}

// Previous returns the calendar month before p.
func (p Period) Previous() Period {
	t := p.Start().AddDate(0, -1, 0)
	return Period{year: t.Year(), month: t.Month()}
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	t = t.UTC()
	return Period{year: t.Year(), month: t.Month()}
}
