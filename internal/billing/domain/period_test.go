package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2026-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), p.End())
	assert.Equal(t, 28, p.Days())
	assert.Equal(t, "2026-02", p.String())
	assert.Equal(t, "202602", p.Key())
}

func TestParsePeriod_LeapFebruary(t *testing.T) {
	p, err := ParsePeriod("2028-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2028, 2, 29, 0, 0, 0, 0, time.UTC), p.End())
	assert.Equal(t, 29, p.Days())
}

func TestParsePeriod_Invalid(t *testing.T) {
	for _, s := range []string{"", "2026", "2026-0", "2026-13", "2026/02", "02-2026"} {
		_, err := ParsePeriod(s)
		assert.ErrorIs(t, err, ErrInvalidPeriod, "input %q", s)
	}
}

func TestPeriod_Previous(t *testing.T) {
	p, err := ParsePeriod("2026-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-12", p.Previous().String())
}

func TestPeriodOf(t *testing.T) {
	p := PeriodOf(time.Date(2026, 3, 5, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, "2026-03", p.String())
	assert.Equal(t, "2026-02", p.Previous().String())
}
