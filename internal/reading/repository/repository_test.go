package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	readingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/domain"
)

func setup(t *testing.T) (readingdomain.Repository, *snowflake.Node) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&readingdomain.MeterReading{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return NewRepository(db), node
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func seedReadings(t *testing.T, repo readingdomain.Repository, node *snowflake.Node) {
	t.Helper()
	for _, r := range []struct {
		day    time.Time
		volume string
	}{
		{date(2026, 1, 15), "90.000"},
		{date(2026, 1, 31), "100.000"},
		{date(2026, 2, 15), "120.000"},
		{date(2026, 2, 28), "150.000"},
	} {
		require.NoError(t, repo.Create(context.Background(), &readingdomain.MeterReading{
			ID:     node.Generate(),
			CUPS:   "ES001AB",
			Date:   r.day,
			Volume: decimal.RequireFromString(r.volume),
			Kind:   readingdomain.KindReal,
		}))
	}
}

func TestLastBefore_StrictlyExcludesDate(t *testing.T) {
	repo, node := setup(t)
	seedReadings(t, repo, node)
	ctx := context.Background()

	// The reading on Feb 1 boundary: Jan 31 qualifies, Feb 15 does not.
	reading, err := repo.LastBefore(ctx, "ES001AB", date(2026, 2, 1))
	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, "100.000", reading.Volume.StringFixed(3))

	// A reading dated exactly on the cutoff is excluded.
	reading, err = repo.LastBefore(ctx, "ES001AB", date(2026, 1, 15))
	require.NoError(t, err)
	assert.Nil(t, reading)

	reading, err = repo.LastBefore(ctx, "ES001AB", date(2026, 1, 16))
	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, "90.000", reading.Volume.StringFixed(3))
}

func TestLastOnOrBefore_IncludesDate(t *testing.T) {
	repo, node := setup(t)
	seedReadings(t, repo, node)
	ctx := context.Background()

	reading, err := repo.LastOnOrBefore(ctx, "ES001AB", date(2026, 2, 28))
	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, "150.000", reading.Volume.StringFixed(3))

	reading, err = repo.LastOnOrBefore(ctx, "ES001AB", date(2026, 2, 27))
	require.NoError(t, err)
	require.NotNil(t, reading)
	assert.Equal(t, "120.000", reading.Volume.StringFixed(3))

	reading, err = repo.LastOnOrBefore(ctx, "ES001AB", date(2026, 1, 1))
	require.NoError(t, err)
	assert.Nil(t, reading)
}

func TestLastBoundary_UnknownCUPS(t *testing.T) {
	repo, node := setup(t)
	seedReadings(t, repo, node)
	ctx := context.Background()

	reading, err := repo.LastBefore(ctx, "ES999ZZ", date(2026, 2, 1))
	require.NoError(t, err)
	assert.Nil(t, reading)

	reading, err = repo.LastOnOrBefore(ctx, "ES999ZZ", date(2026, 2, 28))
	require.NoError(t, err)
	assert.Nil(t, reading)
}

func TestCreate_DuplicateDate(t *testing.T) {
	repo, node := setup(t)
	ctx := context.Background()

	reading := readingdomain.MeterReading{
		ID:     node.Generate(),
		CUPS:   "ES001AB",
		Date:   date(2026, 2, 28),
		Volume: decimal.RequireFromString("150.000"),
		Kind:   readingdomain.KindReal,
	}
	require.NoError(t, repo.Create(ctx, &reading))

	dup := reading
	dup.ID = node.Generate()
	dup.Volume = decimal.RequireFromString("151.000")
	assert.ErrorIs(t, repo.Create(ctx, &dup), readingdomain.ErrAlreadyExists)
}

func TestListByCUPS_Ordered(t *testing.T) {
	repo, node := setup(t)
	seedReadings(t, repo, node)

	readings, err := repo.ListByCUPS(context.Background(), "ES001AB")
	require.NoError(t, err)
	require.Len(t, readings, 4)
	for i := 1; i < len(readings); i++ {
		assert.True(t, readings[i-1].Date.Before(readings[i].Date))
	}
}
