package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/billing/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/clock"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/config"
)

type billingStub struct {
	periods []string
	err     error
}

func (s *billingStub) RunBilling(ctx context.Context, period string) (*billingdomain.RunResult, error) {
	s.periods = append(s.periods, period)
	if s.err != nil {
		return nil, s.err
	}
	return &billingdomain.RunResult{}, nil
}

func newTestScheduler(t *testing.T, stub *billingStub, fake *clock.FakeClock) *Scheduler {
	t.Helper()
	sched, err := New(Params{
		Log:        zap.NewNop(),
		Clock:      fake,
		BillingSvc: stub,
		BillingCfg: config.StaticBillingConfig(config.DefaultBillingConfig()),
	})
	require.NoError(t, err)
	return sched
}

func TestRunOnce_BillsPreviousMonth(t *testing.T) {
	stub := &billingStub{}
	fake := clock.NewFakeClock(time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC))
	sched := newTestScheduler(t, stub, fake)

	require.NoError(t, sched.RunOnce(context.Background()))
	require.Len(t, stub.periods, 1)
	assert.Equal(t, "2026-02", stub.periods[0])
}

func TestRunOnce_JanuaryRollsToPreviousYear(t *testing.T) {
	stub := &billingStub{}
	fake := clock.NewFakeClock(time.Date(2026, 1, 2, 0, 30, 0, 0, time.UTC))
	sched := newTestScheduler(t, stub, fake)

	require.NoError(t, sched.RunOnce(context.Background()))
	require.Len(t, stub.periods, 1)
	assert.Equal(t, "2025-12", stub.periods[0])
}

func TestRunOnce_FollowsClockAcrossMonths(t *testing.T) {
	stub := &billingStub{}
	fake := clock.NewFakeClock(time.Date(2026, 2, 28, 23, 0, 0, 0, time.UTC))
	sched := newTestScheduler(t, stub, fake)

	require.NoError(t, sched.RunOnce(context.Background()))
	fake.Advance(2 * time.Hour) // crosses into March
	require.NoError(t, sched.RunOnce(context.Background()))

	assert.Equal(t, []string{"2026-01", "2026-02"}, stub.periods)
}

func TestNew_MissingDependency(t *testing.T) {
	_, err := New(Params{Log: zap.NewNop()})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
