package scheduler

import (
	"context"
	"errors"
	"time"

	billingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/billing/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/clock"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler: missing dependency")

type Params struct {
	fx.In

	Log        *zap.Logger
	Clock      clock.Clock
	BillingSvc billingdomain.Service
	BillingCfg *config.BillingConfigHolder
	Config     Config `optional:"true"`
}

// Scheduler periodically bills the previous calendar month. RunBilling is
// idempotent, so re-running the same period every tick is harmless.
type Scheduler struct {
	log        *zap.Logger
	cfg        Config
	clock      clock.Clock
	billingSvc billingdomain.Service
	billingCfg *config.BillingConfigHolder
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.BillingSvc == nil || p.BillingCfg == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:        p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:        p.Config.withDefaults(),
		clock:      p.Clock,
		billingSvc: p.BillingSvc,
		billingCfg: p.BillingCfg,
	}, nil
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, s.cfg.RunTimeout)
	defer cancel()

	period := billingdomain.PeriodOf(s.clock.Now()).Previous()
	result, err := s.billingSvc.RunBilling(ctx, period.String())
	if err != nil {
		return err
	}

	s.log.Info("scheduled billing run finished",
		zap.String("period", period.String()),
		zap.Int("invoices", len(result.Invoices)),
		zap.Int("errors", len(result.Errors)),
	)
	return nil
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduled billing run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
