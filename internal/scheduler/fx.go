package scheduler

import (
	"context"

	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/config"
	"go.uber.org/fx"
)

var Module = fx.Module("scheduler",
	fx.Provide(ProvideConfig),
	fx.Provide(New),
	fx.Invoke(NewScheduler),
)

func ProvideConfig(holder *config.BillingConfigHolder) Config {
	cfg := DefaultConfig()
	if interval := holder.Get().SchedulerInterval; interval > 0 {
		cfg.RunInterval = interval
	}
	return cfg
}

func NewScheduler(lc fx.Lifecycle, holder *config.BillingConfigHolder, sched *Scheduler) {
	if !holder.Get().SchedulerEnabled {
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ctx, cancel := context.WithCancel(context.Background())

			go sched.RunForever(ctx)

			lc.Append(fx.Hook{
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})

			return nil
		},
	})
}
