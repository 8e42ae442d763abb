package billing

import (
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/billing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("billing.service",
	fx.Provide(service.NewService),
)
