package supplypoint

import (
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/repository"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/service"
	"go.uber.org/fx"
)

var Module = fx.Module("supplypoint.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
