package reading

import (
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/repository"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reading.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
