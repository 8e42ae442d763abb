package rate

import (
	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/repository"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/service"
	"go.uber.org/fx"
)

var Module = fx.Module("rate.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(func(r ratedomain.Repository) ratedomain.Catalog { return r }),
	fx.Provide(service.NewService),
)
