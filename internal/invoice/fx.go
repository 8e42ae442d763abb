package invoice

import (
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/repository"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/service"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	pdf.Module,
	fx.Provide(repository.NewLedger),
	fx.Provide(service.NewService),
)
