package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/billing"
	billingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/billing/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/config"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice"
	invoicedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/domain"
	obsmetrics "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/observability/metrics"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate"
	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading"
	readingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/scheduler"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint"
	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	fx.Provide(registerGin),
	supplypoint.Module,
	reading.Module,
	rate.Module,
	invoice.Module,
	billing.Module,
	scheduler.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger, registry *prometheus.Registry) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogMiddleware(log))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return r
}

func registerGin(log *zap.Logger, registry *prometheus.Registry) *gin.Engine {
	return NewEngine(log, registry)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	supplyPointSvc spdomain.Service
	readingSvc     readingdomain.Service
	rateSvc        ratedomain.Service
	invoiceSvc     invoicedomain.Service
	billingSvc     billingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	SupplyPointSvc spdomain.Service
	ReadingSvc     readingdomain.Service
	RateSvc        ratedomain.Service
	InvoiceSvc     invoicedomain.Service
	BillingSvc     billingdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		supplyPointSvc: p.SupplyPointSvc,
		readingSvc:     p.ReadingSvc,
		rateSvc:        p.RateSvc,
		invoiceSvc:     p.InvoiceSvc,
		billingSvc:     p.BillingSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Supply points --------
	api.GET("/supply-points", s.ListSupplyPoints)
	api.POST("/supply-points", s.CreateSupplyPoint)
	api.GET("/supply-points/:cups", s.GetSupplyPointByCUPS)
	api.PATCH("/supply-points/:cups/status", s.UpdateSupplyPointStatus)

	// -------- Meter readings --------
	api.GET("/readings", s.ListReadings)
	api.POST("/readings", s.CreateReading)
	api.POST("/readings/import", s.ImportReadings)

	// -------- Rates --------
	api.GET("/tariffs", s.ListTariffs)
	api.POST("/tariffs", s.CreateTariff)
	api.GET("/conversion-factors", s.ListConversionFactors)
	api.POST("/conversion-factors", s.CreateConversionFactor)
	api.GET("/taxes", s.ListTaxes)
	api.POST("/taxes", s.CreateTax)

	// -------- Billing --------
	api.POST("/billing/run", s.RunBilling)

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.GET("/invoices/:id/pdf", s.DownloadInvoicePDF)
}
