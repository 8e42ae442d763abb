package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	billingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/billing/domain"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/clock"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/config"
	invoicedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/domain"
	obsmetrics "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/observability/metrics"
	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
	readingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/domain"
	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	reasonMissingReading = "missing_boundary_reading"
	reasonNegative       = "negative_consumption"
	reasonNoTariff       = "no_active_tariff"
	reasonNoFactor       = "no_conversion_factor"
	reasonNoTax          = "no_tax_configured"
)

type Params struct {
	fx.In

	Points     spdomain.Repository
	Readings   readingdomain.Repository
	Rates      ratedomain.Catalog
	Ledger     invoicedomain.Ledger
	Log        *zap.Logger
	Clock      clock.Clock
	BillingCfg *config.BillingConfigHolder
	Metrics    *obsmetrics.BillingMetrics `optional:"true"`
}

type service struct {
	points   spdomain.Repository
	readings readingdomain.Repository
	rates    ratedomain.Catalog
	ledger   invoicedomain.Ledger
	log      *zap.Logger
	clock    clock.Clock
	cfg      *config.BillingConfigHolder
	metrics  *obsmetrics.BillingMetrics
}

func NewService(p Params) billingdomain.Service {
	return &service{
		points:   p.Points,
		readings: p.Readings,
		rates:    p.Rates,
		ledger:   p.Ledger,
		log:      p.Log.Named("billing"),
		clock:    p.Clock,
		cfg:      p.BillingCfg,
		metrics:  p.Metrics,
	}
}

// RunBilling bills all ACTIVE supply points for a "YYYY-MM" period.
// Idempotent: points already invoiced for the period are skipped silently.
func (s *service) RunBilling(ctx context.Context, period string) (*billingdomain.RunResult, error) {
	p, err := billingdomain.ParsePeriod(period)
	if err != nil {
		return nil, fmt.Errorf("%w: expected YYYY-MM, got %q", billingdomain.ErrInvalidPeriod, period)
	}

	start := s.clock.Now()
	s.metrics.IncRun()
	defer func() { s.metrics.ObserveRun(s.clock.Now().Sub(start)) }()

	periodStart := p.Start()
	periodEnd := p.End()

	billingCfg := s.cfg.Get()

	points, err := s.points.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active supply points: %w", err)
	}

	// Sequence base for invoice numbers in this run. Derived from a count,
	// so concurrent runs for the same period can collide; the unique
	// constraint on (cups, period_start) is the authoritative guard and a
	// violation downgrades to a skip below.
	existing, err := s.ledger.CountForPeriod(ctx, periodStart)
	if err != nil {
		return nil, fmt.Errorf("count invoices for period: %w", err)
	}
	seq := existing + 1

	result := &billingdomain.RunResult{
		Invoices: []invoicedomain.Invoice{},
		Errors:   []string{},
	}

	for _, point := range points {
		billed, err := s.ledger.Exists(ctx, point.CUPS, periodStart)
		if err != nil {
			return nil, fmt.Errorf("check invoice existence for %s: %w", point.CUPS, err)
		}
		if billed {
			s.log.Debug("billing skipped (already exists)",
				zap.String("cups", point.CUPS),
				zap.String("period", p.String()),
			)
			continue
		}

		opening, err := s.readings.LastBefore(ctx, point.CUPS, periodStart)
		if err != nil {
			return nil, fmt.Errorf("opening reading for %s: %w", point.CUPS, err)
		}
		closing, err := s.readings.LastOnOrBefore(ctx, point.CUPS, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("closing reading for %s: %w", point.CUPS, err)
		}
		if opening == nil || closing == nil {
			s.recordError(result, reasonMissingReading, fmt.Sprintf(
				"cups=%s period=%s: missing boundary reading (opening=%t, closing=%t)",
				point.CUPS, p.String(), opening != nil, closing != nil,
			))
			continue
		}

		consumption := closing.Volume.Sub(opening.Volume)
		if consumption.IsNegative() {
			s.recordError(result, reasonNegative, fmt.Sprintf(
				"cups=%s period=%s: negative consumption (%s)",
				point.CUPS, p.String(), consumption.StringFixed(3),
			))
			continue
		}

		tariff, err := s.rates.ActiveTariff(ctx, point.TariffCode, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("resolve tariff for %s: %w", point.CUPS, err)
		}
		if tariff == nil {
			s.recordError(result, reasonNoTariff, fmt.Sprintf(
				"cups=%s period=%s: no active tariff for '%s'",
				point.CUPS, p.String(), point.TariffCode,
			))
			continue
		}

		factor, err := s.rates.ConversionFactor(ctx, point.Zone, p.String())
		if err != nil {
			return nil, fmt.Errorf("resolve conversion factor for %s: %w", point.CUPS, err)
		}
		if factor == nil {
			s.recordError(result, reasonNoFactor, fmt.Sprintf(
				"cups=%s period=%s: no conversion factor for zone='%s' period='%s'",
				point.CUPS, p.String(), point.Zone, p.String(),
			))
			continue
		}

		tax, err := s.rates.ActiveTax(ctx, billingCfg.TaxCode, periodEnd)
		if err != nil {
			return nil, fmt.Errorf("resolve tax for %s: %w", point.CUPS, err)
		}
		if tax == nil {
			s.recordError(result, reasonNoTax, fmt.Sprintf(
				"cups=%s period=%s: no %s tax configured",
				point.CUPS, p.String(), billingCfg.TaxCode,
			))
			continue
		}

		// Fixed-point arithmetic, rounding half-up at every stated point.
		energy := consumption.Mul(factor.Coefficient).Mul(factor.CalorificValue).Round(3)
		fixedCost := tariff.FixedMonthly.Round(2)
		variableCost := energy.Mul(tariff.VariablePerKWh).Round(2)
		rental := decimal.Zero // placeholder for a future surcharge line
		base := fixedCost.Add(variableCost).Add(rental).Round(2)
		taxAmount := base.Mul(tax.Rate).Round(2)
		total := base.Add(taxAmount).Round(2)

		number := fmt.Sprintf("%s-%s-%s-%03d", billingCfg.InvoicePrefix, p.Key(), point.CUPS, seq)

		inv := invoicedomain.Invoice{
			Number:      number,
			CUPS:        point.CUPS,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Base:        base,
			Tax:         taxAmount,
			Total:       total,
			IssuedAt:    s.clock.Now().UTC().Truncate(24 * time.Hour),
		}

		inv.Lines = append(inv.Lines, invoicedomain.InvoiceLine{
			Type:        invoicedomain.LineFixedTerm,
			Description: "Fixed term",
			Quantity:    decimal.NewFromInt(1),
			UnitPrice:   tariff.FixedMonthly,
			Amount:      fixedCost,
		})
		inv.Lines = append(inv.Lines, invoicedomain.InvoiceLine{
			Type:        invoicedomain.LineVariableTerm,
			Description: "Variable term",
			Quantity:    energy,
			UnitPrice:   tariff.VariablePerKWh,
			Amount:      variableCost,
		})
		if rental.IsPositive() {
			inv.Lines = append(inv.Lines, invoicedomain.InvoiceLine{
				Type:        invoicedomain.LineRental,
				Description: "Meter rental",
				Quantity:    decimal.NewFromInt(1),
				UnitPrice:   rental,
				Amount:      rental,
			})
		}
		inv.Lines = append(inv.Lines, invoicedomain.InvoiceLine{
			Type:        invoicedomain.LineTax,
			Description: tax.Code,
			Quantity:    tax.Rate,
			UnitPrice:   base,
			Amount:      taxAmount,
		})

		if err := s.ledger.Save(ctx, &inv); err != nil {
			if errors.Is(err, invoicedomain.ErrAlreadyBilled) {
				// Lost the race against a concurrent run for this period.
				s.log.Debug("billing skipped (concurrent duplicate)",
					zap.String("cups", point.CUPS),
					zap.String("period", p.String()),
				)
				continue
			}
			return nil, fmt.Errorf("save invoice for %s: %w", point.CUPS, err)
		}
		seq++

		result.Invoices = append(result.Invoices, inv)
		s.metrics.IncInvoice()
		s.log.Info("invoice created",
			zap.String("number", inv.Number),
			zap.String("cups", inv.CUPS),
			zap.String("total", inv.Total.StringFixed(2)),
		)
	}

	s.log.Info("billing run finished",
		zap.String("period", p.String()),
		zap.Int("invoices", len(result.Invoices)),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (s *service) recordError(result *billingdomain.RunResult, reason, msg string) {
	s.log.Warn("billing error", zap.String("detail", msg))
	s.metrics.IncPointError(reason)
	result.Errors = append(result.Errors, msg)
}
