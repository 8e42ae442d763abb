package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	billingservice "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/billing/service"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/clock"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/config"
	invoicedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/domain"
	invoicerepo "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/repository"
	invoiceservice "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/invoice/service"
	obsmetrics "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/observability/metrics"
	"github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/providers/pdf"
	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
	raterepo "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/repository"
	rateservice "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/service"
	readingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/domain"
	readingrepo "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/repository"
	readingservice "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/service"
	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
	sprepo "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/repository"
	spservice "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&spdomain.SupplyPoint{},
		&readingdomain.MeterReading{},
		&ratedomain.TariffVersion{},
		&ratedomain.ConversionFactor{},
		&ratedomain.TaxVersion{},
		&invoicedomain.Invoice{},
		&invoicedomain.InvoiceLine{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	pointRepo := sprepo.NewRepository(db)
	readRepo := readingrepo.NewRepository(db)
	rateRepo := raterepo.NewRepository(db)
	ledger := invoicerepo.NewLedger(db, node)
	holder := config.StaticBillingConfig(config.DefaultBillingConfig())

	billingSvc := billingservice.NewService(billingservice.Params{
		Points:     pointRepo,
		Readings:   readRepo,
		Rates:      rateRepo,
		Ledger:     ledger,
		Log:        log,
		Clock:      clock.NewFakeClock(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)),
		BillingCfg: holder,
	})

	engine := NewEngine(log, obsmetrics.NewRegistry())
	return NewServer(ServerParams{
		Gin:            engine,
		Cfg:            config.Config{HTTPAddr: ":0"},
		SupplyPointSvc: spservice.NewService(pointRepo, log),
		ReadingSvc:     readingservice.NewService(readRepo, node, log),
		RateSvc:        rateservice.NewService(rateRepo, node, log),
		InvoiceSvc:     invoiceservice.NewService(ledger, pointRepo, pdf.New(), log),
		BillingSvc:     billingSvc,
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSupplyPointLifecycle(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/api/supply-points", map[string]string{
		"cups":        "ES001AB",
		"zone":        "Z1",
		"tariff_code": "RL1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Duplicate CUPS conflicts.
	w = doJSON(t, srv, http.MethodPost, "/api/supply-points", map[string]string{
		"cups":        "ES001AB",
		"zone":        "Z1",
		"tariff_code": "RL1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Missing zone is a validation error.
	w = doJSON(t, srv, http.MethodPost, "/api/supply-points", map[string]string{
		"cups":        "ES002CD",
		"tariff_code": "RL1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/supply-points/ES001AB", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, srv, http.MethodGet, "/api/supply-points/ES999ZZ", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, srv, http.MethodPatch, "/api/supply-points/ES001AB/status", map[string]string{
		"status": "INACTIVE",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INACTIVE")
}

func TestImportReadingsCSV(t *testing.T) {
	srv := newTestServer(t)

	csvBody := strings.Join([]string{
		"cups,date,volume_m3,kind",
		"ES001AB,2026-01-31,100.000,REAL",
		"ES001AB,2026-02-28,150.000,REAL",
		"ES001AB,bad-date,1.000,REAL",
	}, "\n")
	req := httptest.NewRequest(http.MethodPost, "/api/readings/import", strings.NewReader(csvBody))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data readingdomain.ImportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Inserted)
	assert.Len(t, resp.Data.Errors, 1)
}

func TestRunBillingEndpoint(t *testing.T) {
	srv := newTestServer(t)

	for _, call := range []struct {
		path string
		body map[string]string
	}{
		{"/api/supply-points", map[string]string{"cups": "ES001AB", "zone": "Z1", "tariff_code": "RL1"}},
		{"/api/tariffs", map[string]string{"code": "RL1", "fixed_monthly_eur": "5.00", "variable_eur_kwh": "0.045", "effective_from": "2025-01-01"}},
		{"/api/conversion-factors", map[string]string{"zone": "Z1", "period": "2026-02", "coefficient": "1.0", "calorific_kwh_m3": "11.5"}},
		{"/api/taxes", map[string]string{"code": "IVA", "rate": "0.21", "effective_from": "2025-01-01"}},
		{"/api/readings", map[string]string{"cups": "ES001AB", "date": "2026-01-31", "volume_m3": "100.000", "kind": "REAL"}},
		{"/api/readings", map[string]string{"cups": "ES001AB", "date": "2026-02-28", "volume_m3": "150.000", "kind": "REAL"}},
	} {
		w := doJSON(t, srv, http.MethodPost, call.path, call.body)
		require.Equal(t, http.StatusOK, w.Code, "POST %s: %s", call.path, w.Body.String())
	}

	w := doJSON(t, srv, http.MethodPost, "/api/billing/run", map[string]string{"period": "2026-02"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			InvoicesCreated int                     `json:"invoices_created"`
			Invoices        []invoicedomain.Invoice `json:"invoices"`
			Errors          []string                `json:"errors"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Data.InvoicesCreated)
	assert.Equal(t, "GAS-202602-ES001AB-001", resp.Data.Invoices[0].Number)
	assert.True(t, resp.Data.Invoices[0].Total.Equal(decimal.RequireFromString("37.36")))
	assert.Empty(t, resp.Data.Errors)

	// Invalid period maps to a validation error.
	w = doJSON(t, srv, http.MethodPost, "/api/billing/run", map[string]string{"period": "2026-2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Rerun is a no-op.
	w = doJSON(t, srv, http.MethodPost, "/api/billing/run", map[string]string{"period": "2026-02"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0, resp.Data.InvoicesCreated)

	// The invoice is retrievable with its lines.
	w = doJSON(t, srv, http.MethodGet, "/api/invoices?cups=ES001AB", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "GAS-202602-ES001AB-001")
}
