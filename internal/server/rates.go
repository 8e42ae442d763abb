package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ratedomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/rate/domain"
)

type createTariffRequest struct {
	Code           string `json:"code"`
	FixedMonthly   string `json:"fixed_monthly_eur"`
	VariablePerKWh string `json:"variable_eur_kwh"`
	EffectiveFrom  string `json:"effective_from"`
}

func (s *Server) CreateTariff(c *gin.Context) {
	var req createTariffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateSvc.CreateTariff(c.Request.Context(), ratedomain.CreateTariffRequest{
		Code:           strings.TrimSpace(req.Code),
		FixedMonthly:   strings.TrimSpace(req.FixedMonthly),
		VariablePerKWh: strings.TrimSpace(req.VariablePerKWh),
		EffectiveFrom:  strings.TrimSpace(req.EffectiveFrom),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTariffs(c *gin.Context) {
	resp, err := s.rateSvc.ListTariffs(c.Request.Context(), strings.TrimSpace(c.Query("code")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createConversionFactorRequest struct {
	Zone           string `json:"zone"`
	Period         string `json:"period"`
	Coefficient    string `json:"coefficient"`
	CalorificValue string `json:"calorific_kwh_m3"`
}

func (s *Server) CreateConversionFactor(c *gin.Context) {
	var req createConversionFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateSvc.CreateConversionFactor(c.Request.Context(), ratedomain.CreateConversionFactorRequest{
		Zone:           strings.TrimSpace(req.Zone),
		Period:         strings.TrimSpace(req.Period),
		Coefficient:    strings.TrimSpace(req.Coefficient),
		CalorificValue: strings.TrimSpace(req.CalorificValue),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListConversionFactors(c *gin.Context) {
	resp, err := s.rateSvc.ListConversionFactors(c.Request.Context(), strings.TrimSpace(c.Query("zone")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createTaxRequest struct {
	Code          string `json:"code"`
	Rate          string `json:"rate"`
	EffectiveFrom string `json:"effective_from"`
}

func (s *Server) CreateTax(c *gin.Context) {
	var req createTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.rateSvc.CreateTax(c.Request.Context(), ratedomain.CreateTaxRequest{
		Code:          strings.TrimSpace(req.Code),
		Rate:          strings.TrimSpace(req.Rate),
		EffectiveFrom: strings.TrimSpace(req.EffectiveFrom),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTaxes(c *gin.Context) {
	resp, err := s.rateSvc.ListTaxes(c.Request.Context(), strings.TrimSpace(c.Query("code")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isRateValidationError(err error) bool {
	switch err {
	case ratedomain.ErrInvalidCode,
		ratedomain.ErrInvalidZone,
		ratedomain.ErrInvalidPeriod,
		ratedomain.ErrInvalidCharge,
		ratedomain.ErrInvalidFactor,
		ratedomain.ErrInvalidRate,
		ratedomain.ErrInvalidEffectiveFrom:
		return true
	default:
		return false
	}
}
