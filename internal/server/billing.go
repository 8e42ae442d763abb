package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type runBillingRequest struct {
	Period string `json:"period"`
}

// RunBilling triggers a billing run for a "YYYY-MM" period. Per-point
// failures come back in the errors list with HTTP 200; only systemic
// failures (bad period, storage down) map to error statuses.
func (s *Server) RunBilling(c *gin.Context) {
	var req runBillingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	result, err := s.billingSvc.RunBilling(c.Request.Context(), strings.TrimSpace(req.Period))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"invoices_created": len(result.Invoices),
		"invoices":         result.Invoices,
		"errors":           result.Errors,
	}})
}
