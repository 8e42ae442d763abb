package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	spdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/supplypoint/domain"
)

type createSupplyPointRequest struct {
	CUPS       string `json:"cups"`
	Zone       string `json:"zone"`
	TariffCode string `json:"tariff_code"`
	Status     string `json:"status"`
}

func (s *Server) CreateSupplyPoint(c *gin.Context) {
	var req createSupplyPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.supplyPointSvc.Create(c.Request.Context(), spdomain.CreateRequest{
		CUPS:       strings.TrimSpace(req.CUPS),
		Zone:       strings.TrimSpace(req.Zone),
		TariffCode: strings.TrimSpace(req.TariffCode),
		Status:     spdomain.Status(strings.ToUpper(strings.TrimSpace(req.Status))),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListSupplyPoints(c *gin.Context) {
	req := spdomain.ListRequest{
		Zone: strings.TrimSpace(c.Query("zone")),
	}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		status := spdomain.Status(strings.ToUpper(raw))
		req.Status = &status
	}

	resp, err := s.supplyPointSvc.List(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetSupplyPointByCUPS(c *gin.Context) {
	cups := strings.TrimSpace(c.Param("cups"))
	resp, err := s.supplyPointSvc.GetByCUPS(c.Request.Context(), cups)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateSupplyPointStatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) UpdateSupplyPointStatus(c *gin.Context) {
	var req updateSupplyPointStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	cups := strings.TrimSpace(c.Param("cups"))
	status := spdomain.Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	resp, err := s.supplyPointSvc.UpdateStatus(c.Request.Context(), cups, status)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isSupplyPointValidationError(err error) bool {
	switch err {
	case spdomain.ErrInvalidCUPS,
		spdomain.ErrInvalidZone,
		spdomain.ErrInvalidTariffCode,
		spdomain.ErrInvalidStatus:
		return true
	default:
		return false
	}
}
