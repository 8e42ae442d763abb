package server

import (
	"encoding/csv"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	readingdomain "github.com/agentic-workshop-001/agentic-workshop-naturgy/internal/reading/domain"
)

type createReadingRequest struct {
	CUPS   string `json:"cups"`
	Date   string `json:"date"`
	Volume string `json:"volume_m3"`
	Kind   string `json:"kind"`
}

func (s *Server) CreateReading(c *gin.Context) {
	var req createReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.readingSvc.Create(c.Request.Context(), readingdomain.CreateRequest{
		CUPS:   strings.TrimSpace(req.CUPS),
		Date:   strings.TrimSpace(req.Date),
		Volume: strings.TrimSpace(req.Volume),
		Kind:   strings.TrimSpace(req.Kind),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListReadings(c *gin.Context) {
	cups := strings.TrimSpace(c.Query("cups"))
	if cups == "" {
		AbortWithError(c, newValidationError("cups", "invalid_cups", "cups is required"))
		return
	}

	resp, err := s.readingSvc.ListByCUPS(c.Request.Context(), cups)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// ImportReadings accepts a CSV body with columns cups,date,volume_m3,kind.
// A header row is detected and skipped.
func (s *Server) ImportReadings(c *gin.Context) {
	reader := csv.NewReader(c.Request.Body)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if len(rows) > 0 && strings.EqualFold(strings.TrimSpace(rows[0][0]), "cups") {
		rows = rows[1:]
	}

	resp, err := s.readingSvc.ImportCSV(c.Request.Context(), readingdomain.ImportRequest{Rows: rows})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func isReadingValidationError(err error) bool {
	switch err {
	case readingdomain.ErrInvalidCUPS,
		readingdomain.ErrInvalidDate,
		readingdomain.ErrInvalidVolume,
		readingdomain.ErrNegativeVolume,
		readingdomain.ErrInvalidKind:
		return true
	default:
		return false
	}
}
