package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"simplimed/internal/domain"
	"simplimed/internal/service"
)

// AnalyzeRequest is the JSON body for POST /api/analyze.
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// AnalyzeHandler handles AI analysis of extracted report text.
type AnalyzeHandler struct {
	analysisService service.AnalysisService
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(analysisService service.AnalysisService) *AnalyzeHandler {
	return &AnalyzeHandler{analysisService: analysisService}
}

// Analyze handles POST /api/analyze
// @Summary Analyze report text
// @Description Produce a structured, patient-readable interpretation of report text
// @Tags analyze
// @Accept json
// @Produce json
// @Param body body AnalyzeRequest true "Extracted or edited report text"
// @Success 200 {object} domain.AnalysisEnvelope "Structured analysis"
// @Failure 400 {object} ErrorEnvelope "Empty text or provider credentials absent"
// @Failure 500 {object} ErrorEnvelope "Provider failure"
// @Router /api/analyze [post]
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	// A missing or malformed body is the same as empty text.
	_ = c.ShouldBindJSON(&req)

	out, err := h.analysisService.Analyze(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrNoText) || errors.Is(err, domain.ErrAPIKeyMissing) {
			HandleError(c, err)
			return
		}

		// Provider/transport failure: log the full cause, surface it once.
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] analyze failed: %v", requestID, err)
		c.JSON(http.StatusInternalServerError, domain.AnalysisEnvelope{
			Success: false,
			Error:   err.Error(),
			Message: "Failed to analyze report with AI",
		})
		return
	}

	c.JSON(http.StatusOK, domain.AnalysisEnvelope{
		Success:    true,
		Analysis:   &out.Analysis,
		TokensUsed: out.TokensUsed,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}
