package handlers

import (
	"errors"
	"net/http"

	"github.com/finreg/corep/internal/engine"
	"github.com/finreg/corep/internal/models"
	"github.com/finreg/corep/internal/services"
	"github.com/gin-gonic/gin"
)

// maxBatchSize bounds one batch call; larger batches should be split by
// the caller.
const maxBatchSize = 100

// ReportHandler handles evaluation endpoints
type ReportHandler struct {
	reportSvc *services.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportSvc *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportSvc: reportSvc,
	}
}

// Evaluate handles POST /evaluate
// @Summary Evaluate a submission
// @Description Compute totals, capital ratios and validation results for extracted template values
// @Tags reports
// @Accept json
// @Produce json
// @Param request body models.EvaluateRequest true "Template kind and sparse row values"
// @Success 200 {object} models.EvaluationReport
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /evaluate [post]
func (h *ReportHandler) Evaluate(c *gin.Context) {
	var req models.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	report, err := h.reportSvc.Evaluate(c.Request.Context(), req.Template, req.Values)
	if err != nil {
		respondEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// EvaluateBatch handles POST /evaluate/batch
// @Summary Evaluate several submissions
// @Description Evaluate independent submissions concurrently; results are returned in request order
// @Tags reports
// @Accept json
// @Produce json
// @Param request body models.BatchEvaluateRequest true "Submissions"
// @Success 200 {object} models.BatchEvaluateResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /evaluate/batch [post]
func (h *ReportHandler) EvaluateBatch(c *gin.Context) {
	var req models.BatchEvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}
	if len(req.Submissions) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "submissions must not be empty",
		})
		return
	}
	if len(req.Submissions) > maxBatchSize {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "too many submissions in one batch",
		})
		return
	}

	results := h.reportSvc.EvaluateBatch(c.Request.Context(), req.Submissions)
	c.JSON(http.StatusOK, models.BatchEvaluateResponse{Results: results})
}

// respondEvaluationError maps engine errors to HTTP statuses.
func respondEvaluationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, engine.ErrUnknownTemplate):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "unknown_template",
			Message: err.Error(),
		})
	case errors.Is(err, engine.ErrMalformedValue):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "malformed_value",
			Message: err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
	}
}
