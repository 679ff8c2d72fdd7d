package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/finreg/corep/internal/middleware"
	"github.com/finreg/corep/internal/models"
	"github.com/finreg/corep/internal/repository"
	"github.com/finreg/corep/internal/services"
	"github.com/gin-gonic/gin"
)

// FilingHandler handles filing persistence endpoints. All filing routes
// are mounted behind middleware.RequireInstitution, so the institution
// ID is always present here.
type FilingHandler struct {
	filingSvc *services.FilingService
}

// NewFilingHandler creates a new FilingHandler
func NewFilingHandler(filingSvc *services.FilingService) *FilingHandler {
	return &FilingHandler{
		filingSvc: filingSvc,
	}
}

// Create handles POST /filings
// @Summary Evaluate and store a filing
// @Tags filings
// @Accept json
// @Produce json
// @Param X-Institution-ID header string true "Reporting institution"
// @Param request body models.CreateFilingRequest true "Filing submission"
// @Success 201 {object} models.FilingResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /filings [post]
func (h *FilingHandler) Create(c *gin.Context) {
	institutionID := c.GetString(middleware.InstitutionIDKey)

	var req models.CreateFilingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: err.Error(),
		})
		return
	}

	ctx, wc := services.NewWarningContext(c.Request.Context())
	filing, err := h.filingSvc.CreateFiling(ctx, institutionID, &req)
	if err != nil {
		respondEvaluationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.FilingResponse{
		Filing:   filing,
		Warnings: wc.GetWarnings(),
	})
}

// Get handles GET /filings/:id
// @Summary Get a stored filing
// @Description Filings are scoped to the reporting institution; another institution's filing reads as not found
// @Tags filings
// @Produce json
// @Param X-Institution-ID header string true "Reporting institution"
// @Param id path int true "Filing ID"
// @Success 200 {object} models.Filing
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /filings/{id} [get]
func (h *FilingHandler) Get(c *gin.Context) {
	institutionID := c.GetString(middleware.InstitutionIDKey)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: "invalid filing ID",
		})
		return
	}

	filing, err := h.filingSvc.GetFiling(c.Request.Context(), id, institutionID)
	if err != nil {
		if errors.Is(err, repository.ErrFilingNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Error:   "not_found",
				Message: "filing not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, filing)
}

// List handles GET /filings
// @Summary List the institution's filings
// @Tags filings
// @Produce json
// @Param X-Institution-ID header string true "Reporting institution"
// @Success 200 {array} models.FilingListItem
// @Failure 401 {object} models.ErrorResponse
// @Router /filings [get]
func (h *FilingHandler) List(c *gin.Context) {
	institutionID := c.GetString(middleware.InstitutionIDKey)

	filings, err := h.filingSvc.ListFilings(c.Request.Context(), institutionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	// Return empty array if no filings
	if filings == nil {
		filings = []models.FilingListItem{}
	}

	c.JSON(http.StatusOK, filings)
}
