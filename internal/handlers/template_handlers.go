package handlers

import (
	"errors"
	"net/http"

	"github.com/finreg/corep/internal/engine"
	"github.com/finreg/corep/internal/models"
	"github.com/finreg/corep/internal/services"
	"github.com/gin-gonic/gin"
)

// TemplateHandler serves template schemas and the validation rule registry
type TemplateHandler struct {
	reportSvc *services.ReportService
}

// NewTemplateHandler creates a new TemplateHandler
func NewTemplateHandler(reportSvc *services.ReportService) *TemplateHandler {
	return &TemplateHandler{
		reportSvc: reportSvc,
	}
}

// List handles GET /templates
// @Summary List supported templates
// @Tags templates
// @Produce json
// @Success 200 {array} models.TemplateListItem
// @Router /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportSvc.Templates())
}

// Get handles GET /templates/:id
// @Summary Get a template schema
// @Description Row layout (identifiers, labels, categories, sign conventions) for one template
// @Tags templates
// @Produce json
// @Param id path string true "Template kind (CA1 or CA2)"
// @Success 200 {object} models.TemplateSchema
// @Failure 400 {object} models.ErrorResponse
// @Router /templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	schema, err := h.reportSvc.Schema(c.Param("id"))
	if err != nil {
		if errors.Is(err, engine.ErrUnknownTemplate) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "unknown_template",
				Message: err.Error(),
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "internal_error",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, schema)
}

// Rules handles GET /rules
// @Summary List validation rules
// @Description The ordered validation rule registry applied to every evaluation
// @Tags templates
// @Produce json
// @Success 200 {array} models.ValidationRule
// @Router /rules [get]
func (h *TemplateHandler) Rules(c *gin.Context) {
	c.JSON(http.StatusOK, h.reportSvc.Rules())
}
