package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/api/service"
	"regintel/pkg/logger"
)

// OpportunityHandler handles HTTP requests for opportunities.
type OpportunityHandler struct {
	opportunityService service.OpportunityService
	logger             *logger.Logger
}

// NewOpportunityHandler creates a new OpportunityHandler.
func NewOpportunityHandler(opportunityService service.OpportunityService, logger *logger.Logger) *OpportunityHandler {
	return &OpportunityHandler{opportunityService: opportunityService, logger: logger}
}

// RegisterRoutes registers the opportunity routes to the Echo group.
func (h *OpportunityHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateOpportunity)
	g.GET("", h.GetAllOpportunities)
	g.GET("/:id", h.GetOpportunityByID)
	g.PUT("/:id", h.UpdateOpportunity)
	g.DELETE("/:id", h.DeleteOpportunity)
}

// CreateOpportunity godoc
// @Summary Create a new opportunity
// @Description Track a new regulatory opportunity
// @Tags opportunities
// @Accept  json
// @Produce  json
// @Param   opportunity  body    dto.CreateOpportunityRequest   true    "Opportunity to create"
// @Success 201 {object} entity.Opportunity
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /opportunities [post]
func (h *OpportunityHandler) CreateOpportunity(c echo.Context) error {
	var req dto.CreateOpportunityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Title == "" || req.RegulationType == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title and regulation type are required"})
	}

	opp, err := h.opportunityService.Create(c.Request().Context(), userID(c), &req)
	if err != nil {
		h.logger.Error("Failed to create opportunity", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create opportunity"})
	}
	return c.JSON(http.StatusCreated, opp)
}

// GetAllOpportunities godoc
// @Summary List opportunities
// @Description List opportunities, filterable by status and priority, sortable
// @Tags opportunities
// @Produce  json
// @Param   status   query   string false   "Filter by status"
// @Param   priority query   string false   "Filter by priority"
// @Param   sort_by  query   string false   "Sort column (created_at, updated_at, opportunity_score, title, deadline_date)"
// @Param   order    query   string false   "Sort direction (asc, desc)"
// @Success 200 {array} entity.Opportunity
// @Failure 500 {object} dto.ErrorResponse
// @Router /opportunities [get]
func (h *OpportunityHandler) GetAllOpportunities(c echo.Context) error {
	filter := repository.OpportunityFilter{
		Status:   c.QueryParam("status"),
		Priority: c.QueryParam("priority"),
		SortBy:   c.QueryParam("sort_by"),
		Order:    c.QueryParam("order"),
	}

	opps, err := h.opportunityService.List(c.Request().Context(), userID(c), filter)
	if err != nil {
		h.logger.Error("Failed to list opportunities", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list opportunities"})
	}
	return c.JSON(http.StatusOK, opps)
}

// GetOpportunityByID godoc
// @Summary Get an opportunity by ID
// @Description Get a single opportunity with all related records
// @Tags opportunities
// @Produce  json
// @Param   id  path    string true    "Opportunity ID"
// @Success 200 {object} entity.Opportunity
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /opportunities/{id} [get]
func (h *OpportunityHandler) GetOpportunityByID(c echo.Context) error {
	opp, err := h.opportunityService.GetByID(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Opportunity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get opportunity"})
	}
	return c.JSON(http.StatusOK, opp)
}

// UpdateOpportunity godoc
// @Summary Update an opportunity
// @Description Apply a partial update and recompute the opportunity score
// @Tags opportunities
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Opportunity ID"
// @Param   opportunity  body    dto.UpdateOpportunityRequest   true    "Fields to update"
// @Success 200 {object} entity.Opportunity
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /opportunities/{id} [put]
func (h *OpportunityHandler) UpdateOpportunity(c echo.Context) error {
	var req dto.UpdateOpportunityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	opp, err := h.opportunityService.Update(c.Request().Context(), c.Param("id"), userID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Opportunity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update opportunity"})
	}
	return c.JSON(http.StatusOK, opp)
}

// DeleteOpportunity godoc
// @Summary Delete an opportunity
// @Description Delete an opportunity and its related records
// @Tags opportunities
// @Produce  json
// @Param   id  path    string true    "Opportunity ID"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Router /opportunities/{id} [delete]
func (h *OpportunityHandler) DeleteOpportunity(c echo.Context) error {
	if err := h.opportunityService.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete opportunity"})
	}
	return c.NoContent(http.StatusNoContent)
}
