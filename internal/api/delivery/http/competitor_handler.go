package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"regintel/internal/api/dto"
	"regintel/internal/api/repository"
	"regintel/internal/api/service"
	"regintel/pkg/logger"
)

// CompetitorHandler handles HTTP requests for competitor activities.
type CompetitorHandler struct {
	competitorService service.CompetitorService
	logger            *logger.Logger
}

// NewCompetitorHandler creates a new CompetitorHandler.
func NewCompetitorHandler(competitorService service.CompetitorService, logger *logger.Logger) *CompetitorHandler {
	return &CompetitorHandler{competitorService: competitorService, logger: logger}
}

// RegisterRoutes registers the competitor activity routes to the Echo group.
func (h *CompetitorHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateActivity)
	g.GET("", h.GetAllActivities)
	g.GET("/:id", h.GetActivityByID)
	g.PUT("/:id", h.UpdateActivity)
	g.DELETE("/:id", h.DeleteActivity)
}

// CreateActivity godoc
// @Summary Record a competitor activity
// @Description Record an observed competitor move against an opportunity
// @Tags competitors
// @Accept  json
// @Produce  json
// @Param   activity  body    dto.CreateCompetitorActivityRequest   true    "Activity to record"
// @Success 201 {object} entity.CompetitorActivity
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /competitors [post]
func (h *CompetitorHandler) CreateActivity(c echo.Context) error {
	var req dto.CreateCompetitorActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.OpportunityID == "" || req.CompetitorName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Opportunity ID and competitor name are required"})
	}

	activity, err := h.competitorService.Create(c.Request().Context(), userID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Opportunity not found"})
		}
		h.logger.Error("Failed to create competitor activity", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create competitor activity"})
	}
	return c.JSON(http.StatusCreated, activity)
}

// GetAllActivities godoc
// @Summary List competitor activities
// @Description List activities with per-competitor summaries
// @Tags competitors
// @Produce  json
// @Param   opportunity_id query string false "Filter by opportunity"
// @Param   threat_level   query string false "Filter by threat level"
// @Param   competitor     query string false "Filter by competitor name substring"
// @Param   since_days     query int    false "Only activities from the last N days"
// @Success 200 {object} dto.CompetitorActivityListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /competitors [get]
func (h *CompetitorHandler) GetAllActivities(c echo.Context) error {
	filter := repository.CompetitorActivityFilter{
		OpportunityID:  c.QueryParam("opportunity_id"),
		ThreatLevel:    c.QueryParam("threat_level"),
		CompetitorName: c.QueryParam("competitor"),
	}
	if days, err := strconv.Atoi(c.QueryParam("since_days")); err == nil && days > 0 {
		filter.SinceDays = days
	}

	resp, err := h.competitorService.List(c.Request().Context(), userID(c), filter)
	if err != nil {
		h.logger.Error("Failed to list competitor activities", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list competitor activities"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetActivityByID godoc
// @Summary Get a competitor activity by ID
// @Description Get a single activity with its opportunity
// @Tags competitors
// @Produce  json
// @Param   id  path    string true    "Activity ID"
// @Success 200 {object} entity.CompetitorActivity
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /competitors/{id} [get]
func (h *CompetitorHandler) GetActivityByID(c echo.Context) error {
	activity, err := h.competitorService.GetByID(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get activity"})
	}
	return c.JSON(http.StatusOK, activity)
}

// UpdateActivity godoc
// @Summary Update a competitor activity
// @Description Apply a partial update; escalating the threat level raises an alert
// @Tags competitors
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Activity ID"
// @Param   activity  body    dto.UpdateCompetitorActivityRequest   true    "Fields to update"
// @Success 200 {object} entity.CompetitorActivity
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /competitors/{id} [put]
func (h *CompetitorHandler) UpdateActivity(c echo.Context) error {
	var req dto.UpdateCompetitorActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	activity, err := h.competitorService.Update(c.Request().Context(), c.Param("id"), userID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Activity not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update activity"})
	}
	return c.JSON(http.StatusOK, activity)
}

// DeleteActivity godoc
// @Summary Delete a competitor activity
// @Description Delete a recorded activity
// @Tags competitors
// @Produce  json
// @Param   id  path    string true    "Activity ID"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Router /competitors/{id} [delete]
func (h *CompetitorHandler) DeleteActivity(c echo.Context) error {
	if err := h.competitorService.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete activity"})
	}
	return c.NoContent(http.StatusNoContent)
}
