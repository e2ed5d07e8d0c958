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

// ExecutiveHandler handles HTTP requests for executives.
type ExecutiveHandler struct {
	executiveService service.ExecutiveService
	logger           *logger.Logger
}

// NewExecutiveHandler creates a new ExecutiveHandler.
func NewExecutiveHandler(executiveService service.ExecutiveService, logger *logger.Logger) *ExecutiveHandler {
	return &ExecutiveHandler{executiveService: executiveService, logger: logger}
}

// RegisterRoutes registers the executive routes to the Echo group.
func (h *ExecutiveHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateExecutive)
	g.GET("", h.GetAllExecutives)
	g.GET("/:id", h.GetExecutiveByID)
	g.PUT("/:id", h.UpdateExecutive)
	g.DELETE("/:id", h.DeleteExecutive)
}

// CreateExecutive godoc
// @Summary Create a new executive
// @Description Track a new executive at a target company
// @Tags executives
// @Accept  json
// @Produce  json
// @Param   executive  body    dto.CreateExecutiveRequest   true    "Executive to create"
// @Success 201 {object} entity.Executive
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /executives [post]
func (h *ExecutiveHandler) CreateExecutive(c echo.Context) error {
	var req dto.CreateExecutiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.CompanyID == "" || req.Name == "" || req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Company ID, name and title are required"})
	}

	exec, err := h.executiveService.Create(c.Request().Context(), userID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Company not found"})
		}
		h.logger.Error("Failed to create executive", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create executive"})
	}
	return c.JSON(http.StatusCreated, exec)
}

// GetAllExecutives godoc
// @Summary List executives
// @Description List executives with stats, filterable by company, title and vulnerability band
// @Tags executives
// @Produce  json
// @Param   company_id        query   string false   "Filter by company"
// @Param   title             query   string false   "Filter by title substring"
// @Param   vulnerability_min query   int    false   "Minimum vulnerability score"
// @Param   vulnerability_max query   int    false   "Exclusive maximum vulnerability score"
// @Success 200 {object} dto.ExecutiveListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /executives [get]
func (h *ExecutiveHandler) GetAllExecutives(c echo.Context) error {
	filter := repository.ExecutiveFilter{
		CompanyID: c.QueryParam("company_id"),
		Title:     c.QueryParam("title"),
	}
	if min, err := strconv.Atoi(c.QueryParam("vulnerability_min")); err == nil {
		filter.VulnerabilityMin = &min
	}
	if max, err := strconv.Atoi(c.QueryParam("vulnerability_max")); err == nil {
		filter.VulnerabilityMax = &max
	}

	resp, err := h.executiveService.List(c.Request().Context(), userID(c), filter)
	if err != nil {
		h.logger.Error("Failed to list executives", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list executives"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetExecutiveByID godoc
// @Summary Get an executive by ID
// @Description Get a single executive with company and recent alerts
// @Tags executives
// @Produce  json
// @Param   id  path    string true    "Executive ID"
// @Success 200 {object} entity.Executive
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /executives/{id} [get]
func (h *ExecutiveHandler) GetExecutiveByID(c echo.Context) error {
	exec, err := h.executiveService.GetByID(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Executive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get executive"})
	}
	return c.JSON(http.StatusOK, exec)
}

// UpdateExecutive godoc
// @Summary Update an executive
// @Description Apply a partial update and recompute the vulnerability score
// @Tags executives
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Executive ID"
// @Param   executive  body    dto.UpdateExecutiveRequest   true    "Fields to update"
// @Success 200 {object} entity.Executive
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /executives/{id} [put]
func (h *ExecutiveHandler) UpdateExecutive(c echo.Context) error {
	var req dto.UpdateExecutiveRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	exec, err := h.executiveService.Update(c.Request().Context(), c.Param("id"), userID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Executive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update executive"})
	}
	return c.JSON(http.StatusOK, exec)
}

// DeleteExecutive godoc
// @Summary Delete an executive
// @Description Delete an executive and refresh the company's pressure score
// @Tags executives
// @Produce  json
// @Param   id  path    string true    "Executive ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /executives/{id} [delete]
func (h *ExecutiveHandler) DeleteExecutive(c echo.Context) error {
	if err := h.executiveService.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Executive not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete executive"})
	}
	return c.NoContent(http.StatusNoContent)
}
