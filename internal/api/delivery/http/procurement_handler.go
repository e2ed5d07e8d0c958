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

// ProcurementHandler handles HTTP requests for procurements.
type ProcurementHandler struct {
	procurementService service.ProcurementService
	logger             *logger.Logger
}

// NewProcurementHandler creates a new ProcurementHandler.
func NewProcurementHandler(procurementService service.ProcurementService, logger *logger.Logger) *ProcurementHandler {
	return &ProcurementHandler{procurementService: procurementService, logger: logger}
}

// RegisterRoutes registers the procurement routes to the Echo group.
func (h *ProcurementHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateProcurement)
	g.GET("", h.GetAllProcurements)
	g.GET("/:id", h.GetProcurementByID)
	g.PUT("/:id", h.UpdateProcurement)
	g.DELETE("/:id", h.DeleteProcurement)
}

// CreateProcurement godoc
// @Summary Create a new procurement
// @Description Track a new government tender
// @Tags procurements
// @Accept  json
// @Produce  json
// @Param   procurement  body    dto.CreateProcurementRequest   true    "Procurement to create"
// @Success 201 {object} entity.Procurement
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procurements [post]
func (h *ProcurementHandler) CreateProcurement(c echo.Context) error {
	var req dto.CreateProcurementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Title == "" || req.Region == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title and region are required"})
	}

	proc, err := h.procurementService.Create(c.Request().Context(), userID(c), &req)
	if err != nil {
		h.logger.Error("Failed to create procurement", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create procurement"})
	}
	return c.JSON(http.StatusCreated, proc)
}

// GetAllProcurements godoc
// @Summary List procurements
// @Description List tenders with stats and a per-region rollup
// @Tags procurements
// @Produce  json
// @Param   region         query   string false   "Filter by region"
// @Param   status         query   string false   "Filter by status"
// @Param   service_gap    query   bool   false   "Only tenders with a detected service gap"
// @Param   bottleneck     query   bool   false   "Only tenders flagged as a bottleneck"
// @Param   published_days query   int    false   "Only tenders published in the last N days"
// @Success 200 {object} dto.ProcurementListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procurements [get]
func (h *ProcurementHandler) GetAllProcurements(c echo.Context) error {
	filter := repository.ProcurementFilter{
		Region: c.QueryParam("region"),
		Status: c.QueryParam("status"),
	}
	if c.QueryParam("service_gap") == "true" {
		filter.ServiceGap = true
	}
	if c.QueryParam("bottleneck") == "true" {
		filter.Bottleneck = true
	}
	if days, err := strconv.Atoi(c.QueryParam("published_days")); err == nil && days > 0 {
		filter.PublishedDays = days
	}

	resp, err := h.procurementService.List(c.Request().Context(), userID(c), filter)
	if err != nil {
		h.logger.Error("Failed to list procurements", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list procurements"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetProcurementByID godoc
// @Summary Get a procurement by ID
// @Description Get a single tender with contacts and documents
// @Tags procurements
// @Produce  json
// @Param   id  path    string true    "Procurement ID"
// @Success 200 {object} entity.Procurement
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procurements/{id} [get]
func (h *ProcurementHandler) GetProcurementByID(c echo.Context) error {
	proc, err := h.procurementService.GetByID(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Procurement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get procurement"})
	}
	return c.JSON(http.StatusOK, proc)
}

// UpdateProcurement godoc
// @Summary Update a procurement
// @Description Apply a partial update; newly detected gaps raise a market signal
// @Tags procurements
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Procurement ID"
// @Param   procurement  body    dto.UpdateProcurementRequest   true    "Fields to update"
// @Success 200 {object} entity.Procurement
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /procurements/{id} [put]
func (h *ProcurementHandler) UpdateProcurement(c echo.Context) error {
	var req dto.UpdateProcurementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	proc, err := h.procurementService.Update(c.Request().Context(), c.Param("id"), userID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Procurement not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update procurement"})
	}
	return c.JSON(http.StatusOK, proc)
}

// DeleteProcurement godoc
// @Summary Delete a procurement
// @Description Delete a tracked tender
// @Tags procurements
// @Produce  json
// @Param   id  path    string true    "Procurement ID"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Router /procurements/{id} [delete]
func (h *ProcurementHandler) DeleteProcurement(c echo.Context) error {
	if err := h.procurementService.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete procurement"})
	}
	return c.NoContent(http.StatusNoContent)
}
