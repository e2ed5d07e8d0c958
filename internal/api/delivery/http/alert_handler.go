package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"regintel/internal/api/repository"
	"regintel/internal/api/service"
	"regintel/pkg/logger"
)

// AlertHandler handles HTTP requests for alerts.
type AlertHandler struct {
	alertService service.AlertService
	logger       *logger.Logger
}

// NewAlertHandler creates a new AlertHandler.
func NewAlertHandler(alertService service.AlertService, logger *logger.Logger) *AlertHandler {
	return &AlertHandler{alertService: alertService, logger: logger}
}

// RegisterRoutes registers the alert routes to the Echo group.
func (h *AlertHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.GetAllAlerts)
	g.PUT("/:id/read", h.MarkAlertRead)
	g.DELETE("/:id", h.DeleteAlert)
}

// GetAllAlerts godoc
// @Summary List alerts
// @Description List alerts, unread first, filterable by type, severity and read state
// @Tags alerts
// @Produce  json
// @Param   type     query   string false   "Filter by alert type"
// @Param   severity query   string false   "Filter by severity"
// @Param   is_read  query   bool   false   "Filter by read state"
// @Param   limit    query   int    false   "Maximum number of alerts"
// @Success 200 {array} entity.Alert
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts [get]
func (h *AlertHandler) GetAllAlerts(c echo.Context) error {
	filter := repository.AlertFilter{
		Type:     c.QueryParam("type"),
		Severity: c.QueryParam("severity"),
	}
	if isRead, err := strconv.ParseBool(c.QueryParam("is_read")); err == nil {
		filter.IsRead = &isRead
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	alerts, err := h.alertService.List(c.Request().Context(), userID(c), filter, limit)
	if err != nil {
		h.logger.Error("Failed to list alerts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list alerts"})
	}
	return c.JSON(http.StatusOK, alerts)
}

// MarkAlertRead godoc
// @Summary Mark an alert as read
// @Description Mark an alert as read
// @Tags alerts
// @Produce  json
// @Param   id  path    string true    "Alert ID"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/{id}/read [put]
func (h *AlertHandler) MarkAlertRead(c echo.Context) error {
	if err := h.alertService.MarkRead(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to mark alert read"})
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteAlert godoc
// @Summary Delete an alert
// @Description Delete an alert
// @Tags alerts
// @Produce  json
// @Param   id  path    string true    "Alert ID"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Router /alerts/{id} [delete]
func (h *AlertHandler) DeleteAlert(c echo.Context) error {
	if err := h.alertService.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete alert"})
	}
	return c.NoContent(http.StatusNoContent)
}
