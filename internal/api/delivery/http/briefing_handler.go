package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"regintel/internal/api/dto"
	"regintel/internal/api/service"
	"regintel/pkg/logger"
)

// BriefingHandler handles HTTP requests for daily briefings.
type BriefingHandler struct {
	briefingService service.BriefingService
	logger          *logger.Logger
}

// NewBriefingHandler creates a new BriefingHandler.
func NewBriefingHandler(briefingService service.BriefingService, logger *logger.Logger) *BriefingHandler {
	return &BriefingHandler{briefingService: briefingService, logger: logger}
}

// RegisterRoutes registers the briefing routes to the Echo group.
func (h *BriefingHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/daily", h.GetDailyBriefing)
	g.POST("/generate", h.GenerateBriefing)
}

// GetDailyBriefing godoc
// @Summary Get the daily briefing
// @Description Return the stored briefing for the day, or null when none has been generated
// @Tags briefings
// @Produce  json
// @Param   date query string false "Briefing date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.Briefing
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /briefings/daily [get]
func (h *BriefingHandler) GetDailyBriefing(c echo.Context) error {
	date, err := parseBriefingDate(c.QueryParam("date"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	briefing, err := h.briefingService.Get(c.Request().Context(), userID(c), date)
	if err != nil {
		h.logger.Error("Failed to get briefing", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get briefing"})
	}
	return c.JSON(http.StatusOK, briefing)
}

// GenerateBriefing godoc
// @Summary Generate the daily briefing
// @Description Generate (or regenerate) the briefing for the day
// @Tags briefings
// @Accept  json
// @Produce  json
// @Param   request body dto.GenerateBriefingRequest false "Briefing date"
// @Success 200 {object} dto.Briefing
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /briefings/generate [post]
func (h *BriefingHandler) GenerateBriefing(c echo.Context) error {
	var req dto.GenerateBriefingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	date, err := parseBriefingDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid date, expected YYYY-MM-DD"})
	}

	briefing, err := h.briefingService.Generate(c.Request().Context(), userID(c), date)
	if err != nil {
		h.logger.Error("Failed to generate briefing", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to generate briefing"})
	}
	return c.JSON(http.StatusOK, briefing)
}

func parseBriefingDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", value)
}
