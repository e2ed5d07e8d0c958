package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"regintel/internal/api/dto"
	"regintel/internal/api/service"
	"regintel/pkg/logger"
)

// CompanyHandler handles HTTP requests for companies.
type CompanyHandler struct {
	companyService service.CompanyService
	logger         *logger.Logger
}

// NewCompanyHandler creates a new CompanyHandler.
func NewCompanyHandler(companyService service.CompanyService, logger *logger.Logger) *CompanyHandler {
	return &CompanyHandler{companyService: companyService, logger: logger}
}

// RegisterRoutes registers the company routes to the Echo group.
func (h *CompanyHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateCompany)
	g.GET("", h.GetAllCompanies)
	g.GET("/:id", h.GetCompanyByID)
	g.PUT("/:id", h.UpdateCompany)
	g.DELETE("/:id", h.DeleteCompany)
}

// CreateCompany godoc
// @Summary Create a new company
// @Description Track a new target company
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   company  body    dto.CreateCompanyRequest   true    "Company to create"
// @Success 201 {object} entity.Company
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies [post]
func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	var req dto.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name is required"})
	}

	company, err := h.companyService.Create(c.Request().Context(), userID(c), &req)
	if err != nil {
		h.logger.Error("Failed to create company", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create company"})
	}
	return c.JSON(http.StatusCreated, company)
}

// GetAllCompanies godoc
// @Summary List companies
// @Description List companies with stats, filterable by pressure band, GTM gap, funding recency and search
// @Tags companies
// @Produce  json
// @Param   pressure  query   string false   "Pressure band (high, medium, low)"
// @Param   gtm_gap   query   bool   false   "Only companies with a detected GTM gap"
// @Param   funded_within query int  false   "Only companies funded in the last N days"
// @Param   search    query   string false   "Search in name and industry"
// @Success 200 {object} dto.CompanyListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies [get]
func (h *CompanyHandler) GetAllCompanies(c echo.Context) error {
	opts := service.CompanyListOptions{
		Pressure: service.PressureBand(c.QueryParam("pressure")),
		Search:   c.QueryParam("search"),
	}
	if c.QueryParam("gtm_gap") == "true" {
		opts.GtmGap = true
	}
	if days, err := strconv.Atoi(c.QueryParam("funded_within")); err == nil && days > 0 {
		opts.FundedWithin = days
	}

	resp, err := h.companyService.List(c.Request().Context(), userID(c), opts)
	if err != nil {
		h.logger.Error("Failed to list companies", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list companies"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetCompanyByID godoc
// @Summary Get a company by ID
// @Description Get a single company with its executives and unread alerts
// @Tags companies
// @Produce  json
// @Param   id  path    string true    "Company ID"
// @Success 200 {object} entity.Company
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{id} [get]
func (h *CompanyHandler) GetCompanyByID(c echo.Context) error {
	company, err := h.companyService.GetByID(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get company"})
	}
	return c.JSON(http.StatusOK, company)
}

// UpdateCompany godoc
// @Summary Update a company
// @Description Apply a partial update and recompute the pressure score
// @Tags companies
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Company ID"
// @Param   company  body    dto.UpdateCompanyRequest   true    "Fields to update"
// @Success 200 {object} entity.Company
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{id} [put]
func (h *CompanyHandler) UpdateCompany(c echo.Context) error {
	var req dto.UpdateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	company, err := h.companyService.Update(c.Request().Context(), c.Param("id"), userID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Company not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update company"})
	}
	return c.JSON(http.StatusOK, company)
}

// DeleteCompany godoc
// @Summary Delete a company
// @Description Delete a company and its executives and alerts
// @Tags companies
// @Produce  json
// @Param   id  path    string true    "Company ID"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Router /companies/{id} [delete]
func (h *CompanyHandler) DeleteCompany(c echo.Context) error {
	if err := h.companyService.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete company"})
	}
	return c.NoContent(http.StatusNoContent)
}
