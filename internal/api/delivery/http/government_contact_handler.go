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

// GovernmentContactHandler handles HTTP requests for government contacts.
type GovernmentContactHandler struct {
	contactService service.GovernmentContactService
	logger         *logger.Logger
}

// NewGovernmentContactHandler creates a new GovernmentContactHandler.
func NewGovernmentContactHandler(contactService service.GovernmentContactService, logger *logger.Logger) *GovernmentContactHandler {
	return &GovernmentContactHandler{contactService: contactService, logger: logger}
}

// RegisterRoutes registers the government contact routes to the Echo group.
func (h *GovernmentContactHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateContact)
	g.GET("", h.GetAllContacts)
	g.GET("/:id", h.GetContactByID)
	g.PUT("/:id", h.UpdateContact)
	g.DELETE("/:id", h.DeleteContact)
}

// CreateContact godoc
// @Summary Create a new government contact
// @Description Track a contact inside an issuing authority
// @Tags government-contacts
// @Accept  json
// @Produce  json
// @Param   contact  body    dto.CreateGovernmentContactRequest   true    "Contact to create"
// @Success 201 {object} entity.GovernmentContact
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /government-contacts [post]
func (h *GovernmentContactHandler) CreateContact(c echo.Context) error {
	var req dto.CreateGovernmentContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Name == "" || req.Department == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Name and department are required"})
	}

	contact, err := h.contactService.Create(c.Request().Context(), &req)
	if err != nil {
		h.logger.Error("Failed to create government contact", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create contact"})
	}
	return c.JSON(http.StatusCreated, contact)
}

// GetAllContacts godoc
// @Summary List government contacts
// @Description List contacts with department and influence rollups
// @Tags government-contacts
// @Produce  json
// @Param   opportunity_id query string false "Filter by opportunity"
// @Param   influence      query string false "Filter by influence level"
// @Param   department     query string false "Filter by department substring"
// @Param   search         query string false "Search in name, title and department"
// @Success 200 {object} dto.GovernmentContactListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /government-contacts [get]
func (h *GovernmentContactHandler) GetAllContacts(c echo.Context) error {
	filter := repository.GovernmentContactFilter{
		OpportunityID: c.QueryParam("opportunity_id"),
		Influence:     c.QueryParam("influence"),
		Department:    c.QueryParam("department"),
		Search:        c.QueryParam("search"),
	}

	resp, err := h.contactService.List(c.Request().Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list government contacts", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list contacts"})
	}
	return c.JSON(http.StatusOK, resp)
}

// GetContactByID godoc
// @Summary Get a government contact by ID
// @Description Get a single contact with linked opportunity and procurements
// @Tags government-contacts
// @Produce  json
// @Param   id  path    string true    "Contact ID"
// @Success 200 {object} entity.GovernmentContact
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /government-contacts/{id} [get]
func (h *GovernmentContactHandler) GetContactByID(c echo.Context) error {
	contact, err := h.contactService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get contact"})
	}
	return c.JSON(http.StatusOK, contact)
}

// UpdateContact godoc
// @Summary Update a government contact
// @Description Apply a partial update to a contact
// @Tags government-contacts
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Contact ID"
// @Param   contact  body    dto.UpdateGovernmentContactRequest   true    "Fields to update"
// @Success 200 {object} entity.GovernmentContact
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /government-contacts/{id} [put]
func (h *GovernmentContactHandler) UpdateContact(c echo.Context) error {
	var req dto.UpdateGovernmentContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	contact, err := h.contactService.Update(c.Request().Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Contact not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update contact"})
	}
	return c.JSON(http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary Delete a government contact
// @Description Delete a tracked contact
// @Tags government-contacts
// @Produce  json
// @Param   id  path    string true    "Contact ID"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Router /government-contacts/{id} [delete]
func (h *GovernmentContactHandler) DeleteContact(c echo.Context) error {
	if err := h.contactService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete contact"})
	}
	return c.NoContent(http.StatusNoContent)
}
