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

// ResearchTaskHandler handles HTTP requests for research tasks.
type ResearchTaskHandler struct {
	taskService service.ResearchTaskService
	logger      *logger.Logger
}

// NewResearchTaskHandler creates a new ResearchTaskHandler.
func NewResearchTaskHandler(taskService service.ResearchTaskService, logger *logger.Logger) *ResearchTaskHandler {
	return &ResearchTaskHandler{taskService: taskService, logger: logger}
}

// RegisterRoutes registers the research task routes to the Echo group.
func (h *ResearchTaskHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateTask)
	g.GET("", h.GetAllTasks)
	g.GET("/:id", h.GetTaskByID)
	g.PUT("/:id", h.UpdateTask)
	g.DELETE("/:id", h.DeleteTask)
}

// CreateTask godoc
// @Summary Create a new research task
// @Description Create a follow-up task, optionally tied to an opportunity
// @Tags research-tasks
// @Accept  json
// @Produce  json
// @Param   task  body    dto.CreateResearchTaskRequest   true    "Task to create"
// @Success 201 {object} entity.ResearchTask
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /research-tasks [post]
func (h *ResearchTaskHandler) CreateTask(c echo.Context) error {
	var req dto.CreateResearchTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}
	if req.Title == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Title is required"})
	}

	task, err := h.taskService.Create(c.Request().Context(), userID(c), &req)
	if err != nil {
		h.logger.Error("Failed to create research task", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to create task"})
	}
	return c.JSON(http.StatusCreated, task)
}

// GetAllTasks godoc
// @Summary List research tasks
// @Description List tasks ordered by status, priority and age
// @Tags research-tasks
// @Produce  json
// @Param   opportunity_id query string false "Filter by opportunity"
// @Param   status         query string false "Filter by status"
// @Success 200 {array} entity.ResearchTask
// @Failure 500 {object} dto.ErrorResponse
// @Router /research-tasks [get]
func (h *ResearchTaskHandler) GetAllTasks(c echo.Context) error {
	filter := repository.ResearchTaskFilter{
		OpportunityID: c.QueryParam("opportunity_id"),
		Status:        c.QueryParam("status"),
	}

	tasks, err := h.taskService.List(c.Request().Context(), userID(c), filter)
	if err != nil {
		h.logger.Error("Failed to list research tasks", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to list tasks"})
	}
	return c.JSON(http.StatusOK, tasks)
}

// GetTaskByID godoc
// @Summary Get a research task by ID
// @Description Get a single task
// @Tags research-tasks
// @Produce  json
// @Param   id  path    string true    "Task ID"
// @Success 200 {object} entity.ResearchTask
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /research-tasks/{id} [get]
func (h *ResearchTaskHandler) GetTaskByID(c echo.Context) error {
	task, err := h.taskService.GetByID(c.Request().Context(), c.Param("id"), userID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to get task"})
	}
	return c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a research task
// @Description Apply a partial update to a task
// @Tags research-tasks
// @Accept  json
// @Produce  json
// @Param   id  path    string true    "Task ID"
// @Param   task  body    dto.UpdateResearchTaskRequest   true    "Fields to update"
// @Success 200 {object} entity.ResearchTask
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /research-tasks/{id} [put]
func (h *ResearchTaskHandler) UpdateTask(c echo.Context) error {
	var req dto.UpdateResearchTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request payload"})
	}

	task, err := h.taskService.Update(c.Request().Context(), c.Param("id"), userID(c), &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to update task"})
	}
	return c.JSON(http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Delete a research task
// @Description Delete a task
// @Tags research-tasks
// @Produce  json
// @Param   id  path    string true    "Task ID"
// @Success 204 {object} nil
// @Failure 500 {object} dto.ErrorResponse
// @Router /research-tasks/{id} [delete]
func (h *ResearchTaskHandler) DeleteTask(c echo.Context) error {
	if err := h.taskService.Delete(c.Request().Context(), c.Param("id"), userID(c)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "Failed to delete task"})
	}
	return c.NoContent(http.StatusNoContent)
}
