package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/taskhive/taskhive-backend/internal/domain"
	"github.com/taskhive/taskhive-backend/internal/service"
	"github.com/taskhive/taskhive-backend/internal/util"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func RegisterTasks(e *echo.Echo, auth *service.AuthService, tasks *service.TaskService) {
	handler := &TaskHandler{tasks: tasks}

	g := e.Group("/tasks", RequireAuth(auth))
	g.POST("/newtasks", handler.createTasks)
	g.GET("/usertasks", handler.listUserTasks)
	g.GET("/alluserstask", handler.listGroupedTasks)
	g.PATCH("/update/:id", handler.updateTask)
	g.DELETE("/deletetask/:id", handler.deleteTask)
	g.DELETE("/deleteselectedtasks", handler.deleteSelectedTasks)
	g.DELETE("/deletealltasks", handler.deleteAllTasks)
}

func (h *TaskHandler) createTasks(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, "authentication required"))
	}

	var req NewTasksRequest
	if err := c.Bind(&req); err != nil || len(req.Tasks) == 0 {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Please provide an array of tasks"))
	}

	tasks := make([]domain.NewTask, 0, len(req.Tasks))
	for _, t := range req.Tasks {
		tasks = append(tasks, domain.NewTask{Text: t.Task, Completed: t.Completed})
	}

	created, err := h.tasks.CreateBatch(c.Request().Context(), user.ID, tasks)
	if err != nil {
		if errors.Is(err, service.ErrNoTasksProvided) {
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Please provide an array of tasks"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusCreated, TasksResponse{
		Response: newResponse(http.StatusCreated, "Tasks created successfully"),
		Data:     created,
	})
}

func (h *TaskHandler) listUserTasks(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, "authentication required"))
	}

	page, err := util.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "Page and limit must be greater than 0"))
	}

	tasks, meta, err := h.tasks.ListByOwner(c.Request().Context(), user.ID, page)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPageOutOfRange):
			return c.JSON(http.StatusBadRequest, ListTasksResponse{
				Response:              newResponse(http.StatusBadRequest, "Page exceeds total number of pages"),
				Data:                  []domain.Task{},
				CurrentPageTasksCount: 0,
				TotalTasks:            meta.Total,
				CurrentPage:           meta.Page,
				TotalPages:            meta.TotalPages,
			})
		case errors.Is(err, service.ErrNoTasksFound):
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "No tasks found for this user"))
		default:
			return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
		}
	}

	return c.JSON(http.StatusOK, ListTasksResponse{
		Response:              newResponse(http.StatusOK, "Tasks retrieved successfully"),
		Data:                  tasks,
		CurrentPageTasksCount: meta.Count,
		TotalTasks:            meta.Total,
		CurrentPage:           meta.Page,
		TotalPages:            meta.TotalPages,
	})
}

func (h *TaskHandler) listGroupedTasks(c echo.Context) error {
	groups, err := h.tasks.GroupedByOwner(c.Request().Context())
	if err != nil {
		if errors.Is(err, service.ErrNoTasksFound) {
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "No tasks found"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, GroupedTasksResponse{
		Response: newResponse(http.StatusOK, "Tasks retrieved successfully"),
		Data:     groups,
	})
}

func (h *TaskHandler) updateTask(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, "authentication required"))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "task id must be a valid UUID"))
	}

	var req UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "invalid request body"))
	}
	if req.Task == nil && req.Completed == nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "No update fields provided"))
	}

	task, err := h.tasks.Update(c.Request().Context(), id, user.ID, req.Task, req.Completed)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "Task not found"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, TaskResponse{
		Response: newResponse(http.StatusOK, "Task updated successfully"),
		Data:     *task,
	})
}

func (h *TaskHandler) deleteTask(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, "authentication required"))
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "task id must be a valid UUID"))
	}

	task, err := h.tasks.Delete(c.Request().Context(), id, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "Task not found"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, TaskResponse{
		Response: newResponse(http.StatusOK, "Task deleted successfully"),
		Data:     *task,
	})
}

func (h *TaskHandler) deleteSelectedTasks(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, "authentication required"))
	}

	var req DeleteSelectedTasksRequest
	if err := c.Bind(&req); err != nil || len(req.TaskIDs) == 0 {
		return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "No task IDs provided"))
	}

	ids := make([]uuid.UUID, 0, len(req.TaskIDs))
	for _, raw := range req.TaskIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			return c.JSON(http.StatusBadRequest, newResponse(http.StatusBadRequest, "task ids must be valid UUIDs"))
		}
		ids = append(ids, id)
	}

	deleted, err := h.tasks.DeleteSelected(c.Request().Context(), user.ID, ids)
	if err != nil {
		if errors.Is(err, service.ErrNoTasksDeleted) {
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "No tasks found to delete"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, DeletedCountResponse{
		Response: newResponse(http.StatusOK, fmt.Sprintf("%d task(s) deleted successfully", deleted)),
		Data:     DeletedCountData{DeletedCount: deleted},
	})
}

func (h *TaskHandler) deleteAllTasks(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, newResponse(http.StatusUnauthorized, "authentication required"))
	}

	deleted, err := h.tasks.DeleteAll(c.Request().Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNoTasksDeleted) {
			return c.JSON(http.StatusNotFound, newResponse(http.StatusNotFound, "No tasks found to delete"))
		}
		return c.JSON(http.StatusInternalServerError, newResponse(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, DeletedCountResponse{
		Response: newResponse(http.StatusOK, "All tasks deleted successfully"),
		Data:     DeletedCountData{DeletedCount: deleted},
	})
}
