package api

import (
	"context"
	"math"
	"net/http"

	"github.com/4wadia/focusflow/internal/models"
	taskservice "github.com/4wadia/focusflow/internal/services/task"
	"github.com/labstack/echo/v4"
)

type taskHandlers struct {
	svc taskservice.Service
}

// taskBody is the JSON payload of task writes. Absent fields stay nil.
type taskBody struct {
	ColumnID    *string           `json:"columnId"`
	Title       *string           `json:"title"`
	Date        *string           `json:"date"`
	DueTime     *string           `json:"dueTime"`
	Duration    *string           `json:"duration"`
	Priority    *models.Priority  `json:"priority"`
	IsCompleted *bool             `json:"isCompleted"`
	Order       *int              `json:"order"`
	Subtasks    *[]models.Subtask `json:"subtasks"`
	Tags        *[]string         `json:"tags"`
}

type taskResponse struct {
	Task *models.Task `json:"task"`
}

type tasksResponse struct {
	Tasks []*models.Task `json:"tasks"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (h *taskHandlers) list(c echo.Context) error {
	tasks, err := h.svc.ListTasks(c.Request().Context(), ownerID(c), taskservice.ListFilter{
		Date:     c.QueryParam("date"),
		ColumnID: c.QueryParam("columnId"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasksResponse{Tasks: tasks})
}

func (h *taskHandlers) get(c echo.Context) error {
	task, err := h.svc.GetTask(c.Request().Context(), ownerID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Task: task})
}

func (h *taskHandlers) create(c echo.Context) error {
	var body taskBody
	if err := c.Bind(&body); err != nil {
		return badRequest("invalid request body")
	}

	req := taskservice.CreateTaskRequest{
		OwnerID:  ownerID(c),
		ColumnID: deref(body.ColumnID),
		Title:    deref(body.Title),
		Date:     deref(body.Date),
		DueTime:  deref(body.DueTime),
		Duration: deref(body.Duration),
		Priority: deref(body.Priority),
	}
	if body.IsCompleted != nil && *body.IsCompleted && body.Priority == nil {
		req.Priority = models.PriorityCompleted
	}
	if body.Subtasks != nil {
		req.Subtasks = *body.Subtasks
	}
	if body.Tags != nil {
		req.Tags = *body.Tags
	}

	task, err := h.svc.CreateTask(c.Request().Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, taskResponse{Task: task})
}

// update edits a task in place. A body carrying columnId or order is
// treated as a move with the remaining fields applied alongside.
func (h *taskHandlers) update(c echo.Context) error {
	var body taskBody
	if err := c.Bind(&body); err != nil {
		return badRequest("invalid request body")
	}

	ctx := c.Request().Context()
	owner, id := ownerID(c), c.Param("id")

	var (
		task *models.Task
		err  error
	)
	if body.ColumnID == nil && body.Order == nil {
		task, err = h.svc.UpdateTask(ctx, taskservice.UpdateTaskRequest{
			OwnerID:     owner,
			TaskID:      id,
			TaskChanges: changes(body),
		})
	} else {
		task, err = h.moveTo(ctx, owner, id, body)
	}
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Task: task})
}

func (h *taskHandlers) toggle(c echo.Context) error {
	task, err := h.svc.ToggleTask(c.Request().Context(), ownerID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Task: task})
}

func (h *taskHandlers) move(c echo.Context) error {
	var body taskBody
	if err := c.Bind(&body); err != nil {
		return badRequest("invalid request body")
	}
	if body.ColumnID == nil {
		return taskservice.ErrMissingColumn
	}

	task, err := h.moveTo(c.Request().Context(), ownerID(c), c.Param("id"), body)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Task: task})
}

func (h *taskHandlers) delete(c echo.Context) error {
	if err := h.svc.DeleteTask(c.Request().Context(), ownerID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted"})
}

// changes converts the editable fields of body. isCompleted without an
// explicit priority is resolved by the service against the stored task.
func changes(body taskBody) taskservice.TaskChanges {
	return taskservice.TaskChanges{
		Title:     body.Title,
		Date:      body.Date,
		DueTime:   body.DueTime,
		Duration:  body.Duration,
		Priority:  body.Priority,
		Subtasks:  body.Subtasks,
		Tags:      body.Tags,
		Completed: body.IsCompleted,
	}
}

// moveTo fills in a missing destination: no column keeps the current one,
// no order appends.
func (h *taskHandlers) moveTo(ctx context.Context, owner, id string, body taskBody) (*models.Task, error) {
	if body.ColumnID != nil && *body.ColumnID == "" {
		return nil, taskservice.ErrMissingColumn
	}
	req := taskservice.MoveTaskRequest{
		OwnerID:     owner,
		TaskID:      id,
		ColumnID:    deref(body.ColumnID),
		Order:       math.MaxInt32,
		TaskChanges: changes(body),
	}
	if body.Order != nil {
		req.Order = *body.Order
	}
	return h.svc.MoveTask(ctx, req)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
