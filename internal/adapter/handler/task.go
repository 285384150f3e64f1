package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aftermeet-app/aftermeet/errors"
	taskdto "github.com/aftermeet-app/aftermeet/internal/adapter/dto/task"
	"github.com/aftermeet-app/aftermeet/internal/domain/repositories"
	"github.com/aftermeet-app/aftermeet/internal/usecase/task"
)

// Task handles Kanban board endpoints
type Task struct {
	service *task.Service
	logger  *zap.Logger
}

// NewTask creates a new task handler
func NewTask(service *task.Service, logger *zap.Logger) *Task {
	return &Task{service: service, logger: logger}
}

// Create adds a task to the board
func (h *Task) Create(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req taskdto.CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	assignedTo, err := parseOptionalUUID(req.AssignedTo)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	meetingID, err := parseOptionalUUID(req.MeetingID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	t, err := h.service.Create(c.Request().Context(), sess, req.Title, req.Description, req.Priority, assignedTo, meetingID, req.DueDate)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, t)
}

// Get returns a single task
func (h *Task) Get(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	t, err := h.service.Get(c.Request().Context(), sess, id)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, t)
}

// List returns the user's board, ranked by priority
func (h *Task) List(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req taskdto.ListTasksRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	filters := repositories.TaskFilters{
		Status:   req.Status,
		Priority: req.Priority,
	}
	if req.MeetingID != "" {
		id, err := uuid.Parse(req.MeetingID)
		if err != nil {
			return handleError(c, h.logger, errors.ErrInvalidArgument("meeting_id must be a valid UUID"))
		}
		filters.MeetingID = &id
	}

	views, err := h.service.List(c.Request().Context(), sess, filters)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, views)
}

// Update applies a partial task mutation
func (h *Task) Update(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req taskdto.UpdateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	t, err := h.service.Update(c.Request().Context(), sess, id, task.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
		ClearDue:    req.ClearDue,
	})
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, t)
}

// Delete removes a task from the board
func (h *Task) Delete(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.Delete(c.Request().Context(), sess, id); err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{"message": "task deleted"})
}

func parseOptionalUUID(s *string) (*uuid.UUID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		return nil, errors.ErrInvalidArgument("expected a valid UUID")
	}
	return &id, nil
}
