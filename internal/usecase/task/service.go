package task

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
	"github.com/aftermeet-app/aftermeet/internal/domain/repositories"
	"github.com/aftermeet-app/aftermeet/internal/usecase/auth"
	usecaseerrors "github.com/aftermeet-app/aftermeet/internal/usecase/errors"
	"github.com/aftermeet-app/aftermeet/internal/usecase/insights"
)

// UpdateInput carries optional task mutations; nil fields are untouched
type UpdateInput struct {
	Title       *string
	Description *string
	Priority    *string
	Status      *string
	DueDate     *time.Time
	ClearDue    bool
}

// TaskView is a task with its view-ready due-date description
type TaskView struct {
	entities.Task
	DueInfo insights.DeadlineInfo `json:"due_info"`
}

// Service implements Kanban board operations. Authorization follows one
// rule everywhere: the assignee may mutate a task, the creator may read
// and delete it.
type Service struct {
	tasks  repositories.TaskRepository
	logger *zap.Logger
}

// NewService creates a new task service
func NewService(tasks repositories.TaskRepository, logger *zap.Logger) *Service {
	return &Service{tasks: tasks, logger: logger}
}

// Create adds a task to the board. Tasks with no explicit assignee are
// self-assigned to the creator.
func (s *Service) Create(ctx context.Context, sess *auth.Session, title, description, priority string, assignedTo *uuid.UUID, meetingID *uuid.UUID, dueDate *time.Time) (*entities.Task, error) {
	assignee := sess.UserID
	if assignedTo != nil {
		assignee = *assignedTo
	}

	t := entities.NewTask(sess.UserID, assignee, title)
	t.Description = description
	t.MeetingID = meetingID
	t.DueDate = dueDate
	if priority != "" {
		t.Priority = priority
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("task.created",
		zap.String("task_id", t.ID.String()),
		zap.String("assigned_to", assignee.String()),
	)
	return t, nil
}

// Get returns a single task visible to the session user
func (s *Service) Get(ctx context.Context, sess *auth.Session, taskID uuid.UUID) (*entities.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !canRead(sess, t) {
		return nil, usecaseerrors.ErrNotTaskAssignee
	}
	return t, nil
}

// List returns the board for the session user: tasks they are assigned to
// or created, ranked by priority and annotated with due-date labels.
func (s *Service) List(ctx context.Context, sess *auth.Session, filters repositories.TaskFilters) ([]TaskView, error) {
	tasks, err := s.tasks.ListByUser(ctx, sess.UserID, filters)
	if err != nil {
		return nil, err
	}

	ranked := insights.RankTasks(tasks, filters.Priority)
	now := time.Now()
	views := make([]TaskView, 0, len(ranked))
	for _, t := range ranked {
		views = append(views, TaskView{
			Task:    t,
			DueInfo: insights.DescribeDeadline(t.DueDate, now),
		})
	}
	return views, nil
}

// Update applies a partial mutation. Only the assignee may change a task's
// content or move it between columns.
func (s *Service) Update(ctx context.Context, sess *auth.Session, taskID uuid.UUID, in UpdateInput) (*entities.Task, error) {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !canMutate(sess, t) {
		return nil, usecaseerrors.ErrNotTaskAssignee
	}

	if in.Status != nil {
		if !entities.ValidTaskStatus(*in.Status) {
			return nil, usecaseerrors.ErrInvalidTaskStatus
		}
		t.Status = *in.Status
	}
	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.Priority != nil {
		t.Priority = *in.Priority
	}
	if in.ClearDue {
		t.DueDate = nil
	} else if in.DueDate != nil {
		t.DueDate = in.DueDate
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes a task. The creator owns the task's lifecycle; the
// assignee may also remove their own completed work.
func (s *Service) Delete(ctx context.Context, sess *auth.Session, taskID uuid.UUID) error {
	t, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return err
	}
	if !canRead(sess, t) {
		return usecaseerrors.ErrNotTaskAssignee
	}
	return s.tasks.Delete(ctx, taskID)
}

func canRead(sess *auth.Session, t *entities.Task) bool {
	return t.AssignedTo == sess.UserID || t.CreatedBy == sess.UserID
}

func canMutate(sess *auth.Session, t *entities.Task) bool {
	return t.AssignedTo == sess.UserID
}
