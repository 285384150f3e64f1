package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
	repo "github.com/aftermeet-app/aftermeet/internal/domain/repositories"
	usecaseerrors "github.com/aftermeet-app/aftermeet/internal/usecase/errors"
)

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository backed by GORM
func NewTaskRepository(db *gorm.DB) repo.TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *entities.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error) {
	var task entities.Task
	if err := r.db.WithContext(ctx).First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseerrors.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByUser returns tasks the user is assigned to or created
func (r *taskRepository) ListByUser(ctx context.Context, userID uuid.UUID, filters repo.TaskFilters) ([]entities.Task, error) {
	q := r.db.WithContext(ctx).Model(&entities.Task{}).
		Where("assigned_to = ? OR created_by = ?", userID, userID)

	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		q = q.Where("priority = ?", filters.Priority)
	}
	if filters.MeetingID != nil {
		q = q.Where("meeting_id = ?", *filters.MeetingID)
	}

	var tasks []entities.Task
	if err := q.Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *entities.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Task{}, "id = ?", id).Error
}
