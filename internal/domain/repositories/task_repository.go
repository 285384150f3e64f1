package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
)

// TaskFilters narrows task listings for the board
type TaskFilters struct {
	Status    string
	Priority  string
	MeetingID *uuid.UUID
}

// TaskRepository defines data access for Kanban tasks
type TaskRepository interface {
	Create(ctx context.Context, task *entities.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Task, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filters TaskFilters) ([]entities.Task, error)
	Update(ctx context.Context, task *entities.Task) error
	Delete(ctx context.Context, id uuid.UUID) error
}
