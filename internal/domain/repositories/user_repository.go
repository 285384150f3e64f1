package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
)

// UserRepository defines data access for users
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}
