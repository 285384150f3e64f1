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

type meetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository backed by GORM
func NewMeetingRepository(db *gorm.DB) repo.MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Create(meeting).Error
}

func (r *meetingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error) {
	var meeting entities.Meeting
	if err := r.db.WithContext(ctx).First(&meeting, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseerrors.ErrMeetingNotFound
		}
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filters repo.MeetingFilters) ([]entities.Meeting, int64, error) {
	q := r.db.WithContext(ctx).Model(&entities.Meeting{}).Where("owner_id = ?", ownerID)

	if filters.Search != "" {
		q = q.Where("title ILIKE ?", "%"+filters.Search+"%")
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		q = q.Offset(filters.Offset)
	}

	var meetings []entities.Meeting
	if err := q.Order("created_at DESC").Find(&meetings).Error; err != nil {
		return nil, 0, err
	}
	return meetings, total, nil
}

func (r *meetingRepository) Update(ctx context.Context, meeting *entities.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

func (r *meetingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entities.Meeting{}, "id = ?", id).Error
}
