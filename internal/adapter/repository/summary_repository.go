package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
	repo "github.com/aftermeet-app/aftermeet/internal/domain/repositories"
	usecaseerrors "github.com/aftermeet-app/aftermeet/internal/usecase/errors"
)

type summaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository backed by GORM
func NewSummaryRepository(db *gorm.DB) repo.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) Upsert(ctx context.Context, s *entities.MeetingSummary) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meeting_id"}},
		UpdateAll: true,
	}).Create(s).Error
}

func (r *summaryRepository) GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingSummary, error) {
	var s entities.MeetingSummary
	if err := r.db.WithContext(ctx).First(&s, "meeting_id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseerrors.ErrSummaryNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ReplaceActionItems swaps the extracted action items for a meeting in one
// transaction. Re-analysis must not leave stale extractions behind.
func (r *summaryRepository) ReplaceActionItems(ctx context.Context, meetingID uuid.UUID, items []entities.ActionItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entities.ActionItem{}, "meeting_id = ?", meetingID).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
}

func (r *summaryRepository) ListActionItems(ctx context.Context, meetingID uuid.UUID) ([]entities.ActionItem, error) {
	var items []entities.ActionItem
	if err := r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
