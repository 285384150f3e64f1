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

type transcriptRepository struct {
	db *gorm.DB
}

// NewTranscriptRepository creates a new transcript repository backed by GORM
func NewTranscriptRepository(db *gorm.DB) repo.TranscriptRepository {
	return &transcriptRepository{db: db}
}

// Upsert writes the transcript, replacing any previous one for the meeting.
// Re-uploading a transcript re-runs the whole pipeline.
func (r *transcriptRepository) Upsert(ctx context.Context, t *entities.Transcript) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meeting_id"}},
		UpdateAll: true,
	}).Create(t).Error
}

func (r *transcriptRepository) GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error) {
	var t entities.Transcript
	if err := r.db.WithContext(ctx).First(&t, "meeting_id = ?", meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecaseerrors.ErrTranscriptNotFound
		}
		return nil, err
	}
	return &t, nil
}
