package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
)

// MeetingFilters narrows meeting listings
type MeetingFilters struct {
	Search string
	Status *entities.MeetingStatus
	Limit  int
	Offset int
}

// MeetingRepository defines data access for meetings
type MeetingRepository interface {
	Create(ctx context.Context, meeting *entities.Meeting) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Meeting, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filters MeetingFilters) ([]entities.Meeting, int64, error)
	Update(ctx context.Context, meeting *entities.Meeting) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TranscriptRepository defines data access for transcripts
type TranscriptRepository interface {
	Upsert(ctx context.Context, transcript *entities.Transcript) error
	GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.Transcript, error)
}

// SummaryRepository defines data access for analysis results
type SummaryRepository interface {
	Upsert(ctx context.Context, summary *entities.MeetingSummary) error
	GetByMeetingID(ctx context.Context, meetingID uuid.UUID) (*entities.MeetingSummary, error)
	ReplaceActionItems(ctx context.Context, meetingID uuid.UUID, items []entities.ActionItem) error
	ListActionItems(ctx context.Context, meetingID uuid.UUID) ([]entities.ActionItem, error)
}
