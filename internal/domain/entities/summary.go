package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// SpeakerStat is a derived per-speaker participation entry. Percentage is a
// rounded 0..100 share of utterances. DurationSeconds is only set when the
// AI service supplied richer per-speaker timing.
type SpeakerStat struct {
	Name            string  `json:"name"`
	SegmentCount    int     `json:"segment_count"`
	Percentage      int     `json:"percentage"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// SentimentDistribution holds rounded 0..100 percentages per sentiment label.
// The three values sum to 100 (within rounding) for non-empty input and are
// all zero for empty input.
type SentimentDistribution struct {
	Positive int `json:"positive"`
	Neutral  int `json:"neutral"`
	Negative int `json:"negative"`
}

// MeetingSummary is the canonical analysis result for one meeting. The AI
// service response varies by code path; pkg/ai normalizes every variant into
// this one shape before it reaches any consumer.
type MeetingSummary struct {
	ID               uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID        uuid.UUID                                  `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex"`
	TranscriptID     uuid.UUID                                  `json:"transcript_id" gorm:"type:uuid;index"`
	ExecutiveSummary string                                     `json:"executive_summary" gorm:"type:text"`
	Topics           []string                                   `json:"topics,omitempty" gorm:"type:jsonb;serializer:json"`
	SpeakerDurations map[string]float64                         `json:"speaker_durations,omitempty" gorm:"type:jsonb;serializer:json"`
	ModelUsed        string                                     `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	ProcessingMs     int                                        `json:"processing_ms,omitempty"`
	RawData          datatypes.JSONType[map[string]interface{}] `json:"raw_data,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt        time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt        time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MeetingSummary) TableName() string {
	return "meeting_summaries"
}

// NewMeetingSummary creates a new MeetingSummary entity
func NewMeetingSummary(meetingID, transcriptID uuid.UUID) *MeetingSummary {
	return &MeetingSummary{
		ID:           uuid.New(),
		MeetingID:    meetingID,
		TranscriptID: transcriptID,
	}
}
