package entities

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingStatus tracks where a meeting is in the ingestion pipeline
type MeetingStatus string

const (
	MeetingStatusUploaded   MeetingStatus = "uploaded"
	MeetingStatusProcessing MeetingStatus = "processing"
	MeetingStatusAnalyzed   MeetingStatus = "analyzed"
	MeetingStatusFailed     MeetingStatus = "failed"
)

// TranscriptFormat identifies the source format of an uploaded transcript
type TranscriptFormat string

const (
	FormatPlain  TranscriptFormat = "plain"
	FormatWebVTT TranscriptFormat = "webvtt"
	FormatSRT    TranscriptFormat = "srt"
)

// FormatFromFilename infers the transcript format from a file extension.
// Unknown extensions fall back to plain text.
func FormatFromFilename(name string) TranscriptFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".vtt":
		return FormatWebVTT
	case ".srt":
		return FormatSRT
	default:
		return FormatPlain
	}
}

// Meeting is the stored meeting model
type Meeting struct {
	ID           uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID      uuid.UUID        `json:"owner_id" gorm:"type:uuid;not null;index"`
	Title        string           `json:"title" gorm:"type:varchar(500);not null"`
	Description  string           `json:"description,omitempty" gorm:"type:text"`
	Status       MeetingStatus    `json:"status" gorm:"type:varchar(20);default:'uploaded'"`
	SourceFormat TranscriptFormat `json:"source_format" gorm:"type:varchar(10);default:'plain'"`
	RawObjectKey string           `json:"raw_object_key,omitempty" gorm:"type:varchar(500)"`
	HeldAt       *time.Time       `json:"held_at,omitempty"`
	CreatedAt    time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

// NewMeeting creates a new Meeting entity
func NewMeeting(ownerID uuid.UUID, title string) *Meeting {
	return &Meeting{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Title:   title,
		Status:  MeetingStatusUploaded,
	}
}
