package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Sentiment is the per-utterance classification returned by the AI service
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Utterance is a single speaker turn within a transcript. StartTime and
// EndTime are the raw cue timestamps ("HH:MM:SS.mmm"); they are empty for
// plain-text transcripts. Sentiment is empty until analysis completes.
type Utterance struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	StartTime string    `json:"start_time,omitempty"`
	EndTime   string    `json:"end_time,omitempty"`
	Sentiment Sentiment `json:"sentiment,omitempty"`
}

// Transcript is the stored transcript model
type Transcript struct {
	ID           uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID    uuid.UUID                                  `json:"meeting_id" gorm:"type:uuid;not null;uniqueIndex"`
	Text         string                                     `json:"text" gorm:"type:text"`
	Utterances   []Utterance                                `json:"utterances,omitempty" gorm:"type:jsonb;serializer:json"`
	SpeakerCount int                                        `json:"speaker_count,omitempty"`
	Language     string                                     `json:"language,omitempty" gorm:"type:varchar(20)"`
	RawData      datatypes.JSONType[map[string]interface{}] `json:"raw_data,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new transcript
func NewTranscript(meetingID uuid.UUID) *Transcript {
	return &Transcript{
		ID:        uuid.New(),
		MeetingID: meetingID,
	}
}
