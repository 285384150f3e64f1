package entities

import (
	"time"

	"github.com/google/uuid"
)

// Urgency constants. The ranking order critical < high < medium < low is
// shared by ActionItem.Urgency and Task.Priority.
const (
	UrgencyCritical = "critical"
	UrgencyHigh     = "high"
	UrgencyMedium   = "medium"
	UrgencyLow      = "low"
)

// ActionItem is an AI-extracted task candidate attached to a meeting
// summary. It is never edited in place; users promote action items into
// Tasks on the board.
type ActionItem struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID     uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index"`
	SummaryID     *uuid.UUID `json:"summary_id,omitempty" gorm:"type:uuid;index"`
	Title         string     `json:"title" gorm:"type:varchar(500);not null"`
	Owner         string     `json:"owner,omitempty" gorm:"type:varchar(255)"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	Urgency       string     `json:"urgency" gorm:"type:varchar(20);default:'medium'"`
	UrgencyReason string     `json:"urgency_reason,omitempty" gorm:"type:text"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (ActionItem) TableName() string {
	return "action_items"
}

// NewActionItem creates a new ActionItem entity
func NewActionItem(meetingID uuid.UUID, title string) *ActionItem {
	return &ActionItem{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Title:     title,
		Urgency:   UrgencyMedium,
	}
}
