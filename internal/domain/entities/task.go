package entities

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus constants (Kanban columns)
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// ValidTaskStatus reports whether s is a known Kanban column
func ValidTaskStatus(s string) bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

// Task is a persisted, user-editable work item tracked on the Kanban board.
// Distinct from ActionItem, which is an immutable AI extraction.
type Task struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   *uuid.UUID `json:"meeting_id,omitempty" gorm:"type:uuid;index"`
	AssignedTo  uuid.UUID  `json:"assigned_to" gorm:"type:uuid;not null;index"`
	CreatedBy   uuid.UUID  `json:"created_by" gorm:"type:uuid;not null"`
	Title       string     `json:"title" gorm:"type:varchar(500);not null"`
	Description string     `json:"description,omitempty" gorm:"type:text"`
	Priority    string     `json:"priority" gorm:"type:varchar(20);default:'medium'"`
	Status      string     `json:"status" gorm:"type:varchar(20);default:'pending'"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// NewTask creates a new Task entity
func NewTask(createdBy, assignedTo uuid.UUID, title string) *Task {
	return &Task{
		ID:         uuid.New(),
		CreatedBy:  createdBy,
		AssignedTo: assignedTo,
		Title:      title,
		Priority:   UrgencyMedium,
		Status:     TaskStatusPending,
	}
}
