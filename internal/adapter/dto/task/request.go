package task

import "time"

// CreateTaskRequest adds a task to the board
type CreateTaskRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=500"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=5000"`
	Priority    string     `json:"priority,omitempty" validate:"omitempty,oneof=critical high medium low"`
	AssignedTo  *string    `json:"assigned_to,omitempty" validate:"omitempty,uuid"`
	MeetingID   *string    `json:"meeting_id,omitempty" validate:"omitempty,uuid"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// UpdateTaskRequest applies a partial task mutation. Omitted fields keep
// their value; a literal null due_date clears it.
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1,max=500"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=5000"`
	Priority    *string    `json:"priority,omitempty" validate:"omitempty,oneof=critical high medium low"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress done"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	ClearDue    bool       `json:"clear_due_date,omitempty"`
}

// ListTasksRequest narrows the board listing
type ListTasksRequest struct {
	Status    string `query:"status" validate:"omitempty,oneof=pending in_progress done"`
	Priority  string `query:"priority" validate:"omitempty,urgency"`
	MeetingID string `query:"meeting_id" validate:"omitempty,uuid"`
}
