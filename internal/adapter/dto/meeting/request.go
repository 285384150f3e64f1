package meeting

import "time"

// CreateMeetingRequest registers a new meeting
type CreateMeetingRequest struct {
	Title       string     `json:"title" validate:"required,min=1,max=500"`
	Description string     `json:"description,omitempty" validate:"omitempty,max=5000"`
	HeldAt      *time.Time `json:"held_at,omitempty"`
}

// UploadTranscriptRequest submits raw transcript text. Filename is optional;
// pasted text leaves it empty and is treated as plain dialogue.
type UploadTranscriptRequest struct {
	Filename string `json:"filename,omitempty" validate:"omitempty,max=500"`
	Content  string `json:"content" validate:"required"`
}

// ListMeetingsRequest narrows the meeting listing
type ListMeetingsRequest struct {
	Search   string `query:"search"`
	Status   string `query:"status" validate:"omitempty,oneof=uploaded processing analyzed failed"`
	Page     int    `query:"page" validate:"omitempty,min=1"`
	PageSize int    `query:"page_size" validate:"omitempty,min=1,max=100"`
}

// ChatRequest asks a question about the transcript
type ChatRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
}

// SearchRequest queries the transcript
type SearchRequest struct {
	Query string `query:"q" validate:"required,min=1,max=500"`
}

// ActionItemsRequest filters the ranked action item listing
type ActionItemsRequest struct {
	Urgency string `query:"urgency" validate:"omitempty,urgency"`
}
