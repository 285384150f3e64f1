package handler

import (
	"io"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/aftermeet-app/aftermeet/errors"
	"github.com/aftermeet-app/aftermeet/internal/adapter/dto/common"
	meetingdto "github.com/aftermeet-app/aftermeet/internal/adapter/dto/meeting"
	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
	"github.com/aftermeet-app/aftermeet/internal/domain/repositories"
	"github.com/aftermeet-app/aftermeet/internal/usecase/meeting"
)

const maxUploadBytes = 10 << 20

// Meeting handles meeting, transcript, and analysis endpoints
type Meeting struct {
	service *meeting.Service
	logger  *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(service *meeting.Service, logger *zap.Logger) *Meeting {
	return &Meeting{service: service, logger: logger}
}

// Create registers a new meeting
func (h *Meeting) Create(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req meetingdto.CreateMeetingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	m, err := h.service.Create(c.Request().Context(), sess, req.Title, req.Description, req.HeldAt)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, m)
}

// Get returns a single meeting
func (h *Meeting) Get(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	m, err := h.service.Get(c.Request().Context(), sess, id)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, m)
}

// List returns the user's meetings with pagination
func (h *Meeting) List(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req meetingdto.ListMeetingsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	filters := repositories.MeetingFilters{
		Search: req.Search,
		Limit:  req.PageSize,
		Offset: (req.Page - 1) * req.PageSize,
	}
	if req.Status != "" {
		status := entities.MeetingStatus(req.Status)
		filters.Status = &status
	}

	meetings, total, err := h.service.List(c.Request().Context(), sess, filters)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, common.ListResponse{
		Data:       meetings,
		Pagination: common.NewPagination(req.Page, req.PageSize, total),
	})
}

// Delete removes a meeting
func (h *Meeting) Delete(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.Delete(c.Request().Context(), sess, id); err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{"message": "meeting deleted"})
}

// UploadTranscript accepts a transcript either as a multipart file upload or
// as a JSON body with pasted content
func (h *Meeting) UploadTranscript(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	filename, content, err := readTranscriptPayload(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	t, err := h.service.UploadTranscript(c.Request().Context(), sess, id, filename, content)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, t)
}

// RawTranscript returns a short-lived download URL for the original upload
func (h *Meeting) RawTranscript(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	url, err := h.service.RawTranscriptURL(c.Request().Context(), sess, id)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{"url": url})
}

// Analyze runs AI analysis on the stored transcript
func (h *Meeting) Analyze(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	summary, err := h.service.Analyze(c.Request().Context(), sess, id)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, summary)
}

// ActionItems returns ranked action items, optionally filtered by urgency
func (h *Meeting) ActionItems(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req meetingdto.ActionItemsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	items, err := h.service.ActionItems(c.Request().Context(), sess, id, req.Urgency)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, items)
}

// Analytics returns the meeting dashboard payload
func (h *Meeting) Analytics(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	a, err := h.service.GetAnalytics(c.Request().Context(), sess, id)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, a)
}

// Chat answers a question about the transcript
func (h *Meeting) Chat(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req meetingdto.ChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	answer, degraded, err := h.service.Chat(c.Request().Context(), sess, id, req.Question)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	resp := meetingdto.ChatResponse{Answer: answer, Degraded: degraded}
	if degraded {
		resp.Notice = meetingdto.DegradedNotice
	}
	return handleSuccess(c, h.logger, resp)
}

// Search finds transcript passages matching a query
func (h *Meeting) Search(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	id, err := parseID(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	var req meetingdto.SearchRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	hits, degraded, err := h.service.Search(c.Request().Context(), sess, id, req.Query)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	resp := meetingdto.SearchResponse{Hits: hits, Degraded: degraded}
	if degraded {
		resp.Notice = meetingdto.DegradedNotice
	}
	return handleSuccess(c, h.logger, resp)
}

// parseID reads the :id path parameter as a UUID
func parseID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.ErrInvalidArgument("id must be a valid UUID")
	}
	return id, nil
}

// readTranscriptPayload supports both multipart uploads and JSON bodies
func readTranscriptPayload(c echo.Context) (string, string, error) {
	if file, ferr := c.FormFile("file"); ferr == nil {
		if file.Size > maxUploadBytes {
			return "", "", errors.ErrInvalidArgument("transcript file exceeds 10MB")
		}
		src, err := file.Open()
		if err != nil {
			return "", "", errors.ErrStorageFailed("open upload", err)
		}
		defer src.Close()
		data, err := io.ReadAll(io.LimitReader(src, maxUploadBytes))
		if err != nil {
			return "", "", errors.ErrStorageFailed("read upload", err)
		}
		return file.Filename, string(data), nil
	}

	var req meetingdto.UploadTranscriptRequest
	if err := bindAndValidate(c, &req); err != nil {
		return "", "", err
	}
	return req.Filename, req.Content, nil
}
