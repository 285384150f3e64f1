package meeting

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
	"github.com/aftermeet-app/aftermeet/internal/domain/repositories"
	"github.com/aftermeet-app/aftermeet/internal/infrastructure/cache"
	"github.com/aftermeet-app/aftermeet/internal/usecase/auth"
	usecaseerrors "github.com/aftermeet-app/aftermeet/internal/usecase/errors"
	"github.com/aftermeet-app/aftermeet/internal/usecase/insights"
	"github.com/aftermeet-app/aftermeet/internal/usecase/transcript"
	"github.com/aftermeet-app/aftermeet/pkg/ai"
)

// ObjectStore persists raw uploaded transcript files
type ObjectStore interface {
	UploadText(ctx context.Context, objectName, content string) error
	DownloadText(ctx context.Context, objectName string) (string, error)
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
}

// Analyzer is the external AI service boundary
type Analyzer interface {
	Analyze(ctx context.Context, meetingID, transcript string) (*ai.Result, error)
	Chat(ctx context.Context, meetingID, transcript, question string) (string, error)
	Search(ctx context.Context, meetingID, transcript, query string) ([]ai.SearchHit, error)
}

// ActionItemView is an action item with its view-ready deadline description
type ActionItemView struct {
	entities.ActionItem
	DeadlineInfo insights.DeadlineInfo `json:"deadline_info"`
}

// Analytics is the per-meeting dashboard payload, recomputed on each request
type Analytics struct {
	MeetingID   uuid.UUID                `json:"meeting_id"`
	Summary     string                   `json:"summary"`
	Topics      []string                 `json:"topics"`
	Sentiment   insights.SentimentReport `json:"sentiment"`
	Speakers    []entities.SpeakerStat   `json:"speakers"`
	ActionItems []ActionItemView         `json:"action_items"`
}

const analyticsCacheTTL = time.Minute

// Service orchestrates the transcript ingestion and analysis pipeline
type Service struct {
	meetings    repositories.MeetingRepository
	transcripts repositories.TranscriptRepository
	summaries   repositories.SummaryRepository
	objects     ObjectStore
	analyzer    Analyzer
	cache       cache.Store
	logger      *zap.Logger
}

// NewService creates a new meeting service
func NewService(
	meetings repositories.MeetingRepository,
	transcripts repositories.TranscriptRepository,
	summaries repositories.SummaryRepository,
	objects ObjectStore,
	analyzer Analyzer,
	cacheStore cache.Store,
	logger *zap.Logger,
) *Service {
	return &Service{
		meetings:    meetings,
		transcripts: transcripts,
		summaries:   summaries,
		objects:     objects,
		analyzer:    analyzer,
		cache:       cacheStore,
		logger:      logger,
	}
}

// Create registers a new meeting owned by the session user
func (s *Service) Create(ctx context.Context, sess *auth.Session, title, description string, heldAt *time.Time) (*entities.Meeting, error) {
	m := entities.NewMeeting(sess.UserID, title)
	m.Description = description
	m.HeldAt = heldAt

	if err := s.meetings.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Get loads a meeting the session user owns
func (s *Service) Get(ctx context.Context, sess *auth.Session, meetingID uuid.UUID) (*entities.Meeting, error) {
	return s.ownedMeeting(ctx, sess, meetingID)
}

// List returns the session user's meetings
func (s *Service) List(ctx context.Context, sess *auth.Session, filters repositories.MeetingFilters) ([]entities.Meeting, int64, error) {
	return s.meetings.ListByOwner(ctx, sess.UserID, filters)
}

// Delete removes a meeting the session user owns
func (s *Service) Delete(ctx context.Context, sess *auth.Session, meetingID uuid.UUID) error {
	if _, err := s.ownedMeeting(ctx, sess, meetingID); err != nil {
		return err
	}
	return s.meetings.Delete(ctx, meetingID)
}

// UploadTranscript stores a raw transcript upload, normalizes it into
// utterances, and resets the meeting to the uploaded state. The filename
// drives format inference; pasted text arrives with an empty filename and
// parses as plain dialogue.
func (s *Service) UploadTranscript(ctx context.Context, sess *auth.Session, meetingID uuid.UUID, filename, raw string) (*entities.Transcript, error) {
	m, err := s.ownedMeeting(ctx, sess, meetingID)
	if err != nil {
		return nil, err
	}

	format := entities.FormatFromFilename(filename)
	utterances := transcript.Normalize(raw, format)
	if len(utterances) == 0 {
		return nil, usecaseerrors.ErrTranscriptEmpty
	}

	objectKey := fmt.Sprintf("%s/original%s", meetingID, extensionFor(format))
	if err := s.objects.UploadText(ctx, objectKey, raw); err != nil {
		return nil, fmt.Errorf("failed to store raw transcript: %w", err)
	}

	t := entities.NewTranscript(meetingID)
	t.Text = transcript.Flatten(utterances)
	t.Utterances = utterances
	t.SpeakerCount = countSpeakers(utterances)
	if err := s.transcripts.Upsert(ctx, t); err != nil {
		return nil, err
	}

	m.SourceFormat = format
	m.RawObjectKey = objectKey
	m.Status = entities.MeetingStatusUploaded
	if err := s.meetings.Update(ctx, m); err != nil {
		return nil, err
	}

	s.invalidateAnalytics(ctx, meetingID)
	s.logger.Info("transcript.uploaded",
		zap.String("meeting_id", meetingID.String()),
		zap.String("format", string(format)),
		zap.Int("utterances", len(utterances)),
	)
	return t, nil
}

// RawTranscriptURL returns a short-lived download link for the original
// uploaded file
func (s *Service) RawTranscriptURL(ctx context.Context, sess *auth.Session, meetingID uuid.UUID) (string, error) {
	m, err := s.ownedMeeting(ctx, sess, meetingID)
	if err != nil {
		return "", err
	}
	if m.RawObjectKey == "" {
		return "", usecaseerrors.ErrTranscriptNotFound
	}
	return s.objects.PresignedURL(ctx, m.RawObjectKey, 15*time.Minute)
}

// Analyze forwards the normalized transcript to the AI service and persists
// the canonical summary, extracted action items, and per-utterance sentiment.
func (s *Service) Analyze(ctx context.Context, sess *auth.Session, meetingID uuid.UUID) (*entities.MeetingSummary, error) {
	m, err := s.ownedMeeting(ctx, sess, meetingID)
	if err != nil {
		return nil, err
	}

	t, err := s.transcripts.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	m.Status = entities.MeetingStatusProcessing
	if err := s.meetings.Update(ctx, m); err != nil {
		return nil, err
	}

	// Once the meeting is marked processing, every failure must land it on
	// failed or the dashboard shows an analysis that never finishes.
	text, err := s.transcriptText(ctx, m, t)
	if err != nil {
		s.markFailed(ctx, m, err)
		return nil, err
	}

	started := time.Now()
	res, err := s.analyzer.Analyze(ctx, meetingID.String(), text)
	if err != nil {
		s.markFailed(ctx, m, err)
		return nil, fmt.Errorf("%w: %v", usecaseerrors.ErrAIUnavailable, err)
	}

	summary, err := s.persistResult(ctx, m, t, res, int(time.Since(started).Milliseconds()))
	if err != nil {
		s.markFailed(ctx, m, err)
		return nil, err
	}
	return summary, nil
}

// CompleteAnalysis ingests an analysis result delivered asynchronously by
// the AI service's completion webhook. The transport layer has already
// authenticated the payload.
func (s *Service) CompleteAnalysis(ctx context.Context, meetingID uuid.UUID, res *ai.Result) (*entities.MeetingSummary, error) {
	m, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	t, err := s.transcripts.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	summary, err := s.persistResult(ctx, m, t, res, 0)
	if err != nil {
		s.markFailed(ctx, m, err)
		return nil, err
	}
	return summary, nil
}

func (s *Service) markFailed(ctx context.Context, m *entities.Meeting, cause error) {
	m.Status = entities.MeetingStatusFailed
	if err := s.meetings.Update(ctx, m); err != nil {
		s.logger.Error("failed-status write",
			zap.String("meeting_id", m.ID.String()), zap.Error(err))
	}
	s.logger.Error("analysis failed",
		zap.String("meeting_id", m.ID.String()), zap.Error(cause))
}

func (s *Service) persistResult(ctx context.Context, m *entities.Meeting, t *entities.Transcript, res *ai.Result, processingMs int) (*entities.MeetingSummary, error) {
	// The service may return the transcript with sentiment populated; keep
	// the stored utterances authoritative when it does not.
	if len(res.Utterances) == len(t.Utterances) && len(res.Utterances) > 0 {
		t.Utterances = res.Utterances
		if err := s.transcripts.Upsert(ctx, t); err != nil {
			return nil, err
		}
	}

	summary := entities.NewMeetingSummary(m.ID, t.ID)
	summary.ExecutiveSummary = res.Summary
	summary.Topics = res.Topics
	summary.SpeakerDurations = res.SpeakerDurations
	summary.ModelUsed = res.ModelUsed
	summary.ProcessingMs = processingMs
	if res.Raw != nil {
		summary.RawData = datatypes.NewJSONType(res.Raw)
	}
	if err := s.summaries.Upsert(ctx, summary); err != nil {
		return nil, err
	}

	items := make([]entities.ActionItem, 0, len(res.ActionItems))
	for _, ex := range res.ActionItems {
		item := entities.NewActionItem(m.ID, ex.Title)
		item.SummaryID = &summary.ID
		item.Owner = ex.Owner
		item.Deadline = ex.Deadline
		if ex.Urgency != "" {
			item.Urgency = ex.Urgency
		}
		item.UrgencyReason = ex.UrgencyReason
		items = append(items, *item)
	}
	if err := s.summaries.ReplaceActionItems(ctx, m.ID, items); err != nil {
		return nil, err
	}

	m.Status = entities.MeetingStatusAnalyzed
	if err := s.meetings.Update(ctx, m); err != nil {
		return nil, err
	}

	s.invalidateAnalytics(ctx, m.ID)
	s.logger.Info("analysis.completed",
		zap.String("meeting_id", m.ID.String()),
		zap.Int("action_items", len(items)),
		zap.Int("processing_ms", summary.ProcessingMs),
	)
	return summary, nil
}

// ActionItems returns ranked, optionally filtered action items with
// deadline labels
func (s *Service) ActionItems(ctx context.Context, sess *auth.Session, meetingID uuid.UUID, filterLevel string) ([]ActionItemView, error) {
	if _, err := s.ownedMeeting(ctx, sess, meetingID); err != nil {
		return nil, err
	}

	items, err := s.summaries.ListActionItems(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	return actionItemViews(items, filterLevel, time.Now()), nil
}

// GetAnalytics assembles the dashboard payload for a meeting. Results are
// derived from scratch and cached briefly; nothing here is incremental.
func (s *Service) GetAnalytics(ctx context.Context, sess *auth.Session, meetingID uuid.UUID) (*Analytics, error) {
	if _, err := s.ownedMeeting(ctx, sess, meetingID); err != nil {
		return nil, err
	}

	cacheKey := analyticsCacheKey(meetingID)
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
		var a Analytics
		if err := json.Unmarshal([]byte(cached), &a); err == nil {
			return &a, nil
		}
	}

	t, err := s.transcripts.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	summary, err := s.summaries.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	items, err := s.summaries.ListActionItems(ctx, meetingID)
	if err != nil {
		return nil, err
	}

	a := &Analytics{
		MeetingID:   meetingID,
		Summary:     summary.ExecutiveSummary,
		Topics:      summary.Topics,
		Sentiment:   insights.AggregateSentiment(t.Utterances),
		Speakers:    insights.AggregateSpeakers(t.Utterances, summary.SpeakerDurations),
		ActionItems: actionItemViews(items, "", time.Now()),
	}

	if payload, err := json.Marshal(a); err == nil {
		_ = s.cache.Set(ctx, cacheKey, string(payload), analyticsCacheTTL)
	}
	return a, nil
}

// Chat proxies a question about the transcript to the AI service. When the
// service is unreachable the response degrades to a substring scan over the
// stored transcript; degraded reports that to the caller as a non-fatal
// notice.
func (s *Service) Chat(ctx context.Context, sess *auth.Session, meetingID uuid.UUID, question string) (answer string, degraded bool, err error) {
	m, err := s.ownedMeeting(ctx, sess, meetingID)
	if err != nil {
		return "", false, err
	}
	t, err := s.transcripts.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return "", false, err
	}
	text, err := s.transcriptText(ctx, m, t)
	if err != nil {
		return "", false, err
	}

	answer, err = s.analyzer.Chat(ctx, meetingID.String(), text, question)
	if err == nil {
		return answer, false, nil
	}

	s.logger.Warn("chat degraded to substring match",
		zap.String("meeting_id", meetingID.String()), zap.Error(err))
	matches := substringMatches(t.Utterances, question, 3)
	if len(matches) == 0 {
		return "No matching passages found in the transcript.", true, nil
	}
	return "Relevant passages:\n" + strings.Join(matches, "\n"), true, nil
}

// Search proxies a semantic search query, degrading to substring matching
// when the AI service is down.
func (s *Service) Search(ctx context.Context, sess *auth.Session, meetingID uuid.UUID, query string) (hits []ai.SearchHit, degraded bool, err error) {
	m, err := s.ownedMeeting(ctx, sess, meetingID)
	if err != nil {
		return nil, false, err
	}
	t, err := s.transcripts.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, false, err
	}
	text, err := s.transcriptText(ctx, m, t)
	if err != nil {
		return nil, false, err
	}

	hits, err = s.analyzer.Search(ctx, meetingID.String(), text, query)
	if err == nil {
		return hits, false, nil
	}

	s.logger.Warn("search degraded to substring match",
		zap.String("meeting_id", meetingID.String()), zap.Error(err))
	needle := strings.ToLower(query)
	hits = []ai.SearchHit{}
	for _, u := range t.Utterances {
		if strings.Contains(strings.ToLower(u.Text), needle) {
			hits = append(hits, ai.SearchHit{Speaker: u.Speaker, Text: u.Text})
		}
	}
	return hits, true, nil
}

// transcriptText returns the flattened transcript, refetching the raw
// object when the row predates flattened storage.
func (s *Service) transcriptText(ctx context.Context, m *entities.Meeting, t *entities.Transcript) (string, error) {
	if t.Text != "" {
		return t.Text, nil
	}
	if m.RawObjectKey == "" {
		return "", usecaseerrors.ErrTranscriptNotFound
	}
	return s.objects.DownloadText(ctx, m.RawObjectKey)
}

func (s *Service) ownedMeeting(ctx context.Context, sess *auth.Session, meetingID uuid.UUID) (*entities.Meeting, error) {
	m, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if m.OwnerID != sess.UserID {
		return nil, usecaseerrors.ErrNotMeetingOwner
	}
	return m, nil
}

func (s *Service) invalidateAnalytics(ctx context.Context, meetingID uuid.UUID) {
	_ = s.cache.Delete(ctx, analyticsCacheKey(meetingID))
}

func analyticsCacheKey(meetingID uuid.UUID) string {
	return "analytics:" + meetingID.String()
}

func actionItemViews(items []entities.ActionItem, filterLevel string, now time.Time) []ActionItemView {
	ranked := insights.RankActionItems(items, filterLevel)
	views := make([]ActionItemView, 0, len(ranked))
	for _, item := range ranked {
		views = append(views, ActionItemView{
			ActionItem:   item,
			DeadlineInfo: insights.DescribeDeadline(item.Deadline, now),
		})
	}
	return views
}

func countSpeakers(utterances []entities.Utterance) int {
	seen := make(map[string]struct{}, 8)
	for _, u := range utterances {
		seen[u.Speaker] = struct{}{}
	}
	return len(seen)
}

func substringMatches(utterances []entities.Utterance, query string, limit int) []string {
	needle := strings.ToLower(query)
	var matches []string
	for _, u := range utterances {
		if strings.Contains(strings.ToLower(u.Text), needle) {
			matches = append(matches, fmt.Sprintf("%s: %s", u.Speaker, u.Text))
			if len(matches) == limit {
				break
			}
		}
	}
	return matches
}

func extensionFor(format entities.TranscriptFormat) string {
	switch format {
	case entities.FormatWebVTT:
		return ".vtt"
	case entities.FormatSRT:
		return ".srt"
	default:
		return ".txt"
	}
}
