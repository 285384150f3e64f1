package ai

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
)

// Result is the canonical analysis result. The AI service's response shape
// varies by code path (field aliases, optional blocks); every variant is
// normalized into this one structure here, at the boundary, so no internal
// consumer carries fallback logic.
type Result struct {
	Summary          string
	Topics           []string
	ActionItems      []ExtractedActionItem
	SpeakerDurations map[string]float64
	Utterances       []entities.Utterance
	ModelUsed        string
	Raw              map[string]interface{}
}

// ExtractedActionItem is an AI-extracted task candidate before persistence
type ExtractedActionItem struct {
	Title         string
	Owner         string
	Urgency       string
	UrgencyReason string
	Deadline      *time.Time
}

// rawSummary mirrors the union of response shapes the service emits
type rawSummary struct {
	Summary          string             `json:"summary"`
	ExecutiveSummary string             `json:"executive_summary"`
	Topics           []string           `json:"topics"`
	Tasks            []rawActionItem    `json:"tasks"`
	ActionItems      []rawActionItem    `json:"action_items"`
	Speakers         map[string]rawStat `json:"speakers"`
	Transcript       []rawUtterance     `json:"transcript"`
	Model            string             `json:"model"`
	ModelUsed        string             `json:"model_used"`
}

type rawActionItem struct {
	Title         string `json:"title"`
	Task          string `json:"task"`
	Owner         string `json:"owner"`
	AssignedTo    string `json:"assigned_to"`
	Urgency       string `json:"urgency"`
	Priority      string `json:"priority"`
	UrgencyReason string `json:"urgency_reason"`
	Deadline      string `json:"deadline"`
	DueDate       string `json:"due_date"`
}

type rawStat struct {
	Segments        int     `json:"segments"`
	DurationSeconds float64 `json:"duration_seconds"`
}

type rawUtterance struct {
	Speaker   string `json:"speaker"`
	Text      string `json:"text"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Sentiment string `json:"sentiment"`
}

var deadlineLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseResult normalizes an analysis payload delivered out-of-band (the
// completion webhook) into the canonical Result. Same normalization as the
// synchronous analyze path.
func ParseResult(payload []byte) (*Result, error) {
	return normalizeSummary(payload)
}

// normalizeSummary converts a raw /v1/analyze payload into a Result
func normalizeSummary(payload []byte) (*Result, error) {
	var raw rawSummary
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse analyze response: %w", err)
	}

	res := &Result{
		Summary:   coalesce(raw.Summary, raw.ExecutiveSummary),
		Topics:    raw.Topics,
		ModelUsed: coalesce(raw.ModelUsed, raw.Model),
	}
	if res.Topics == nil {
		res.Topics = []string{}
	}

	items := raw.Tasks
	if len(items) == 0 {
		items = raw.ActionItems
	}
	res.ActionItems = make([]ExtractedActionItem, 0, len(items))
	for _, it := range items {
		title := coalesce(it.Title, it.Task)
		if title == "" {
			continue
		}
		res.ActionItems = append(res.ActionItems, ExtractedActionItem{
			Title:         title,
			Owner:         coalesce(it.Owner, it.AssignedTo),
			Urgency:       coalesce(it.Urgency, it.Priority),
			UrgencyReason: it.UrgencyReason,
			Deadline:      parseDeadline(coalesce(it.Deadline, it.DueDate)),
		})
	}

	if len(raw.Speakers) > 0 {
		res.SpeakerDurations = make(map[string]float64, len(raw.Speakers))
		for name, stat := range raw.Speakers {
			if stat.DurationSeconds > 0 {
				res.SpeakerDurations[name] = stat.DurationSeconds
			}
		}
	}

	res.Utterances = make([]entities.Utterance, 0, len(raw.Transcript))
	for _, u := range raw.Transcript {
		res.Utterances = append(res.Utterances, entities.Utterance{
			Speaker:   u.Speaker,
			Text:      u.Text,
			StartTime: u.StartTime,
			EndTime:   u.EndTime,
			Sentiment: entities.Sentiment(u.Sentiment),
		})
	}

	// Keep the raw payload for storage and debugging.
	var m map[string]interface{}
	if err := json.Unmarshal(payload, &m); err == nil {
		res.Raw = m
	}

	return res, nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseDeadline(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
