package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/aftermeet-app/aftermeet/pkg/config"
)

// Client is the HTTP client for the external AI analysis service. The
// service owns all "intelligence" work (summaries, action items, sentiment,
// chat, semantic search); this client only proxies and normalizes.
type Client struct {
	baseURL    string
	apiKey     string
	maxRetries uint64
	client     *http.Client
}

// NewClient creates an AI service client from config
func NewClient(cfg *config.AIServiceConfig) *Client {
	timeout := 60 * time.Second
	maxRetries := 3
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	if cfg.MaxRetries > 0 {
		maxRetries = cfg.MaxRetries
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		maxRetries: uint64(maxRetries),
		client:     &http.Client{Timeout: timeout},
	}
}

// AnalyzeRequest is the payload for /v1/analyze
type AnalyzeRequest struct {
	MeetingID  string `json:"meeting_id"`
	Transcript string `json:"transcript"`
}

// ChatRequest is the payload for /v1/chat
type ChatRequest struct {
	MeetingID  string `json:"meeting_id"`
	Transcript string `json:"transcript"`
	Question   string `json:"question"`
}

// ChatResponse is the answer returned by /v1/chat
type ChatResponse struct {
	Answer string `json:"answer"`
}

// SearchRequest is the payload for /v1/search
type SearchRequest struct {
	MeetingID  string `json:"meeting_id"`
	Transcript string `json:"transcript"`
	Query      string `json:"query"`
}

// SearchHit is one semantic search result
type SearchHit struct {
	Speaker string  `json:"speaker"`
	Text    string  `json:"text"`
	Score   float64 `json:"score"`
}

// SearchResponse is the result list returned by /v1/search
type SearchResponse struct {
	Results []SearchHit `json:"results"`
}

// Analyze sends a flattened transcript for analysis and returns the
// normalized summary. Transient failures are retried with exponential
// backoff; 4xx responses fail immediately.
func (c *Client) Analyze(ctx context.Context, meetingID, transcript string) (*Result, error) {
	body, err := json.Marshal(AnalyzeRequest{MeetingID: meetingID, Transcript: transcript})
	if err != nil {
		return nil, err
	}

	var raw []byte
	call := func() error {
		raw, err = c.post(ctx, "/v1/analyze", body)
		return err
	}

	bo := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.maxRetries)
	if err := backoff.Retry(call, backoff.WithContext(bo, ctx)); err != nil {
		return nil, fmt.Errorf("analyze request failed: %w", err)
	}

	return normalizeSummary(raw)
}

// Chat forwards a chat-with-transcript question to the AI service
func (c *Client) Chat(ctx context.Context, meetingID, transcript, question string) (string, error) {
	body, err := json.Marshal(ChatRequest{MeetingID: meetingID, Transcript: transcript, Question: question})
	if err != nil {
		return "", err
	}

	raw, err := c.post(ctx, "/v1/chat", body)
	if err != nil {
		return "", err
	}

	var resp ChatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return "", fmt.Errorf("failed to parse chat response: %w", err)
	}
	return resp.Answer, nil
}

// Search forwards a semantic search query to the AI service
func (c *Client) Search(ctx context.Context, meetingID, transcript, query string) ([]SearchHit, error) {
	body, err := json.Marshal(SearchRequest{MeetingID: meetingID, Transcript: transcript, Query: query})
	if err != nil {
		return nil, err
	}

	raw, err := c.post(ctx, "/v1/search", body)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}
	return resp.Results, nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("ai service returned status %d", resp.StatusCode)
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, backoff.Permanent(err)
		}
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
