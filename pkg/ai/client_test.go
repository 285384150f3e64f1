package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aftermeet-app/aftermeet/internal/domain/entities"
	"github.com/aftermeet-app/aftermeet/pkg/config"
)

func newTestClient(url string) *Client {
	return NewClient(&config.AIServiceConfig{BaseURL: url, APIKey: "test-key", MaxRetries: 2})
}

func TestAnalyzeSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/analyze" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if req.MeetingID != "m-1" {
			t.Fatalf("unexpected meeting id %q", req.MeetingID)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"summary": "Team aligned on the release plan.",
			"topics":  []string{"release"},
			"tasks": []map[string]string{
				{"title": "Ship v2", "owner": "Sarah", "urgency": "critical", "deadline": "2026-09-15"},
			},
			"speakers": map[string]interface{}{
				"Sarah": map[string]interface{}{"segments": 5, "duration_seconds": 120.5},
			},
			"transcript": []map[string]string{
				{"speaker": "Sarah", "text": "Let's ship it.", "sentiment": "positive"},
			},
		})
	}))
	defer ts.Close()

	res, err := newTestClient(ts.URL).Analyze(context.Background(), "m-1", "Sarah: Let's ship it.")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if res.Summary != "Team aligned on the release plan." {
		t.Errorf("unexpected summary %q", res.Summary)
	}
	if len(res.ActionItems) != 1 || res.ActionItems[0].Urgency != "critical" {
		t.Errorf("unexpected action items %+v", res.ActionItems)
	}
	if res.ActionItems[0].Deadline == nil {
		t.Error("deadline not parsed")
	}
	if res.SpeakerDurations["Sarah"] != 120.5 {
		t.Errorf("unexpected durations %+v", res.SpeakerDurations)
	}
	if len(res.Utterances) != 1 || res.Utterances[0].Sentiment != entities.SentimentPositive {
		t.Errorf("unexpected utterances %+v", res.Utterances)
	}
}

func TestAnalyzeAliasFields(t *testing.T) {
	// Older service paths return executive_summary and action_items.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"executive_summary": "Short sync.",
			"action_items": []map[string]string{
				{"task": "Book room", "assigned_to": "Mike", "priority": "low"},
			},
		})
	}))
	defer ts.Close()

	res, err := newTestClient(ts.URL).Analyze(context.Background(), "m-2", "x")
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if res.Summary != "Short sync." {
		t.Errorf("executive_summary alias not honored: %q", res.Summary)
	}
	if len(res.ActionItems) != 1 {
		t.Fatalf("action_items alias not honored: %+v", res.ActionItems)
	}
	item := res.ActionItems[0]
	if item.Title != "Book room" || item.Owner != "Mike" || item.Urgency != "low" {
		t.Errorf("alias fields not mapped: %+v", item)
	}
}

func TestAnalyzeRetriesServerErrors(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"summary": "ok"})
	}))
	defer ts.Close()

	res, err := newTestClient(ts.URL).Analyze(context.Background(), "m-3", "x")
	if err != nil {
		t.Fatalf("analyze should recover after retry: %v", err)
	}
	if res.Summary != "ok" {
		t.Errorf("unexpected summary %q", res.Summary)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestAnalyzeClientErrorNotRetried(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	if _, err := newTestClient(ts.URL).Analyze(context.Background(), "m-4", "x"); err == nil {
		t.Fatal("expected error for 400 response")
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Errorf("400 must not be retried, got %d calls", calls)
	}
}

func TestChatAndSearch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/chat":
			json.NewEncoder(w).Encode(ChatResponse{Answer: "The deadline is Friday."})
		case "/v1/search":
			json.NewEncoder(w).Encode(SearchResponse{Results: []SearchHit{{Speaker: "Sarah", Text: "ship Friday", Score: 0.91}}})
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer ts.Close()

	client := newTestClient(ts.URL)

	answer, err := client.Chat(context.Background(), "m-5", "t", "when is the deadline?")
	if err != nil || answer != "The deadline is Friday." {
		t.Fatalf("chat: answer=%q err=%v", answer, err)
	}

	hits, err := client.Search(context.Background(), "m-5", "t", "deadline")
	if err != nil || len(hits) != 1 || hits[0].Score != 0.91 {
		t.Fatalf("search: hits=%+v err=%v", hits, err)
	}
}

func TestVerifyHMAC(t *testing.T) {
	payload := []byte(`{"status":"completed"}`)

	if !VerifyHMAC("s3cret", payload, Sign("s3cret", payload)) {
		t.Error("own signature must verify")
	}
	if VerifyHMAC("other", payload, Sign("s3cret", payload)) {
		t.Error("signature under a different secret must not verify")
	}
	if VerifyHMAC("", payload, "abc") {
		t.Error("empty secret must not verify")
	}
	if VerifyHMAC("s3cret", payload, "") {
		t.Error("empty signature must not verify")
	}
	if VerifyHMAC("s3cret", payload, "deadbeef") {
		t.Error("wrong signature must not verify")
	}
}
