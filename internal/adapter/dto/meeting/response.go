package meeting

// ChatResponse is the conversational answer. Degraded is set when the AI
// service was unreachable and the answer came from a transcript scan.
type ChatResponse struct {
	Answer   string `json:"answer"`
	Degraded bool   `json:"degraded,omitempty"`
	Notice   string `json:"notice,omitempty"`
}

// SearchResponse lists transcript passages matching a query
type SearchResponse struct {
	Hits     interface{} `json:"hits"`
	Degraded bool        `json:"degraded,omitempty"`
	Notice   string      `json:"notice,omitempty"`
}

// DegradedNotice is attached to chat and search responses served without
// the AI service
const DegradedNotice = "AI service unavailable; results come from a literal transcript search."
