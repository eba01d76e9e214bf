package models

import "gorm.io/gorm"

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message      string `json:"message" binding:"required"`
	UseWebsearch bool   `json:"use_websearch"`
	SessionID    string `json:"session_id"`
}

// ChatSource identifies where a web-search snippet came from.
type ChatSource struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// ChatResponse is the reply envelope for the chat endpoints.
type ChatResponse struct {
	Success           bool         `json:"success"`
	Response          string       `json:"response"`
	IsDiabetesRelated bool         `json:"is_diabetes_related"`
	WebsearchUsed     bool         `json:"websearch_used"`
	Sources           []ChatSource `json:"sources"`
	ResponseTimeMs    int64        `json:"response_time_ms"`
	Model             string       `json:"model"`
}

// TopicsResponse lists what the assistant covers.
type TopicsResponse struct {
	SupportedTopics []string `json:"supported_topics"`
	SampleQuestions []string `json:"sample_questions"`
}

// ChatMessage is a single stored turn of a session transcript. Persisted
// only when a database is configured and the client supplies a session_id.
type ChatMessage struct {
	gorm.Model
	SessionID string `gorm:"index;size:64" json:"session_id"`
	Role      string `gorm:"size:16" json:"role"` // "user" | "assistant"
	Content   string `gorm:"type:text" json:"content"`
}
