package models

import "time"

// Conversation roles stored in history.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type QueryRequest struct {
	Query          string `json:"query" binding:"required"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type QueryMetadata struct {
	ModelUsed        string  `json:"model_used"`
	TaskType         string  `json:"task_type"`
	TaskComplexity   float64 `json:"task_complexity"`
	ProcessingTimeMs int64   `json:"processing_time_ms"`
	ConversationID   string  `json:"conversation_id"`
}

type QueryResponse struct {
	Response string        `json:"response"`
	Metadata QueryMetadata `json:"metadata"`
}

type AddMemoryRequest struct {
	Text     string            `json:"text" binding:"required"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// RouteDecision is the output of classification and tier selection for a
// single query. It is built fresh per request and never persisted.
type RouteDecision struct {
	Model              string
	MaxTokens          int
	Temperature        float64
	ResponseStrategy   string
	TaskType           string
	QuestionType       string
	TaskComplexity     float64
	RoutingExplanation string
}

// ProcessResult is the orchestrator's answer for one query. Throttled and Err
// are explicit states rather than Go errors so the HTTP layer can branch on
// them without unwrapping.
type ProcessResult struct {
	Content        string
	ModelUsed      string
	TaskType       string
	TaskComplexity float64
	ProcessingTime time.Duration
	Throttled      bool
	Err            string
}

// CachedAnswer is a retrieval result stored in Redis, keyed by question text.
type CachedAnswer struct {
	Answer   string    `json:"answer"`
	Source   string    `json:"source"`
	CachedAt time.Time `json:"cached_at"`
}
