package models

import "context"

// ChatModel invokes a chat completion model with full conversation history.
type ChatModel interface {
	Invoke(ctx context.Context, messages []ConversationTurn, model string, maxTokens int, temperature float64) (string, error)
}

// SearchClient performs a live web search. Complexity picks the search model.
type SearchClient interface {
	Search(ctx context.Context, query string, complexity float64) (string, error)
}

// MemoryStore is the vector-backed retrieval collaborator.
type MemoryStore interface {
	Query(ctx context.Context, question string) (string, error)
	AddDocument(ctx context.Context, text string, metadata map[string]string) error
}

// HistoryStore holds prior conversation turns per conversation id.
type HistoryStore interface {
	Get(ctx context.Context, conversationID string) ([]ConversationTurn, error)
	Set(ctx context.Context, conversationID string, turns []ConversationTurn) error
}

// AnswerCache stores retrieval answers keyed by the literal question text.
type AnswerCache interface {
	Get(ctx context.Context, question string) (*CachedAnswer, error)
	Set(ctx context.Context, question string, answer *CachedAnswer) error
}
