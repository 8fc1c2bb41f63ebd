package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"www.github.com/Wanderer0074348/AgentRouter/src/models"
)

// MockChatModel implements models.ChatModel
type MockChatModel struct {
	mock.Mock
}

func (m *MockChatModel) Invoke(ctx context.Context, messages []models.ConversationTurn, model string, maxTokens int, temperature float64) (string, error) {
	args := m.Called(ctx, messages, model, maxTokens, temperature)
	return args.String(0), args.Error(1)
}

// MockSearchClient implements models.SearchClient
type MockSearchClient struct {
	mock.Mock
}

func (m *MockSearchClient) Search(ctx context.Context, query string, complexity float64) (string, error) {
	args := m.Called(ctx, query, complexity)
	return args.String(0), args.Error(1)
}

// MockMemoryStore implements models.MemoryStore
type MockMemoryStore struct {
	mock.Mock
}

func (m *MockMemoryStore) Query(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

func (m *MockMemoryStore) AddDocument(ctx context.Context, text string, metadata map[string]string) error {
	args := m.Called(ctx, text, metadata)
	return args.Error(0)
}

// MockHistoryStore implements models.HistoryStore
type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) Get(ctx context.Context, conversationID string) ([]models.ConversationTurn, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ConversationTurn), args.Error(1)
}

func (m *MockHistoryStore) Set(ctx context.Context, conversationID string, turns []models.ConversationTurn) error {
	args := m.Called(ctx, conversationID, turns)
	return args.Error(0)
}

// MockAnswerCache implements models.AnswerCache
type MockAnswerCache struct {
	mock.Mock
}

func (m *MockAnswerCache) Get(ctx context.Context, question string) (*models.CachedAnswer, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CachedAnswer), args.Error(1)
}

func (m *MockAnswerCache) Set(ctx context.Context, question string, answer *models.CachedAnswer) error {
	args := m.Called(ctx, question, answer)
	return args.Error(0)
}
