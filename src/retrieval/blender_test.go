package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"www.github.com/Wanderer0074348/AgentRouter/src/mocks"
	"www.github.com/Wanderer0074348/AgentRouter/src/models"
)

func TestBlender_LongMemoryAnswerSkipsSearch(t *testing.T) {
	memory := new(mocks.MockMemoryStore)
	search := new(mocks.MockSearchClient)
	b := NewBlender(memory, search, nil)

	longAnswer := strings.Repeat("stored fact ", 10)
	memory.On("Query", mock.Anything, "what is the capital of france").Return(longAnswer, nil)

	result := b.HybridQuery(context.Background(), "what is the capital of france", 0.4)

	assert.Contains(t, result, "Memory:")
	assert.Contains(t, result, strings.TrimSpace(longAnswer))
	search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestBlender_ShortMemoryAnswerEscalatesToSearch(t *testing.T) {
	memory := new(mocks.MockMemoryStore)
	search := new(mocks.MockSearchClient)
	b := NewBlender(memory, search, nil)

	memory.On("Query", mock.Anything, mock.Anything).Return("brief note", nil)
	search.On("Search", mock.Anything, mock.Anything, mock.Anything).Return("fresh online results", nil)

	result := b.HybridQuery(context.Background(), "latest fusion news", 0.4)

	assert.Contains(t, result, "Memory: brief note")
	assert.Contains(t, result, "Online: fresh online results")
	search.AssertExpectations(t)
}

func TestBlender_MemoryFailureStillReturnsOnline(t *testing.T) {
	memory := new(mocks.MockMemoryStore)
	search := new(mocks.MockSearchClient)
	b := NewBlender(memory, search, nil)

	memory.On("Query", mock.Anything, mock.Anything).Return("", assert.AnError)
	search.On("Search", mock.Anything, mock.Anything, mock.Anything).Return("online answer", nil)

	result := b.HybridQuery(context.Background(), "some question", 0.4)

	assert.NotContains(t, result, "Memory:")
	assert.Contains(t, result, "Online: online answer")
}

func TestBlender_SearchFailureStillReturnsMemory(t *testing.T) {
	memory := new(mocks.MockMemoryStore)
	search := new(mocks.MockSearchClient)
	b := NewBlender(memory, search, nil)

	memory.On("Query", mock.Anything, mock.Anything).Return("short", nil)
	search.On("Search", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)

	result := b.HybridQuery(context.Background(), "some question", 0.4)

	assert.Contains(t, result, "Memory: short")
	assert.NotContains(t, result, "Online:")
}

func TestBlender_TotalFailureReturnsLabeledError(t *testing.T) {
	memory := new(mocks.MockMemoryStore)
	search := new(mocks.MockSearchClient)
	b := NewBlender(memory, search, nil)

	memory.On("Query", mock.Anything, mock.Anything).Return("", assert.AnError)
	search.On("Search", mock.Anything, mock.Anything, mock.Anything).Return("", assert.AnError)

	result := b.HybridQuery(context.Background(), "some question", 0.4)

	assert.Contains(t, result, "Error:")
}

func TestBlender_NilCollaboratorsReturnLabeledError(t *testing.T) {
	b := NewBlender(nil, nil, nil)

	result := b.HybridQuery(context.Background(), "some question", 0.4)

	assert.Contains(t, result, "Error:")
}

func TestBlender_CacheHitShortCircuits(t *testing.T) {
	memory := new(mocks.MockMemoryStore)
	search := new(mocks.MockSearchClient)
	cache := new(mocks.MockAnswerCache)
	b := NewBlender(memory, search, cache)

	cache.On("Get", mock.Anything, "repeated question").
		Return(&models.CachedAnswer{Answer: "Memory: cached answer", Source: "memory"}, nil)

	result := b.HybridQuery(context.Background(), "repeated question", 0.4)

	assert.Equal(t, "Memory: cached answer", result)
	memory.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
	search.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything)
}

func TestBlender_CacheMissPopulatesCache(t *testing.T) {
	memory := new(mocks.MockMemoryStore)
	search := new(mocks.MockSearchClient)
	cache := new(mocks.MockAnswerCache)
	b := NewBlender(memory, search, cache)

	cache.On("Get", mock.Anything, mock.Anything).Return(nil, nil)
	memory.On("Query", mock.Anything, mock.Anything).Return(strings.Repeat("fact ", 20), nil)
	cache.On("Set", mock.Anything, "new question", mock.Anything).Return(nil)

	b.HybridQuery(context.Background(), "new question", 0.4)

	cache.AssertExpectations(t)
}
