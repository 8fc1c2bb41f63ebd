package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
)

func TestSelectSonarModel_ComplexityBands(t *testing.T) {
	assert.Equal(t, sonarSmall, SelectSonarModel(0.0))
	assert.Equal(t, sonarSmall, SelectSonarModel(0.29))
	assert.Equal(t, sonarMedium, SelectSonarModel(0.3))
	assert.Equal(t, sonarMedium, SelectSonarModel(0.69))
	assert.Equal(t, sonarLarge, SelectSonarModel(0.7))
	assert.Equal(t, sonarLarge, SelectSonarModel(1.0))
}

func TestNewPerplexityClient_RequiresAPIKey(t *testing.T) {
	_, err := NewPerplexityClient(&config.SearchConfig{})
	assert.Error(t, err)
}

func TestNewPerplexityClient_WithKey(t *testing.T) {
	client, err := NewPerplexityClient(&config.SearchConfig{
		APIKey:    "test-key",
		Endpoint:  "https://api.perplexity.ai",
		MaxTokens: 1024,
	})

	assert.NoError(t, err)
	assert.NotNil(t, client)
}
