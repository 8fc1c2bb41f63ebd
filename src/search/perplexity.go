package search

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
)

// Sonar online models by query complexity band.
const (
	sonarSmall  = "llama-3-sonar-small-32k-online"
	sonarMedium = "llama-3-sonar-medium-32k-online"
	sonarLarge  = "llama-3-sonar-large-32k-online"
)

// PerplexityClient runs live web searches through the Perplexity
// OpenAI-compatible chat API.
type PerplexityClient struct {
	client    *openai.Client
	maxTokens int
}

func NewPerplexityClient(cfg *config.SearchConfig) (*PerplexityClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("perplexity API key is not configured")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientCfg.BaseURL = cfg.Endpoint
	}

	return &PerplexityClient{
		client:    openai.NewClientWithConfig(clientCfg),
		maxTokens: cfg.MaxTokens,
	}, nil
}

// Search asks an online sonar model for up-to-date results. The model is
// picked from the query's complexity so cheap questions stay on the small
// model.
func (p *PerplexityClient) Search(ctx context.Context, query string, complexity float64) (string, error) {
	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: SelectSonarModel(complexity),
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a helpful AI assistant providing accurate and relevant information.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Provide up to 5 relevant results for the query: %s", query),
			},
		},
		MaxTokens: p.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("perplexity search failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

// SelectSonarModel maps a complexity score to a sonar model size.
func SelectSonarModel(complexity float64) string {
	switch {
	case complexity < 0.3:
		return sonarSmall
	case complexity < 0.7:
		return sonarMedium
	default:
		return sonarLarge
	}
}
