package inference

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
	"www.github.com/Wanderer0074348/AgentRouter/src/models"
)

// ChatClient holds one langchaingo client per allow-listed model and invokes
// whichever one the route decision names.
type ChatClient struct {
	clients map[string]llms.Model
}

func NewChatClient(cfg *config.ChatConfig, tiers config.TierModels) (*ChatClient, error) {
	clients := make(map[string]llms.Model)

	for _, model := range []string{tiers.Low, tiers.Mid, tiers.High, tiers.Superior} {
		if _, exists := clients[model]; exists {
			continue
		}

		opts := []openai.Option{
			openai.WithToken(cfg.APIKey),
			openai.WithModel(model),
		}
		if cfg.Endpoint != "" {
			opts = append(opts, openai.WithBaseURL(cfg.Endpoint))
		}

		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create client for model %s: %w", model, err)
		}
		clients[model] = llm
	}

	return &ChatClient{clients: clients}, nil
}

// Invoke sends the conversation to the named model. Only allow-listed models
// have clients; anything else is a routing defect surfaced as an error.
func (c *ChatClient) Invoke(ctx context.Context, messages []models.ConversationTurn, model string, maxTokens int, temperature float64) (string, error) {
	llm, ok := c.clients[model]
	if !ok {
		return "", fmt.Errorf("model %s is not in the configured tier list", model)
	}

	content := make([]llms.MessageContent, 0, len(messages))
	for _, turn := range messages {
		content = append(content, llms.TextParts(chatMessageType(turn.Role), turn.Content))
	}

	resp, err := llm.GenerateContent(ctx, content,
		llms.WithMaxTokens(maxTokens),
		llms.WithTemperature(temperature),
	)
	if err != nil {
		return "", fmt.Errorf("generation failed for model %s: %w", model, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model %s returned no choices", model)
	}

	return resp.Choices[0].Content, nil
}

func chatMessageType(role string) llms.ChatMessageType {
	switch role {
	case models.RoleAssistant:
		return llms.ChatMessageTypeAI
	case models.RoleSystem:
		return llms.ChatMessageTypeSystem
	default:
		return llms.ChatMessageTypeHuman
	}
}
