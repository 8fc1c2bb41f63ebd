package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
	"www.github.com/Wanderer0074348/AgentRouter/src/models"
)

const conversationKeyPrefix = "conversation:"

// Store keeps conversation turns in Redis, one key per conversation id.
// The router only reads and appends; concurrent writers to the same id are
// a documented limitation, not defended against.
type Store struct {
	client    *redis.Client
	ttl       time.Duration
	keepMax   int
	keepStart int
	keepEnd   int
}

func NewStore(client *redis.Client, cfg *config.HistoryConfig) *Store {
	return &Store{
		client:    client,
		ttl:       cfg.TTL,
		keepMax:   cfg.KeepMax,
		keepStart: cfg.KeepStart,
		keepEnd:   cfg.KeepEnd,
	}
}

// NewConversationID mints an id for requests that arrive without one.
func NewConversationID() string {
	return "conv_" + uuid.New().String()
}

// Get returns the stored turns, or an empty slice for unknown conversations.
func (s *Store) Get(ctx context.Context, conversationID string) ([]models.ConversationTurn, error) {
	data, err := s.client.Get(ctx, conversationKeyPrefix+conversationID).Result()
	if err == redis.Nil {
		return []models.ConversationTurn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation %s: %w", conversationID, err)
	}

	var turns []models.ConversationTurn
	if err := json.Unmarshal([]byte(data), &turns); err != nil {
		return nil, fmt.Errorf("failed to unmarshal conversation %s: %w", conversationID, err)
	}

	return turns, nil
}

// Set trims and saves the turns, refreshing the TTL.
func (s *Store) Set(ctx context.Context, conversationID string, turns []models.ConversationTurn) error {
	turns = s.trim(turns)

	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("failed to marshal conversation %s: %w", conversationID, err)
	}

	if err := s.client.Set(ctx, conversationKeyPrefix+conversationID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save conversation %s: %w", conversationID, err)
	}

	return nil
}

// Delete removes a conversation.
func (s *Store) Delete(ctx context.Context, conversationID string) error {
	if err := s.client.Del(ctx, conversationKeyPrefix+conversationID).Err(); err != nil {
		return fmt.Errorf("failed to delete conversation %s: %w", conversationID, err)
	}
	return nil
}

// trim keeps at most keepMax turns, cutting from the middle so the opening
// turns and the most recent exchange both survive.
func (s *Store) trim(turns []models.ConversationTurn) []models.ConversationTurn {
	if s.keepMax <= 0 || len(turns) <= s.keepMax {
		return turns
	}

	trimmed := make([]models.ConversationTurn, 0, s.keepStart+s.keepEnd)
	trimmed = append(trimmed, turns[:s.keepStart]...)
	trimmed = append(trimmed, turns[len(turns)-s.keepEnd:]...)
	return trimmed
}
