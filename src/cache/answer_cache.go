package cache

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"www.github.com/Wanderer0074348/AgentRouter/src/models"
)

const answerKeyPrefix = "answer:"

// AnswerCache stores retrieval answers in Redis with a bounded TTL, keyed by
// the literal question text. It is an optimization only; callers must behave
// identically when it misses.
type AnswerCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewAnswerCache(client *redis.Client, ttl time.Duration) *AnswerCache {
	return &AnswerCache{
		client: client,
		ttl:    ttl,
	}
}

func answerKey(question string) string {
	hash := md5.Sum([]byte(question))
	return answerKeyPrefix + hex.EncodeToString(hash[:])
}

func (c *AnswerCache) Get(ctx context.Context, question string) (*models.CachedAnswer, error) {
	val, err := c.client.Get(ctx, answerKey(question)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var answer models.CachedAnswer
	if err := json.Unmarshal([]byte(val), &answer); err != nil {
		return nil, err
	}

	return &answer, nil
}

func (c *AnswerCache) Set(ctx context.Context, question string, answer *models.CachedAnswer) error {
	data, err := json.Marshal(answer)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, answerKey(question), data, c.ttl).Err()
}
