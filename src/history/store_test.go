package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"www.github.com/Wanderer0074348/AgentRouter/src/config"
	"www.github.com/Wanderer0074348/AgentRouter/src/models"
)

func setupTestStore(t *testing.T, cfg *config.HistoryConfig) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewStore(client, cfg), mr
}

func defaultHistoryConfig() *config.HistoryConfig {
	return &config.HistoryConfig{
		KeepMax:   25,
		KeepStart: 5,
		KeepEnd:   10,
		TTL:       time.Hour,
	}
}

func TestStore_GetUnknownConversationIsEmpty(t *testing.T) {
	store, _ := setupTestStore(t, defaultHistoryConfig())

	turns, err := store.Get(context.Background(), "conv_missing")

	assert.NoError(t, err)
	assert.Empty(t, turns)
}

func TestStore_SetAndGetRoundTrip(t *testing.T) {
	store, _ := setupTestStore(t, defaultHistoryConfig())
	ctx := context.Background()

	turns := []models.ConversationTurn{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi, how can I help?"},
	}

	require.NoError(t, store.Set(ctx, "conv_1", turns))

	got, err := store.Get(ctx, "conv_1")
	assert.NoError(t, err)
	assert.Equal(t, turns, got)
}

func TestStore_TrimsMiddleKeepingStartAndEnd(t *testing.T) {
	cfg := &config.HistoryConfig{KeepMax: 5, KeepStart: 2, KeepEnd: 2, TTL: time.Hour}
	store, _ := setupTestStore(t, cfg)
	ctx := context.Background()

	turns := make([]models.ConversationTurn, 0, 10)
	for i := 0; i < 10; i++ {
		turns = append(turns, models.ConversationTurn{
			Role:    models.RoleUser,
			Content: fmt.Sprintf("message %d", i),
		})
	}

	require.NoError(t, store.Set(ctx, "conv_long", turns))

	got, err := store.Get(ctx, "conv_long")
	assert.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, "message 0", got[0].Content)
	assert.Equal(t, "message 1", got[1].Content)
	assert.Equal(t, "message 8", got[2].Content)
	assert.Equal(t, "message 9", got[3].Content)
}

func TestStore_SetsTTL(t *testing.T) {
	store, mr := setupTestStore(t, defaultHistoryConfig())

	require.NoError(t, store.Set(context.Background(), "conv_ttl", []models.ConversationTurn{
		{Role: models.RoleUser, Content: "hello"},
	}))

	assert.Equal(t, time.Hour, mr.TTL("conversation:conv_ttl"))
}

func TestStore_Delete(t *testing.T) {
	store, _ := setupTestStore(t, defaultHistoryConfig())
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "conv_del", []models.ConversationTurn{
		{Role: models.RoleUser, Content: "hello"},
	}))
	require.NoError(t, store.Delete(ctx, "conv_del"))

	turns, err := store.Get(ctx, "conv_del")
	assert.NoError(t, err)
	assert.Empty(t, turns)
}

func TestNewConversationID(t *testing.T) {
	id1 := NewConversationID()
	id2 := NewConversationID()

	assert.Contains(t, id1, "conv_")
	assert.NotEqual(t, id1, id2)
}
