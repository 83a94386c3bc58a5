package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// HistoryCache keeps the last few chat turns of each user, oldest first,
// so reply generation does not have to query the store on every turn.
type HistoryCache interface {
	Append(ctx context.Context, userID int64, turns ...model.HistoryTurn) error
	// Recent returns nil, nil when nothing is cached for the user
	Recent(ctx context.Context, userID int64) ([]model.HistoryTurn, error)
}

type historyCache struct {
	client  *redis.Client
	maxLen  int
	idleTTL time.Duration
}

// NewHistoryCache creates a Redis list-backed history cache holding at most maxLen turns per user
func NewHistoryCache(client *redis.Client, maxLen int, idleTTL time.Duration) HistoryCache {
	if maxLen <= 0 {
		maxLen = 6
	}
	if idleTTL <= 0 {
		idleTTL = time.Hour
	}
	return &historyCache{
		client:  client,
		maxLen:  maxLen,
		idleTTL: idleTTL,
	}
}

func historyKey(userID int64) string {
	return fmt.Sprintf("chat:user:%d:history", userID)
}

func (c *historyCache) Append(ctx context.Context, userID int64, turns ...model.HistoryTurn) error {
	if len(turns) == 0 {
		return nil
	}
	args := make([]interface{}, 0, len(turns))
	for _, t := range turns {
		data, err := json.Marshal(t)
		if err != nil {
			return err
		}
		args = append(args, data)
	}

	key := historyKey(userID)
	pipe := c.client.TxPipeline()
	pipe.RPush(ctx, key, args...)
	pipe.LTrim(ctx, key, int64(-c.maxLen), -1)
	pipe.Expire(ctx, key, c.idleTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *historyCache) Recent(ctx context.Context, userID int64) ([]model.HistoryTurn, error) {
	values, err := c.client.LRange(ctx, historyKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, nil
	}
	turns := make([]model.HistoryTurn, 0, len(values))
	for _, v := range values {
		var t model.HistoryTurn
		if err := json.Unmarshal([]byte(v), &t); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, nil
}

type noopHistoryCache struct{}

// NewNoopHistoryCache returns a history cache that always misses
func NewNoopHistoryCache() HistoryCache {
	return noopHistoryCache{}
}

func (noopHistoryCache) Append(context.Context, int64, ...model.HistoryTurn) error { return nil }

func (noopHistoryCache) Recent(context.Context, int64) ([]model.HistoryTurn, error) {
	return nil, nil
}
