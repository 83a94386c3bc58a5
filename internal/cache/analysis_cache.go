package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
)

// AnalysisCache keeps sentiment records by message id. Records never change
// once written, so entries only expire by TTL.
type AnalysisCache interface {
	Get(ctx context.Context, messageID int64) (*model.SentimentRecord, error)
	// GetMany returns the cached subset of messageIDs
	GetMany(ctx context.Context, messageIDs []int64) (map[int64]*model.SentimentRecord, error)
	Set(ctx context.Context, rec *model.SentimentRecord) error
	SetMany(ctx context.Context, records []*model.SentimentRecord) error
}

type analysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAnalysisCache creates a Redis-backed sentiment record cache
func NewAnalysisCache(client *redis.Client, ttl time.Duration) AnalysisCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &analysisCache{
		client: client,
		ttl:    ttl,
	}
}

func analysisKey(messageID int64) string {
	return fmt.Sprintf("analysis:msg:%d", messageID)
}

func (c *analysisCache) Get(ctx context.Context, messageID int64) (*model.SentimentRecord, error) {
	data, err := c.client.Get(ctx, analysisKey(messageID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var rec model.SentimentRecord
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (c *analysisCache) GetMany(ctx context.Context, messageIDs []int64) (map[int64]*model.SentimentRecord, error) {
	out := make(map[int64]*model.SentimentRecord, len(messageIDs))
	if len(messageIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(messageIDs))
	for i, id := range messageIDs {
		keys[i] = analysisKey(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var rec model.SentimentRecord
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			logrus.WithError(err).WithField("key", keys[i]).Warn("Skipping undecodable cache entry")
			continue
		}
		out[messageIDs[i]] = &rec
	}
	return out, nil
}

func (c *analysisCache) Set(ctx context.Context, rec *model.SentimentRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, analysisKey(rec.MessageID), data, c.ttl).Err()
}

func (c *analysisCache) SetMany(ctx context.Context, records []*model.SentimentRecord) error {
	if len(records) == 0 {
		return nil
	}
	pipe := c.client.Pipeline()
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		pipe.Set(ctx, analysisKey(rec.MessageID), data, c.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

type noopAnalysisCache struct{}

// NewNoopAnalysisCache returns a cache that stores nothing, used when Redis is not configured
func NewNoopAnalysisCache() AnalysisCache {
	return noopAnalysisCache{}
}

func (noopAnalysisCache) Get(context.Context, int64) (*model.SentimentRecord, error) {
	return nil, nil
}

func (noopAnalysisCache) GetMany(context.Context, []int64) (map[int64]*model.SentimentRecord, error) {
	return map[int64]*model.SentimentRecord{}, nil
}

func (noopAnalysisCache) Set(context.Context, *model.SentimentRecord) error { return nil }

func (noopAnalysisCache) SetMany(context.Context, []*model.SentimentRecord) error { return nil }
