package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
)

func TestNew_SQLiteWithoutRedis(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", ":memory:")
	t.Setenv("REDIS_URI", "")
	t.Setenv("LLM_PROVIDER", "mock")
	t.Setenv("SENTIMENT_API_URL", "")
	t.Setenv("BACKFILL_SCHEDULE", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.Nil(t, a.Redis)
	assert.NotNil(t, a.ChatService)
	assert.NotNil(t, a.MoodService)

	c := a.Container()
	assert.Equal(t, cfg.BackfillBatch, c.BackfillBatch)
	assert.Equal(t, "*", c.CORS.AllowedOrigins)

	resp, err := a.UserService.CreateOrGet(context.Background(), "demo", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}
