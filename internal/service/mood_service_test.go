package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/repository"
)

func testTrendConfig() *config.TrendConfig {
	return &config.TrendConfig{
		Window:     3,
		LastN:      200,
		SlopeSmall: 0.01,
		DeltaBig:   0.25,
		LargeJump:  0.5,
	}
}

func newMood(store *repository.Store, summarizer Summarizer, timeout time.Duration) *MoodService {
	analysis := NewAnalysisService(store.Messages, store.Analyses, nil, NewKeywordClassifier())
	return NewMoodService(store.Users, store.Messages, store.Analyses, analysis, summarizer, testTrendConfig(), timeout)
}

// seedConversation stores user messages a minute apart with the given polarities
func seedConversation(t *testing.T, store *repository.Store, userID int64, polarities ...float64) {
	t.Helper()
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, p := range polarities {
		msg := &model.Message{
			UserID:    userID,
			Sender:    model.SenderUser,
			Text:      "msg",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, store.Messages.Create(ctx, msg))
		require.NoError(t, store.Analyses.Create(ctx, model.NewSentimentRecord(msg, model.Classification{
			Label:    model.LabelNeutral,
			Polarity: p,
		})))
	}
}

func TestMoodTrend_MoodDrop(t *testing.T) {
	store := newTestStore(t)
	user := createUser(t, store, "alice")
	seedConversation(t, store, user.ID, 0.8, 0.7, 0.6, 0.0, -0.5, -0.8)

	mood := newMood(store, nil, time.Second)
	resp, err := mood.MoodTrend(context.Background(), user.ID, TrendQuery{})
	require.NoError(t, err)

	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, 6, resp.Count)
	assert.Equal(t, []float64{0.8, 0.7, 0.6, 0.0, -0.5, -0.8}, resp.Polarities)
	assert.Equal(t, model.TrendDecreasing, resp.Trend)
	require.NotNil(t, resp.Slope)
	assert.Less(t, *resp.Slope, 0.0)
	assert.Less(t, resp.Delta, -0.25)
	assert.Contains(t, resp.Summary, "Conversation mood is decreasing.")
	assert.Equal(t, "Neutral", resp.SummaryLabel)
}

func TestMoodTrend_LastNAndSender(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	user := createUser(t, store, "bob")
	seedConversation(t, store, user.ID, 0.1, 0.2, 0.3, 0.4)
	require.NoError(t, store.Messages.Create(ctx, &model.Message{
		UserID: user.ID, Sender: model.SenderBot, Text: "reply",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}))

	mood := newMood(store, nil, time.Second)

	resp, err := mood.MoodTrend(ctx, user.ID, TrendQuery{LastN: 3})
	require.NoError(t, err)
	// newest three: 0.3, 0.4 and the unanalysed bot message at 0
	assert.Equal(t, []float64{0.3, 0.4, 0.0}, resp.Polarities)

	resp, err = mood.MoodTrend(ctx, user.ID, TrendQuery{LastN: 3, Sender: model.SenderUser})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.3, 0.4}, resp.Polarities)
}

func TestMoodTrend_Empty(t *testing.T) {
	store := newTestStore(t)
	user := createUser(t, store, "carol")

	summarizer := new(mockLLM)
	mood := newMood(store, summarizer, time.Second)

	resp, err := mood.MoodTrend(context.Background(), user.ID, TrendQuery{})
	require.NoError(t, err)
	assert.Zero(t, resp.Count)
	assert.Empty(t, resp.Polarities)
	assert.Nil(t, resp.Slope)
	assert.Equal(t, model.TrendUnknown, resp.Trend)
	assert.Equal(t, "", resp.Summary)
	assert.Equal(t, "Unknown", resp.SummaryLabel)
	summarizer.AssertNotCalled(t, "Summarize", mock.Anything, mock.Anything)
}

func TestMoodTrend_UnknownUser(t *testing.T) {
	store := newTestStore(t)
	mood := newMood(store, nil, time.Second)

	_, err := mood.MoodTrend(context.Background(), 42, TrendQuery{})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = mood.ConversationSentiment(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMoodTrend_SummarizerOverridesTemplate(t *testing.T) {
	store := newTestStore(t)
	user := createUser(t, store, "dave")
	seedConversation(t, store, user.ID, 0.1, 0.5, 0.9)

	summarizer := new(mockLLM)
	summarizer.On("Summarize", mock.Anything, mock.Anything).Return("  Mood is climbing nicely.  ", nil)

	resp, err := newMood(store, summarizer, time.Second).MoodTrend(context.Background(), user.ID, TrendQuery{})
	require.NoError(t, err)
	assert.Equal(t, "Mood is climbing nicely.", resp.Summary)
}

func TestMoodTrend_SummarizerFailuresKeepTemplate(t *testing.T) {
	store := newTestStore(t)
	user := createUser(t, store, "erin")
	seedConversation(t, store, user.ID, 0.1, 0.5, 0.9)

	tests := []struct {
		name  string
		setup  func(m *mockLLM)
	}{
		{"error", func(m *mockLLM) {
			m.On("Summarize", mock.Anything, mock.Anything).Return("", errors.New("boom"))
		}},
		{"blank", func(m *mockLLM) {
			m.On("Summarize", mock.Anything, mock.Anything).Return("   ", nil)
		}},
		{"panic", func(m *mockLLM) {
			m.On("Summarize", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
				panic("provider exploded")
			})
		}},
		{"timeout", func(m *mockLLM) {
			m.On("Summarize", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
				time.Sleep(200 * time.Millisecond)
			}).Return("too late", nil)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summarizer := new(mockLLM)
			tt.setup(summarizer)

			resp, err := newMood(store, summarizer, 50*time.Millisecond).MoodTrend(context.Background(), user.ID, TrendQuery{})
			require.NoError(t, err)
			assert.Contains(t, resp.Summary, "Conversation mood is ")
			assert.Equal(t, model.TrendIncreasing, resp.Trend)
		})
	}
}

func TestConversationSentiment(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	user := createUser(t, store, "frank")

	mood := newMood(store, nil, time.Second)
	resp, err := mood.ConversationSentiment(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, resp.AggregatePolarity)
	assert.Equal(t, "Unknown", resp.Label)
	assert.Zero(t, resp.SampleCount)

	seedConversation(t, store, user.ID, 0.6, 0.2)
	msg := &model.Message{UserID: user.ID, Sender: model.SenderUser, Text: "label only"}
	require.NoError(t, store.Messages.Create(ctx, msg))
	require.NoError(t, store.Analyses.Create(ctx, &model.SentimentRecord{
		MessageID: msg.ID, UserID: user.ID, Label: "NEGATIVE",
	}))

	resp, err = mood.ConversationSentiment(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, resp.AggregatePolarity)
	assert.InDelta(t, 0.0, *resp.AggregatePolarity, 1e-9)
	assert.Equal(t, 3, resp.SampleCount)
	assert.Equal(t, "Neutral", resp.Label)
}
