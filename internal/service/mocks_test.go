package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/repository"
)

type mockClassifier struct {
	mock.Mock
}

func (m *mockClassifier) Classify(ctx context.Context, text string) model.Classification {
	args := m.Called(ctx, text)
	return args.Get(0).(model.Classification)
}

type mockLLM struct {
	mock.Mock
}

func (m *mockLLM) GenerateReply(ctx context.Context, history, userMessage string) (string, error) {
	args := m.Called(ctx, history, userMessage)
	return args.String(0), args.Error(1)
}

func (m *mockLLM) Summarize(ctx context.Context, trend model.TrendResult) (string, error) {
	args := m.Called(ctx, trend)
	return args.String(0), args.Error(1)
}

// mockAnalysisRepo wraps a real repository so individual calls can be failed
type mockAnalysisRepo struct {
	mock.Mock
	repository.AnalysisRepo
}

func (m *mockAnalysisRepo) Create(ctx context.Context, rec *model.SentimentRecord) error {
	args := m.Called(ctx, rec)
	if err := args.Error(0); err != nil {
		return err
	}
	return m.AnalysisRepo.Create(ctx, rec)
}

type mockAnalysisCache struct {
	mock.Mock
}

func (m *mockAnalysisCache) Get(ctx context.Context, messageID int64) (*model.SentimentRecord, error) {
	args := m.Called(ctx, messageID)
	rec, _ := args.Get(0).(*model.SentimentRecord)
	return rec, args.Error(1)
}

func (m *mockAnalysisCache) GetMany(ctx context.Context, messageIDs []int64) (map[int64]*model.SentimentRecord, error) {
	args := m.Called(ctx, messageIDs)
	found, _ := args.Get(0).(map[int64]*model.SentimentRecord)
	return found, args.Error(1)
}

func (m *mockAnalysisCache) Set(ctx context.Context, rec *model.SentimentRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *mockAnalysisCache) SetMany(ctx context.Context, records []*model.SentimentRecord) error {
	return m.Called(ctx, records).Error(0)
}

func newTestStore(t *testing.T) *repository.Store {
	t.Helper()
	store, err := repository.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}

func createUser(t *testing.T, store *repository.Store, name string) *model.User {
	t.Helper()
	user := &model.User{Username: name}
	require.NoError(t, store.Users.Create(context.Background(), user))
	return user
}

func positive(polarity float64) model.Classification {
	return model.Classification{
		Label:      model.LabelPositive,
		Confidence: 0.9,
		Polarity:   polarity,
		Raw:        map[string]float64{model.LabelPositive: 0.9},
	}
}
