package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/cache"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/config"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/repository"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/service"
)

type testServer struct {
	handler http.Handler
	store   *repository.Store
	auth    *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store, err := repository.OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })

	auth := service.NewAuthService("admin", "secret", "test-secret")
	llm := service.NewMockLLM()
	analysis := service.NewAnalysisService(store.Messages, store.Analyses, cache.NewNoopAnalysisCache(), service.NewKeywordClassifier())
	trend := &config.TrendConfig{Window: 3, LastN: 200, SlopeSmall: 0.01, DeltaBig: 0.25, LargeJump: 0.5}

	c := &Container{
		AuthService:     auth,
		UserService:     service.NewUserService(store.Users, auth),
		ChatService:     service.NewChatService(store.Users, store.Messages, analysis, cache.NewNoopHistoryCache(), llm, 12),
		AnalysisService: analysis,
		MoodService:     service.NewMoodService(store.Users, store.Messages, store.Analyses, analysis, llm, trend, time.Second),
		BackfillBatch:   50,
	}
	return &testServer{handler: NewRouter(c), store: store, auth: auth}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) createUser(t *testing.T, name string) model.CreateUserResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/v1/users", "", model.CreateUserRequest{Username: name})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp model.CreateUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func (s *testServer) adminToken(t *testing.T) string {
	t.Helper()
	resp, err := s.auth.Login("admin", "secret")
	require.NoError(t, err)
	return resp.Token
}

func TestHealthAndSwagger(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Contains(t, doc["paths"], "/analytics/user/{userId}/mood_trend")
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/auth/login", "", model.LoginRequest{Username: "admin", Password: "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	var resp model.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestCreateUser_ExistingNameNeedsOwnerOrAdmin(t *testing.T) {
	s := newTestServer(t)
	alice := s.createUser(t, "alice")
	bob := s.createUser(t, "bob")

	rec := s.do(t, http.MethodPost, "/v1/chat", alice.Token, model.ChatRequest{UserID: alice.User.ID, Text: "I love this"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// anonymous re-registration must not hand out alice's token
	rec = s.do(t, http.MethodPost, "/v1/users", "", model.CreateUserRequest{Username: "alice"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NotContains(t, rec.Body.String(), "token")

	rec = s.do(t, http.MethodPost, "/v1/users", bob.Token, model.CreateUserRequest{Username: "alice"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(t, http.MethodPost, "/v1/users", "garbage", model.CreateUserRequest{Username: "alice"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// the owner and an admin can fetch the existing user
	rec = s.do(t, http.MethodPost, "/v1/users", alice.Token, model.CreateUserRequest{Username: "alice"})
	require.Equal(t, http.StatusOK, rec.Code)
	var again model.CreateUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, alice.User.ID, again.User.ID)

	rec = s.do(t, http.MethodPost, "/v1/users", s.adminToken(t), model.CreateUserRequest{Username: "alice"})
	require.Equal(t, http.StatusOK, rec.Code)
	var viaAdmin model.CreateUserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &viaAdmin))
	assert.Equal(t, alice.User.ID, viaAdmin.User.ID)

	path := fmt.Sprintf("/v1/messages/user/%d", alice.User.ID)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, path, bob.Token, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, viaAdmin.Token, nil).Code)

	rec = s.do(t, http.MethodPost, "/v1/users", "", model.CreateUserRequest{Username: "  "})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatAndAnalytics(t *testing.T) {
	s := newTestServer(t)
	alice := s.createUser(t, "alice")

	var last model.ChatResponse
	for _, text := range []string{"this is great", "I love it", "hmm okay", "this is terrible", "I hate this"} {
		rec := s.do(t, http.MethodPost, "/v1/chat", alice.Token, model.ChatRequest{UserID: alice.User.ID, Text: text})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &last))
	}
	assert.Contains(t, last.BotReply, "I hate this")
	require.NotNil(t, last.Analysis)
	assert.Equal(t, "NEGATIVE", last.Analysis.Label)

	rec := s.do(t, http.MethodGet, fmt.Sprintf("/v1/messages/%d/analysis", last.UserMessageID), alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/v1/messages/%d/analysis", last.BotMessageID), alice.Token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/v1/messages/user/%d?limit=4", alice.User.ID), alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.MessageWithAnalysis
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 4)
	assert.Equal(t, last.BotMessageID, items[0].Message.ID)
	assert.Nil(t, items[0].Analysis)
	assert.NotNil(t, items[1].Analysis)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/v1/analytics/user/%d/mood_trend?sender=user", alice.User.ID), alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trend model.MoodTrendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trend))
	assert.Equal(t, 5, trend.Count)
	assert.Len(t, trend.Smoothed, 5)
	assert.Equal(t, model.TrendDecreasing, trend.Trend)
	assert.NotEmpty(t, trend.Summary)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/v1/analytics/user/%d/sentiment", alice.User.ID), alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var sentiment model.ConversationSentimentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sentiment))
	assert.Equal(t, 5, sentiment.SampleCount)
	assert.NotNil(t, sentiment.AggregatePolarity)
}

func TestMoodTrendQueryValidation(t *testing.T) {
	s := newTestServer(t)
	alice := s.createUser(t, "alice")
	base := fmt.Sprintf("/v1/analytics/user/%d/mood_trend", alice.User.ID)

	for _, q := range []string{"?window=abc", "?last_n=1.5", "?sender=robot"} {
		rec := s.do(t, http.MethodGet, base+q, alice.Token, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	rec := s.do(t, http.MethodGet, base+"?window=0&last_n=-5", alice.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var trend model.MoodTrendResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trend))
	assert.Equal(t, model.TrendUnknown, trend.Trend)
	assert.Equal(t, "Unknown", trend.SummaryLabel)
	assert.Equal(t, "", trend.Summary)
	assert.NotNil(t, trend.Polarities)
	assert.NotNil(t, trend.ShiftEvents)
}

func TestAuthorization(t *testing.T) {
	s := newTestServer(t)
	alice := s.createUser(t, "alice")
	bob := s.createUser(t, "bob")
	admin := s.adminToken(t)

	path := fmt.Sprintf("/v1/analytics/user/%d/sentiment", alice.User.ID)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, path, "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, path, "not-a-jwt", nil).Code)
	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, path, bob.Token, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, path, admin, nil).Code)

	rec := s.do(t, http.MethodPost, "/v1/chat", bob.Token, model.ChatRequest{UserID: alice.User.ID, Text: "hi"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/v1/analytics/user/999/mood_trend", admin, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/v1/analytics/user/abc/mood_trend", admin, nil).Code)
}

func TestAdminBackfill(t *testing.T) {
	s := newTestServer(t)
	alice := s.createUser(t, "alice")
	admin := s.adminToken(t)

	ctx := context.Background()
	for _, text := range []string{"great", "awful"} {
		require.NoError(t, s.store.Messages.Create(ctx, &model.Message{UserID: alice.User.ID, Sender: model.SenderUser, Text: text}))
	}

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/v1/admin/backfill", alice.Token, nil).Code)

	rec := s.do(t, http.MethodPost, "/v1/admin/backfill", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"analysed":2}`, rec.Body.String())
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodOptions, "/v1/chat", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
