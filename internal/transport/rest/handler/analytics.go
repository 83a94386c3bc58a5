package handler

import (
	"net/http"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/service"
)

// AnalyticsHandler serves the mood analytics endpoints
type AnalyticsHandler struct {
	moodSvc *service.MoodService
	authSvc *service.AuthService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(moodSvc *service.MoodService, authSvc *service.AuthService) *AnalyticsHandler {
	return &AnalyticsHandler{
		moodSvc: moodSvc,
		authSvc: authSvc,
	}
}

// Sentiment handles GET /v1/analytics/user/{userId}/sentiment
// @Summary Whole-conversation sentiment of a user
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} model.ConversationSentimentResponse
// @Failure 404 {object} map[string]string
// @Router /analytics/user/{userId}/sentiment [get]
func (h *AnalyticsHandler) Sentiment(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if !authorizeUser(w, r, h.authSvc, userID) {
		return
	}

	resp, err := h.moodSvc.ConversationSentiment(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// MoodTrend handles GET /v1/analytics/user/{userId}/mood_trend
// @Summary Smoothed mood trend over the user's latest messages
// @Tags analytics
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param window query int false "Smoothing window" default(3)
// @Param last_n query int false "Messages considered" default(200)
// @Param sender query string false "Only user or bot messages"
// @Success 200 {object} model.MoodTrendResponse
// @Failure 404 {object} map[string]string
// @Router /analytics/user/{userId}/mood_trend [get]
func (h *AnalyticsHandler) MoodTrend(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	window, ok := queryInt(r, "window", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "window must be an integer")
		return
	}
	lastN, ok := queryInt(r, "last_n", 0)
	if !ok {
		writeError(w, http.StatusBadRequest, "last_n must be an integer")
		return
	}
	// window 0 would mean "default"; the engine clamps anything below 1
	if window == 0 && r.URL.Query().Get("window") != "" {
		window = 1
	}

	sender := r.URL.Query().Get("sender")
	if sender != "" && sender != model.SenderUser && sender != model.SenderBot {
		writeError(w, http.StatusBadRequest, "sender must be 'user' or 'bot'")
		return
	}

	if !authorizeUser(w, r, h.authSvc, userID) {
		return
	}

	resp, err := h.moodSvc.MoodTrend(r.Context(), userID, service.TrendQuery{
		Window: window,
		LastN:  lastN,
		Sender: sender,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
