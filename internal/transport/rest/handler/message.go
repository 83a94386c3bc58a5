package handler

import (
	"net/http"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/service"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/transport/rest/middleware"
)

const maxMessageLimit = 1000

// MessageHandler handles message and per-message analysis endpoints
type MessageHandler struct {
	analysisSvc *service.AnalysisService
	authSvc     *service.AuthService
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(analysisSvc *service.AnalysisService, authSvc *service.AuthService) *MessageHandler {
	return &MessageHandler{
		analysisSvc: analysisSvc,
		authSvc:     authSvc,
	}
}

// GetAnalysis handles GET /v1/messages/{id}/analysis
// @Summary Sentiment record of one message
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Message ID"
// @Success 200 {object} model.SentimentRecord
// @Failure 404 {object} map[string]string
// @Router /messages/{id}/analysis [get]
func (h *MessageHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	rec, err := h.analysisSvc.GetMessageAnalysis(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if err := h.authSvc.Authorize(middleware.GetClaims(r.Context()), rec.UserID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// ListByUser handles GET /v1/messages/user/{userId}
// @Summary Recent messages of a user with their sentiment records, newest first
// @Tags messages
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param limit query int false "Max messages" default(100)
// @Success 200 {array} model.MessageWithAnalysis
// @Router /messages/user/{userId} [get]
func (h *MessageHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "userId")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	limit, ok := queryInt(r, "limit", 100)
	if !ok {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	if limit <= 0 {
		limit = 100
	}
	if limit > maxMessageLimit {
		limit = maxMessageLimit
	}

	if !authorizeUser(w, r, h.authSvc, userID) {
		return
	}

	items, err := h.analysisSvc.RecentWithAnalysis(r.Context(), userID, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}
