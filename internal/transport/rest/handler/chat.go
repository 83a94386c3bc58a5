package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/service"
)

// ChatHandler handles chat turns
type ChatHandler struct {
	chatSvc *service.ChatService
	authSvc *service.AuthService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatSvc *service.ChatService, authSvc *service.AuthService) *ChatHandler {
	return &ChatHandler{
		chatSvc: chatSvc,
		authSvc: authSvc,
	}
}

// Send handles POST /v1/chat
// @Summary Send a message and receive the bot reply with its sentiment record
// @Tags chat
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.ChatRequest true "Message"
// @Success 200 {object} model.ChatResponse
// @Failure 404 {object} map[string]string
// @Router /chat [post]
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !authorizeUser(w, r, h.authSvc, req.UserID) {
		return
	}

	resp, err := h.chatSvc.ProcessChat(r.Context(), req.UserID, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
