package handler

import (
	"encoding/json"
	"net/http"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/model"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/service"
	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/transport/rest/middleware"
)

// UserHandler handles user endpoints
type UserHandler struct {
	userSvc *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userSvc *service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// Create handles POST /v1/users
// @Summary Create or fetch a user and issue a user-scoped token
// @Tags users
// @Accept json
// @Produce json
// @Param body body model.CreateUserRequest true "User"
// @Success 200 {object} model.CreateUserResponse
// @Failure 409 {object} map[string]string
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.userSvc.CreateOrGet(r.Context(), req.Username, middleware.GetClaims(r.Context()))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
