package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Inferno-0709/Chatbot-sentiment-analysis/internal/service"
)

// AdminHandler exposes maintenance operations
type AdminHandler struct {
	analysisSvc *service.AnalysisService
	batch       int
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(analysisSvc *service.AnalysisService, batch int) *AdminHandler {
	return &AdminHandler{
		analysisSvc: analysisSvc,
		batch:       batch,
	}
}

// Backfill handles POST /v1/admin/backfill
// @Summary Classify messages that have no sentiment record yet
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]int
// @Router /admin/backfill [post]
func (h *AdminHandler) Backfill(w http.ResponseWriter, r *http.Request) {
	n, err := h.analysisSvc.Backfill(r.Context(), h.batch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	logrus.WithField("analysed", n).Info("Manual sentiment backfill completed")
	writeJSON(w, http.StatusOK, map[string]int{"analysed": n})
}
