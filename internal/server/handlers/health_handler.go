package handlers

import (
	"net/http"

	"genai-gateway/internal/domain"
)

// Health は設定済みのプロジェクトとモデルを返します。外部呼び出しは行いません。
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, domain.HealthResponse{
		Status:  "ok",
		Project: h.cfg.ProjectID,
		Model:   h.cfg.GeminiModel,
	})
}
