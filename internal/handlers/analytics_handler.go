package handlers

import (
	"net/http"

	"luct-reporting/internal/middleware"
	"luct-reporting/internal/service"
)

// AnalyticsHandler handles dashboard and monitoring requests
type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Dashboard returns system-wide entity counts
// @Summary Get dashboard totals
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Totals"
// @Router /analytics/dashboard [get]
func (h *AnalyticsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	totals, err := h.analyticsService.Dashboard()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"totals":  totals,
	})
}

// Monitoring returns aggregates scoped to the caller's role
// @Summary Get role-scoped monitoring aggregates
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "Monitoring summary"
// @Router /monitoring/dashboard [get]
func (h *AnalyticsHandler) Monitoring(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, ErrMsgUnauthorized)
		return
	}

	summary, err := h.analyticsService.Monitoring(claims)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"monitoring": summary,
	})
}
