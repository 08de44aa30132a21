package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skillforge-app/backend/internal/services"
	"github.com/skillforge-app/backend/pkg/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatsHandler exposes the cross-category aggregates for a user.
type StatsHandler struct {
	Service *services.StatsService
}

// NewStatsHandler creates a new instance of StatsHandler.
func NewStatsHandler(service *services.StatsService) *StatsHandler {
	return &StatsHandler{Service: service}
}

// GetReportCardHandler returns the logged-in user's full per-category
// breakdown plus recent activities.
func (h *StatsHandler) GetReportCardHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	report, err := h.Service.GetReportCard(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to build report card")
		http.Error(w, "Failed to build report card", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
