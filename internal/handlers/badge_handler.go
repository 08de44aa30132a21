package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skillforge-app/backend/internal/services"
	"github.com/skillforge-app/backend/pkg/middleware"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BadgeHandler handles HTTP requests for badge definitions and awards.
type BadgeHandler struct {
	Service *services.BadgeService
}

// NewBadgeHandler creates a new instance of BadgeHandler.
func NewBadgeHandler(service *services.BadgeService) *BadgeHandler {
	return &BadgeHandler{Service: service}
}

// GetBadgesHandler lists badge definitions with the viewer's earned flag,
// optionally for one category.
func (h *BadgeHandler) GetBadgesHandler(w http.ResponseWriter, r *http.Request) {
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

	var categoryID *primitive.ObjectID
	if categoryParam := r.URL.Query().Get("category_id"); categoryParam != "" {
		objID, err := primitive.ObjectIDFromHex(categoryParam)
		if err != nil {
			http.Error(w, "Invalid category ID", http.StatusBadRequest)
			return
		}
		categoryID = &objID
	}

	badges, err := h.Service.GetBadgesForUser(r.Context(), userID, categoryID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch badges")
		http.Error(w, "Failed to fetch badges", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(badges)
}

// GetMyBadgesHandler lists the logged-in user's earned badges.
func (h *BadgeHandler) GetMyBadgesHandler(w http.ResponseWriter, r *http.Request) {
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

	awards, err := h.Service.GetUserBadges(r.Context(), userID)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch user badges")
		http.Error(w, "Failed to fetch badges", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(awards)
}
