package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/skillforge-app/backend/internal/services"
	"github.com/skillforge-app/backend/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedHandler handles the community feed of posted activities and kudos.
type FeedHandler struct {
	Service *services.KudosService
}

// NewFeedHandler creates a new instance of FeedHandler.
func NewFeedHandler(service *services.KudosService) *FeedHandler {
	return &FeedHandler{Service: service}
}

// GetFeedHandler lists recently posted activities with kudos counts.
func (h *FeedHandler) GetFeedHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	viewerID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	var limit int64
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.ParseInt(limitParam, 10, 64); err == nil {
			limit = parsed
		}
	}

	feed, err := h.Service.GetFeed(r.Context(), viewerID, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch feed")
		http.Error(w, "Failed to fetch feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(feed)
}

// ToggleKudosHandler adds or removes the user's kudos on a posted activity.
func (h *FeedHandler) ToggleKudosHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	activityParam := vars["id"]
	log := logrus.WithField("activityID", activityParam)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		log.Warn("Unauthorized kudos attempt")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	activityID, err := primitive.ObjectIDFromHex(activityParam)
	if err != nil {
		http.Error(w, "Invalid activity ID", http.StatusBadRequest)
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	kudoed, err := h.Service.ToggleKudos(r.Context(), activityID, userID)
	if err != nil {
		log.WithError(err).Warn("Failed to toggle kudos")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.WithFields(logrus.Fields{
		"userID": claims.UserID,
		"kudoed": kudoed,
	}).Info("Kudos toggled")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"kudoed": kudoed})
}
