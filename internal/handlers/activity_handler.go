package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/skillforge-app/backend/internal/services"
	"github.com/skillforge-app/backend/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityHandler handles HTTP requests related to the activity ledger.
type ActivityHandler struct {
	Service *services.ActivityService
}

// NewActivityHandler creates a new instance of ActivityHandler.
func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

// LogActivityHandler records a new activity for the logged-in user.
// Activities with proof attached go through admin verification; the rest
// are approved immediately and their XP applied.
func (h *ActivityHandler) LogActivityHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized attempt to log activity")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Failed to convert user ID")
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	var req services.LogActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload while logging activity")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	activity, err := h.Service.LogActivity(r.Context(), userID, &req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to log activity")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":     claims.UserID,
		"activityID": activity.ID.Hex(),
		"status":     activity.Status,
		"xpEarned":   activity.XPEarned,
	}).Info("Activity logged")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(activity)
}

// GetMyActivitiesHandler lists the logged-in user's activities, newest first.
func (h *ActivityHandler) GetMyActivitiesHandler(w http.ResponseWriter, r *http.Request) {
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

	var limit int64 = 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.ParseInt(limitParam, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	activities, err := h.Service.GetUserActivities(r.Context(), userID, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch user activities")
		http.Error(w, "Failed to fetch activities", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}

// GetMyApprovedActivitiesHandler lists the logged-in user's approved
// activities with optional category and date range filters.
func (h *ActivityHandler) GetMyApprovedActivitiesHandler(w http.ResponseWriter, r *http.Request) {
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

	var from, to *time.Time
	if fromParam := r.URL.Query().Get("from"); fromParam != "" {
		parsed, err := time.Parse(time.RFC3339, fromParam)
		if err != nil {
			http.Error(w, "Invalid 'from' date, expected RFC3339", http.StatusBadRequest)
			return
		}
		from = &parsed
	}
	if toParam := r.URL.Query().Get("to"); toParam != "" {
		parsed, err := time.Parse(time.RFC3339, toParam)
		if err != nil {
			http.Error(w, "Invalid 'to' date, expected RFC3339", http.StatusBadRequest)
			return
		}
		to = &parsed
	}

	activities, err := h.Service.GetApprovedActivities(r.Context(), userID, categoryID, from, to)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch approved activities")
		http.Error(w, "Failed to fetch activities", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}

// PostActivityHandler toggles whether an activity is shared on the feed.
func (h *ActivityHandler) PostActivityHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	activityID := vars["id"]

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

	var req struct {
		Posted bool `json:"posted"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.SetPosted(r.Context(), activityID, userID, req.Posted); err != nil {
		logrus.WithError(err).WithField("activityID", activityID).Warn("Failed to update posted flag")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":     claims.UserID,
		"activityID": activityID,
		"posted":     req.Posted,
	}).Info("Activity posted flag updated")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"posted": req.Posted})
}
