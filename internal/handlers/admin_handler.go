package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/internal/services"
	"github.com/skillforge-app/backend/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminHandler handles the admin surface: the verification queue, badge
// administration and user listing. All routes are behind the admin role.
type AdminHandler struct {
	VerificationService *services.VerificationService
	BadgeService        *services.BadgeService
	UserService         *services.UserService
}

// NewAdminHandler creates a new instance of AdminHandler.
func NewAdminHandler(verificationService *services.VerificationService, badgeService *services.BadgeService, userService *services.UserService) *AdminHandler {
	return &AdminHandler{
		VerificationService: verificationService,
		BadgeService:        badgeService,
		UserService:         userService,
	}
}

// GetPendingActivitiesHandler lists activities awaiting verification,
// oldest first.
func (h *AdminHandler) GetPendingActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	var limit int64 = 50
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		if parsed, err := strconv.ParseInt(limitParam, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	activities, err := h.VerificationService.GetPendingActivities(r.Context(), limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch pending activities")
		http.Error(w, "Failed to fetch pending activities", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}

// VerifyActivityHandler approves or denies a pending activity. Approval
// applies the activity's XP to the owner's profile.
func (h *AdminHandler) VerifyActivityHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	activityID := vars["id"]
	log := logrus.WithField("activityID", activityID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	verifierID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	var req struct {
		Approve bool `json:"approve"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Invalid verification payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	activity, err := h.VerificationService.VerifyActivity(r.Context(), activityID, verifierID, req.Approve)
	if err != nil {
		log.WithError(err).Warn("Failed to verify activity")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.WithFields(logrus.Fields{
		"adminID":  claims.UserID,
		"approved": req.Approve,
	}).Info("Activity verification recorded")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activity)
}

// CreateBadgeHandler defines a new badge.
func (h *AdminHandler) CreateBadgeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var badge models.Badge
	if err := json.NewDecoder(r.Body).Decode(&badge); err != nil {
		logrus.WithError(err).Warn("Invalid badge payload")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.BadgeService.CreateBadge(r.Context(), &badge)
	if err != nil {
		logrus.WithError(err).Error("Failed to create badge")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logrus.WithFields(logrus.Fields{
		"adminID": claims.UserID,
		"badgeID": created.ID.Hex(),
	}).Info("Badge created")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// AwardBadgeHandler manually awards a badge to a user.
func (h *AdminHandler) AwardBadgeHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req struct {
		UserID  string `json:"user_id"`
		BadgeID string `json:"badge_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	userID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}
	badgeID, err := primitive.ObjectIDFromHex(req.BadgeID)
	if err != nil {
		http.Error(w, "Invalid badge ID", http.StatusBadRequest)
		return
	}

	award, err := h.BadgeService.AwardBadge(r.Context(), userID, badgeID)
	if err != nil {
		logrus.WithError(err).Warn("Failed to award badge")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logrus.WithFields(logrus.Fields{
		"adminID": claims.UserID,
		"userID":  req.UserID,
		"badgeID": req.BadgeID,
	}).Info("Badge awarded manually")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(award)
}

// GetAllUsersHandler lists every user account.
func (h *AdminHandler) GetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	users, err := h.UserService.GetAllUsers(r.Context())
	if err != nil {
		logrus.WithError(err).Errorf("Admin %s failed to fetch users", claims.UserID)
		http.Error(w, "Failed to retrieve users", http.StatusInternalServerError)
		return
	}

	logrus.Infof("Admin %s fetched %d users", claims.UserID, len(users))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(users)
}
