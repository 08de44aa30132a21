package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/skillforge-app/backend/internal/services"
	"github.com/skillforge-app/backend/pkg/middleware"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GoalHandler handles HTTP requests related to goals.
type GoalHandler struct {
	Service *services.GoalService
}

// NewGoalHandler creates a new instance of GoalHandler.
func NewGoalHandler(service *services.GoalService) *GoalHandler {
	return &GoalHandler{Service: service}
}

// CreateGoalHandler handles the creation of a new goal.
func (h *GoalHandler) CreateGoalHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized access attempt during goal creation")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Failed to convert user ID")
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	var req services.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during goal creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	createdGoal, err := h.Service.CreateGoal(r.Context(), userID, &req)
	if err != nil {
		logrus.WithError(err).Warn("Failed to create goal")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID": claims.UserID,
		"goalID": createdGoal.ID.Hex(),
	}).Info("Goal successfully created")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(createdGoal)
}

// GetGoalsHandler lists the logged-in user's goals with live progress,
// optionally filtered by category.
func (h *GoalHandler) GetGoalsHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		logrus.Warn("Unauthorized goal list attempt")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		logrus.WithError(err).Error("Invalid user ID format")
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

	goals, err := h.Service.GetGoals(r.Context(), userID, categoryID)
	if err != nil {
		logrus.WithError(err).Error("Failed to retrieve user goals")
		http.Error(w, "Failed to retrieve goals", http.StatusInternalServerError)
		return
	}

	logrus.WithFields(logrus.Fields{
		"userID":    claims.UserID,
		"goalCount": len(goals),
	}).Info("User goals fetched successfully")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goals)
}

// GetGoalHandler fetches a single goal with live progress.
func (h *GoalHandler) GetGoalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalID := vars["id"]
	log := logrus.WithField("goalID", goalID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		log.Warn("Unauthorized goal fetch attempt")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		log.WithError(err).Error("Invalid user ID format")
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	goal, err := h.Service.GetGoal(r.Context(), goalID, userID)
	if err != nil || goal == nil {
		log.WithError(err).Warn("Goal not found")
		http.Error(w, "Goal not found", http.StatusNotFound)
		return
	}

	log.Info("Goal successfully fetched")
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(goal)
}

// DeleteGoalHandler deletes an active goal. Completed goals stay.
func (h *GoalHandler) DeleteGoalHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	goalID := vars["id"]
	log := logrus.WithField("goalID", goalID)

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		log.Warn("Unauthorized goal delete attempt")
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		log.WithError(err).Error("Invalid user ID format")
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	if err := h.Service.DeleteGoal(r.Context(), goalID, userID); err != nil {
		log.WithError(err).Warn("Failed to delete goal")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	log.Info("Goal deleted successfully")
	w.WriteHeader(http.StatusNoContent)
}
