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

// CategoryHandler handles HTTP requests for skill categories, per-category
// stats and leaderboards.
type CategoryHandler struct {
	Service      *services.CategoryService
	StatsService *services.StatsService
}

// NewCategoryHandler creates a new instance of CategoryHandler.
func NewCategoryHandler(service *services.CategoryService, statsService *services.StatsService) *CategoryHandler {
	return &CategoryHandler{
		Service:      service,
		StatsService: statsService,
	}
}

// GetCategoriesHandler lists all skill categories.
func (h *CategoryHandler) GetCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Service.GetCategories(r.Context())
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch categories")
		http.Error(w, "Failed to fetch categories", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(categories)
}

// GetCategoryHandler fetches a single category by its ID.
func (h *CategoryHandler) GetCategoryHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryID := vars["id"]

	category, err := h.Service.GetCategory(r.Context(), categoryID)
	if err != nil || category == nil {
		logrus.WithField("categoryID", categoryID).Warn("Category not found")
		http.Error(w, "Category not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(category)
}

// GetSubSkillsHandler lists the sub-skills of a category.
func (h *CategoryHandler) GetSubSkillsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryID := vars["id"]

	subSkills, err := h.Service.GetSubSkills(r.Context(), categoryID)
	if err != nil {
		logrus.WithError(err).WithField("categoryID", categoryID).Error("Failed to fetch sub-skills")
		http.Error(w, "Failed to fetch sub-skills", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(subSkills)
}

// CreateCategoryHandler defines a new category. Admin only.
func (h *CategoryHandler) CreateCategoryHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var category struct {
		Name         string  `json:"name"`
		Slug         string  `json:"slug"`
		Description  string  `json:"description,omitempty"`
		Icon         string  `json:"icon"`
		Color        string  `json:"color"`
		XPMultiplier float64 `json:"xp_multiplier"`
	}
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during category creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateCategory(r.Context(), &models.Category{
		Name:         category.Name,
		Slug:         category.Slug,
		Description:  category.Description,
		Icon:         category.Icon,
		Color:        category.Color,
		XPMultiplier: category.XPMultiplier,
	})
	if err != nil {
		logrus.WithError(err).Error("Failed to create category")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logrus.WithFields(logrus.Fields{
		"adminID":    claims.UserID,
		"categoryID": created.ID.Hex(),
	}).Info("Category created")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(created)
}

// GetCategoryStatsHandler returns the logged-in user's aggregated stats
// for one category. An optional target_hours query parameter overrides
// the default goal target used for the progress percentage.
func (h *CategoryHandler) GetCategoryStatsHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryID := vars["id"]

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

	var targetHours float64
	if targetParam := r.URL.Query().Get("target_hours"); targetParam != "" {
		parsed, err := strconv.ParseFloat(targetParam, 64)
		if err != nil || parsed <= 0 {
			http.Error(w, "Invalid target_hours", http.StatusBadRequest)
			return
		}
		targetHours = parsed
	}

	stats, err := h.StatsService.GetCategoryStats(r.Context(), userID, categoryID, targetHours)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"userID":     claims.UserID,
			"categoryID": categoryID,
		}).Error("Failed to compute category stats")
		http.Error(w, "Failed to compute stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

// GetLeaderboardHandler returns the category leaderboard, top users by XP.
func (h *CategoryHandler) GetLeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	categoryID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	limit := 0
	if limitParam := r.URL.Query().Get("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed < 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.StatsService.GetLeaderboard(r.Context(), categoryID, limit)
	if err != nil {
		logrus.WithError(err).WithField("categoryID", categoryID).Error("Failed to compute leaderboard")
		http.Error(w, "Failed to compute leaderboard", http.StatusInternalServerError)
		return
	}

	logrus.WithFields(logrus.Fields{
		"categoryID": categoryID,
		"entries":    len(entries),
	}).Info("Leaderboard computed")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entries)
}
