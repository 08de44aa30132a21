package services

import (
	"context"
	"fmt"

	"github.com/skillforge-app/backend/internal/engine"
	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatsService assembles ledger data for the aggregation engine and shapes
// the results for the API. All arithmetic lives in the engine package.
type StatsService struct {
	activityRepo *repository.ActivityRepository
	categoryRepo *repository.CategoryRepository
	userRepo     *repository.UserRepository
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(activityRepo *repository.ActivityRepository, categoryRepo *repository.CategoryRepository, userRepo *repository.UserRepository) *StatsService {
	return &StatsService{
		activityRepo: activityRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// GetCategoryStats computes one user's aggregate in one category. A zero
// targetHours falls back to the default 50 hour target.
func (s *StatsService) GetCategoryStats(ctx context.Context, userID primitive.ObjectID, categoryID string, targetHours float64) (*models.CategoryStats, error) {
	objID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %v", err)
	}

	category, err := s.categoryRepo.GetCategoryByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("category not found: %v", err)
	}

	activities, err := s.activityRepo.GetApprovedActivities(ctx, userID, &objID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %v", err)
	}

	if targetHours <= 0 {
		targetHours = engine.DefaultTargetHours
	}
	stats, err := engine.ComputeCategoryStats(activities, objID, targetHours)
	if err != nil {
		return nil, err
	}
	stats.Category = category

	return &stats, nil
}

// GetReportCard computes the full per-category breakdown for one user plus
// their most recent approved activities.
func (s *StatsService) GetReportCard(ctx context.Context, userID primitive.ObjectID) (*models.ReportCard, error) {
	categories, err := s.categoryRepo.GetAllCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %v", err)
	}

	activities, err := s.activityRepo.GetApprovedActivities(ctx, userID, nil, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %v", err)
	}

	byCategory := make(map[primitive.ObjectID][]models.Activity)
	for _, a := range activities {
		byCategory[a.CategoryID] = append(byCategory[a.CategoryID], a)
	}

	report := &models.ReportCard{}
	for i := range categories {
		category := categories[i]
		stats, err := engine.ComputeCategoryStats(byCategory[category.ID], category.ID, engine.DefaultTargetHours)
		if err != nil {
			return nil, err
		}
		stats.Category = &category
		report.Stats = append(report.Stats, stats)
		report.TotalXP += stats.TotalXP
		report.TotalHours += stats.TotalHours
	}

	// Activities arrive newest first from the repository.
	const recentLimit = 10
	if len(activities) > recentLimit {
		report.RecentActivities = activities[:recentLimit]
	} else {
		report.RecentActivities = activities
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID.Hex(),
		"total_xp": report.TotalXP,
	}).Info("Report card computed")
	return report, nil
}

// GetLeaderboard ranks users by approved XP in one category and attaches
// their public profiles.
func (s *StatsService) GetLeaderboard(ctx context.Context, categoryID string, limit int) ([]models.LeaderboardEntry, error) {
	objID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %v", err)
	}

	activities, err := s.activityRepo.GetApprovedByCategory(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category activities: %v", err)
	}

	entries := engine.ComputeLeaderboard(activities, limit)
	if len(entries) == 0 {
		return entries, nil
	}

	ids := make([]primitive.ObjectID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.UserID)
	}
	users, err := s.userRepo.GetUsersByIDs(ctx, ids)
	if err != nil {
		logrus.WithError(err).Warn("Failed to attach profiles to leaderboard")
		return entries, nil
	}

	profiles := make(map[primitive.ObjectID]*models.PublicUser, len(users))
	for i := range users {
		user := users[i]
		profiles[user.ID] = &models.PublicUser{
			ID:        user.ID,
			FullName:  user.FullName,
			AvatarURL: user.AvatarURL,
			Level:     user.Level,
			TotalXP:   user.TotalXP,
		}
	}
	for i := range entries {
		entries[i].Profile = profiles[entries[i].UserID]
	}

	return entries, nil
}
