package services

import (
	"context"
	"fmt"
	"time"

	"github.com/skillforge-app/backend/internal/engine"
	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LogActivityRequest is the payload for logging one unit of effort.
type LogActivityRequest struct {
	CategoryID    string    `json:"category_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Date          time.Time `json:"date"`
	DurationHours float64   `json:"duration_hours"`
	PhotoURL      string    `json:"photo_url,omitempty"`
	ProofLink     string    `json:"proof_link,omitempty"`
}

// ActivityService encapsulates the business logic for the activity ledger.
type ActivityService struct {
	repo         *repository.ActivityRepository
	categoryRepo *repository.CategoryRepository
	BadgeService *BadgeService
}

// NewActivityService creates a new instance of ActivityService.
func NewActivityService(repo *repository.ActivityRepository, categoryRepo *repository.CategoryRepository, badgeService *BadgeService) *ActivityService {
	return &ActivityService{
		repo:         repo,
		categoryRepo: categoryRepo,
		BadgeService: badgeService,
	}
}

// LogActivity validates the request, computes the XP snapshot from the
// category's current multiplier, and stores the activity. Activities logged
// without proof are approved immediately and their XP applied to the
// profile in the same transaction; activities carrying proof go to the
// pending queue for admin verification.
func (s *ActivityService) LogActivity(ctx context.Context, userID primitive.ObjectID, req *LogActivityRequest) (*models.Activity, error) {
	if req.Title == "" {
		return nil, fmt.Errorf("activity title is required")
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("activity date is required")
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %v", err)
	}

	category, err := s.categoryRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		logrus.WithError(err).WithField("category_id", req.CategoryID).Warn("Unknown category in activity log")
		return nil, fmt.Errorf("category not found: %v", err)
	}

	xpEarned, err := engine.ComputeXPForActivity(req.DurationHours, *category)
	if err != nil {
		return nil, err
	}

	activity := &models.Activity{
		UserID:        userID,
		CategoryID:    categoryID,
		Title:         req.Title,
		Description:   req.Description,
		Date:          req.Date,
		DurationHours: req.DurationHours,
		XPEarned:      xpEarned,
		PhotoURL:      req.PhotoURL,
		ProofLink:     req.ProofLink,
	}

	needsVerification := req.PhotoURL != "" || req.ProofLink != ""

	var created *models.Activity
	if needsVerification {
		created, err = s.repo.CreatePendingActivity(ctx, activity)
	} else {
		created, err = s.repo.CreateApprovedActivity(ctx, activity)
	}
	if err != nil {
		logrus.WithError(err).Error("Service failed to log activity")
		return nil, fmt.Errorf("failed to log activity: %v", err)
	}

	// A directly-approved activity may complete badge criteria right away.
	if created.Status == models.ActivityApproved && s.BadgeService != nil {
		if err := s.BadgeService.CheckAndAwardForCategory(ctx, userID, categoryID); err != nil {
			logrus.WithError(err).Warn("Badge check after activity log failed")
		}
	}

	logrus.WithFields(logrus.Fields{
		"activity_id": created.ID.Hex(),
		"user_id":     userID.Hex(),
		"status":      created.Status,
		"xp_earned":   created.XPEarned,
	}).Info("Activity logged in service layer")
	return created, nil
}

// GetUserActivities returns a user's own activities in any status.
func (s *ActivityService) GetUserActivities(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Activity, error) {
	activities, err := s.repo.GetUserActivities(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %v", err)
	}
	return activities, nil
}

// GetApprovedActivities returns the filtered approved ledger slice the
// aggregation engine consumes.
func (s *ActivityService) GetApprovedActivities(ctx context.Context, userID primitive.ObjectID, categoryID *primitive.ObjectID, from, to *time.Time) ([]models.Activity, error) {
	return s.repo.GetApprovedActivities(ctx, userID, categoryID, from, to)
}

// SetPosted publishes or unpublishes one of the user's approved activities
// on the public feed.
func (s *ActivityService) SetPosted(ctx context.Context, activityID string, userID primitive.ObjectID, posted bool) error {
	objID, err := primitive.ObjectIDFromHex(activityID)
	if err != nil {
		return fmt.Errorf("invalid activity ID: %v", err)
	}
	return s.repo.SetPosted(ctx, objID, userID, posted)
}
