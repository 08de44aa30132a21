package services

import (
	"context"
	"fmt"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KudosService manages the community feed and kudos reactions on
// posted activities.
type KudosService struct {
	repo                *repository.KudosRepository
	activityRepo        *repository.ActivityRepository
	NotificationService *NotificationService
}

// NewKudosService creates a new instance of KudosService.
func NewKudosService(repo *repository.KudosRepository, activityRepo *repository.ActivityRepository, notificationService *NotificationService) *KudosService {
	return &KudosService{
		repo:                repo,
		activityRepo:        activityRepo,
		NotificationService: notificationService,
	}
}

// GetFeed returns recently posted activities with kudos counts for the viewer.
func (s *KudosService) GetFeed(ctx context.Context, viewerID primitive.ObjectID, limit int64) ([]models.FeedActivity, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.activityRepo.GetFeedActivities(ctx, viewerID, limit)
}

// ToggleKudos adds or removes the user's kudos on a posted activity and
// returns whether kudos is now present.
func (s *KudosService) ToggleKudos(ctx context.Context, activityID, userID primitive.ObjectID) (bool, error) {
	activity, err := s.activityRepo.GetActivityByID(ctx, activityID)
	if err != nil {
		return false, fmt.Errorf("activity not found: %v", err)
	}
	if !activity.IsPosted || activity.Status != models.ActivityApproved {
		return false, fmt.Errorf("activity is not posted to the feed")
	}

	added, err := s.repo.Toggle(ctx, activityID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle kudos: %v", err)
	}

	if added && activity.UserID != userID {
		go func() {
			err := s.NotificationService.CreateNotification(
				context.Background(),
				activity.UserID,
				"kudos_received",
				"Kudos",
				fmt.Sprintf("Someone gave kudos to your activity \"%s\"", activity.Title),
				&activity.ID,
			)
			if err != nil {
				logrus.WithError(err).Warn("Failed to send kudos notification")
			}
		}()
	}

	return added, nil
}
