package services

import (
	"context"
	"fmt"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/internal/repository"
	"github.com/skillforge-app/backend/pkg/email"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VerificationService implements the admin workflow that transitions
// pending activities to approved or denied.
type VerificationService struct {
	activityRepo        *repository.ActivityRepository
	userRepo            *repository.UserRepository
	NotificationService *NotificationService
	BadgeService        *BadgeService
}

// NewVerificationService creates a new instance of VerificationService.
func NewVerificationService(activityRepo *repository.ActivityRepository, userRepo *repository.UserRepository, notificationService *NotificationService, badgeService *BadgeService) *VerificationService {
	return &VerificationService{
		activityRepo:        activityRepo,
		userRepo:            userRepo,
		NotificationService: notificationService,
		BadgeService:        badgeService,
	}
}

// GetPendingActivities lists activities awaiting verification.
func (s *VerificationService) GetPendingActivities(ctx context.Context, limit int64) ([]models.Activity, error) {
	activities, err := s.activityRepo.GetPendingActivities(ctx, limit)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch pending activities")
		return nil, fmt.Errorf("failed to fetch pending activities: %v", err)
	}
	return activities, nil
}

// VerifyActivity applies an admin's decision to a pending activity.
// Approval credits the stored XP snapshot to the owner's profile inside
// the repository transaction; the owner is notified either way.
func (s *VerificationService) VerifyActivity(ctx context.Context, activityID string, verifierID primitive.ObjectID, approve bool) (*models.Activity, error) {
	objID, err := primitive.ObjectIDFromHex(activityID)
	if err != nil {
		return nil, fmt.Errorf("invalid activity ID: %v", err)
	}

	status := models.ActivityDenied
	if approve {
		status = models.ActivityApproved
	}

	activity, err := s.activityRepo.VerifyActivity(ctx, objID, verifierID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to verify activity: %v", err)
	}

	go s.notifyDecision(activity, approve)

	// Approval can push the owner over a badge threshold.
	if approve && s.BadgeService != nil {
		if err := s.BadgeService.CheckAndAwardForCategory(ctx, activity.UserID, activity.CategoryID); err != nil {
			logrus.WithError(err).Warn("Badge check after verification failed")
		}
	}

	logrus.WithFields(logrus.Fields{
		"activity_id": activity.ID.Hex(),
		"status":      activity.Status,
		"verifier_id": verifierID.Hex(),
	}).Info("Activity verification processed")
	return activity, nil
}

func (s *VerificationService) notifyDecision(activity *models.Activity, approved bool) {
	ctx := context.Background()

	title := "Activity Denied"
	message := fmt.Sprintf("Your activity \"%s\" was not approved. Check the submission requirements and try again.", activity.Title)
	notifType := "activity_denied"
	if approved {
		title = "Activity Approved"
		message = fmt.Sprintf("Your activity \"%s\" was approved. You earned %d XP!", activity.Title, activity.XPEarned)
		notifType = "activity_approved"
	}

	if err := s.NotificationService.CreateNotification(ctx, activity.UserID, notifType, title, message, &activity.ID); err != nil {
		logrus.WithError(err).Warn("Failed to send verification notification")
	}

	user, err := s.userRepo.GetUserByID(ctx, activity.UserID)
	if err != nil {
		logrus.WithError(err).Warn("Failed to load user for verification email")
		return
	}
	if err := email.SendEmail(user.Email, title, message); err != nil {
		logrus.WithError(err).Warn("Failed to send verification email")
	}
}
