package services

import (
	"context"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotificationPublisher pushes a notification to a live delivery channel
// (the websocket hub). Delivery is best effort; the stored notification is
// the source of truth.
type NotificationPublisher interface {
	Publish(userID string, notification *models.Notification)
}

type NotificationService struct {
	repo      *repository.NotificationRepository
	publisher NotificationPublisher
}

func NewNotificationService(repo *repository.NotificationRepository, publisher NotificationPublisher) *NotificationService {
	return &NotificationService{
		repo:      repo,
		publisher: publisher,
	}
}

// CreateNotification stores a new notification for a user and pushes it to
// any live websocket connection.
func (s *NotificationService) CreateNotification(ctx context.Context, userID primitive.ObjectID, notifType, title, message string, targetID *primitive.ObjectID) error {
	notif := &models.Notification{
		UserID:   userID,
		Type:     notifType,
		Title:    title,
		Message:  message,
		Read:     false,
		TargetID: targetID,
	}
	if err := s.repo.CreateNotification(ctx, notif); err != nil {
		return err
	}

	if s.publisher != nil {
		s.publisher.Publish(userID.Hex(), notif)
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"type":    notifType,
	}).Info("Notification created")
	return nil
}

// GetUserNotifications returns all notifications for a user.
func (s *NotificationService) GetUserNotifications(ctx context.Context, userID primitive.ObjectID) ([]models.Notification, error) {
	return s.repo.GetUserNotifications(ctx, userID)
}

// MarkNotificationAsRead sets the "read" status of a notification to true.
func (s *NotificationService) MarkNotificationAsRead(ctx context.Context, notifID primitive.ObjectID) error {
	return s.repo.MarkAsRead(ctx, notifID)
}

// DeleteNotification deletes a specific notification.
func (s *NotificationService) DeleteNotification(ctx context.Context, notifID primitive.ObjectID) error {
	return s.repo.DeleteNotification(ctx, notifID)
}

// CleanupExpiredNotifications is called periodically by cron to delete old ones.
func (s *NotificationService) CleanupExpiredNotifications(ctx context.Context) error {
	return s.repo.DeleteExpiredNotifications(ctx)
}
