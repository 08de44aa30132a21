package scheduler

import (
	"context"

	"github.com/skillforge-app/backend/internal/jobs"
	"github.com/skillforge-app/backend/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartCronJobs wires the recurring background work: the daily goal
// deadline scan and the expired notification cleanup.
func StartCronJobs(notifier *jobs.DeadlineNotifier, notificationService *services.NotificationService) *cron.Cron {
	c := cron.New()

	// Goal deadline reminders, every morning
	c.AddFunc("0 8 * * *", func() {
		if err := notifier.RunDailyScan(context.Background()); err != nil {
			logrus.WithError(err).Error("Goal deadline scan failed")
		}
	})

	// Expired notification cleanup
	c.AddFunc("@hourly", func() {
		if err := notificationService.CleanupExpiredNotifications(context.Background()); err != nil {
			logrus.WithError(err).Error("Notification cleanup failed")
		}
	})

	c.Start()
	return c
}
