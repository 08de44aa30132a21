package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/skillforge-app/backend/internal/services"
	"github.com/sirupsen/logrus"
)

// ReminderWindow is how far ahead the daily scan looks for goals about
// to end.
const ReminderWindow = 24 * time.Hour

type DeadlineNotifier struct {
	GoalService         *services.GoalService
	NotificationService *services.NotificationService
}

// NewDeadlineNotifier creates a new instance of DeadlineNotifier.
func NewDeadlineNotifier(goalService *services.GoalService, notifService *services.NotificationService) *DeadlineNotifier {
	return &DeadlineNotifier{
		GoalService:         goalService,
		NotificationService: notifService,
	}
}

// RunDailyScan reminds users about active goals whose window closes within
// the reminder horizon.
func (d *DeadlineNotifier) RunDailyScan(ctx context.Context) error {
	goals, err := d.GoalService.GetGoalsEndingSoon(ctx, ReminderWindow)
	if err != nil {
		return fmt.Errorf("failed to fetch ending goals: %v", err)
	}

	for i := range goals {
		goal := goals[i]
		_ = d.NotificationService.CreateNotification(
			ctx,
			goal.UserID,
			"goal_ending_soon",
			"Goal Ending Soon",
			fmt.Sprintf("Your %.0f hour goal ends on %s. Log your remaining hours!",
				goal.TargetHours, goal.EndDate.Format("Jan 2")),
			&goal.ID,
		)
	}

	logrus.WithField("goals", len(goals)).Info("Goal deadline scan completed")
	return nil
}
