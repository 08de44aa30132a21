package services

import (
	"context"
	"fmt"
	"time"

	"github.com/skillforge-app/backend/internal/engine"
	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/internal/repository"
	"github.com/skillforge-app/backend/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateGoalRequest is the payload for declaring a new goal.
type CreateGoalRequest struct {
	CategoryID  string            `json:"category_id"`
	TargetHours float64           `json:"target_hours"`
	Period      models.GoalPeriod `json:"period"`
	StartDate   time.Time         `json:"start_date"`
	EndDate     time.Time         `json:"end_date,omitempty"` // required for custom period
}

// GoalService implements the goal lifecycle: creation with derived fields,
// live evaluation against the ledger, and the one-way completion transition.
type GoalService struct {
	repo                *repository.GoalRepository
	activityRepo        *repository.ActivityRepository
	categoryRepo        *repository.CategoryRepository
	NotificationService *NotificationService
}

// NewGoalService creates a new instance of GoalService.
func NewGoalService(repo *repository.GoalRepository, activityRepo *repository.ActivityRepository, categoryRepo *repository.CategoryRepository, notificationService *NotificationService) *GoalService {
	return &GoalService{
		repo:                repo,
		activityRepo:        activityRepo,
		categoryRepo:        categoryRepo,
		NotificationService: notificationService,
	}
}

// CreateGoal validates the request, freezes the XP target from the
// category's current multiplier and derives the end date from the period.
func (s *GoalService) CreateGoal(ctx context.Context, userID primitive.ObjectID, req *CreateGoalRequest) (*models.Goal, error) {
	if req.TargetHours <= 0 {
		logger.Log.Warn("Non-positive target hours in goal creation")
		return nil, engine.ErrInvalidTargetHours
	}

	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %v", err)
	}
	category, err := s.categoryRepo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("category not found: %v", err)
	}

	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = time.Now().Truncate(24 * time.Hour)
	}
	endDate, err := engine.GoalEndDate(req.Period, startDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	// The XP target is a snapshot of the multiplier at creation time, the
	// same rule activities follow.
	targetXP, err := engine.ComputeXPForActivity(req.TargetHours, *category)
	if err != nil {
		return nil, err
	}

	goal := &models.Goal{
		UserID:      userID,
		CategoryID:  categoryID,
		TargetHours: req.TargetHours,
		TargetXP:    targetXP,
		Period:      req.Period,
		StartDate:   startDate,
		EndDate:     endDate,
		IsCompleted: false,
	}

	createdGoal, err := s.repo.CreateGoal(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create goal")
		return nil, fmt.Errorf("failed to create goal: %v", err)
	}

	logger.Log.WithField("goal_id", createdGoal.ID.Hex()).Info("Goal created in service layer")
	return createdGoal, nil
}

// GetGoals returns a user's goals with live progress. Every read
// re-evaluates each goal against its activity window; a goal crossing 100%
// for the first time is transitioned to completed exactly once.
func (s *GoalService) GetGoals(ctx context.Context, userID primitive.ObjectID, categoryID *primitive.ObjectID) ([]models.EvaluatedGoal, error) {
	goals, err := s.repo.GetGoalsByUser(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch goals: %v", err)
	}

	evaluated := make([]models.EvaluatedGoal, 0, len(goals))
	for i := range goals {
		result, err := s.evaluate(ctx, goals[i])
		if err != nil {
			return nil, err
		}
		evaluated = append(evaluated, result)
	}
	return evaluated, nil
}

// GetGoal returns one goal with live progress.
func (s *GoalService) GetGoal(ctx context.Context, id string, userID primitive.ObjectID) (*models.EvaluatedGoal, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid goal ID: %v", err)
	}

	goal, err := s.repo.GetGoalByID(ctx, objID)
	if err != nil {
		return nil, fmt.Errorf("goal not found: %v", err)
	}
	if goal.UserID != userID {
		return nil, fmt.Errorf("goal does not belong to user")
	}

	result, err := s.evaluate(ctx, *goal)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// evaluate runs the engine over the goal's activity window and persists the
// completion transition when the threshold is first crossed.
func (s *GoalService) evaluate(ctx context.Context, goal models.Goal) (models.EvaluatedGoal, error) {
	activities, err := s.activityRepo.GetApprovedActivities(ctx, goal.UserID, &goal.CategoryID, &goal.StartDate, &goal.EndDate)
	if err != nil {
		return models.EvaluatedGoal{}, fmt.Errorf("failed to fetch goal activities: %v", err)
	}

	result := engine.EvaluateGoal(goal, activities)
	if !result.CompletionEvent {
		return result, nil
	}

	completedAt := time.Now()
	won, err := s.repo.MarkCompleted(ctx, goal.ID, completedAt)
	if err != nil {
		return models.EvaluatedGoal{}, fmt.Errorf("failed to complete goal: %v", err)
	}
	if !won {
		// Another evaluation got there first; the event is theirs.
		result.CompletionEvent = false
		result.IsCompleted = true
		return result, nil
	}

	result.IsCompleted = true
	result.CompletedAt = &completedAt

	go func() {
		err := s.NotificationService.CreateNotification(
			context.Background(),
			goal.UserID,
			"goal_completed",
			"Goal Completed",
			fmt.Sprintf("You reached your %.0f hour target. Congratulations!", goal.TargetHours),
			&goal.ID,
		)
		if err != nil {
			logrus.WithError(err).Warn("Failed to send goal completed notification")
		}
	}()

	return result, nil
}

// DeleteGoal removes one of the user's goals. Completed goals cannot be
// deleted.
func (s *GoalService) DeleteGoal(ctx context.Context, id string, userID primitive.ObjectID) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid goal ID: %v", err)
	}

	if err := s.repo.DeleteGoal(ctx, objID, userID); err != nil {
		logger.Log.WithField("goal_id", id).WithError(err).Error("Failed to delete goal")
		return fmt.Errorf("failed to delete goal: %v", err)
	}

	logger.Log.WithField("goal_id", id).Info("Goal deleted successfully in service layer")
	return nil
}

// GetGoalsEndingSoon lists active goals whose window closes within the
// given duration; used by the reminder job.
func (s *GoalService) GetGoalsEndingSoon(ctx context.Context, within time.Duration) ([]models.Goal, error) {
	return s.repo.GetActiveGoalsEndingBefore(ctx, time.Now().Add(within))
}
