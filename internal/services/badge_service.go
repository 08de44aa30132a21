package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillforge-app/backend/internal/engine"
	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BadgeService encapsulates badge definitions and awards, both the
// automatic criteria checks and manual admin awards.
type BadgeService struct {
	repo                *repository.BadgeRepository
	activityRepo        *repository.ActivityRepository
	NotificationService *NotificationService
}

// NewBadgeService creates a new instance of BadgeService.
func NewBadgeService(repo *repository.BadgeRepository, activityRepo *repository.ActivityRepository, notificationService *NotificationService) *BadgeService {
	return &BadgeService{
		repo:                repo,
		activityRepo:        activityRepo,
		NotificationService: notificationService,
	}
}

// CreateBadge defines a new badge. Admin only.
func (s *BadgeService) CreateBadge(ctx context.Context, badge *models.Badge) (*models.Badge, error) {
	if badge.Name == "" {
		return nil, fmt.Errorf("badge name is required")
	}
	switch badge.Tier {
	case "bronze", "silver", "gold", "platinum":
	default:
		return nil, fmt.Errorf("invalid badge tier: %s", badge.Tier)
	}

	created, err := s.repo.CreateBadge(ctx, badge)
	if err != nil {
		return nil, fmt.Errorf("failed to create badge: %v", err)
	}
	return created, nil
}

// GetBadges lists badge definitions, optionally for one category.
func (s *BadgeService) GetBadges(ctx context.Context, categoryID *primitive.ObjectID) ([]models.Badge, error) {
	return s.repo.GetBadges(ctx, categoryID)
}

// BadgeWithStatus is a badge definition annotated with whether the viewer
// has earned it.
type BadgeWithStatus struct {
	models.Badge
	Earned bool `json:"earned"`
}

// GetBadgesForUser lists badge definitions with the viewer's earned flag,
// optionally for one category.
func (s *BadgeService) GetBadgesForUser(ctx context.Context, userID primitive.ObjectID, categoryID *primitive.ObjectID) ([]BadgeWithStatus, error) {
	badges, err := s.repo.GetBadges(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	awards, err := s.repo.GetUserBadges(ctx, userID)
	if err != nil {
		return nil, err
	}
	earned := make(map[primitive.ObjectID]bool, len(awards))
	for _, award := range awards {
		earned[award.BadgeID] = true
	}

	result := make([]BadgeWithStatus, 0, len(badges))
	for _, badge := range badges {
		result = append(result, BadgeWithStatus{Badge: badge, Earned: earned[badge.ID]})
	}
	return result, nil
}

// GetUserBadges lists a user's earned badges.
func (s *BadgeService) GetUserBadges(ctx context.Context, userID primitive.ObjectID) ([]models.UserBadge, error) {
	return s.repo.GetUserBadges(ctx, userID)
}

// AwardBadge manually awards a badge to a user. Admin only.
func (s *BadgeService) AwardBadge(ctx context.Context, userID, badgeID primitive.ObjectID) (*models.UserBadge, error) {
	badge, err := s.repo.GetBadgeByID(ctx, badgeID)
	if err != nil {
		return nil, fmt.Errorf("badge not found: %v", err)
	}

	award, err := s.repo.AwardBadge(ctx, userID, badgeID)
	if err != nil {
		return nil, err
	}

	s.notifyAward(userID, badge)
	return award, nil
}

// CheckAndAwardForCategory evaluates the category's badge criteria against
// the user's current stats and awards anything newly earned. Called after
// an activity is approved.
func (s *BadgeService) CheckAndAwardForCategory(ctx context.Context, userID, categoryID primitive.ObjectID) error {
	badges, err := s.repo.GetBadges(ctx, &categoryID)
	if err != nil {
		return fmt.Errorf("failed to fetch category badges: %v", err)
	}
	if len(badges) == 0 {
		return nil
	}

	activities, err := s.activityRepo.GetApprovedActivities(ctx, userID, &categoryID, nil, nil)
	if err != nil {
		return fmt.Errorf("failed to fetch activities for badge check: %v", err)
	}
	stats, err := engine.ComputeCategoryStats(activities, categoryID, engine.DefaultTargetHours)
	if err != nil {
		return err
	}

	for i := range badges {
		badge := badges[i]
		if !engine.BadgeCriteriaMet(badge.Criteria, stats) {
			continue
		}

		_, err := s.repo.AwardBadge(ctx, userID, badge.ID)
		if errors.Is(err, repository.ErrBadgeAlreadyAwarded) {
			continue
		}
		if err != nil {
			logrus.WithError(err).WithField("badge_id", badge.ID.Hex()).Warn("Failed to auto-award badge")
			continue
		}

		s.notifyAward(userID, &badge)
	}
	return nil
}

func (s *BadgeService) notifyAward(userID primitive.ObjectID, badge *models.Badge) {
	go func() {
		err := s.NotificationService.CreateNotification(
			context.Background(),
			userID,
			"badge_earned",
			"Badge Earned",
			fmt.Sprintf("You earned the %s badge \"%s\"!", badge.Tier, badge.Name),
			&badge.ID,
		)
		if err != nil {
			logrus.WithError(err).Warn("Failed to send badge notification")
		}
	}()
}
