package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrBadgeAlreadyAwarded is returned when a user already holds the badge.
var ErrBadgeAlreadyAwarded = fmt.Errorf("user already has this badge")

// BadgeRepository handles database operations for badges and awards.
type BadgeRepository struct {
	collection *mongo.Collection
	awards     *mongo.Collection
}

// NewBadgeRepository creates a new instance of BadgeRepository.
func NewBadgeRepository(db *mongo.Database) *BadgeRepository {
	return &BadgeRepository{
		collection: db.Collection("badges"),
		awards:     db.Collection("user_badges"),
	}
}

// CreateBadge inserts a new badge definition. Admin only.
func (r *BadgeRepository) CreateBadge(ctx context.Context, badge *models.Badge) (*models.Badge, error) {
	badge.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, badge)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert badge")
		return nil, err
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		badge.ID = insertedID
	}

	logger.Log.WithField("badge_id", badge.ID.Hex()).Info("Badge created successfully")
	return badge, nil
}

// GetBadges fetches badge definitions, optionally scoped to one category.
func (r *BadgeRepository) GetBadges(ctx context.Context, categoryID *primitive.ObjectID) ([]models.Badge, error) {
	filter := bson.M{}
	if categoryID != nil {
		filter["category_id"] = *categoryID
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch badges")
		return nil, err
	}
	defer cursor.Close(ctx)

	var badges []models.Badge
	if err := cursor.All(ctx, &badges); err != nil {
		return nil, err
	}
	return badges, nil
}

// GetBadgeByID fetches a single badge definition.
func (r *BadgeRepository) GetBadgeByID(ctx context.Context, id primitive.ObjectID) (*models.Badge, error) {
	var badge models.Badge
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&badge)
	if err != nil {
		return nil, fmt.Errorf("badge not found: %v", err)
	}
	return &badge, nil
}

// AwardBadge records a badge award, rejecting duplicates per (user, badge).
func (r *BadgeRepository) AwardBadge(ctx context.Context, userID, badgeID primitive.ObjectID) (*models.UserBadge, error) {
	count, err := r.awards.CountDocuments(ctx, bson.M{"user_id": userID, "badge_id": badgeID})
	if err != nil {
		return nil, fmt.Errorf("failed to check existing award: %v", err)
	}
	if count > 0 {
		return nil, ErrBadgeAlreadyAwarded
	}

	award := &models.UserBadge{
		UserID:   userID,
		BadgeID:  badgeID,
		EarnedAt: time.Now(),
	}

	result, err := r.awards.InsertOne(ctx, award)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert badge award")
		return nil, fmt.Errorf("failed to award badge: %v", err)
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		award.ID = insertedID
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id":  userID.Hex(),
		"badge_id": badgeID.Hex(),
	}).Info("Badge awarded successfully")
	return award, nil
}

// GetUserBadges fetches all awards for one user, newest first.
func (r *BadgeRepository) GetUserBadges(ctx context.Context, userID primitive.ObjectID) ([]models.UserBadge, error) {
	opts := options.Find().SetSort(bson.D{{Key: "earned_at", Value: -1}})

	cursor, err := r.awards.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user badges: %v", err)
	}
	defer cursor.Close(ctx)

	var awards []models.UserBadge
	if err := cursor.All(ctx, &awards); err != nil {
		return nil, fmt.Errorf("failed to decode user badges: %v", err)
	}
	return awards, nil
}
