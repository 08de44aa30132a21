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
)

// KudosRepository handles database operations for activity kudos.
type KudosRepository struct {
	collection *mongo.Collection
}

// NewKudosRepository creates a new instance of KudosRepository.
func NewKudosRepository(db *mongo.Database) *KudosRepository {
	return &KudosRepository{
		collection: db.Collection("kudos"),
	}
}

// Toggle adds the user's kudos to an activity, or removes it if already
// given. Returns true when kudos is now present.
func (r *KudosRepository) Toggle(ctx context.Context, activityID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{"activity_id": activityID, "user_id": userID}

	result, err := r.collection.DeleteOne(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to toggle kudos: %v", err)
	}
	if result.DeletedCount > 0 {
		return false, nil
	}

	kudos := &models.Kudos{
		ActivityID: activityID,
		UserID:     userID,
		CreatedAt:  time.Now(),
	}
	if _, err := r.collection.InsertOne(ctx, kudos); err != nil {
		logger.Log.WithError(err).Error("Failed to insert kudos")
		return false, fmt.Errorf("failed to give kudos: %v", err)
	}
	return true, nil
}

// CountForActivity returns the number of kudos on an activity.
func (r *KudosRepository) CountForActivity(ctx context.Context, activityID primitive.ObjectID) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"activity_id": activityID})
	if err != nil {
		return 0, fmt.Errorf("failed to count kudos: %v", err)
	}
	return count, nil
}
