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

// GoalRepository struct handles database operations related to goals.
type GoalRepository struct {
	collection *mongo.Collection
}

// NewGoalRepository creates a new instance of GoalRepository.
func NewGoalRepository(db *mongo.Database) *GoalRepository {
	return &GoalRepository{
		collection: db.Collection("goals"),
	}
}

// CreateGoal creates a new goal in the database.
func (r *GoalRepository) CreateGoal(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	goal.CreatedAt = time.Now()
	goal.UpdatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, goal)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert goal")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted goal ID")
		return nil, err
	}
	goal.ID = insertedID

	logger.Log.WithField("goal_id", goal.ID.Hex()).Info("Goal created successfully")
	return goal, nil
}

// GetGoalByID fetches a goal by its ID.
func (r *GoalRepository) GetGoalByID(ctx context.Context, id primitive.ObjectID) (*models.Goal, error) {
	var goal models.Goal

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&goal)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to find goal by ID")
		return nil, err
	}
	return &goal, nil
}

// GetGoalsByUser fetches a user's goals, newest first, with an optional
// category filter.
func (r *GoalRepository) GetGoalsByUser(ctx context.Context, userID primitive.ObjectID, categoryID *primitive.ObjectID) ([]models.Goal, error) {
	filter := bson.M{"user_id": userID}
	if categoryID != nil {
		filter["category_id"] = *categoryID
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch goals")
		return nil, err
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	if err := cursor.All(ctx, &goals); err != nil {
		logger.Log.WithError(err).Error("Failed to decode goals")
		return nil, err
	}
	return goals, nil
}

// GetActiveGoalsEndingBefore fetches incomplete goals whose window closes
// before the given deadline; input for the reminder job.
func (r *GoalRepository) GetActiveGoalsEndingBefore(ctx context.Context, deadline time.Time) ([]models.Goal, error) {
	filter := bson.M{
		"is_completed": false,
		"end_date":     bson.M{"$gt": time.Now(), "$lte": deadline},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ending goals: %v", err)
	}
	defer cursor.Close(ctx)

	var goals []models.Goal
	if err := cursor.All(ctx, &goals); err != nil {
		return nil, fmt.Errorf("failed to decode ending goals: %v", err)
	}
	return goals, nil
}

// MarkCompleted performs the one-way completion transition. The filter on
// is_completed makes the check-then-set atomic: it returns true only for
// the caller that actually flipped the flag, so the completion event is
// emitted exactly once even under concurrent evaluation.
func (r *GoalRepository) MarkCompleted(ctx context.Context, id primitive.ObjectID, completedAt time.Time) (bool, error) {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": id, "is_completed": false},
		bson.M{"$set": bson.M{
			"is_completed": true,
			"completed_at": completedAt,
			"updated_at":   time.Now(),
		}},
	)
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to mark goal completed")
		return false, err
	}

	if result.ModifiedCount == 0 {
		return false, nil
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal marked completed")
	return true, nil
}

// DeleteGoal removes a goal. Completed goals are retained permanently, so
// the filter only matches active ones.
func (r *GoalRepository) DeleteGoal(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":          id,
		"user_id":      userID,
		"is_completed": false,
	})
	if err != nil {
		logger.Log.WithError(err).WithField("goal_id", id.Hex()).Error("Failed to delete goal")
		return err
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("goal not found, not owned by user, or already completed")
	}

	logger.Log.WithField("goal_id", id.Hex()).Info("Goal deleted successfully")
	return nil
}
