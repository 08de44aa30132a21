package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/skillforge-app/backend/internal/engine"
	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActivityRepository handles database operations for the activity ledger.
// It also owns the transactional boundary between the ledger and the
// materialized profile totals: an activity's XP and the profile's total_xp
// are always written in the same transaction.
type ActivityRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
	users      *mongo.Collection
}

// NewActivityRepository creates a new instance of ActivityRepository.
func NewActivityRepository(db *mongo.Database) *ActivityRepository {
	return &ActivityRepository{
		db:         db,
		collection: db.Collection("activities"),
		users:      db.Collection("users"),
	}
}

// CreateApprovedActivity inserts an approved activity and applies its XP to
// the owner's profile (total_xp, level, streak) in one transaction, so the
// ledger and the running total cannot desynchronize.
func (r *ActivityRepository) CreateApprovedActivity(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	activity.CreatedAt = time.Now()
	activity.Status = models.ActivityApproved

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		result, err := r.collection.InsertOne(sc, activity)
		if err != nil {
			return nil, fmt.Errorf("failed to insert activity: %v", err)
		}
		insertedID, ok := result.InsertedID.(primitive.ObjectID)
		if !ok {
			return nil, fmt.Errorf("failed to cast inserted activity ID")
		}
		activity.ID = insertedID

		return nil, r.applyXPToProfile(sc, activity.UserID, activity.XPEarned, activity.Date)
	})
	if err != nil {
		logger.Log.WithError(err).Error("Activity transaction failed")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"activity_id": activity.ID.Hex(),
		"user_id":     activity.UserID.Hex(),
		"xp_earned":   activity.XPEarned,
	}).Info("Activity created successfully")
	return activity, nil
}

// CreatePendingActivity inserts an activity awaiting admin verification.
// No XP is applied until it is approved.
func (r *ActivityRepository) CreatePendingActivity(ctx context.Context, activity *models.Activity) (*models.Activity, error) {
	activity.CreatedAt = time.Now()
	activity.Status = models.ActivityPending

	result, err := r.collection.InsertOne(ctx, activity)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert pending activity")
		return nil, fmt.Errorf("failed to insert activity: %v", err)
	}
	if insertedID, ok := result.InsertedID.(primitive.ObjectID); ok {
		activity.ID = insertedID
	}
	return activity, nil
}

// VerifyActivity transitions a pending activity to approved or denied,
// recording the verifier and timestamp. Approval applies the stored XP
// snapshot to the owner's profile within the same transaction. The filter
// on status pending makes concurrent verification of one activity safe.
func (r *ActivityRepository) VerifyActivity(ctx context.Context, activityID, verifierID primitive.ObjectID, status models.ActivityStatus) (*models.Activity, error) {
	if status != models.ActivityApproved && status != models.ActivityDenied {
		return nil, fmt.Errorf("invalid verification status: %s", status)
	}

	session, err := r.db.Client().StartSession()
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %v", err)
	}
	defer session.EndSession(ctx)

	var activity models.Activity
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		now := time.Now()
		update := bson.M{"$set": bson.M{
			"status":      status,
			"verified_by": verifierID,
			"verified_at": now,
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		err := r.collection.FindOneAndUpdate(sc,
			bson.M{"_id": activityID, "status": models.ActivityPending},
			update, opts,
		).Decode(&activity)
		if err != nil {
			return nil, fmt.Errorf("activity not found or already verified: %v", err)
		}

		if status == models.ActivityApproved {
			return nil, r.applyXPToProfile(sc, activity.UserID, activity.XPEarned, activity.Date)
		}
		return nil, nil
	})
	if err != nil {
		logger.Log.WithError(err).WithField("activity_id", activityID.Hex()).Error("Failed to verify activity")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"activity_id": activityID.Hex(),
		"status":      status,
		"verifier_id": verifierID.Hex(),
	}).Info("Activity verified successfully")
	return &activity, nil
}

// applyXPToProfile increments the profile's running total and recomputes
// the level from the new total. The streak counter advances when the user
// logs on consecutive days.
func (r *ActivityRepository) applyXPToProfile(sc mongo.SessionContext, userID primitive.ObjectID, xp int, loggedDate time.Time) error {
	var user models.User
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := r.users.FindOneAndUpdate(sc,
		bson.M{"_id": userID},
		bson.M{"$inc": bson.M{"total_xp": xp}},
		opts,
	).Decode(&user)
	if err != nil {
		return fmt.Errorf("failed to update profile XP: %v", err)
	}

	set := bson.M{
		"level":      engine.ComputeLevel(user.TotalXP),
		"updated_at": time.Now(),
	}

	day := loggedDate.Truncate(24 * time.Hour)
	lastDay := user.LastLoggedAt.Truncate(24 * time.Hour)
	switch {
	case lastDay.Equal(day):
		// same day, streak unchanged
	case lastDay.AddDate(0, 0, 1).Equal(day):
		set["streak"] = user.Streak + 1
		set["last_logged_at"] = day
	default:
		set["streak"] = 1
		set["last_logged_at"] = day
	}

	_, err = r.users.UpdateOne(sc, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update profile level: %v", err)
	}
	return nil
}

// GetUserActivities fetches a user's activities in any status, newest first.
func (r *ActivityRepository) GetUserActivities(ctx context.Context, userID primitive.ObjectID, limit int64) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activities: %v", err)
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode activities: %v", err)
	}
	return activities, nil
}

// GetApprovedActivities fetches a user's approved activities, optionally
// scoped to a category and/or an inclusive date window. This is the ledger
// read every aggregate is computed from.
func (r *ActivityRepository) GetApprovedActivities(ctx context.Context, userID primitive.ObjectID, categoryID *primitive.ObjectID, from, to *time.Time) ([]models.Activity, error) {
	filter := bson.M{
		"user_id": userID,
		"status":  models.ActivityApproved,
	}
	if categoryID != nil {
		filter["category_id"] = *categoryID
	}
	if from != nil || to != nil {
		dateFilter := bson.M{}
		if from != nil {
			dateFilter["$gte"] = *from
		}
		if to != nil {
			dateFilter["$lte"] = *to
		}
		filter["date"] = dateFilter
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch approved activities")
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetApprovedByCategory fetches approved activities for one category across
// all users; input for the leaderboard computation.
func (r *ActivityRepository) GetApprovedByCategory(ctx context.Context, categoryID primitive.ObjectID) ([]models.Activity, error) {
	filter := bson.M{
		"category_id": categoryID,
		"status":      models.ActivityApproved,
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).WithField("category_id", categoryID.Hex()).Error("Failed to fetch category activities")
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetPendingActivities fetches activities awaiting verification, oldest first.
func (r *ActivityRepository) GetPendingActivities(ctx context.Context, limit int64) ([]models.Activity, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"status": models.ActivityPending}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pending activities: %v", err)
	}
	defer cursor.Close(ctx)

	var activities []models.Activity
	if err := cursor.All(ctx, &activities); err != nil {
		return nil, fmt.Errorf("failed to decode pending activities: %v", err)
	}
	return activities, nil
}

// GetFeedActivities fetches posted, approved activities for the public feed
// with kudos counts joined in, newest first.
func (r *ActivityRepository) GetFeedActivities(ctx context.Context, viewerID primitive.ObjectID, limit int64) ([]models.FeedActivity, error) {
	if limit <= 0 {
		limit = 20
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_posted": true, "status": models.ActivityApproved}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         "kudos",
			"localField":   "_id",
			"foreignField": "activity_id",
			"as":           "kudos",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"kudos_count": bson.M{"$size": "$kudos"},
			"has_kudoed":  bson.M{"$in": bson.A{viewerID, "$kudos.user_id"}},
		}}},
		{{Key: "$project", Value: bson.M{"kudos": 0}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to aggregate feed activities")
		return nil, err
	}
	defer cursor.Close(ctx)

	var feed []models.FeedActivity
	if err := cursor.All(ctx, &feed); err != nil {
		return nil, err
	}
	return feed, nil
}

// SetPosted flips an activity's feed visibility. Only the owner's approved
// activities can be posted.
func (r *ActivityRepository) SetPosted(ctx context.Context, activityID, userID primitive.ObjectID, posted bool) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": activityID, "user_id": userID, "status": models.ActivityApproved},
		bson.M{"$set": bson.M{"is_posted": posted}},
	)
	if err != nil {
		return fmt.Errorf("failed to update posted flag: %v", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("activity not found or not approved")
	}
	return nil
}

// GetActivityByID fetches a single activity.
func (r *ActivityRepository) GetActivityByID(ctx context.Context, id primitive.ObjectID) (*models.Activity, error) {
	var activity models.Activity
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&activity)
	if err != nil {
		return nil, fmt.Errorf("failed to find activity: %v", err)
	}
	return &activity, nil
}
