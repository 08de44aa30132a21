package repository

import (
	"context"
	"time"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryRepository handles database operations for the category registry.
type CategoryRepository struct {
	collection *mongo.Collection
	subskills  *mongo.Collection
}

// NewCategoryRepository creates a new instance of CategoryRepository.
func NewCategoryRepository(db *mongo.Database) *CategoryRepository {
	return &CategoryRepository{
		collection: db.Collection("categories"),
		subskills:  db.Collection("subskills"),
	}
}

// CreateCategory inserts a new category. Categories are admin-created
// reference data and immutable afterwards.
func (r *CategoryRepository) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	category.CreatedAt = time.Now()

	result, err := r.collection.InsertOne(ctx, category)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert category")
		return nil, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted category ID")
		return nil, err
	}
	category.ID = insertedID

	logger.Log.WithField("category_id", category.ID.Hex()).Info("Category created successfully")
	return category, nil
}

// GetAllCategories fetches every category sorted by name.
func (r *CategoryRepository) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch categories")
		return nil, err
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		logger.Log.WithError(err).Error("Failed to decode categories")
		return nil, err
	}
	return categories, nil
}

// GetCategoryByID fetches a single category by its ID.
func (r *CategoryRepository) GetCategoryByID(ctx context.Context, id primitive.ObjectID) (*models.Category, error) {
	var category models.Category

	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&category)
	if err != nil {
		logger.Log.WithError(err).WithField("category_id", id.Hex()).Error("Failed to find category by ID")
		return nil, err
	}
	return &category, nil
}

// GetSubSkills fetches the sub-skills listed under a category.
func (r *CategoryRepository) GetSubSkills(ctx context.Context, categoryID primitive.ObjectID) ([]models.SubSkill, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.subskills.Find(ctx, bson.M{"category_id": categoryID}, opts)
	if err != nil {
		logger.Log.WithError(err).WithField("category_id", categoryID.Hex()).Error("Failed to fetch sub-skills")
		return nil, err
	}
	defer cursor.Close(ctx)

	var subskills []models.SubSkill
	if err := cursor.All(ctx, &subskills); err != nil {
		return nil, err
	}
	return subskills, nil
}
