package services

import (
	"context"
	"fmt"

	"github.com/skillforge-app/backend/internal/models"
	"github.com/skillforge-app/backend/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryService encapsulates the business logic for skill categories.
type CategoryService struct {
	repo *repository.CategoryRepository
}

// NewCategoryService creates a new instance of CategoryService.
func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategory defines a new skill category. Admin only.
func (s *CategoryService) CreateCategory(ctx context.Context, category *models.Category) (*models.Category, error) {
	if category.Name == "" {
		return nil, fmt.Errorf("category name is required")
	}
	if category.XPMultiplier <= 0 {
		return nil, fmt.Errorf("xp multiplier must be positive")
	}

	created, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %v", err)
	}
	return created, nil
}

// GetCategories returns every category.
func (s *CategoryService) GetCategories(ctx context.Context) ([]models.Category, error) {
	return s.repo.GetAllCategories(ctx)
}

// GetCategory fetches one category by its hex ID.
func (s *CategoryService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %v", err)
	}
	return s.repo.GetCategoryByID(ctx, objID)
}

// GetSubSkills lists the sub-skills of a category.
func (s *CategoryService) GetSubSkills(ctx context.Context, categoryID string) ([]models.SubSkill, error) {
	objID, err := primitive.ObjectIDFromHex(categoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category ID: %v", err)
	}
	return s.repo.GetSubSkills(ctx, objID)
}
