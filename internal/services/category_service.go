package services

import (
	"errors"
	"fmt"
	"log"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/pkg/rabbitmq"
)

// Errors returned by CategoryService on policy violations.
var (
	ErrCategoryNameTaken = errors.New("category name already taken")
	ErrCategoryInUse     = errors.New("category still has products")
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	productRepo  repositories.ProductRepository
	mqClient     *rabbitmq.Client // RabbitMQ client, optional
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo repositories.CategoryRepository, productRepo repositories.ProductRepository, mqClient *rabbitmq.Client) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		mqClient:     mqClient,
	}
}

// GetAllCategories retrieves all categories, ordered by name.
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetCategoryByID retrieves a single category by its ID.
func (s *CategoryService) GetCategoryByID(id string) (*models.Category, error) {
	return s.categoryRepo.GetByID(id)
}

// CreateCategory creates a new category. The name must not already exist.
func (s *CategoryService) CreateCategory(category *models.Category) error {
	if existing, err := s.categoryRepo.GetByName(category.Name); err == nil && existing != nil {
		return ErrCategoryNameTaken
	}

	if err := s.categoryRepo.Create(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCategoryName) {
			// A concurrent writer can win the race between the GetByName
			// check and this insert; the constraint violation is still a
			// conflict, not a store failure.
			return ErrCategoryNameTaken
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	s.publishEvent("category.created", category)
	return nil
}

// UpdateCategory updates an existing category. Renaming onto another
// category's name is rejected.
func (s *CategoryService) UpdateCategory(category *models.Category) error {
	existing, err := s.categoryRepo.GetByID(category.ID)
	if err != nil {
		return err
	}

	if category.Name != existing.Name {
		if other, err := s.categoryRepo.GetByName(category.Name); err == nil && other != nil {
			return ErrCategoryNameTaken
		}
	}

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, repositories.ErrDuplicateCategoryName) {
			return ErrCategoryNameTaken
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	s.publishEvent("category.updated", category)
	return nil
}

// DeleteCategory deletes a category by its ID. Deletion is rejected while
// products still reference the category; callers must move or delete those
// products first.
func (s *CategoryService) DeleteCategory(id string) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategoryID(id)
	if err != nil {
		return fmt.Errorf("failed to count products for category %s: %w", id, err)
	}
	if count > 0 {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.publishEvent("category.deleted", category)
	return nil
}

// publishEvent publishes a catalog change event. Publishing is best-effort:
// a missing or failing broker never fails the store mutation.
func (s *CategoryService) publishEvent(event string, category *models.Category) {
	if s.mqClient == nil {
		return
	}
	err := s.mqClient.PublishCatalogEvent(event, map[string]interface{}{
		"categoryID": category.ID,
		"name":       category.Name,
	})
	if err != nil {
		log.Printf("Warning: Failed to publish %s event for category %s: %v", event, category.ID, err)
	}
}
