package services

import (
	"fmt"
	"log"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/pkg/rabbitmq"
)

// ProductService handles business logic related to products.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	mqClient     *rabbitmq.Client // RabbitMQ client, optional
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		mqClient:     mqClient,
	}
}

// GetAllProducts retrieves all products with their category embedded.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetProductsByCategoryName retrieves all products in the category with the
// given name. The name match is case-sensitive. An existing category with no
// products yields an empty slice; an unknown name yields
// repositories.ErrCategoryNotFound.
func (s *ProductService) GetProductsByCategoryName(name string) ([]models.Product, error) {
	category, err := s.categoryRepo.GetByName(name)
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByCategoryID(category.ID)
}

// CreateProduct creates a new product. The referenced category must exist.
func (s *ProductService) CreateProduct(product *models.Product) error {
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return err
	}
	product.Category = *category

	if err := s.productRepo.Create(product); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}

	s.publishEvent("product.created", product)
	return nil
}

// UpdateProduct updates an existing product, re-checking the category
// reference.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if _, err := s.productRepo.GetByID(product.ID); err != nil {
		return err
	}
	category, err := s.categoryRepo.GetByID(product.CategoryID)
	if err != nil {
		return err
	}
	product.Category = *category

	if err := s.productRepo.Update(product); err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	s.publishEvent("product.updated", product)
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.publishEvent("product.deleted", product)
	return nil
}

// publishEvent publishes a catalog change event. Publishing is best-effort:
// a missing or failing broker never fails the store mutation.
func (s *ProductService) publishEvent(event string, product *models.Product) {
	if s.mqClient == nil {
		return
	}
	err := s.mqClient.PublishCatalogEvent(event, map[string]interface{}{
		"productID":  product.ID,
		"name":       product.Name,
		"price":      product.Price,
		"categoryID": product.CategoryID,
	})
	if err != nil {
		log.Printf("Warning: Failed to publish %s event for product %s: %v", event, product.ID, err)
	}
}
