package services_test

import (
	"testing"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCategoryID(categoryID string) ([]models.Product, error) {
	args := m.Called(categoryID)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) CountByCategoryID(categoryID string) (int64, error) {
	args := m.Called(categoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(mockProductRepo, mockCategoryRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Leche entera", Price: 1.20, CategoryID: "cat-1"},
		{ID: "2", Name: "Queso fresco", Price: 3.50, CategoryID: "cat-1"},
	}

	mockProductRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockProductRepo.AssertExpectations(t)
}

func TestProductService_GetProductsByCategoryName(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(mockProductRepo, mockCategoryRepo, nil)

	category := &models.Category{ID: "cat-1", Name: "lacteos"}
	expectedProducts := []models.Product{
		{ID: "1", Name: "Leche entera", Price: 1.20, CategoryID: "cat-1"},
	}

	// Category exists with products
	mockCategoryRepo.On("GetByName", "lacteos").Return(category, nil).Once()
	mockProductRepo.On("GetByCategoryID", "cat-1").Return(expectedProducts, nil).Once()
	products, err := service.GetProductsByCategoryName("lacteos")
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)

	// Category exists but holds no products: empty slice, not an error
	mockCategoryRepo.On("GetByName", "lacteos").Return(category, nil).Once()
	mockProductRepo.On("GetByCategoryID", "cat-1").Return([]models.Product{}, nil).Once()
	products, err = service.GetProductsByCategoryName("lacteos")
	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)

	// Unknown category name
	mockCategoryRepo.On("GetByName", "desconocida").Return(nil, repositories.ErrCategoryNotFound).Once()
	_, err = service.GetProductsByCategoryName("desconocida")
	assert.ErrorIs(t, err, repositories.ErrCategoryNotFound)

	// Case-sensitive match: "Lacteos" is not "lacteos"
	mockCategoryRepo.On("GetByName", "Lacteos").Return(nil, repositories.ErrCategoryNotFound).Once()
	_, err = service.GetProductsByCategoryName("Lacteos")
	assert.ErrorIs(t, err, repositories.ErrCategoryNotFound)

	mockProductRepo.AssertExpectations(t)
	mockCategoryRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(mockProductRepo, mockCategoryRepo, nil)

	category := &models.Category{ID: "cat-1", Name: "lacteos"}
	newProduct := &models.Product{Name: "Yogur natural", Price: 0.80, CategoryID: "cat-1"}

	// Test successful creation
	mockCategoryRepo.On("GetByID", "cat-1").Return(category, nil).Once()
	mockProductRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	assert.Equal(t, *category, newProduct.Category)
	mockProductRepo.AssertExpectations(t)
	mockCategoryRepo.AssertExpectations(t)

	// Test creation with an unknown category reference
	badProduct := &models.Product{Name: "Fantasma", Price: 1.00, CategoryID: "cat-99"}
	mockCategoryRepo.On("GetByID", "cat-99").Return(nil, repositories.ErrCategoryNotFound).Once()
	err = service.CreateProduct(badProduct)
	assert.ErrorIs(t, err, repositories.ErrCategoryNotFound)
	mockProductRepo.AssertExpectations(t)
	mockCategoryRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(mockProductRepo, mockCategoryRepo, nil)

	category := &models.Category{ID: "cat-1", Name: "lacteos"}
	existing := &models.Product{ID: "1", Name: "Leche entera", Price: 1.20, CategoryID: "cat-1"}
	updated := &models.Product{ID: "1", Name: "Leche desnatada", Price: 1.10, CategoryID: "cat-1"}

	// Test successful update
	mockProductRepo.On("GetByID", "1").Return(existing, nil).Once()
	mockCategoryRepo.On("GetByID", "cat-1").Return(category, nil).Once()
	mockProductRepo.On("Update", updated).Return(nil).Once()
	err := service.UpdateProduct(updated)
	assert.NoError(t, err)

	// Test update of an unknown product
	missing := &models.Product{ID: "99", Name: "Nada", Price: 1.0, CategoryID: "cat-1"}
	mockProductRepo.On("GetByID", "99").Return(nil, repositories.ErrProductNotFound).Once()
	err = service.UpdateProduct(missing)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockProductRepo.AssertExpectations(t)
	mockCategoryRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockProductRepo := new(MockProductRepository)
	mockCategoryRepo := new(MockCategoryRepository)
	service := services.NewProductService(mockProductRepo, mockCategoryRepo, nil)

	existing := &models.Product{ID: "1", Name: "Leche entera", Price: 1.20, CategoryID: "cat-1"}

	// Test successful deletion
	mockProductRepo.On("GetByID", "1").Return(existing, nil).Once()
	mockProductRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)

	// Test deletion of an unknown product
	mockProductRepo.On("GetByID", "99").Return(nil, repositories.ErrProductNotFound).Once()
	err = service.DeleteProduct("99")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockProductRepo.AssertExpectations(t)
}
