package handlers

import (
	"errors"
	"log"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only product routes. The category
// name segment matches a single path segment, case-sensitively; embedded
// slashes never reach this route.
func (h *ProductHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/productos/", h.HandleList)
	router.Get("/productos/:categoria_nombre", h.HandleListByCategory)
}

// RegisterProtectedRoutes registers the mutating product routes. The caller
// is expected to wrap the router in the auth middleware.
func (h *ProductHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/productos/", h.HandleCreate)
	router.Put("/productos/:id", h.HandleUpdate)
	router.Delete("/productos/:id", h.HandleDelete)
}

// HandleList retrieves all products with their category embedded.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleListByCategory retrieves all products in the named category. An
// existing category with no products yields 200 with an empty list; an
// unknown category name yields 404.
func (h *ProductHandler) HandleListByCategory(c *fiber.Ctx) error {
	name := c.Params("categoria_nombre")
	products, err := h.service.GetProductsByCategoryName(name)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		}
		log.Printf("Error getting products for category %s: %v", name, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
		})
	}
	return c.JSON(products)
}

// HandleCreate creates a new product. The referenced category must exist.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			// A bad category reference is a payload problem, not a missing
			// resource, so it maps to 400 rather than 404.
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Product creation failed",
				"error":   "referenced category does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdate updates an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = id

	if err := h.validate.Struct(product); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", id, err)
		switch {
		case errors.Is(err, repositories.ErrProductNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Product update failed",
				"error":   "referenced category does not exist",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
		})
	}

	return c.JSON(product)
}

// HandleDelete deletes a product by its ID.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %s: %v", id, err)
		if errors.Is(err, repositories.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
	})
}
