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

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only category routes.
func (h *CategoryHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/categorias/", h.HandleList)
	router.Get("/categorias/:id", h.HandleGetByID)
}

// RegisterProtectedRoutes registers the mutating category routes. The caller
// is expected to wrap the router in the auth middleware.
func (h *CategoryHandler) RegisterProtectedRoutes(router fiber.Router) {
	router.Post("/categorias/", h.HandleCreate)
	router.Put("/categorias/:id", h.HandleUpdate)
	router.Patch("/categorias/:id", h.HandleUpdate)
	router.Delete("/categorias/:id", h.HandleDelete)
}

// HandleList retrieves all categories, ordered by name.
func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		log.Printf("Error getting all categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
		})
	}
	return c.JSON(categories)
}

// HandleGetByID retrieves a single category by its ID.
func (h *CategoryHandler) HandleGetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	category, err := h.service.GetCategoryByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		}
		log.Printf("Error getting category by ID %s: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve category",
		})
	}
	return c.JSON(category)
}

// HandleCreate creates a new category.
func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(category); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.CreateCategory(&category); err != nil {
		log.Printf("Error creating category: %v", err)
		if errors.Is(err, services.ErrCategoryNameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Category creation failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create category",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdate updates an existing category. PUT and PATCH share the same
// semantics: the full payload replaces the stored record.
func (h *CategoryHandler) HandleUpdate(c *fiber.Ctx) error {
	id := c.Params("id")
	var category models.Category
	if err := c.BodyParser(&category); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	category.ID = id

	if err := h.validate.Struct(category); err != nil {
		return validationErrorResponse(c, err)
	}

	if err := h.service.UpdateCategory(&category); err != nil {
		log.Printf("Error updating category %s: %v", id, err)
		switch {
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		case errors.Is(err, services.ErrCategoryNameTaken):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Category update failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update category",
		})
	}

	return c.JSON(category)
}

// HandleDelete deletes a category. Deletion is rejected with 409 while
// products still reference the category.
func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteCategory(id); err != nil {
		log.Printf("Error deleting category %s: %v", id, err)
		switch {
		case errors.Is(err, repositories.ErrCategoryNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Category not found",
			})
		case errors.Is(err, services.ErrCategoryInUse):
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Category still has products; move or delete them first",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete category",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Category deleted successfully",
	})
}
