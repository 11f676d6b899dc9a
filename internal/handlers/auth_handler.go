package handlers

import (
	"errors"
	"fmt"
	"log"

	"catalogo/internal/models"
	"catalogo/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for registration and token management.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
// All of these are public; the token endpoints authenticate via the request
// body, not the Authorization header.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/register/", h.HandleRegister)
	router.Post("/token/", h.HandleObtainTokenPair)
	router.Post("/token/refresh/", h.HandleRefresh)
	router.Post("/token/verify/", h.HandleVerify)
}

// RegisterRequest represents the request body for registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	user := &models.User{
		Username: req.Username,
		Password: req.Password,
	}
	if err := h.authService.RegisterUser(user); err != nil {
		log.Printf("Error registering user: %v", err)
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Registration failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not register user",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// CredentialsRequest represents the request body for obtaining a token pair.
type CredentialsRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleObtainTokenPair authenticates a user and issues an access/refresh
// token pair.
func (h *AuthHandler) HandleObtainTokenPair(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing token request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	pair, err := h.authService.LoginUser(req.Username, req.Password)
	if err != nil {
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
			"error":   services.ErrInvalidCredentials.Error(),
		})
	}

	return c.JSON(pair)
}

// RefreshRequest represents the request body for refreshing an access token.
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

// HandleRefresh mints a new access token from a valid refresh token.
func (h *AuthHandler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing refresh request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	access, err := h.authService.RefreshAccessToken(req.Refresh)
	if err != nil {
		log.Printf("Error refreshing access token: %v", err)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Token refresh failed",
			"error":   services.ErrInvalidToken.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"access": access,
	})
}

// VerifyRequest represents the request body for verifying a token.
type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

// HandleVerify checks a token's signature and expiry. Either token type is
// accepted; nothing new is issued and no user lookup happens.
func (h *AuthHandler) HandleVerify(c *fiber.Ctx) error {
	var req VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return validationErrorResponse(c, err)
	}

	if _, err := h.authService.ValidateToken(req.Token, ""); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Token verification failed",
			"error":   services.ErrInvalidToken.Error(),
		})
	}

	return c.JSON(fiber.Map{})
}

// validationErrorResponse converts validator errors into a 400 response with
// a per-field error map.
func validationErrorResponse(c *fiber.Ctx, err error) error {
	validationErrors := err.(validator.ValidationErrors)
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
