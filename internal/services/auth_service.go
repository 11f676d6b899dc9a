package services

import (
	"errors"
	"fmt"
	"time"

	"catalogo/internal/models"
	"catalogo/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// Token types embedded in the "type" claim. A refresh token can never be
// used as a bearer credential and vice versa.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Errors returned by AuthService. The messages are deliberately generic so
// callers cannot tell a bad password from an unknown user or an expired
// token from a forged one.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameTaken      = errors.New("username already taken")
)

// TokenPair bundles a short-lived access token with a longer-lived refresh
// token.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// RegisterUser registers a new user, hashes their password, and saves them
// to the database. New users are active by default.
func (s *AuthService) RegisterUser(user *models.User) error {
	if existingUser, err := s.userRepo.GetByUsername(user.Username); err == nil && existingUser != nil {
		return ErrUsernameTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword) // Store the hashed password
	user.IsActive = true

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateUsername) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns a fresh token pair. Any
// failure, including an inactive account, yields ErrInvalidCredentials.
func (s *AuthService) LoginUser(username, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	access, err := s.signToken(user, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.signToken(user, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &TokenPair{Access: access, Refresh: refresh}, nil
}

// RefreshAccessToken mints a new access token from a valid refresh token.
// The refresh token is not rotated; it stays valid until its own expiry.
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	claims, err := s.ValidateToken(refreshToken, TokenTypeRefresh)
	if err != nil {
		return "", err
	}

	user := &models.User{
		ID:       fmt.Sprintf("%v", claims["user_id"]),
		Username: fmt.Sprintf("%v", claims["username"]),
	}
	access, err := s.signToken(user, TokenTypeAccess, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}
	return access, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if
// valid. wantType restricts the "type" claim; pass an empty string to accept
// any token type. The check is pure: no repository access, safe to call
// concurrently.
func (s *AuthService) ValidateToken(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if wantType != "" && claims["type"] != wantType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// signToken builds and signs a token for the given user with the given type
// and lifetime.
func (s *AuthService) signToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"type":     tokenType,
		"exp":      now.Add(ttl).Unix(), // Token expiration time
		"iat":      now.Unix(),          // Issued at time
	})
	return token.SignedString(s.jwtSecret)
}
