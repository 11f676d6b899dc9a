package services_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"
	"time"

	"catalogo/internal/models"
	"catalogo/internal/repositories"
	"catalogo/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const (
	testJWTSecret  = "test_jwt_secret"
	testAccessTTL  = 15 * time.Minute
	testRefreshTTL = 7 * 24 * time.Hour
)

func newTestAuthService(repo *MockUserRepository) *services.AuthService {
	return services.NewAuthService(repo, testJWTSecret, testAccessTTL, testRefreshTTL)
}

// TestMain is used to setup the test environment
func TestMain(m *testing.M) {
	// Suppress logging during tests for cleaner output
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestAuthService_RegisterUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	// Test successful registration
	user := &models.User{
		Username: "testuser",
		Password: "password123",
	}
	mockRepo.On("GetByUsername", user.Username).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	err := authService.RegisterUser(user)
	assert.NoError(t, err)
	assert.True(t, user.IsActive)
	// The stored password must be a bcrypt hash of the original
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Test username already taken
	mockRepo.On("GetByUsername", user.Username).Return(&models.User{ID: "1"}, nil).Once()
	err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)

	// Test a concurrent registration winning the race: the unique index
	// violation surfaces as the same conflict error
	mockRepo.On("GetByUsername", user.Username).Return(nil, nil).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(repositories.ErrDuplicateUsername).Once()
	err = authService.RegisterUser(user)
	assert.ErrorIs(t, err, services.ErrUsernameTaken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_LoginUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Password: string(hashedPassword),
		IsActive: true,
	}

	// Test successful login
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	pair, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	// Both tokens must carry the user identity and the right type claim
	accessClaims, err := authService.ValidateToken(pair.Access, services.TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, accessClaims["user_id"])
	assert.Equal(t, user.Username, accessClaims["username"])

	refreshClaims, err := authService.ValidateToken(pair.Refresh, services.TokenTypeRefresh)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, refreshClaims["user_id"])
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (wrong password)
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	_, err = authService.LoginUser("testuser", "wrongpassword")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test invalid credentials (user not found) — same generic error
	mockRepo.On("GetByUsername", "nonexistentuser").Return(nil, fmt.Errorf("user not found")).Once()
	_, err = authService.LoginUser("nonexistentuser", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)

	// Test inactive user — same generic error again
	inactive := &models.User{
		ID:       "user-456",
		Username: "sleeper",
		Password: string(hashedPassword),
		IsActive: false,
	}
	mockRepo.On("GetByUsername", "sleeper").Return(inactive, nil).Once()
	_, err = authService.LoginUser("sleeper", "password123")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_RefreshAccessToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Password: string(hashedPassword),
		IsActive: true,
	}
	mockRepo.On("GetByUsername", user.Username).Return(user, nil).Once()
	pair, err := authService.LoginUser("testuser", "password123")
	assert.NoError(t, err)

	// A valid refresh token mints a fresh access token
	access, err := authService.RefreshAccessToken(pair.Refresh)
	assert.NoError(t, err)
	claims, err := authService.ValidateToken(access, services.TokenTypeAccess)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims["user_id"])

	// An access token must not be accepted as a refresh token
	_, err = authService.RefreshAccessToken(pair.Access)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// An expired refresh token always fails
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"type":     services.TokenTypeRefresh,
		"exp":      time.Now().Add(-time.Hour).Unix(),
		"iat":      time.Now().Add(-2 * time.Hour).Unix(),
	})
	expiredString, _ := expired.SignedString([]byte(testJWTSecret))
	_, err = authService.RefreshAccessToken(expiredString)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := newTestAuthService(mockRepo)

	// Generate a valid access token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"type":     services.TokenTypeAccess,
		"exp":      time.Now().Add(time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	})
	validTokenString, _ := token.SignedString([]byte(testJWTSecret))

	// Test valid token, exact type
	claims, err := authService.ValidateToken(validTokenString, services.TokenTypeAccess)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	// Any token type is accepted when wantType is empty
	_, err = authService.ValidateToken(validTokenString, "")
	assert.NoError(t, err)

	// Wrong token type is rejected
	_, err = authService.ValidateToken(validTokenString, services.TokenTypeRefresh)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Malformed token string
	_, err = authService.ValidateToken("invalid.token.string", services.TokenTypeAccess)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Token signed with a different secret
	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "user-123",
		"type":    services.TokenTypeAccess,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	forgedString, _ := forged.SignedString([]byte("another_secret"))
	_, err = authService.ValidateToken(forgedString, services.TokenTypeAccess)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Expired token
	expiredToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  "user-123",
		"username": "testuser",
		"type":     services.TokenTypeAccess,
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	expiredTokenString, _ := expiredToken.SignedString([]byte(testJWTSecret))
	_, err = authService.ValidateToken(expiredTokenString, services.TokenTypeAccess)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
