package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"budgetflow/internal/config"
	"budgetflow/internal/domain"
	"budgetflow/internal/service"
	"budgetflow/mocks"
)

func jwtConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-at-least-32-characters",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "budgetflow-test",
	}
}

func activeUser(t *testing.T, password string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Username:     "bayarmaa",
		Email:        "bayarmaa@example.mn",
		PasswordHash: string(hash),
		Role:         domain.RolePlanner,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, jwtConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "bayarmaa").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "bayarmaa",
		Password: "correct-password",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "bayarmaa", claims.Username)
	assert.Equal(t, domain.RolePlanner, claims.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, jwtConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "bayarmaa").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "bayarmaa",
		Password: "wrong-password",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, jwtConfig())

	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "ghost",
		Password: "whatever-long",
	})

	// Unknown usernames and wrong passwords are indistinguishable to callers.
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, jwtConfig())

	user := activeUser(t, "correct-password")
	user.IsActive = false
	userRepo.On("GetByUsername", mock.Anything, "bayarmaa").Return(user, nil)

	_, err := svc.Login(context.Background(), service.LoginInput{
		Username: "bayarmaa",
		Password: "correct-password",
	})

	assert.ErrorIs(t, err, domain.ErrUserInactive)
}

func TestAuthService_ValidateToken_RejectsRefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, jwtConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "bayarmaa").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "bayarmaa",
		Password: "correct-password",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, jwtConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "bayarmaa").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "bayarmaa",
		Password: "correct-password",
	})
	require.NoError(t, err)

	renewed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renewed.AccessToken)

	claims, err := svc.ValidateToken(renewed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestAuthService_RefreshToken_AccessTokenRefused(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, jwtConfig())

	user := activeUser(t, "correct-password")
	userRepo.On("GetByUsername", mock.Anything, "bayarmaa").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Username: "bayarmaa",
		Password: "correct-password",
	})
	require.NoError(t, err)

	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
