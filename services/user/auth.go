package user

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"slotswapper/models"
	"slotswapper/utils"
)

// Register creates a new user, issues a token, and stores its hash so the
// auth middleware can validate against the record on a cache miss.
func (s *DefaultUserService) Register(ctx context.Context, user models.User) (*AuthResponse, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)

	if user.Email == "" || user.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if user.Username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(user.Password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters long")
	}

	existing, err := s.Repo.GetByEmail(ctx, user.Email)
	if err != nil {
		utils.GetLogger().Error("failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	user.PasswordHash = string(hashedPassword)
	user.Password = ""

	user.ID = uuid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if err := s.Repo.Create(ctx, &user); err != nil {
		utils.GetLogger().Error("failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return s.issueToken(ctx, &user)
}

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		utils.GetLogger().Error("failed to fetch user for login", zap.Error(err))
		return nil, fmt.Errorf("login failed, please try again")
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(ctx, user)
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// RevokeToken invalidates the user's current token and clears the auth cache.
func (s *DefaultUserService) RevokeToken(ctx context.Context, id string) error {
	if err := s.Repo.SetTokenHash(ctx, id, ""); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	cacheKey := utils.AuthCachePrefix + id
	if err := utils.GetAuthCacheClient().Del(ctx, cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to clear auth cache entry", zap.Error(err))
	}
	return nil
}

func (s *DefaultUserService) issueToken(ctx context.Context, user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, utils.AuthTokenDuration)
	if err != nil {
		utils.GetLogger().Error("failed to generate token", zap.Error(err))
		return nil, fmt.Errorf("could not issue auth token")
	}

	tokenHash := utils.HashToken(token)
	if err := s.Repo.SetTokenHash(ctx, user.ID, tokenHash); err != nil {
		utils.GetLogger().Error("failed to store token hash", zap.Error(err))
		return nil, fmt.Errorf("could not issue auth token")
	}

	cacheKey := utils.AuthCachePrefix + user.ID
	if err := utils.GetAuthCacheClient().Set(ctx, cacheKey, tokenHash, utils.AuthCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache auth token hash", zap.Error(err))
	}

	return &AuthResponse{
		ID:       user.ID,
		Token:    token,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
