package user

import (
	"context"
	"errors"

	userRepo "slotswapper/database/repository/user"
	"slotswapper/models"
)

var (
	// ErrInvalidCredentials is returned when login fails. The message never
	// distinguishes a wrong password from an unknown email.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken is returned when registering with an email that is
	// already in use.
	ErrEmailTaken = errors.New("a user with this email already exists")
	// ErrUserNotFound is returned when the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// AuthResponse contains the user's ID, token, and public details.
type AuthResponse struct {
	ID       string `json:"id"`
	Token    string `json:"token"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// UserService is the identity collaborator: it issues and revokes
// credentials and resolves callers to user records. Authorization on swap
// operations happens in the swap engine against the resolved user ID.
type UserService interface {
	Register(ctx context.Context, user models.User) (*AuthResponse, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResponse, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	RevokeToken(ctx context.Context, id string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}
