// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"medcare/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshInput carries the refresh token presented to mint a new access token.
type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account together with its first
// token pair, so clients are signed in right after registration.
type RegisterOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// LoginOutput returns the token pair after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// RefreshOutput returns the replacement access token. The refresh token
// itself is never rotated here.
type RefreshOutput struct {
	AccessToken string
}

// AuthUsecase defines the interface for identity and credential operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)
	GetMe(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
