package service

import (
	"context"
	"log/slog"

	"github.com/splitease/splitease/internal/auth"
	"github.com/splitease/splitease/internal/models"
)

// AuthService handles registration and login.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
	}
}

// Register creates a new user account and returns it with a signed token.
func (s *AuthService) Register(ctx context.Context, email, firstName, lastName, password string) (*models.User, string, error) {
	if email == "" || firstName == "" {
		return nil, "", models.ErrValidation("email and first name required")
	}

	user, err := s.authenticator.Register(ctx, email, firstName, lastName, password)
	if err != nil {
		slog.Error("Registration failed", "email", email, "error", err)
		if err == auth.ErrEmailExists || err == auth.ErrWeakPassword {
			return nil, "", models.ErrValidation("%s", err)
		}
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User registered", "user_id", user.ID, "email", user.Email)
	return user, token, nil
}

// Login authenticates a user and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", models.ErrValidation("email and password required")
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		slog.Warn("Login failed", "email", email, "error", err)
		return nil, "", models.ErrAccessDenied("invalid email or password")
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		slog.Error("Failed to generate token", "user_id", user.ID, "error", err)
		return nil, "", err
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}
