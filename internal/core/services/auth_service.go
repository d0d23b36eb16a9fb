package services

import (
	"context"

	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/models"
	"github.com/anietieasuquo/vending-machine/internal/adapters/persistence/repositories"
	"github.com/anietieasuquo/vending-machine/internal/config"
	"github.com/anietieasuquo/vending-machine/internal/core/domain"
	"github.com/anietieasuquo/vending-machine/internal/pkg/jwt"
	"github.com/anietieasuquo/vending-machine/internal/pkg/password"
)

// AuthService issues access tokens. It is the thin capability the
// authorization middleware consumes; grant-flow mechanics live outside the
// core.
type AuthService struct {
	userRepo repositories.UserRepository
	roleRepo repositories.RoleRepository
	cfg      *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repositories.UserRepository,
	roleRepo repositories.RoleRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		cfg:      cfg,
	}
}

// LoginInput represents login credentials
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginOutput represents a successful login
type LoginOutput struct {
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
	ExpiresIn   int                  `json:"expires_in"`
	User        *models.UserResponse `json:"user"`
}

// Login verifies credentials and returns a signed access token carrying
// the user's resolved role.
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.Validation("username and password are required")
	}

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !password.Verify(input.Password, user.Password) {
		return nil, domain.Authentication("invalid credentials")
	}

	role, err := s.roleRepo.FindByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.Internal("user role missing")
	}

	token, err := jwt.GenerateAccessToken(user.ID, user.Username, role.Name, role.IsAdmin || user.IsAdmin, s.cfg.JWT.Secret, s.cfg.JWT.AccessTokenMins)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenMins * 60,
		User:        user.ToResponse(),
	}, nil
}
