package auth

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/tourhub/tourhub-api/internal/domain/user"
	"github.com/tourhub/tourhub-api/internal/pkg/jwt"
	"github.com/tourhub/tourhub-api/internal/pkg/password"
)

// Service handles authentication
type Service struct {
	users user.Repository
	jwt   *jwt.Service
}

// NewService creates auth service
func NewService(users user.Repository, jwtService *jwt.Service) *Service {
	return &Service{users: users, jwt: jwtService}
}

// Login verifies the credentials and issues an access token carrying the
// user's role.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	u, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		log.Warn().Str("username", req.Username).Msg("Failed login attempt")
		return nil, ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.jwt.GenerateAccessToken(u.ID, u.Username, string(u.Role))
	if err != nil {
		return nil, err
	}

	log.Info().Str("username", u.Username).Str("role", string(u.Role)).Msg("User logged in")
	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.jwt.AccessTTL().Seconds()),
		Role:        string(u.Role),
	}, nil
}
