package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wheelyhq/dealer-portal/internal/domain/entity"
	repo "github.com/wheelyhq/dealer-portal/internal/domain/repository"
	"github.com/wheelyhq/dealer-portal/pkg/helpers"
)

// AuthService authenticates completed accounts against their stored
// bcrypt hash and provisioned role.
type AuthService struct {
	Users  repo.UserRepository
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Logger: logger}
}

// Authenticate verifies the username/password/role triple. Unknown
// username, wrong role and wrong password all collapse into
// ErrInvalidCredentials; callers must not be able to tell which check
// failed.
func (s *AuthService) Authenticate(ctx context.Context, username, password, role string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	role = strings.TrimSpace(role)

	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !strings.EqualFold(u.Role, role) {
		return nil, ErrInvalidCredentials
	}

	// An account that never completed setup has no credentials bound
	// yet and can not log in.
	if !u.Completed() || !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}
