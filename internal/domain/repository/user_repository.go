package repository

import (
	"context"
	"errors"

	"github.com/wheelyhq/dealer-portal/internal/domain/entity"
)

// ErrNotFound is returned by lookups that matched no row.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// UsernameTakenByOther reports whether username is bound to a user
	// whose email differs from email.
	UsernameTakenByOther(ctx context.Context, username, email string) (bool, error)
	// SetCredentials writes username and password hash on the record
	// identified by email.
	SetCredentials(ctx context.Context, email, username, passwordHash string) error
}
