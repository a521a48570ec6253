package repository

import (
	"context"
	"errors"

	"github.com/wheelyhq/dealer-portal/internal/domain/entity"
)

// ErrTokenConsumed is returned by Consume when the conditional update
// matched no row, meaning a concurrent caller won the token.
var ErrTokenConsumed = errors.New("token already consumed")

// TokenRepository defines operations on the email_tokens table.
type TokenRepository interface {
	Insert(ctx context.Context, t *entity.VerificationToken) error
	// GetUnused returns the token row where used=false. A missing row
	// (never issued or already consumed) yields a not-found error from
	// the implementation.
	GetUnused(ctx context.Context, token string) (*entity.VerificationToken, error)
	// Consume atomically flips used from false to true. Exactly one of
	// N concurrent calls for the same token succeeds; the rest get
	// ErrTokenConsumed.
	Consume(ctx context.Context, token string) error
}
