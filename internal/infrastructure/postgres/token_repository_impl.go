package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wheelyhq/dealer-portal/internal/domain/entity"
	"github.com/wheelyhq/dealer-portal/internal/domain/repository"
)

type TokenRepository struct {
	pool *pgxpool.Pool
}

func NewTokenRepository(pool *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{pool: pool}
}

func (r *TokenRepository) Insert(ctx context.Context, t *entity.VerificationToken) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO email_tokens (token, email, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, used, created_at
	`, t.Token, t.Email, t.ExpiresAt)

	return row.Scan(&t.ID, &t.Used, &t.CreatedAt)
}

func (r *TokenRepository) GetUnused(ctx context.Context, token string) (*entity.VerificationToken, error) {
	t := &entity.VerificationToken{}

	row := r.pool.QueryRow(ctx, `
		SELECT id, token, email, expires_at, used, created_at
		FROM email_tokens
		WHERE token = $1 AND used = false
	`, token)

	if err := row.Scan(&t.ID, &t.Token, &t.Email, &t.ExpiresAt, &t.Used, &t.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return t, nil
}

// Consume is the single check-and-set the whole single-use guarantee
// rests on: the used=false predicate makes concurrent consumers of the
// same token race on one row, and RowsAffected tells the losers apart.
func (r *TokenRepository) Consume(ctx context.Context, token string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE email_tokens
		SET used = true
		WHERE token = $1 AND used = false
	`, token)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrTokenConsumed
	}

	return nil
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
