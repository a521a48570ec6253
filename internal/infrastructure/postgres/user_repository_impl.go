package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wheelyhq/dealer-portal/internal/domain/entity"
	"github.com/wheelyhq/dealer-portal/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// username and password are NULL until setup completes, so both are
// coalesced to empty strings on read.
const userColumns = `user_id, email, coalesce(username, ''), coalesce(password, ''), role, dealer_id`

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email)

	if err := row.Scan(&u.UserID, &u.Email, &u.Username, &u.Password, &u.Role, &u.DealerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u := &entity.User{}

	row := r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1
	`, username)

	if err := row.Scan(&u.UserID, &u.Email, &u.Username, &u.Password, &u.Role, &u.DealerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return u, nil
}

func (r *UserRepository) UsernameTakenByOther(ctx context.Context, username, email string) (bool, error) {
	var taken bool
	row := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users
			WHERE username = $1 AND email <> $2
		)
	`, username, email)
	if err := row.Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *UserRepository) SetCredentials(ctx context.Context, email, username, passwordHash string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $1, password = $2
		WHERE email = $3
	`, username, passwordHash, email)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
