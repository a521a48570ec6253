package application

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/wheelyhq/dealer-portal/internal/domain/entity"
	repo "github.com/wheelyhq/dealer-portal/internal/domain/repository"
)

// In-memory repositories with the same atomicity contract as the
// postgres implementations, for exercising the whole signup flow.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User // by email
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (r *fakeUserRepo) UsernameTakenByOther(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username && u.Email != email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) SetCredentials(_ context.Context, email, username, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return repo.ErrNotFound
	}
	u.Username = username
	u.Password = passwordHash
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*entity.VerificationToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[string]*entity.VerificationToken{}}
}

func (r *fakeTokenRepo) Insert(_ context.Context, t *entity.VerificationToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.CreatedAt = time.Now()
	cp := *t
	r.tokens[t.Token] = &cp
	return nil
}

func (r *fakeTokenRepo) GetUnused(_ context.Context, token string) (*entity.VerificationToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.Used {
		return nil, repo.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTokenRepo) Consume(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[token]
	if !ok || t.Used {
		return repo.ErrTokenConsumed
	}
	t.Used = true
	return nil
}

func newFlowServices(users *fakeUserRepo) (*OnboardingService, *AuthService, *fakeTokenRepo) {
	tokens := newFakeTokenRepo()
	onboarding := NewOnboardingService(users, tokens, nil, nil, "dealer-portal", 15*time.Minute, bcrypt.MinCost, "http://localhost:3000/verify-email", false)
	auth := NewAuthService(users, nil)
	return onboarding, auth, tokens
}

// Full happy path: issue, redeem once, complete setup, then log in with
// the provisioned role. The same credentials under a different role must
// be rejected generically.
func TestSignupFlow(t *testing.T) {
	ctx := context.Background()
	dealerID := int64(3)
	users := newFakeUserRepo(&entity.User{UserID: 1, Email: "a@x.com", Role: entity.RoleDealer, DealerID: &dealerID})
	onboarding, auth, _ := newFlowServices(users)

	tok, expiresAt, err := onboarding.IssueToken(ctx, "a@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	require.True(t, expiresAt.After(time.Now()))

	email, err := onboarding.ValidateAndConsume(ctx, tok)
	require.NoError(t, err)
	require.Equal(t, "a@x.com", email)

	// second redemption of the same token always fails
	_, err = onboarding.ValidateAndConsume(ctx, tok)
	assert.ErrorIs(t, err, ErrInvalidOrUsedToken)

	u, err := onboarding.CompleteSetup(ctx, email, "bob", "secret1", entity.RoleDealer)
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	logged, err := auth.Authenticate(ctx, "bob", "secret1", entity.RoleDealer)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDealer, logged.Role)
	require.NotNil(t, logged.DealerID)
	assert.Equal(t, dealerID, *logged.DealerID)

	// same credentials, wrong role
	_, err = auth.Authenticate(ctx, "bob", "secret1", entity.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// Exactly one of N concurrent redemptions of the same token may win.
func TestSignupFlow_ConcurrentConsume(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(&entity.User{UserID: 1, Email: "a@x.com", Role: entity.RoleDealer})
	onboarding, _, _ := newFlowServices(users)

	tok, _, err := onboarding.IssueToken(ctx, "a@x.com")
	require.NoError(t, err)

	const n = 16
	var wg sync.WaitGroup
	results := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := onboarding.ValidateAndConsume(ctx, tok)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrInvalidOrUsedToken)
			losses++
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, losses)
}

// Expired tokens stay unused but can never be redeemed.
func TestSignupFlow_ExpiredTokenStaysUnused(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo(&entity.User{UserID: 1, Email: "a@x.com", Role: entity.RoleDealer})
	tokens := newFakeTokenRepo()
	onboarding := NewOnboardingService(users, tokens, nil, nil, "dealer-portal", -time.Minute, bcrypt.MinCost, "http://localhost:3000/verify-email", false)

	tok, _, err := onboarding.IssueToken(ctx, "a@x.com")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err = onboarding.ValidateAndConsume(ctx, tok)
		assert.ErrorIs(t, err, ErrTokenExpired)
	}

	stored, err := tokens.GetUnused(ctx, tok)
	require.NoError(t, err)
	assert.False(t, stored.Used)
}
