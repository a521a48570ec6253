package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wheelyhq/dealer-portal/internal/domain/entity"
	repo "github.com/wheelyhq/dealer-portal/internal/domain/repository"
	"github.com/wheelyhq/dealer-portal/pkg/helpers"
	"github.com/wheelyhq/dealer-portal/pkg/mailer"
	tpl "github.com/wheelyhq/dealer-portal/pkg/mailer/templates"
)

// tokenBytes gives 256 bits of entropy per verification token.
const tokenBytes = 32

// OnboardingService drives the closed-signup flow: verification token
// issue and consumption, then credential binding. Users must already be
// provisioned; signup never creates records.
type OnboardingService struct {
	Users  repo.UserRepository
	Tokens repo.TokenRepository
	Pub    *helpers.RabbitPublisher
	Logger *logrus.Logger

	AppName         string
	TokenTTL        time.Duration
	BcryptCost      int
	VerifyEmailURL  string
	MailSendEnabled bool
}

func NewOnboardingService(users repo.UserRepository, tokens repo.TokenRepository, pub *helpers.RabbitPublisher, logger *logrus.Logger, appName string, tokenTTL time.Duration, bcryptCost int, verifyEmailURL string, mailSendEnabled bool) *OnboardingService {
	return &OnboardingService{
		Users:           users,
		Tokens:          tokens,
		Pub:             pub,
		Logger:          logger,
		AppName:         appName,
		TokenTTL:        tokenTTL,
		BcryptCost:      bcryptCost,
		VerifyEmailURL:  verifyEmailURL,
		MailSendEnabled: mailSendEnabled,
	}
}

// IssueToken creates a single-use verification token for a provisioned
// email and enqueues the delivery email. The token is a bearer secret;
// it goes into the queue payload and nowhere else.
func (s *OnboardingService) IssueToken(ctx context.Context, email string) (string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", time.Time{}, ErrUserNotFound
		}
		return "", time.Time{}, fmt.Errorf("lookup user: %w", err)
	}

	tok, err := helpers.GenToken(tokenBytes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate token: %w", err)
	}

	t := &entity.VerificationToken{
		Token:     tok,
		Email:     u.Email,
		ExpiresAt: time.Now().Add(s.TokenTTL),
	}
	if err := s.Tokens.Insert(ctx, t); err != nil {
		return "", time.Time{}, fmt.Errorf("insert token: %w", err)
	}

	// Delivery is best-effort: the token row exists either way, and the
	// caller can re-request a fresh one. Outstanding tokens for the same
	// email stay valid independently.
	if s.Pub != nil && s.MailSendEnabled {
		link := s.VerifyEmailURL + "?token=" + tok
		data := tpl.NewVerifyEmailData(s.AppName, u.Email, link, s.TokenTTL)
		job := mailer.EmailJob{To: u.Email, Template: tpl.VerifyEmail, Data: tpl.ToMap(data)}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("failed to enqueue verification email")
		}
	}

	return tok, t.ExpiresAt, nil
}

// ValidateAndConsume redeems a verification token exactly once and
// returns its email. Unknown and already-used tokens are
// indistinguishable to the caller. Expired tokens are reported as
// expired but never flipped to used; every later attempt re-fails the
// expiry check.
func (s *OnboardingService) ValidateAndConsume(ctx context.Context, token string) (string, error) {
	t, err := s.Tokens.GetUnused(ctx, token)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrInvalidOrUsedToken
		}
		return "", fmt.Errorf("lookup token: %w", err)
	}

	if t.Expired(time.Now()) {
		return "", ErrTokenExpired
	}

	if err := s.Tokens.Consume(ctx, token); err != nil {
		if errors.Is(err, repo.ErrTokenConsumed) {
			// A concurrent request got here first.
			return "", ErrInvalidOrUsedToken
		}
		return "", fmt.Errorf("consume token: %w", err)
	}

	return t.Email, nil
}

// CompleteSetup binds a username and password to a provisioned record.
// Preconditions are checked in order and the first violation wins. The
// supplied role must match the provisioned one; this is what stops a
// caller from picking a better role at signup.
func (s *OnboardingService) CompleteSetup(ctx context.Context, email, username, password, role string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if !strings.EqualFold(u.Role, role) {
		return nil, ErrRoleMismatch
	}

	taken, err := s.Users.UsernameTakenByOther(ctx, username, email)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	if len(password) < MinPasswordLen {
		return nil, ErrWeakPassword
	}

	hash, err := helpers.HashPassword(password, s.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.Users.SetCredentials(ctx, email, username, hash); err != nil {
		return nil, fmt.Errorf("set credentials: %w", err)
	}

	u.Username = username
	u.Password = hash
	return u, nil
}
