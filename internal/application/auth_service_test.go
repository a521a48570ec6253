package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/wheelyhq/dealer-portal/internal/domain/entity"
	repo "github.com/wheelyhq/dealer-portal/internal/domain/repository"
)

func hashFor(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func TestAuthService_Authenticate(t *testing.T) {
	dealerID := int64(42)

	tests := []struct {
		name          string
		username      string
		password      string
		role          string
		setupMock     func(*testing.T, *MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			username: "bob",
			password: "secret1",
			role:     entity.RoleDealer,
			setupMock: func(t *testing.T, mu *MockUserRepository) {
				mu.On("GetByUsername", mock.Anything, "bob").Return(&entity.User{
					UserID:   7,
					Email:    "a@x.com",
					Username: "bob",
					Password: hashFor(t, "secret1"),
					Role:     entity.RoleDealer,
					DealerID: &dealerID,
				}, nil)
			},
		},
		{
			name:     "role comparison ignores case",
			username: "bob",
			password: "secret1",
			role:     "DEALER",
			setupMock: func(t *testing.T, mu *MockUserRepository) {
				mu.On("GetByUsername", mock.Anything, "bob").Return(&entity.User{
					UserID:   7,
					Username: "bob",
					Password: hashFor(t, "secret1"),
					Role:     entity.RoleDealer,
				}, nil)
			},
		},
		{
			name:     "surrounding whitespace on username and role is ignored",
			username: " bob ",
			password: "secret1",
			role:     " dealer ",
			setupMock: func(t *testing.T, mu *MockUserRepository) {
				mu.On("GetByUsername", mock.Anything, "bob").Return(&entity.User{
					UserID:   7,
					Username: "bob",
					Password: hashFor(t, "secret1"),
					Role:     entity.RoleDealer,
				}, nil)
			},
		},
		{
			name:     "unknown username",
			username: "nobody",
			password: "secret1",
			role:     entity.RoleDealer,
			setupMock: func(t *testing.T, mu *MockUserRepository) {
				mu.On("GetByUsername", mock.Anything, "nobody").Return(nil, repo.ErrNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong role",
			username: "bob",
			password: "secret1",
			role:     entity.RoleAdmin,
			setupMock: func(t *testing.T, mu *MockUserRepository) {
				mu.On("GetByUsername", mock.Anything, "bob").Return(&entity.User{
					UserID:   7,
					Username: "bob",
					Password: hashFor(t, "secret1"),
					Role:     entity.RoleDealer,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "bob",
			password: "wrong",
			role:     entity.RoleDealer,
			setupMock: func(t *testing.T, mu *MockUserRepository) {
				mu.On("GetByUsername", mock.Anything, "bob").Return(&entity.User{
					UserID:   7,
					Username: "bob",
					Password: hashFor(t, "secret1"),
					Role:     entity.RoleDealer,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "account that never completed setup",
			username: "bob",
			password: "secret1",
			role:     entity.RoleDealer,
			setupMock: func(t *testing.T, mu *MockUserRepository) {
				mu.On("GetByUsername", mock.Anything, "bob").Return(&entity.User{
					UserID:   7,
					Username: "bob",
					Password: "",
					Role:     entity.RoleDealer,
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			tt.setupMock(t, mockUsers)
			svc := NewAuthService(mockUsers, nil)

			u, err := svc.Authenticate(context.Background(), tt.username, tt.password, tt.role)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, u)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "bob", u.Username)
			}
			mockUsers.AssertExpectations(t)
		})
	}
}

// All three failure causes must collapse into the same error value so
// a caller cannot probe which stage rejected the attempt.
func TestAuthService_Authenticate_FailuresIndistinguishable(t *testing.T) {
	stored := &entity.User{UserID: 7, Username: "bob", Password: hashFor(t, "secret1"), Role: entity.RoleDealer}

	cases := map[string]func(*MockUserRepository) (string, string, string){
		"unknown user": func(mu *MockUserRepository) (string, string, string) {
			mu.On("GetByUsername", mock.Anything, "nobody").Return(nil, repo.ErrNotFound)
			return "nobody", "secret1", entity.RoleDealer
		},
		"wrong role": func(mu *MockUserRepository) (string, string, string) {
			mu.On("GetByUsername", mock.Anything, "bob").Return(stored, nil)
			return "bob", "secret1", entity.RoleAdmin
		},
		"wrong password": func(mu *MockUserRepository) (string, string, string) {
			mu.On("GetByUsername", mock.Anything, "bob").Return(stored, nil)
			return "bob", "wrong", entity.RoleDealer
		},
	}

	var errs []error
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			mockUsers := new(MockUserRepository)
			username, password, role := setup(mockUsers)
			svc := NewAuthService(mockUsers, nil)

			_, err := svc.Authenticate(context.Background(), username, password, role)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			errs = append(errs, err)
		})
	}
	for _, err := range errs {
		assert.Equal(t, ErrInvalidCredentials.Error(), err.Error())
	}
}
