package application

import "errors"

// Failure modes surfaced to the HTTP layer. ErrInvalidOrUsedToken and
// ErrInvalidCredentials each intentionally conflate several causes so
// the response cannot be used to enumerate tokens, usernames or roles.
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOrUsedToken = errors.New("invalid or used token")
	ErrTokenExpired       = errors.New("token expired")
	ErrRoleMismatch       = errors.New("role mismatch")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWeakPassword       = errors.New("password too short")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// MinPasswordLen is the minimum accepted password length at setup.
const MinPasswordLen = 6
