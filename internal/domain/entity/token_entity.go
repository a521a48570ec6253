package entity

import "time"

// VerificationToken is a single-use email verification credential.
// Rows are kept after consumption for audit; a token is dead once
// Used is true or ExpiresAt has passed.
type VerificationToken struct {
	ID        string
	Token     string
	Email     string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

// Expired reports whether the token is past its validity window at t.
func (v *VerificationToken) Expired(t time.Time) bool {
	return t.After(v.ExpiresAt)
}
