package domain

import "time"

// User represents a registered customer. Login is blocked until the
// verification email is confirmed.
type User struct {
	ID                 string
	Name               string
	Email              string
	HashedPassword     string
	EmailVerified      bool
	VerifyToken        *string
	VerifyTokenExpires *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// PasswordReset is a single-use password recovery token.
type PasswordReset struct {
	ID        string
	UserID    string
	Token     string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

// Usable reports whether the reset token can still redeem a new password.
func (p *PasswordReset) Usable(now time.Time) bool {
	return p.UsedAt == nil && p.ExpiresAt.After(now)
}
