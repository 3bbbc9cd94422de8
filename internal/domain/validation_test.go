package domain

import (
	"testing"
	"time"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{"a@b.co", "maria.silva@example.com.br", "user+tag@mail.io"}
	for _, email := range valid {
		if err := ValidateEmail(email); err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", email, err)
		}
	}

	invalid := []string{"", "not-an-email", "a@b", "@example.com", "user@.com"}
	for _, email := range invalid {
		if err := ValidateEmail(email); err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", email)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if err := ValidatePassword("short"); err == nil {
		t.Error("expected error for short password")
	}

	if err := ValidatePassword("longenough1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateDueDay(t *testing.T) {
	intPtr := func(i int) *int { return &i }

	tests := []struct {
		name    string
		dueDay  *int
		wantErr error
	}{
		{"nil is allowed", nil, nil},
		{"first day", intPtr(1), nil},
		{"last day", intPtr(28), nil},
		{"too low", intPtr(0), ErrInvalidDueDay},
		{"too high", intPtr(29), ErrInvalidDueDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateDueDay(tt.dueDay); err != tt.wantErr {
				t.Errorf("ValidateDueDay = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPasswordReset_Usable(t *testing.T) {
	now := time.Now()
	used := now.Add(-time.Minute)

	tests := []struct {
		name  string
		reset PasswordReset
		want  bool
	}{
		{"fresh token", PasswordReset{ExpiresAt: now.Add(time.Hour)}, true},
		{"expired token", PasswordReset{ExpiresAt: now.Add(-time.Hour)}, false},
		{"used token", PasswordReset{ExpiresAt: now.Add(time.Hour), UsedAt: &used}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.reset.Usable(now); got != tt.want {
				t.Errorf("Usable = %v, want %v", got, tt.want)
			}
		})
	}
}
