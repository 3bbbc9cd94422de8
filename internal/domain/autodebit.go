package domain

import "time"

// AutoDebitConfig is the per-account auto-debit toggle. DueDay is
// optional; nil means no preferred day.
type AutoDebitConfig struct {
	ID        string
	AccountID string
	Active    bool
	DueDay    *int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDueDay validates an optional due day.
func ValidateDueDay(dueDay *int) error {
	if dueDay == nil {
		return nil
	}
	if *dueDay < 1 || *dueDay > 28 {
		return ErrInvalidDueDay
	}
	return nil
}
