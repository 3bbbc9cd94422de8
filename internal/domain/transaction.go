package domain

import "time"

// Transaction is an immutable record of a committed balance change.
// A nil account reference means an external counterparty: nil From is
// an inbound grant, nil To is the card issuer.
type Transaction struct {
	ID            string
	FromAccountID *string
	ToAccountID   *string
	Amount        int64
	CreatedAt     time.Time
}

// Validate validates a transfer request between two accounts.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}

	if t.FromAccountID != nil && t.ToAccountID != nil && *t.FromAccountID == *t.ToAccountID {
		return ErrSameAccount
	}

	return nil
}
