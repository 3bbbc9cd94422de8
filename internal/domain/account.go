package domain

import "time"

// Account holds a user's balance in integer minor units (centavos).
// Balances are mutated only inside ledger transactions; a committed
// account balance is never negative.
type Account struct {
	ID        string
	UserID    string
	Balance   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks if the account can be debited by amount.
func (a *Account) ValidateDebit(amount int64) error {
	if a.Balance < amount {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount int64) int64 {
	return a.Balance - amount
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount int64) int64 {
	return a.Balance + amount
}
