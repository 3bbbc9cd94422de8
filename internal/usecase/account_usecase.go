package usecase

import (
	"context"

	"github.com/bancodemo/api/internal/domain"
)

// AccountUseCase handles account read paths. All mutations go through
// the ledger use cases.
type AccountUseCase struct {
	accounts AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accounts AccountRepository) *AccountUseCase {
	return &AccountUseCase{accounts: accounts}
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if id == "" {
		return nil, domain.ErrMissingAccount
	}

	return uc.accounts.GetByID(ctx, id)
}
