package usecase

import (
	"context"
	"time"

	"github.com/bancodemo/api/internal/domain"
)

// AutoDebitUseCase owns the per-account auto-debit toggle. It computes
// whether the active flag actually flipped and surfaces that to the
// caller; sending the notification is the caller's concern.
type AutoDebitUseCase struct {
	configs  AutoDebitRepository
	accounts AccountRepository
	idGen    IDGenerator
}

// NewAutoDebitUseCase creates a new AutoDebitUseCase.
func NewAutoDebitUseCase(configs AutoDebitRepository, accounts AccountRepository, idGen IDGenerator) *AutoDebitUseCase {
	return &AutoDebitUseCase{
		configs:  configs,
		accounts: accounts,
		idGen:    idGen,
	}
}

// GetConfig returns the account's config, or nil if never saved.
func (uc *AutoDebitUseCase) GetConfig(ctx context.Context, accountID string) (*domain.AutoDebitConfig, error) {
	if accountID == "" {
		return nil, domain.ErrMissingAccount
	}

	return uc.configs.GetByAccountID(ctx, accountID)
}

// SetConfigInput represents input for upserting the config.
// DueDaySet distinguishes "leave the due day alone" from an explicit
// null that clears it.
type SetConfigInput struct {
	AccountID string
	Active    bool
	DueDay    *int
	DueDaySet bool
}

// SetConfigResult carries the saved config and whether the active flag
// changed, so the caller can notify exactly once per actual flip.
type SetConfigResult struct {
	Config        *domain.AutoDebitConfig
	StatusChanged bool
}

// SetConfig upserts the account's auto-debit config.
func (uc *AutoDebitUseCase) SetConfig(ctx context.Context, input SetConfigInput) (*SetConfigResult, error) {
	if input.AccountID == "" {
		return nil, domain.ErrMissingAccount
	}

	if input.DueDaySet {
		if err := domain.ValidateDueDay(input.DueDay); err != nil {
			return nil, err
		}
	}

	if _, err := uc.accounts.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	existing, err := uc.configs.GetByAccountID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if existing == nil {
		cfg := &domain.AutoDebitConfig{
			ID:        uc.idGen.Generate(),
			AccountID: input.AccountID,
			Active:    input.Active,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if input.DueDaySet {
			cfg.DueDay = input.DueDay
		}

		if err := uc.configs.Create(ctx, cfg); err != nil {
			return nil, err
		}

		// First write always counts as a flip.
		return &SetConfigResult{Config: cfg, StatusChanged: true}, nil
	}

	statusChanged := existing.Active != input.Active

	existing.Active = input.Active
	existing.UpdatedAt = now
	if input.DueDaySet {
		existing.DueDay = input.DueDay
	}

	if err := uc.configs.Update(ctx, existing); err != nil {
		return nil, err
	}

	return &SetConfigResult{Config: existing, StatusChanged: statusChanged}, nil
}
