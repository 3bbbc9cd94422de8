package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/bancodemo/api/internal/domain"
)

// MetricsRecorder receives ledger business events for instrumentation.
type MetricsRecorder interface {
	TransferCreated(amount int64)
	InvoicePaid(amount int64)
	CycleSeeded(chargeCount int)
	UserRegistered()
}

// TransferUseCase owns peer-to-peer balance movement and the
// transaction log read path.
type TransferUseCase struct {
	txManager TransactionManager
	retrier   Retrier
	accounts  AccountRepository
	txns      TransactionRepository
	idGen     IDGenerator
	metrics   MetricsRecorder
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accounts AccountRepository,
	txns TransactionRepository,
	idGen IDGenerator,
	metrics MetricsRecorder,
) *TransferUseCase {
	return &TransferUseCase{
		txManager: txManager,
		retrier:   retrier,
		accounts:  accounts,
		txns:      txns,
		idGen:     idGen,
		metrics:   metrics,
	}
}

// TransferInput represents input for a transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        int64
}

// Transfer atomically debits the source account, credits the
// destination, and appends exactly one transaction record. The
// sufficiency check and the debit run under the same row locks, so two
// concurrent transfers from one account serialize and the second sees
// the first's committed balance.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	// Validate before touching the store.
	if input.FromAccountID == "" || input.ToAccountID == "" {
		return nil, domain.ErrMissingAccount
	}

	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	var txn *domain.Transaction

	err := uc.retrier.Retry(ctx, func() error {
		var err error

		txn, err = uc.transferOnce(ctx, input)

		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransferCreated(input.Amount)
	}

	return txn, nil
}

func (uc *TransferUseCase) transferOnce(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both accounts in sorted order (deadlock prevention).
	ids := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(ids)

	accounts, err := uc.accounts.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	var from, to *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.FromAccountID:
			from = a
		case input.ToAccountID:
			to = a
		}
	}

	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := from.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	txn := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		FromAccountID: &input.FromAccountID,
		ToAccountID:   &input.ToAccountID,
		Amount:        input.Amount,
		CreatedAt:     now,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	if err := uc.accounts.UpdateBalance(ctx, tx, from.ID, from.ApplyDebit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.accounts.UpdateBalance(ctx, tx, to.ID, to.ApplyCredit(input.Amount), now); err != nil {
		return nil, err
	}

	if err := uc.txns.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return txn, nil
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	AccountID string
	Limit     int
}

// ListTransactions returns the account's statement, newest first.
func (uc *TransferUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	if input.AccountID == "" {
		return nil, domain.ErrMissingAccount
	}

	if input.Limit <= 0 {
		input.Limit = DefaultListLimit
	}

	if input.Limit > MaxListLimit {
		input.Limit = MaxListLimit
	}

	return uc.txns.ListByAccount(ctx, input.AccountID, input.Limit)
}
