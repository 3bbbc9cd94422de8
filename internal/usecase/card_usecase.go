package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/bancodemo/api/internal/domain"
)

// CardUseCase owns the credit-card invoice lifecycle: lazy card
// creation, cycle seeding, and invoice payment.
type CardUseCase struct {
	txManager TransactionManager
	retrier   Retrier
	accounts  AccountRepository
	cards     CardRepository
	txns      TransactionRepository
	idGen     IDGenerator
	charges   ChargeGenerator
	metrics   MetricsRecorder
}

// NewCardUseCase creates a new CardUseCase.
func NewCardUseCase(
	txManager TransactionManager,
	retrier Retrier,
	accounts AccountRepository,
	cards CardRepository,
	txns TransactionRepository,
	idGen IDGenerator,
	charges ChargeGenerator,
	metrics MetricsRecorder,
) *CardUseCase {
	return &CardUseCase{
		txManager: txManager,
		retrier:   retrier,
		accounts:  accounts,
		cards:     cards,
		txns:      txns,
		idGen:     idGen,
		charges:   charges,
		metrics:   metrics,
	}
}

// CardSnapshot is a card plus its open charges, as returned to callers.
type CardSnapshot struct {
	Card    *domain.CreditCard
	Charges []*domain.CardCharge
}

// GetCard returns the account's card, creating it on first access and
// seeding a fresh billing cycle whenever no charges are open. The seed
// and the invoice recomputation run in the same transaction as the
// read, so the returned snapshot always satisfies
// invoiceAmount == sum(unpaid charges).
func (uc *CardUseCase) GetCard(ctx context.Context, accountID string) (*CardSnapshot, error) {
	if accountID == "" {
		return nil, domain.ErrMissingAccount
	}

	var snapshot *CardSnapshot

	err := uc.retrier.Retry(ctx, func() error {
		var err error

		snapshot, err = uc.getCardOnce(ctx, accountID)

		return err
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (uc *CardUseCase) getCardOnce(ctx context.Context, accountID string) (*CardSnapshot, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if _, err := uc.accounts.GetByIDForUpdate(ctx, tx, accountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	card, err := uc.cards.GetByAccountIDForUpdate(ctx, tx, accountID)
	if errors.Is(err, domain.ErrCardNotFound) {
		card = &domain.CreditCard{
			ID:        uc.idGen.Generate(),
			AccountID: accountID,
			Brand:     domain.CardBrand,
			Last4:     randomLast4(),
			Limit:     domain.CardLimit,
			CreatedAt: now,
			UpdatedAt: now,
		}

		if err := uc.cards.Create(ctx, tx, card); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	open, err := uc.cards.ListUnpaidCharges(ctx, tx, card.ID)
	if err != nil {
		return nil, err
	}

	// A paid-off card starts a new billing cycle on the next read.
	if len(open) == 0 {
		open, err = uc.seedCycle(ctx, tx, card.ID, now)
		if err != nil {
			return nil, err
		}
	}

	// Restore the denormalized invoice total before anyone reads it.
	total := domain.SumUnpaid(open)
	if card.InvoiceAmount != total {
		if err := uc.cards.UpdateInvoiceAmount(ctx, tx, card.ID, total, now); err != nil {
			return nil, err
		}

		card.InvoiceAmount = total
		card.UpdatedAt = now
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &CardSnapshot{Card: card, Charges: open}, nil
}

// seedCycle creates a batch of simulated charges for a new billing
// cycle. Idempotent per cycle: it is only invoked when the card has no
// open charges.
func (uc *CardUseCase) seedCycle(ctx context.Context, tx Transaction, cardID string, now time.Time) ([]*domain.CardCharge, error) {
	batch := uc.charges.NewCycle(cardID, now)

	if err := uc.cards.CreateCharges(ctx, tx, batch); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CycleSeeded(len(batch))
	}

	return batch, nil
}

// PayInvoiceResult is the refreshed state after an invoice payment.
type PayInvoiceResult struct {
	Account *domain.Account
	Card    *domain.CreditCard
	Paid    int64
}

// PayInvoice settles the open invoice in full: debit the account,
// append one transaction to the issuer, mark every open charge paid,
// and zero the invoice total. All or nothing.
func (uc *CardUseCase) PayInvoice(ctx context.Context, accountID string) (*PayInvoiceResult, error) {
	if accountID == "" {
		return nil, domain.ErrMissingAccount
	}

	var result *PayInvoiceResult

	err := uc.retrier.Retry(ctx, func() error {
		var err error

		result, err = uc.payInvoiceOnce(ctx, accountID)

		return err
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.InvoicePaid(result.Paid)
	}

	return result, nil
}

func (uc *CardUseCase) payInvoiceOnce(ctx context.Context, accountID string) (*PayInvoiceResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accounts.GetByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	card, err := uc.cards.GetByAccountIDForUpdate(ctx, tx, accountID)
	if err != nil {
		return nil, err
	}

	open, err := uc.cards.ListUnpaidCharges(ctx, tx, card.ID)
	if err != nil {
		return nil, err
	}

	// Total is computed from the charges, not the cached invoice field.
	total := domain.SumUnpaid(open)
	if total == 0 {
		return nil, domain.ErrNoOpenInvoice
	}

	if err := account.ValidateDebit(total); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if err := uc.accounts.UpdateBalance(ctx, tx, account.ID, account.ApplyDebit(total), now); err != nil {
		return nil, err
	}

	// Counterparty is the card issuer, recorded as a nil destination.
	txn := &domain.Transaction{
		ID:            uc.idGen.Generate(),
		FromAccountID: &accountID,
		ToAccountID:   nil,
		Amount:        total,
		CreatedAt:     now,
	}

	if err := uc.txns.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := uc.cards.MarkChargesPaid(ctx, tx, card.ID, now); err != nil {
		return nil, err
	}

	if err := uc.cards.UpdateInvoiceAmount(ctx, tx, card.ID, 0, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	account.Balance -= total
	account.UpdatedAt = now
	card.InvoiceAmount = 0
	card.UpdatedAt = now

	return &PayInvoiceResult{Account: account, Card: card, Paid: total}, nil
}
