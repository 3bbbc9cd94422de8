package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

// CardRepository implements usecase.CardRepository. Every method runs
// inside a caller-owned transaction: card state only ever changes
// together with the account it belongs to.
type CardRepository struct {
	pool *pgxpool.Pool
}

// NewCardRepository creates a new CardRepository.
func NewCardRepository(pool *pgxpool.Pool) *CardRepository {
	return &CardRepository{pool: pool}
}

// Create inserts a new card.
func (r *CardRepository) Create(ctx context.Context, tx usecase.Transaction, card *domain.CreditCard) error {
	query := `
		INSERT INTO credit_cards (id, account_id, brand, last4, credit_limit, invoice_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		card.ID,
		card.AccountID,
		card.Brand,
		card.Last4,
		card.Limit,
		card.InvoiceAmount,
		card.CreatedAt,
		card.UpdatedAt,
	)

	return err
}

// GetByAccountIDForUpdate retrieves the account's card with a FOR
// UPDATE lock. The account row must already be locked by the caller.
func (r *CardRepository) GetByAccountIDForUpdate(ctx context.Context, tx usecase.Transaction, accountID string) (*domain.CreditCard, error) {
	query := `
		SELECT id, account_id, brand, last4, credit_limit, invoice_amount, created_at, updated_at
		FROM credit_cards
		WHERE account_id = $1
		FOR UPDATE
	`

	var card domain.CreditCard
	err := tx.(*Tx).PgxTx().QueryRow(ctx, query, accountID).Scan(
		&card.ID,
		&card.AccountID,
		&card.Brand,
		&card.Last4,
		&card.Limit,
		&card.InvoiceAmount,
		&card.CreatedAt,
		&card.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCardNotFound
	}
	if err != nil {
		return nil, err
	}

	return &card, nil
}

// UpdateInvoiceAmount writes the denormalized open-invoice total.
func (r *CardRepository) UpdateInvoiceAmount(ctx context.Context, tx usecase.Transaction, id string, invoiceAmount int64, updatedAt time.Time) error {
	query := `UPDATE credit_cards SET invoice_amount = $2, updated_at = $3 WHERE id = $1`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query, id, invoiceAmount, updatedAt)

	return err
}

// CreateCharges inserts a batch of charges in one round trip.
func (r *CardRepository) CreateCharges(ctx context.Context, tx usecase.Transaction, charges []*domain.CardCharge) error {
	if len(charges) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO card_charges (id, card_id, description, amount, paid, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, c := range charges {
		batch.Queue(query, c.ID, c.CardID, c.Description, c.Amount, c.Paid, c.CreatedAt)
	}

	return tx.(*Tx).PgxTx().SendBatch(ctx, batch).Close()
}

// ListUnpaidCharges lists the open charges of a card, oldest first.
func (r *CardRepository) ListUnpaidCharges(ctx context.Context, tx usecase.Transaction, cardID string) ([]*domain.CardCharge, error) {
	query := `
		SELECT id, card_id, description, amount, paid, created_at
		FROM card_charges
		WHERE card_id = $1 AND paid = FALSE
		ORDER BY created_at, id
	`

	rows, err := tx.(*Tx).PgxTx().Query(ctx, query, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var charges []*domain.CardCharge
	for rows.Next() {
		var c domain.CardCharge
		if err := rows.Scan(
			&c.ID,
			&c.CardID,
			&c.Description,
			&c.Amount,
			&c.Paid,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		charges = append(charges, &c)
	}

	return charges, rows.Err()
}

// MarkChargesPaid settles every open charge of a card.
func (r *CardRepository) MarkChargesPaid(ctx context.Context, tx usecase.Transaction, cardID string, paidAt time.Time) error {
	query := `UPDATE card_charges SET paid = TRUE, paid_at = $2 WHERE card_id = $1 AND paid = FALSE`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query, cardID, paidAt)

	return err
}
