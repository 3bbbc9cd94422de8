package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository over
// the append-only transactions table.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a committed transaction record. Records are never
// updated or deleted.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, from_account_id, to_account_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.(*Tx).PgxTx().Exec(ctx, query,
		txn.ID,
		txn.FromAccountID,
		txn.ToAccountID,
		txn.Amount,
		txn.CreatedAt,
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `
		SELECT id, from_account_id, to_account_id, amount, created_at
		FROM transactions
		WHERE id = $1
	`

	var txn domain.Transaction
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&txn.ID,
		&txn.FromAccountID,
		&txn.ToAccountID,
		&txn.Amount,
		&txn.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &txn, nil
}

// ListByAccount lists the most recent transactions touching an account.
func (r *TransactionRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error) {
	query := `
		SELECT id, from_account_id, to_account_id, amount, created_at
		FROM transactions
		WHERE from_account_id = $1 OR to_account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []*domain.Transaction
	for rows.Next() {
		var txn domain.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.FromAccountID,
			&txn.ToAccountID,
			&txn.Amount,
			&txn.CreatedAt,
		); err != nil {
			return nil, err
		}
		txns = append(txns, &txn)
	}

	return txns, rows.Err()
}
