package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bancodemo/api/internal/domain"
)

// AutoDebitRepository implements usecase.AutoDebitRepository.
type AutoDebitRepository struct {
	pool *pgxpool.Pool
}

// NewAutoDebitRepository creates a new AutoDebitRepository.
func NewAutoDebitRepository(pool *pgxpool.Pool) *AutoDebitRepository {
	return &AutoDebitRepository{pool: pool}
}

// GetByAccountID retrieves the account's config. A missing row is not
// an error; the toggle simply was never saved.
func (r *AutoDebitRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.AutoDebitConfig, error) {
	query := `
		SELECT id, account_id, active, due_day, created_at, updated_at
		FROM auto_debit_configs
		WHERE account_id = $1
	`

	var cfg domain.AutoDebitConfig
	err := r.pool.QueryRow(ctx, query, accountID).Scan(
		&cfg.ID,
		&cfg.AccountID,
		&cfg.Active,
		&cfg.DueDay,
		&cfg.CreatedAt,
		&cfg.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Create inserts a new config.
func (r *AutoDebitRepository) Create(ctx context.Context, cfg *domain.AutoDebitConfig) error {
	query := `
		INSERT INTO auto_debit_configs (id, account_id, active, due_day, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		cfg.ID,
		cfg.AccountID,
		cfg.Active,
		cfg.DueDay,
		cfg.CreatedAt,
		cfg.UpdatedAt,
	)

	return err
}

// Update overwrites an existing config.
func (r *AutoDebitRepository) Update(ctx context.Context, cfg *domain.AutoDebitConfig) error {
	query := `
		UPDATE auto_debit_configs
		SET active = $2, due_day = $3, updated_at = $4
		WHERE account_id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		cfg.AccountID,
		cfg.Active,
		cfg.DueDay,
		cfg.UpdatedAt,
	)

	return err
}
