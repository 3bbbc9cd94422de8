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

// PasswordResetRepository implements usecase.PasswordResetRepository.
type PasswordResetRepository struct {
	pool *pgxpool.Pool
}

// NewPasswordResetRepository creates a new PasswordResetRepository.
func NewPasswordResetRepository(pool *pgxpool.Pool) *PasswordResetRepository {
	return &PasswordResetRepository{pool: pool}
}

// Create inserts a reset token.
func (r *PasswordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	query := `
		INSERT INTO password_resets (id, user_id, token, expires_at, used_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query,
		reset.ID,
		reset.UserID,
		reset.Token,
		reset.ExpiresAt,
		reset.UsedAt,
		reset.CreatedAt,
	)

	return err
}

// GetByToken retrieves a reset record by its token.
func (r *PasswordResetRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	query := `
		SELECT id, user_id, token, expires_at, used_at, created_at
		FROM password_resets
		WHERE token = $1
	`

	var reset domain.PasswordReset
	err := r.pool.QueryRow(ctx, query, token).Scan(
		&reset.ID,
		&reset.UserID,
		&reset.Token,
		&reset.ExpiresAt,
		&reset.UsedAt,
		&reset.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}

	return &reset, nil
}

// MarkUsedTx stamps the token used, inside the same transaction as the
// password update so redemption is single use.
func (r *PasswordResetRepository) MarkUsedTx(ctx context.Context, tx usecase.Transaction, id string, usedAt time.Time) error {
	query := `UPDATE password_resets SET used_at = $2 WHERE id = $1 AND used_at IS NULL`

	tag, err := tx.(*Tx).PgxTx().Exec(ctx, query, id, usedAt)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrInvalidToken
	}

	return nil
}
