package usecase

import (
	"context"
	"time"

	"github.com/bancodemo/api/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance int64, updatedAt time.Time) error
}

// TransactionRepository defines data access for the append-only
// transaction log.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error)
}

// CardRepository defines data access for credit cards and charges.
type CardRepository interface {
	Create(ctx context.Context, tx Transaction, card *domain.CreditCard) error
	GetByAccountIDForUpdate(ctx context.Context, tx Transaction, accountID string) (*domain.CreditCard, error)
	UpdateInvoiceAmount(ctx context.Context, tx Transaction, id string, invoiceAmount int64, updatedAt time.Time) error
	CreateCharges(ctx context.Context, tx Transaction, charges []*domain.CardCharge) error
	ListUnpaidCharges(ctx context.Context, tx Transaction, cardID string) ([]*domain.CardCharge, error)
	MarkChargesPaid(ctx context.Context, tx Transaction, cardID string, paidAt time.Time) error
}

// AutoDebitRepository defines data access for auto-debit configs.
// GetByAccountID returns (nil, nil) when no config was ever saved.
type AutoDebitRepository interface {
	GetByAccountID(ctx context.Context, accountID string) (*domain.AutoDebitConfig, error)
	Create(ctx context.Context, cfg *domain.AutoDebitConfig) error
	Update(ctx context.Context, cfg *domain.AutoDebitConfig) error
}

// UserRepository defines data access for users.
type UserRepository interface {
	CreateTx(ctx context.Context, tx Transaction, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByVerifyToken(ctx context.Context, token string) (*domain.User, error)
	MarkEmailVerified(ctx context.Context, id string) error
	UpdatePasswordTx(ctx context.Context, tx Transaction, id, hashedPassword string) error
	List(ctx context.Context) ([]*domain.User, error)
}

// PasswordResetRepository defines data access for password reset tokens.
type PasswordResetRepository interface {
	Create(ctx context.Context, reset *domain.PasswordReset) error
	GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error)
	MarkUsedTx(ctx context.Context, tx Transaction, id string, usedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient store contention.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Mailer sends outbound notification email. Implementations must be
// safe for concurrent use; callers decide whether a failure blocks
// the request.
type Mailer interface {
	SendVerification(ctx context.Context, email, name, token string) error
	SendPasswordReset(ctx context.Context, email, name, token string) error
	SendAutoDebitChanged(ctx context.Context, email, name string, active bool) error
}

// ChargeGenerator produces a fresh batch of unpaid charges for a new
// billing cycle.
type ChargeGenerator interface {
	NewCycle(cardID string, now time.Time) []*domain.CardCharge
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
