package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

// MockAccountRepository is an in-memory AccountRepository. Behavior
// can be overridden per method via the Func fields.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateTxFunc          func(ctx context.Context, tx usecase.Transaction, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByUserIDFunc       func(ctx context.Context, userID string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalanceFunc     func(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

// Seed stores an account directly.
func (m *MockAccountRepository) Seed(account *domain.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
}

func (m *MockAccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	if m.CreateTxFunc != nil {
		return m.CreateTxFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		copied := *acc
		return &copied, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, acc := range m.accounts {
		if acc.UserID == userID {
			copied := *acc
			return &copied, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if acc, ok := m.accounts[id]; ok {
			copied := *acc
			accounts = append(accounts, &copied)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	acc, ok := m.accounts[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	acc.Balance = balance
	acc.UpdatedAt = updatedAt
	return nil
}

// Balance reads the stored balance, for assertions.
func (m *MockAccountRepository) Balance(id string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Balance
	}
	return 0
}

// MockTransactionRepository is an in-memory TransactionRepository.
type MockTransactionRepository struct {
	mu   sync.RWMutex
	txns []*domain.Transaction

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error
	ListByAccountFunc func(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, txn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.txns = append(m.txns, txn)
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, t := range m.txns {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, domain.ErrTransactionNotFound
}

func (m *MockTransactionRepository) ListByAccount(ctx context.Context, accountID string, limit int) ([]*domain.Transaction, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Transaction
	for i := len(m.txns) - 1; i >= 0 && len(out) < limit; i-- {
		t := m.txns[i]
		if (t.FromAccountID != nil && *t.FromAccountID == accountID) ||
			(t.ToAccountID != nil && *t.ToAccountID == accountID) {
			out = append(out, t)
		}
	}
	return out, nil
}

// All returns every recorded transaction.
func (m *MockTransactionRepository) All() []*domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.Transaction(nil), m.txns...)
}

// MockCardRepository is an in-memory CardRepository.
type MockCardRepository struct {
	mu      sync.RWMutex
	cards   map[string]*domain.CreditCard // keyed by account ID
	charges map[string][]*domain.CardCharge

	CreateFunc                  func(ctx context.Context, tx usecase.Transaction, card *domain.CreditCard) error
	GetByAccountIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, accountID string) (*domain.CreditCard, error)
	ListUnpaidChargesFunc       func(ctx context.Context, tx usecase.Transaction, cardID string) ([]*domain.CardCharge, error)
}

func NewMockCardRepository() *MockCardRepository {
	return &MockCardRepository{
		cards:   make(map[string]*domain.CreditCard),
		charges: make(map[string][]*domain.CardCharge),
	}
}

// SeedCard stores a card and its charges directly.
func (m *MockCardRepository) SeedCard(card *domain.CreditCard, charges ...*domain.CardCharge) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[card.AccountID] = card
	m.charges[card.ID] = append(m.charges[card.ID], charges...)
}

func (m *MockCardRepository) Create(ctx context.Context, tx usecase.Transaction, card *domain.CreditCard) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, card)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[card.AccountID] = card
	return nil
}

func (m *MockCardRepository) GetByAccountIDForUpdate(ctx context.Context, tx usecase.Transaction, accountID string) (*domain.CreditCard, error) {
	if m.GetByAccountIDForUpdateFunc != nil {
		return m.GetByAccountIDForUpdateFunc(ctx, tx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if card, ok := m.cards[accountID]; ok {
		copied := *card
		return &copied, nil
	}
	return nil, domain.ErrCardNotFound
}

func (m *MockCardRepository) UpdateInvoiceAmount(ctx context.Context, tx usecase.Transaction, id string, invoiceAmount int64, updatedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, card := range m.cards {
		if card.ID == id {
			card.InvoiceAmount = invoiceAmount
			card.UpdatedAt = updatedAt
			return nil
		}
	}
	return domain.ErrCardNotFound
}

func (m *MockCardRepository) CreateCharges(ctx context.Context, tx usecase.Transaction, charges []*domain.CardCharge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range charges {
		m.charges[c.CardID] = append(m.charges[c.CardID], c)
	}
	return nil
}

func (m *MockCardRepository) ListUnpaidCharges(ctx context.Context, tx usecase.Transaction, cardID string) ([]*domain.CardCharge, error) {
	if m.ListUnpaidChargesFunc != nil {
		return m.ListUnpaidChargesFunc(ctx, tx, cardID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var open []*domain.CardCharge
	for _, c := range m.charges[cardID] {
		if !c.Paid {
			open = append(open, c)
		}
	}
	return open, nil
}

func (m *MockCardRepository) MarkChargesPaid(ctx context.Context, tx usecase.Transaction, cardID string, paidAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.charges[cardID] {
		c.Paid = true
	}
	return nil
}

// Charges returns all charges for a card, for assertions.
func (m *MockCardRepository) Charges(cardID string) []*domain.CardCharge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*domain.CardCharge(nil), m.charges[cardID]...)
}

// MockAutoDebitRepository is an in-memory AutoDebitRepository.
type MockAutoDebitRepository struct {
	mu      sync.RWMutex
	configs map[string]*domain.AutoDebitConfig
}

func NewMockAutoDebitRepository() *MockAutoDebitRepository {
	return &MockAutoDebitRepository{configs: make(map[string]*domain.AutoDebitConfig)}
}

func (m *MockAutoDebitRepository) GetByAccountID(ctx context.Context, accountID string) (*domain.AutoDebitConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if cfg, ok := m.configs[accountID]; ok {
		copied := *cfg
		return &copied, nil
	}
	return nil, nil
}

func (m *MockAutoDebitRepository) Create(ctx context.Context, cfg *domain.AutoDebitConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[cfg.AccountID] = cfg
	return nil
}

func (m *MockAutoDebitRepository) Update(ctx context.Context, cfg *domain.AutoDebitConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.configs[cfg.AccountID] = cfg
	return nil
}

// MockUserRepository is an in-memory UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// Seed stores a user directly.
func (m *MockUserRepository) Seed(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) CreateTx(ctx context.Context, tx usecase.Transaction, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if u, ok := m.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByVerifyToken(ctx context.Context, token string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.VerifyToken != nil && *u.VerifyToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.EmailVerified = true
	u.VerifyToken = nil
	u.VerifyTokenExpires = nil
	return nil
}

func (m *MockUserRepository) UpdatePasswordTx(ctx context.Context, tx usecase.Transaction, id, hashedPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.HashedPassword = hashedPassword
	return nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.User, 0, len(m.users))
	for _, u := range m.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

// MockPasswordResetRepository is an in-memory PasswordResetRepository.
type MockPasswordResetRepository struct {
	mu     sync.RWMutex
	resets map[string]*domain.PasswordReset // keyed by token
}

func NewMockPasswordResetRepository() *MockPasswordResetRepository {
	return &MockPasswordResetRepository{resets: make(map[string]*domain.PasswordReset)}
}

func (m *MockPasswordResetRepository) Create(ctx context.Context, reset *domain.PasswordReset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[reset.Token] = reset
	return nil
}

func (m *MockPasswordResetRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordReset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if r, ok := m.resets[token]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, domain.ErrInvalidToken
}

func (m *MockPasswordResetRepository) MarkUsedTx(ctx context.Context, tx usecase.Transaction, id string, usedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.resets {
		if r.ID == id {
			r.UsedAt = &usedAt
			return nil
		}
	}
	return domain.ErrInvalidToken
}

// MockTransaction is a no-op usecase.Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}
	t.Committed = true
	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}
	if !t.Committed {
		t.RolledBack = true
	}
	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockRetrier runs the operation once, no backoff.
type MockRetrier struct{}

func NewMockRetrier() *MockRetrier { return &MockRetrier{} }

func (r *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	return operation()
}

// MockIDGenerator yields sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator { return &MockIDGenerator{} }

func (g *MockIDGenerator) Generate() string {
	if g.GenerateFunc != nil {
		return g.GenerateFunc()
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%04d", g.next)
}

// MockMailer records sent mail.
type MockMailer struct {
	mu sync.Mutex

	Verifications []string
	Resets        []string
	AutoDebit     []bool

	SendVerificationFunc func(ctx context.Context, email, name, token string) error
}

func NewMockMailer() *MockMailer { return &MockMailer{} }

func (m *MockMailer) SendVerification(ctx context.Context, email, name, token string) error {
	if m.SendVerificationFunc != nil {
		return m.SendVerificationFunc(ctx, email, name, token)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Verifications = append(m.Verifications, email)
	return nil
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, email, name, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Resets = append(m.Resets, email)
	return nil
}

func (m *MockMailer) SendAutoDebitChanged(ctx context.Context, email, name string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AutoDebit = append(m.AutoDebit, active)
	return nil
}

// MockCache is an in-memory Cache without TTL expiry.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string][]byte)}
}

func (c *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if v, ok := c.items[key]; ok {
		return v, nil
	}
	return nil, nil
}

func (c *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = value
	return nil
}

func (c *MockCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	return nil
}

// FixedChargeGenerator returns a predetermined batch.
type FixedChargeGenerator struct {
	Batch []*domain.CardCharge
}

func (g *FixedChargeGenerator) NewCycle(cardID string, now time.Time) []*domain.CardCharge {
	out := make([]*domain.CardCharge, 0, len(g.Batch))
	for _, c := range g.Batch {
		copied := *c
		copied.CardID = cardID
		copied.CreatedAt = now
		out = append(out, &copied)
	}
	return out
}
