package integration

import (
	"testing"

	"github.com/bancodemo/api/internal/adapter/repository/postgres"
	"github.com/bancodemo/api/internal/usecase"
	"github.com/bancodemo/api/tests/testutil"
)

type nopMetrics struct{}

func (nopMetrics) TransferCreated(amount int64) {}
func (nopMetrics) InvoicePaid(amount int64)     {}
func (nopMetrics) CycleSeeded(chargeCount int)  {}
func (nopMetrics) UserRegistered()              {}

type fixture struct {
	db         *testutil.TestDB
	transferUC *usecase.TransferUseCase
	cardUC     *usecase.CardUseCase
	accountUC  *usecase.AccountUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDB(t)
	t.Cleanup(db.Cleanup)

	pool := db.Pool
	txManager := postgres.NewTxManager(pool)
	retrier := postgres.NewRetrier()
	accountRepo := postgres.NewAccountRepository(pool)
	txnRepo := postgres.NewTransactionRepository(pool)
	cardRepo := postgres.NewCardRepository(pool)
	idGen := postgres.NewULIDGenerator()

	return &fixture{
		db:         db,
		transferUC: usecase.NewTransferUseCase(txManager, retrier, accountRepo, txnRepo, idGen, nopMetrics{}),
		cardUC:     usecase.NewCardUseCase(txManager, retrier, accountRepo, cardRepo, txnRepo, idGen, usecase.NewRandomChargeGenerator(idGen), nopMetrics{}),
		accountUC:  usecase.NewAccountUseCase(accountRepo),
	}
}
