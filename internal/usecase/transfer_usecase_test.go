package usecase_test

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
	"github.com/bancodemo/api/internal/usecase/mocks"
)

func newTransferFixture() (*usecase.TransferUseCase, *mocks.MockAccountRepository, *mocks.MockTransactionRepository) {
	accRepo := mocks.NewMockAccountRepository()
	txnRepo := mocks.NewMockTransactionRepository()

	uc := usecase.NewTransferUseCase(
		mocks.NewMockTransactionManager(),
		mocks.NewMockRetrier(),
		accRepo,
		txnRepo,
		mocks.NewMockIDGenerator(),
		nil,
	)

	return uc, accRepo, txnRepo
}

func TestTransferUseCase_Transfer(t *testing.T) {
	t.Run("moves money and records one transaction", func(t *testing.T) {
		uc, accRepo, txnRepo := newTransferFixture()
		accRepo.Seed(&domain.Account{ID: "acc-a", Balance: 10000})
		accRepo.Seed(&domain.Account{ID: "acc-b", Balance: 0})

		txn, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        2500,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := accRepo.Balance("acc-a"); got != 7500 {
			t.Errorf("source balance = %d, want 7500", got)
		}
		if got := accRepo.Balance("acc-b"); got != 2500 {
			t.Errorf("destination balance = %d, want 2500", got)
		}

		all := txnRepo.All()
		if len(all) != 1 {
			t.Fatalf("expected exactly one transaction, got %d", len(all))
		}
		if *all[0].FromAccountID != "acc-a" || *all[0].ToAccountID != "acc-b" || all[0].Amount != 2500 {
			t.Errorf("transaction fields mismatch: %+v", all[0])
		}
		if txn.ID == "" {
			t.Error("expected transaction ID to be set")
		}
	})

	t.Run("validation failures leave no state change", func(t *testing.T) {
		tests := []struct {
			name    string
			input   usecase.TransferInput
			wantErr error
		}{
			{"zero amount", usecase.TransferInput{FromAccountID: "acc-a", ToAccountID: "acc-b", Amount: 0}, domain.ErrInvalidAmount},
			{"negative amount", usecase.TransferInput{FromAccountID: "acc-a", ToAccountID: "acc-b", Amount: -5}, domain.ErrInvalidAmount},
			{"missing source", usecase.TransferInput{ToAccountID: "acc-b", Amount: 100}, domain.ErrMissingAccount},
			{"missing destination", usecase.TransferInput{FromAccountID: "acc-a", Amount: 100}, domain.ErrMissingAccount},
			{"same account", usecase.TransferInput{FromAccountID: "acc-a", ToAccountID: "acc-a", Amount: 100}, domain.ErrSameAccount},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				uc, accRepo, txnRepo := newTransferFixture()
				accRepo.Seed(&domain.Account{ID: "acc-a", Balance: 10000})
				accRepo.Seed(&domain.Account{ID: "acc-b", Balance: 0})

				_, err := uc.Transfer(context.Background(), tt.input)
				if err != tt.wantErr {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}

				if got := accRepo.Balance("acc-a"); got != 10000 {
					t.Errorf("source balance changed: %d", got)
				}
				if len(txnRepo.All()) != 0 {
					t.Error("no transaction should be recorded")
				}
			})
		}
	})

	t.Run("insufficient funds aborts without side effects", func(t *testing.T) {
		uc, accRepo, txnRepo := newTransferFixture()
		accRepo.Seed(&domain.Account{ID: "acc-a", Balance: 5000})
		accRepo.Seed(&domain.Account{ID: "acc-b", Balance: 0})

		_, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        7500,
		})
		if err != domain.ErrInsufficientFunds {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		if got := accRepo.Balance("acc-a"); got != 5000 {
			t.Errorf("source balance changed: %d", got)
		}
		if len(txnRepo.All()) != 0 {
			t.Error("no transaction should be recorded")
		}
	})

	t.Run("records the transfer metric", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		metrics := mocks.NewMockMetricsRecorder(ctrl)
		metrics.EXPECT().TransferCreated(int64(2500))

		accRepo := mocks.NewMockAccountRepository()
		accRepo.Seed(&domain.Account{ID: "acc-a", Balance: 10000})
		accRepo.Seed(&domain.Account{ID: "acc-b", Balance: 0})

		uc := usecase.NewTransferUseCase(
			mocks.NewMockTransactionManager(),
			mocks.NewMockRetrier(),
			accRepo,
			mocks.NewMockTransactionRepository(),
			mocks.NewMockIDGenerator(),
			metrics,
		)

		if _, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        2500,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		uc, accRepo, _ := newTransferFixture()
		accRepo.Seed(&domain.Account{ID: "acc-a", Balance: 5000})

		_, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-missing",
			Amount:        100,
		})
		if err != domain.ErrAccountNotFound {
			t.Fatalf("expected ErrAccountNotFound, got %v", err)
		}
	})
}

func TestTransferUseCase_ListTransactions(t *testing.T) {
	uc, accRepo, _ := newTransferFixture()
	accRepo.Seed(&domain.Account{ID: "acc-a", Balance: 100000})
	accRepo.Seed(&domain.Account{ID: "acc-b", Balance: 0})

	for range 3 {
		if _, err := uc.Transfer(context.Background(), usecase.TransferInput{
			FromAccountID: "acc-a",
			ToAccountID:   "acc-b",
			Amount:        100,
		}); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
	}

	txns, err := uc.ListTransactions(context.Background(), usecase.ListTransactionsInput{AccountID: "acc-a"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txns) != 3 {
		t.Errorf("expected 3 transactions, got %d", len(txns))
	}

	if _, err := uc.ListTransactions(context.Background(), usecase.ListTransactionsInput{}); err != domain.ErrMissingAccount {
		t.Errorf("expected ErrMissingAccount, got %v", err)
	}
}
