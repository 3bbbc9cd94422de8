package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

func TestTransfer(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	f := newFixture(t)

	t.Run("moves money between accounts", func(t *testing.T) {
		f.db.TruncateAll(ctx)

		_, from := f.db.CreateUserWithAccount(ctx, "Ana", "ana@example.com", 100000)
		_, to := f.db.CreateUserWithAccount(ctx, "Bruno", "bruno@example.com", 50000)

		txn, err := f.transferUC.Transfer(ctx, usecase.TransferInput{
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        30000,
		})
		if err != nil {
			t.Fatalf("transfer failed: %v", err)
		}

		if txn.FromAccountID == nil || *txn.FromAccountID != from.ID {
			t.Fatalf("unexpected from account: %v", txn.FromAccountID)
		}
		if txn.Amount != 30000 {
			t.Fatalf("unexpected amount %d", txn.Amount)
		}

		if got := f.db.AccountBalance(ctx, from.ID); got != 70000 {
			t.Fatalf("source balance = %d, want 70000", got)
		}
		if got := f.db.AccountBalance(ctx, to.ID); got != 80000 {
			t.Fatalf("destination balance = %d, want 80000", got)
		}
	})

	t.Run("rejects insufficient funds without partial effects", func(t *testing.T) {
		f.db.TruncateAll(ctx)

		_, from := f.db.CreateUserWithAccount(ctx, "Ana", "ana@example.com", 1000)
		_, to := f.db.CreateUserWithAccount(ctx, "Bruno", "bruno@example.com", 0)

		_, err := f.transferUC.Transfer(ctx, usecase.TransferInput{
			FromAccountID: from.ID,
			ToAccountID:   to.ID,
			Amount:        5000,
		})
		if !errors.Is(err, domain.ErrInsufficientFunds) {
			t.Fatalf("expected ErrInsufficientFunds, got %v", err)
		}

		if got := f.db.AccountBalance(ctx, from.ID); got != 1000 {
			t.Fatalf("source balance changed to %d", got)
		}
		if got := f.db.AccountBalance(ctx, to.ID); got != 0 {
			t.Fatalf("destination balance changed to %d", got)
		}

		txns, err := f.transferUC.ListTransactions(ctx, usecase.ListTransactionsInput{AccountID: from.ID})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(txns) != 0 {
			t.Fatalf("expected no transactions, got %d", len(txns))
		}
	})

	t.Run("rejects self transfer", func(t *testing.T) {
		f.db.TruncateAll(ctx)

		_, acc := f.db.CreateUserWithAccount(ctx, "Ana", "ana@example.com", 100000)

		_, err := f.transferUC.Transfer(ctx, usecase.TransferInput{
			FromAccountID: acc.ID,
			ToAccountID:   acc.ID,
			Amount:        100,
		})
		if !errors.Is(err, domain.ErrSameAccount) {
			t.Fatalf("expected ErrSameAccount, got %v", err)
		}
	})

	t.Run("lists statement newest first", func(t *testing.T) {
		f.db.TruncateAll(ctx)

		_, from := f.db.CreateUserWithAccount(ctx, "Ana", "ana@example.com", 100000)
		_, to := f.db.CreateUserWithAccount(ctx, "Bruno", "bruno@example.com", 0)

		for i := int64(1); i <= 3; i++ {
			if _, err := f.transferUC.Transfer(ctx, usecase.TransferInput{
				FromAccountID: from.ID,
				ToAccountID:   to.ID,
				Amount:        i * 100,
			}); err != nil {
				t.Fatalf("transfer %d failed: %v", i, err)
			}
		}

		txns, err := f.transferUC.ListTransactions(ctx, usecase.ListTransactionsInput{AccountID: from.ID})
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(txns) != 3 {
			t.Fatalf("expected 3 transactions, got %d", len(txns))
		}
		if txns[0].Amount != 300 {
			t.Fatalf("expected newest first, got amount %d", txns[0].Amount)
		}
	})
}
