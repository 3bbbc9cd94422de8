package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

func TestConcurrentTransfers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	f := newFixture(t)

	t.Run("conserves total balance under contention", func(t *testing.T) {
		f.db.TruncateAll(ctx)

		_, a := f.db.CreateUserWithAccount(ctx, "Ana", "ana@example.com", 100000)
		_, b := f.db.CreateUserWithAccount(ctx, "Bruno", "bruno@example.com", 100000)

		const workers = 10
		var wg sync.WaitGroup

		// Opposite directions from every worker pair forces lock
		// ordering to matter.
		for i := 0; i < workers; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				f.transferUC.Transfer(ctx, usecase.TransferInput{
					FromAccountID: a.ID,
					ToAccountID:   b.ID,
					Amount:        100,
				})
			}()
			go func() {
				defer wg.Done()
				f.transferUC.Transfer(ctx, usecase.TransferInput{
					FromAccountID: b.ID,
					ToAccountID:   a.ID,
					Amount:        100,
				})
			}()
		}
		wg.Wait()

		total := f.db.AccountBalance(ctx, a.ID) + f.db.AccountBalance(ctx, b.ID)
		if total != 200000 {
			t.Fatalf("total balance = %d, want 200000", total)
		}
	})

	t.Run("never overdraws under concurrent debits", func(t *testing.T) {
		f.db.TruncateAll(ctx)

		_, from := f.db.CreateUserWithAccount(ctx, "Ana", "ana@example.com", 500)
		_, to := f.db.CreateUserWithAccount(ctx, "Bruno", "bruno@example.com", 0)

		const workers = 10
		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
			rejected  int
		)

		// Only 5 of the 10 transfers of 100 can fit in a 500 balance.
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := f.transferUC.Transfer(ctx, usecase.TransferInput{
					FromAccountID: from.ID,
					ToAccountID:   to.ID,
					Amount:        100,
				})

				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					succeeded++
				case errors.Is(err, domain.ErrInsufficientFunds):
					rejected++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		if succeeded != 5 || rejected != 5 {
			t.Fatalf("succeeded=%d rejected=%d, want 5/5", succeeded, rejected)
		}

		if got := f.db.AccountBalance(ctx, from.ID); got != 0 {
			t.Fatalf("source balance = %d, want 0", got)
		}
		if got := f.db.AccountBalance(ctx, to.ID); got != 500 {
			t.Fatalf("destination balance = %d, want 500", got)
		}
	})
}
