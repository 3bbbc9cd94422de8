package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bancodemo/api/internal/adapter/http/dto"
	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

// AccountService is the account read path.
type AccountService interface {
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
}

// TransferService moves money and serves transaction listings.
type TransferService interface {
	Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

// AccountHandler handles account read endpoints.
type AccountHandler struct {
	accounts  AccountService
	transfers TransferService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accounts AccountService, transfers TransferService) *AccountHandler {
	return &AccountHandler{accounts: accounts, transfers: transfers}
}

// Get retrieves an account by ID.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	account, err := h.accounts.GetAccount(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ListTransactions lists an account's statement, newest first.
func (h *AccountHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")
	limit := parseIntQuery(r, "limit", 0)

	txns, err := h.transfers.ListTransactions(r.Context(), usecase.ListTransactionsInput{
		AccountID: accountID,
		Limit:     limit,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionsFromDomain(txns))
}
