package dto

import (
	"time"

	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

// UserResponse represents a user in API responses. The password hash
// never leaves the server.
type UserResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	AccountID     string    `json:"accountId,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserFromDomain converts a domain user to a response.
func UserFromDomain(u *domain.User, accountID string) *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		AccountID:     accountID,
		CreatedAt:     u.CreatedAt,
	}
}

// AuthResponse is the login payload.
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// AccountResponse represents an account in API responses. Balance is
// in centavos.
type AccountResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Balance   int64     `json:"balance"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		UserID:    a.UserID,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// TransactionResponse represents a ledger transaction. A null fromId
// is an inbound grant; a null toId is the card issuer.
type TransactionResponse struct {
	ID        string    `json:"id"`
	FromID    *string   `json:"fromId"`
	ToID      *string   `json:"toId"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:        t.ID,
		FromID:    t.FromAccountID,
		ToID:      t.ToAccountID,
		Amount:    t.Amount,
		CreatedAt: t.CreatedAt,
	}
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(txns []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(txns))
	for i, t := range txns {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// ChargeResponse represents one invoice line item.
type ChargeResponse struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	Amount      int64     `json:"amount"`
	Paid        bool      `json:"paid"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CardResponse represents the card snapshot.
type CardResponse struct {
	ID             string            `json:"id"`
	AccountID      string            `json:"accountId"`
	Brand          string            `json:"brand"`
	Last4          string            `json:"last4"`
	Limit          int64             `json:"limit"`
	InvoiceAmount  int64             `json:"invoiceAmount"`
	AvailableLimit int64             `json:"availableLimit"`
	Charges        []*ChargeResponse `json:"charges"`
}

// CardFromSnapshot converts a card snapshot to a response.
func CardFromSnapshot(s *usecase.CardSnapshot) *CardResponse {
	charges := make([]*ChargeResponse, len(s.Charges))
	for i, c := range s.Charges {
		charges[i] = &ChargeResponse{
			ID:          c.ID,
			Description: c.Description,
			Amount:      c.Amount,
			Paid:        c.Paid,
			CreatedAt:   c.CreatedAt,
		}
	}

	return &CardResponse{
		ID:             s.Card.ID,
		AccountID:      s.Card.AccountID,
		Brand:          s.Card.Brand,
		Last4:          s.Card.Last4,
		Limit:          s.Card.Limit,
		InvoiceAmount:  s.Card.InvoiceAmount,
		AvailableLimit: s.Card.AvailableLimit(),
		Charges:        charges,
	}
}

// CardFromDomain converts a bare card (no charges loaded) to a
// response. Used after payment, when all charges are settled.
func CardFromDomain(c *domain.CreditCard) *CardResponse {
	return &CardResponse{
		ID:             c.ID,
		AccountID:      c.AccountID,
		Brand:          c.Brand,
		Last4:          c.Last4,
		Limit:          c.Limit,
		InvoiceAmount:  c.InvoiceAmount,
		AvailableLimit: c.AvailableLimit(),
		Charges:        []*ChargeResponse{},
	}
}

// PayInvoiceResponse carries the refreshed state after a payment.
type PayInvoiceResponse struct {
	Account *AccountResponse `json:"account"`
	Card    *CardResponse    `json:"card"`
	Paid    int64            `json:"paid"`
}

// AutoDebitResponse represents the auto-debit config.
type AutoDebitResponse struct {
	AccountID string    `json:"accountId"`
	Active    bool      `json:"active"`
	DueDay    *int      `json:"dueDay"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AutoDebitFromDomain converts a config to a response.
func AutoDebitFromDomain(cfg *domain.AutoDebitConfig) *AutoDebitResponse {
	return &AutoDebitResponse{
		AccountID: cfg.AccountID,
		Active:    cfg.Active,
		DueDay:    cfg.DueDay,
		UpdatedAt: cfg.UpdatedAt,
	}
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
