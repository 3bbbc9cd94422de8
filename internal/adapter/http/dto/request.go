package dto

import (
	"encoding/json"

	"github.com/bancodemo/api/internal/usecase"
)

// RegisterRequest represents a registration request.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterRequest) ToUseCaseInput() usecase.RegisterInput {
	return usecase.RegisterInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest represents a password recovery request.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest redeems a reset token.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// TransferRequest represents a transfer request. Amount is in
// centavos.
type TransferRequest struct {
	FromID string `json:"fromId"`
	ToID   string `json:"toId"`
	Amount int64  `json:"amount"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromID,
		ToAccountID:   r.ToID,
		Amount:        r.Amount,
	}
}

// PayInvoiceRequest represents an invoice payment request.
type PayInvoiceRequest struct {
	AccountID string `json:"accountId"`
}

// AutoDebitRequest upserts the auto-debit config. An explicit
// `"dueDay": null` clears the day, while omitting the field keeps it;
// the custom unmarshaller records which one happened.
type AutoDebitRequest struct {
	AccountID string `json:"accountId"`
	Active    bool   `json:"active"`
	DueDay    *int   `json:"dueDay"`

	DueDaySet bool `json:"-"`
}

func (r *AutoDebitRequest) UnmarshalJSON(data []byte) error {
	type alias AutoDebitRequest
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	_, a.DueDaySet = raw["dueDay"]

	*r = AutoDebitRequest(a)
	return nil
}

// ToUseCaseInput converts to use case input.
func (r *AutoDebitRequest) ToUseCaseInput() usecase.SetConfigInput {
	return usecase.SetConfigInput{
		AccountID: r.AccountID,
		Active:    r.Active,
		DueDay:    r.DueDay,
		DueDaySet: r.DueDaySet,
	}
}
