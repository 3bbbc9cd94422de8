package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transfer errors
	ErrMissingAccount      = errors.New("account id is required")
	ErrSameAccount         = errors.New("cannot transfer to same account")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrTransactionNotFound = errors.New("transaction not found")

	// Card errors
	ErrCardNotFound  = errors.New("credit card not found")
	ErrNoOpenInvoice = errors.New("no open invoice")

	// Auto-debit errors
	ErrInvalidDueDay = errors.New("due day must be between 1 and 28")

	// Validation errors
	ErrInvalidName     = errors.New("invalid name")
	ErrInvalidEmail    = errors.New("invalid email")
	ErrInvalidPassword = errors.New("invalid password")

	// User errors
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrEmailNotVerified = errors.New("email not verified")

	// Authentication errors
	ErrUnauthorized = errors.New("invalid credentials")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrExpiredToken = errors.New("token has expired")
)
