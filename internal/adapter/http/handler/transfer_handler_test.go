package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bancodemo/api/internal/adapter/http/dto"
	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

type transferServiceStub struct {
	transferFn func(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error)
	listFn     func(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error)
}

func (s *transferServiceStub) Transfer(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error) {
	return s.transferFn(ctx, input)
}

func (s *transferServiceStub) ListTransactions(ctx context.Context, input usecase.ListTransactionsInput) ([]*domain.Transaction, error) {
	return s.listFn(ctx, input)
}

func strPtr(s string) *string { return &s }

func TestTransferHandler_Create_Success(t *testing.T) {
	txn := &domain.Transaction{
		ID:            "tx-1",
		FromAccountID: strPtr("acc-1"),
		ToAccountID:   strPtr("acc-2"),
		Amount:        2500,
		CreatedAt:     time.Now(),
	}
	var captured usecase.TransferInput

	h := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error) {
			captured = input
			return txn, nil
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{FromID: "acc-1", ToID: "acc-2", Amount: 2500})
	req := httptest.NewRequest(http.MethodPost, "/transfer", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if captured.FromAccountID != "acc-1" || captured.ToAccountID != "acc-2" || captured.Amount != 2500 {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.TransactionResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "tx-1" || resp.Amount != 2500 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTransferHandler_Create_InvalidBody(t *testing.T) {
	h := NewTransferHandler(&transferServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/transfer", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_DomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest},
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewTransferHandler(&transferServiceStub{
				transferFn: func(ctx context.Context, input usecase.TransferInput) (*domain.Transaction, error) {
					return nil, tt.err
				},
			})

			body, _ := json.Marshal(dto.TransferRequest{FromID: "acc-1", ToID: "acc-2", Amount: 100})
			req := httptest.NewRequest(http.MethodPost, "/transfer", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			h.Create(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}
