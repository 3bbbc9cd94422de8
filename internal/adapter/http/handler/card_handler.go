package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/bancodemo/api/internal/adapter/http/dto"
	"github.com/bancodemo/api/internal/usecase"
)

// CardService is the credit-card invoice lifecycle.
type CardService interface {
	GetCard(ctx context.Context, accountID string) (*usecase.CardSnapshot, error)
	PayInvoice(ctx context.Context, accountID string) (*usecase.PayInvoiceResult, error)
}

// CardHandler handles credit-card endpoints.
type CardHandler struct {
	cards CardService
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(cards CardService) *CardHandler {
	return &CardHandler{cards: cards}
}

// Get returns the account's card, creating it and seeding a cycle on
// first read.
func (h *CardHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")

	snapshot, err := h.cards.GetCard(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.CardFromSnapshot(snapshot))
}

// Pay settles the open invoice in full.
func (h *CardHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req dto.PayInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.cards.PayInvoice(r.Context(), req.AccountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.PayInvoiceResponse{
		Account: dto.AccountFromDomain(result.Account),
		Card:    dto.CardFromDomain(result.Card),
		Paid:    result.Paid,
	})
}
