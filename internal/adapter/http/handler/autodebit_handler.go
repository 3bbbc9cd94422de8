package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/bancodemo/api/internal/adapter/http/dto"
	"github.com/bancodemo/api/internal/adapter/http/middleware"
	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

// AutoDebitService owns the auto-debit toggle.
type AutoDebitService interface {
	GetConfig(ctx context.Context, accountID string) (*domain.AutoDebitConfig, error)
	SetConfig(ctx context.Context, input usecase.SetConfigInput) (*usecase.SetConfigResult, error)
}

// AutoDebitNotifier mails the toggle notification.
type AutoDebitNotifier interface {
	SendAutoDebitChanged(ctx context.Context, email, name string, active bool) error
}

// AutoDebitHandler handles the auto-debit endpoints.
type AutoDebitHandler struct {
	configs  AutoDebitService
	profiles ProfileService
	notifier AutoDebitNotifier
}

// NewAutoDebitHandler creates a new AutoDebitHandler.
func NewAutoDebitHandler(configs AutoDebitService, profiles ProfileService, notifier AutoDebitNotifier) *AutoDebitHandler {
	return &AutoDebitHandler{configs: configs, profiles: profiles, notifier: notifier}
}

// Get returns the account's config, or null if never saved.
func (h *AutoDebitHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("accountId")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "accountId is required", "")
		return
	}

	cfg, err := h.configs.GetConfig(r.Context(), accountID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if cfg == nil {
		writeJSON(w, http.StatusOK, nil)
		return
	}

	writeJSON(w, http.StatusOK, dto.AutoDebitFromDomain(cfg))
}

// Set upserts the config. The notification goes out after the write
// commits, only when the active flag actually flipped, and never
// blocks the response.
func (h *AutoDebitHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.AutoDebitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.configs.SetConfig(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if result.StatusChanged {
		h.notifyChange(r.Context(), result.Config.Active)
	}

	writeJSON(w, http.StatusOK, dto.AutoDebitFromDomain(result.Config))
}

func (h *AutoDebitHandler) notifyChange(ctx context.Context, active bool) {
	claims, ok := middleware.ClaimsFromContext(ctx)
	if !ok {
		return
	}

	go func() {
		ctx := context.Background()

		profile, err := h.profiles.GetProfile(ctx, claims.UserID)
		if err != nil {
			log.Error().Err(err).Str("user_id", claims.UserID).Msg("auto-debit notification: profile lookup failed")
			return
		}

		if err := h.notifier.SendAutoDebitChanged(ctx, profile.User.Email, profile.User.Name, active); err != nil {
			log.Error().Err(err).Str("email", profile.User.Email).Msg("auto-debit notification failed")
		}
	}()
}
