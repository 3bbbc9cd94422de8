package handler

import (
	"context"
	"net/http"

	"github.com/bancodemo/api/internal/adapter/http/dto"
	"github.com/bancodemo/api/internal/adapter/http/middleware"
	"github.com/bancodemo/api/internal/usecase"
)

// ProfileService serves the authenticated user's profile.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*usecase.Profile, error)
}

// DirectoryService serves the user directory and the activity report.
type DirectoryService interface {
	ListContacts(ctx context.Context) ([]*usecase.Contact, error)
	ListActivity(ctx context.Context) ([]*usecase.UserActivity, error)
}

// UserHandler handles user directory endpoints.
type UserHandler struct {
	profiles  ProfileService
	directory DirectoryService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(profiles ProfileService, directory DirectoryService) *UserHandler {
	return &UserHandler{profiles: profiles, directory: directory}
}

// Me returns the authenticated user's profile.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	profile, err := h.profiles.GetProfile(r.Context(), claims.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(profile.User, profile.AccountID))
}

// List returns the contact directory for the transfer UI.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.directory.ListContacts(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, contacts)
}

// Activity returns the per-user recent transaction report.
func (h *UserHandler) Activity(w http.ResponseWriter, r *http.Request) {
	report, err := h.directory.ListActivity(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}
