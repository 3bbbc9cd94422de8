package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bancodemo/api/internal/adapter/http/dto"
	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/usecase"
)

type directoryServiceStub struct {
	contactsFn func(ctx context.Context) ([]*usecase.Contact, error)
	activityFn func(ctx context.Context) ([]*usecase.UserActivity, error)
}

func (s *directoryServiceStub) ListContacts(ctx context.Context) ([]*usecase.Contact, error) {
	return s.contactsFn(ctx)
}

func (s *directoryServiceStub) ListActivity(ctx context.Context) ([]*usecase.UserActivity, error) {
	return s.activityFn(ctx)
}

func TestUserHandler_Me_Success(t *testing.T) {
	h := NewUserHandler(&profileServiceStub{
		getFn: func(ctx context.Context, userID string) (*usecase.Profile, error) {
			if userID != "user-1" {
				t.Fatalf("unexpected user id %q", userID)
			}
			return &usecase.Profile{
				User:      &domain.User{ID: userID, Name: "Ana", Email: "ana@example.com", EmailVerified: true},
				AccountID: "acc-1",
			}, nil
		},
	}, &directoryServiceStub{})

	req := withClaims(httptest.NewRequest(http.MethodGet, "/me", nil))
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.UserResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "user-1" || resp.AccountID != "acc-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Me_NoClaims(t *testing.T) {
	h := NewUserHandler(&profileServiceStub{}, &directoryServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()

	h.Me(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserHandler_List(t *testing.T) {
	accID := "acc-2"
	h := NewUserHandler(&profileServiceStub{}, &directoryServiceStub{
		contactsFn: func(ctx context.Context) ([]*usecase.Contact, error) {
			return []*usecase.Contact{
				{ID: "user-2", Name: "Bruno", Email: "bruno@example.com", AccountID: &accID},
				{ID: "user-3", Name: "Carla", Email: "carla@example.com"},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*usecase.Contact
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 2 {
		t.Fatalf("expected 2 contacts, got %d", len(resp))
	}
	if resp[1].AccountID != nil {
		t.Fatal("contact without account should have null accountId")
	}
}

func TestUserHandler_Activity(t *testing.T) {
	h := NewUserHandler(&profileServiceStub{}, &directoryServiceStub{
		activityFn: func(ctx context.Context) ([]*usecase.UserActivity, error) {
			return []*usecase.UserActivity{
				{
					ID:      "user-1",
					Name:    "Ana",
					Account: &domain.Account{ID: "acc-1", Balance: 100000},
					Recent:  []*domain.Transaction{{ID: "tx-1", Amount: 100000}},
				},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/users/activity", nil)
	rec := httptest.NewRecorder()

	h.Activity(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []*usecase.UserActivity
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp) != 1 || len(resp[0].Recent) != 1 {
		t.Fatalf("unexpected report: %+v", resp)
	}
}
