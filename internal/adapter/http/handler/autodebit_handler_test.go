package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bancodemo/api/internal/adapter/http/dto"
	"github.com/bancodemo/api/internal/adapter/http/middleware"
	"github.com/bancodemo/api/internal/domain"
	"github.com/bancodemo/api/internal/infrastructure/auth"
	"github.com/bancodemo/api/internal/usecase"
)

type autoDebitServiceStub struct {
	getFn func(ctx context.Context, accountID string) (*domain.AutoDebitConfig, error)
	setFn func(ctx context.Context, input usecase.SetConfigInput) (*usecase.SetConfigResult, error)
}

func (s *autoDebitServiceStub) GetConfig(ctx context.Context, accountID string) (*domain.AutoDebitConfig, error) {
	return s.getFn(ctx, accountID)
}

func (s *autoDebitServiceStub) SetConfig(ctx context.Context, input usecase.SetConfigInput) (*usecase.SetConfigResult, error) {
	return s.setFn(ctx, input)
}

type profileServiceStub struct {
	getFn func(ctx context.Context, userID string) (*usecase.Profile, error)
}

func (s *profileServiceStub) GetProfile(ctx context.Context, userID string) (*usecase.Profile, error) {
	return s.getFn(ctx, userID)
}

type notifierStub struct {
	sent chan bool
}

func (s *notifierStub) SendAutoDebitChanged(ctx context.Context, email, name string, active bool) error {
	s.sent <- active
	return nil
}

func withClaims(req *http.Request) *http.Request {
	claims := &auth.Claims{UserID: "user-1", AccountID: "acc-1", Email: "ana@example.com"}
	ctx := context.WithValue(req.Context(), middleware.ClaimsContextKey, claims)
	return req.WithContext(ctx)
}

func TestAutoDebitHandler_Get_MissingAccount(t *testing.T) {
	h := NewAutoDebitHandler(&autoDebitServiceStub{}, &profileServiceStub{}, &notifierStub{})

	req := httptest.NewRequest(http.MethodGet, "/auto-debit", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAutoDebitHandler_Get_NoConfig(t *testing.T) {
	h := NewAutoDebitHandler(&autoDebitServiceStub{
		getFn: func(ctx context.Context, accountID string) (*domain.AutoDebitConfig, error) {
			return nil, nil
		},
	}, &profileServiceStub{}, &notifierStub{})

	req := httptest.NewRequest(http.MethodGet, "/auto-debit?accountId=acc-1", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "null\n" {
		t.Fatalf("expected null body, got %q", body)
	}
}

func TestAutoDebitHandler_Get_Existing(t *testing.T) {
	day := 10
	h := NewAutoDebitHandler(&autoDebitServiceStub{
		getFn: func(ctx context.Context, accountID string) (*domain.AutoDebitConfig, error) {
			return &domain.AutoDebitConfig{AccountID: accountID, Active: true, DueDay: &day}, nil
		},
	}, &profileServiceStub{}, &notifierStub{})

	req := httptest.NewRequest(http.MethodGet, "/auto-debit?accountId=acc-1", nil)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.AutoDebitResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Active || resp.DueDay == nil || *resp.DueDay != 10 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAutoDebitHandler_Set_NotifiesOnFlip(t *testing.T) {
	notifier := &notifierStub{sent: make(chan bool, 1)}

	h := NewAutoDebitHandler(&autoDebitServiceStub{
		setFn: func(ctx context.Context, input usecase.SetConfigInput) (*usecase.SetConfigResult, error) {
			return &usecase.SetConfigResult{
				Config:        &domain.AutoDebitConfig{AccountID: input.AccountID, Active: input.Active},
				StatusChanged: true,
			}, nil
		},
	}, &profileServiceStub{
		getFn: func(ctx context.Context, userID string) (*usecase.Profile, error) {
			return &usecase.Profile{
				User:      &domain.User{ID: userID, Name: "Ana", Email: "ana@example.com"},
				AccountID: "acc-1",
			}, nil
		},
	}, notifier)

	body := []byte(`{"accountId":"acc-1","active":true}`)
	req := withClaims(httptest.NewRequest(http.MethodPut, "/auto-debit", bytes.NewReader(body)))
	rec := httptest.NewRecorder()

	h.Set(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	select {
	case active := <-notifier.sent:
		if !active {
			t.Fatal("expected activation notification")
		}
	case <-time.After(time.Second):
		t.Fatal("notification was never sent")
	}
}

func TestAutoDebitHandler_Set_NoFlipNoNotification(t *testing.T) {
	notifier := &notifierStub{sent: make(chan bool, 1)}

	h := NewAutoDebitHandler(&autoDebitServiceStub{
		setFn: func(ctx context.Context, input usecase.SetConfigInput) (*usecase.SetConfigResult, error) {
			return &usecase.SetConfigResult{
				Config:        &domain.AutoDebitConfig{AccountID: input.AccountID, Active: input.Active},
				StatusChanged: false,
			}, nil
		},
	}, &profileServiceStub{}, notifier)

	body := []byte(`{"accountId":"acc-1","active":true}`)
	req := withClaims(httptest.NewRequest(http.MethodPut, "/auto-debit", bytes.NewReader(body)))
	rec := httptest.NewRecorder()

	h.Set(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	select {
	case <-notifier.sent:
		t.Fatal("notification sent without a status change")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestAutoDebitHandler_Set_InvalidDueDay(t *testing.T) {
	h := NewAutoDebitHandler(&autoDebitServiceStub{
		setFn: func(ctx context.Context, input usecase.SetConfigInput) (*usecase.SetConfigResult, error) {
			return nil, domain.ErrInvalidDueDay
		},
	}, &profileServiceStub{}, &notifierStub{})

	body := []byte(`{"accountId":"acc-1","active":true,"dueDay":31}`)
	req := withClaims(httptest.NewRequest(http.MethodPut, "/auto-debit", bytes.NewReader(body)))
	rec := httptest.NewRecorder()

	h.Set(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
