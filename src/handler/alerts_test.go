package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"portfoliotracker/src/model"
	"portfoliotracker/src/repository"
)

type mockAlertStore struct {
	created  *model.PriceAlert
	alerts   []model.PriceAlert
	updated  *model.PriceAlert
	err      error
	disabled []uint
}

func (m *mockAlertStore) Create(_ context.Context, alert *model.PriceAlert) error {
	if m.err != nil {
		return m.err
	}
	alert.ID = 1
	m.created = alert
	return nil
}

func (m *mockAlertStore) FindByUser(_ context.Context, userID uint) ([]model.PriceAlert, error) {
	return m.alerts, m.err
}

func (m *mockAlertStore) Update(_ context.Context, id uint, payload model.PriceAlertUpdate) (*model.PriceAlert, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.updated, nil
}

func (m *mockAlertStore) Disable(_ context.Context, id uint) error {
	if m.err != nil {
		return m.err
	}
	m.disabled = append(m.disabled, id)
	return nil
}

func alertRouter(store *mockAlertStore) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/alerts", CreateAlertHandler(store))
	r.Get("/alerts", ListUserAlertsHandler(store))
	r.Patch("/alerts/{id}", UpdateAlertHandler(store))
	r.Post("/alerts/{id}/disable", DisableAlertHandler(store))
	return r
}

func TestCreateAlertHandler_Defaults(t *testing.T) {
	store := &mockAlertStore{}
	router := alertRouter(store)

	body := `{"user_id": 1, "stock_id": 2, "target_price": "210.50"}`
	req := httptest.NewRequest(http.MethodPost, "/alerts", strings.NewReader(body))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if store.created.AlertType != model.AlertTypePriceAbove {
		t.Fatalf("alert type should default to price_above, got %s", store.created.AlertType)
	}
	if store.created.Status != model.AlertStatusActive {
		t.Fatalf("alert should start active, got %s", store.created.Status)
	}
}

func TestUpdateAlertHandler_TerminalConflict(t *testing.T) {
	router := alertRouter(&mockAlertStore{err: repository.ErrAlertNotActive})

	req := httptest.NewRequest(http.MethodPatch, "/alerts/5", strings.NewReader(`{"status": "active"}`))
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("terminal status transitions must return 409, got %d", rr.Code)
	}
}

func TestDisableAlertHandler(t *testing.T) {
	store := &mockAlertStore{}
	router := alertRouter(store)

	req := httptest.NewRequest(http.MethodPost, "/alerts/5/disable", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", rr.Code)
	}
	if len(store.disabled) != 1 || store.disabled[0] != 5 {
		t.Fatalf("store not called: %+v", store.disabled)
	}
}

func TestDisableAlertHandler_AlreadyTerminal(t *testing.T) {
	router := alertRouter(&mockAlertStore{err: repository.ErrAlertNotActive})

	req := httptest.NewRequest(http.MethodPost, "/alerts/5/disable", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", rr.Code)
	}
}

func TestListUserAlertsHandler_RequiresUser(t *testing.T) {
	router := alertRouter(&mockAlertStore{})

	req := httptest.NewRequest(http.MethodGet, "/alerts", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 without userId, got %d", rr.Code)
	}
}
