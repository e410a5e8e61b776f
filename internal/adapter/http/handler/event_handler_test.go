package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/hermanas/caja/internal/adapter/http/dto"
	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/usecase"
	"github.com/hermanas/caja/internal/usecase/mocks"
)

func newEventHandler(eventRepo *mocks.MockEventRepository) *EventHandler {
	uc := usecase.NewEventUseCase(
		mocks.NewMockTransactionManager(),
		eventRepo,
		mocks.NewMockProviderDirectory(),
		mocks.NewMockNotifier(),
		mocks.NewMockIDGenerator(),
		zerolog.Nop(),
		domain.CapAndDrop,
	)
	return NewEventHandler(uc)
}

func eventRouter(h *EventHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/events", h.Create)
	r.Get("/events/{id}", h.Get)
	r.Post("/events/{id}/entries", h.AppendEntry)
	r.Get("/events/{id}/summary", h.GetSummary)
	return r
}

func TestEventHandler_Create_Success(t *testing.T) {
	router := eventRouter(newEventHandler(mocks.NewMockEventRepository()))

	body, _ := json.Marshal(dto.CreateEventRequest{
		ClientName:  "Maria Lopez",
		EventType:   "casamiento",
		EventDate:   time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC),
		FinalBudget: decimal.NewFromInt(100000),
	})

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.EventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" || resp.ClientName != "Maria Lopez" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.PaymentStatus.BalanceDue.Equal(decimal.NewFromInt(100000)) {
		t.Fatalf("expected full balance due, got %s", resp.PaymentStatus.BalanceDue)
	}
}

func TestEventHandler_Create_InvalidJSON(t *testing.T) {
	router := eventRouter(newEventHandler(mocks.NewMockEventRepository()))

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEventHandler_Get_NotFound(t *testing.T) {
	router := eventRouter(newEventHandler(mocks.NewMockEventRepository()))

	req := httptest.NewRequest(http.MethodGet, "/events/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEventHandler_AppendEntry_AllocatesPayment(t *testing.T) {
	eventRepo := mocks.NewMockEventRepository()
	if err := eventRepo.Create(context.Background(), &domain.Event{
		ID:            "evt-1",
		Header:        domain.EventHeader{ClientName: "Maria Lopez", FinalBudget: decimal.NewFromInt(100000)},
		PaymentStatus: domain.PaymentStatus{TotalBudget: decimal.NewFromInt(100000)},
		Version:       1,
	}); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	router := eventRouter(newEventHandler(eventRepo))

	body, _ := json.Marshal(dto.AppendLedgerEntryRequest{
		PaymentMethod:   string(domain.PaymentMethodTransfer),
		Detail:          "anticipo casamiento",
		IncomeARS:       decimal.NewFromInt(25000),
		IsClientPayment: true,
	})

	req := httptest.NewRequest(http.MethodPost, "/events/evt-1/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AppendEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Allocations) != 1 || resp.Allocations[0].Bucket != string(domain.BucketAnticipo) {
		t.Fatalf("expected anticipo allocation, got %+v", resp.Allocations)
	}
	if !resp.PaymentStatus.AnticipoReceived.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("expected anticipo 25000, got %s", resp.PaymentStatus.AnticipoReceived)
	}
}

func TestEventHandler_GetSummary(t *testing.T) {
	eventRepo := mocks.NewMockEventRepository()
	if err := eventRepo.Create(context.Background(), &domain.Event{
		ID:            "evt-1",
		Header:        domain.EventHeader{ClientName: "Maria Lopez", FinalBudget: decimal.NewFromInt(50000)},
		PaymentStatus: domain.PaymentStatus{TotalBudget: decimal.NewFromInt(50000)},
		Version:       1,
	}); err != nil {
		t.Fatalf("seed event: %v", err)
	}

	router := eventRouter(newEventHandler(eventRepo))

	req := httptest.NewRequest(http.MethodGet, "/events/evt-1/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.EventSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.EventID != "evt-1" || !resp.BalanceDue.Equal(decimal.NewFromInt(50000)) {
		t.Fatalf("unexpected summary: %+v", resp)
	}
}
