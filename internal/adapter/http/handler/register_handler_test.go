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

func newRegisterHandler(registerRepo *mocks.MockRegisterRepository) *RegisterHandler {
	uc := usecase.NewRegisterUseCase(
		registerRepo,
		mocks.NewMockInventory(),
		mocks.NewMockProviderDirectory(),
		mocks.NewMockNotifier(),
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
		zerolog.Nop(),
		domain.DefaultTriggerConfig(),
	)
	return NewRegisterHandler(uc)
}

func registerRouter(h *RegisterHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/registers/{register}/entries", h.CreateEntry)
	r.Get("/registers/{register}/entries", h.ListEntries)
	r.Get("/registers/{register}/summary", h.Summary)
	r.Post("/sales", h.RecordSale)
	r.Get("/entries/{id}", h.GetEntry)
	r.Post("/entries/{id}/approve", h.Approve)
	r.Post("/entries/{id}/reject", h.Reject)
	return r
}

func seedPendingEntry(t *testing.T, repo *mocks.MockRegisterRepository, expenseARS int64) *domain.CashRegisterEntry {
	t.Helper()

	expense, err := domain.NewMoneyPair(decimal.NewFromInt(expenseARS), decimal.Zero)
	if err != nil {
		t.Fatalf("build expense: %v", err)
	}
	entry, err := domain.NewCashRegisterEntry(
		"entry-1",
		domain.RegisterGeneral,
		time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC),
		"pago proveedor flores",
		domain.MoneyPair{},
		expense,
		"user-1",
		time.Now().UTC(),
		domain.DefaultThresholds(),
	)
	if err != nil {
		t.Fatalf("build entry: %v", err)
	}
	if err := repo.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	return entry
}

func TestRegisterHandler_CreateEntry_AutoApproved(t *testing.T) {
	router := registerRouter(newRegisterHandler(mocks.NewMockRegisterRepository()))

	body, _ := json.Marshal(dto.CreateRegisterEntryRequest{
		Date:        time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC),
		Description: "venta de velas",
		IncomeARS:   decimal.NewFromInt(3000),
	})

	req := httptest.NewRequest(http.MethodPost, "/registers/general/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ApprovalStatus != string(domain.ApprovalStatusApproved) {
		t.Fatalf("expected auto-approved entry, got %s", resp.ApprovalStatus)
	}
	if resp.Register != string(domain.RegisterGeneral) {
		t.Fatalf("expected general register, got %s", resp.Register)
	}
}

func TestRegisterHandler_CreateEntry_PendingAboveThreshold(t *testing.T) {
	router := registerRouter(newRegisterHandler(mocks.NewMockRegisterRepository()))

	body, _ := json.Marshal(dto.CreateRegisterEntryRequest{
		Date:        time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC),
		Description: "pago sonido",
		ExpenseARS:  decimal.NewFromInt(15000),
	})

	req := httptest.NewRequest(http.MethodPost, "/registers/general/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ApprovalStatus != string(domain.ApprovalStatusPending) {
		t.Fatalf("expected pending entry, got %s", resp.ApprovalStatus)
	}
}

func TestRegisterHandler_CreateEntry_UnknownRegister(t *testing.T) {
	router := registerRouter(newRegisterHandler(mocks.NewMockRegisterRepository()))

	body, _ := json.Marshal(dto.CreateRegisterEntryRequest{
		Date:        time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC),
		Description: "algo",
		IncomeARS:   decimal.NewFromInt(100),
	})

	req := httptest.NewRequest(http.MethodPost, "/registers/bodega/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterHandler_Approve_SingleSign(t *testing.T) {
	registerRepo := mocks.NewMockRegisterRepository()
	seedPendingEntry(t, registerRepo, 15000)

	router := registerRouter(newRegisterHandler(registerRepo))

	body, _ := json.Marshal(dto.ApproveEntryRequest{Role: string(domain.RoleFede)})
	req := httptest.NewRequest(http.MethodPost, "/entries/entry-1/approve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ApprovalStatus != string(domain.ApprovalStatusApproved) {
		t.Fatalf("expected approved after single sign-off, got %s", resp.ApprovalStatus)
	}
	if len(resp.Approvals) != 1 {
		t.Fatalf("expected one approval record, got %d", len(resp.Approvals))
	}
}

func TestRegisterHandler_Approve_DualSignStaysPending(t *testing.T) {
	registerRepo := mocks.NewMockRegisterRepository()
	seedPendingEntry(t, registerRepo, 25000)

	router := registerRouter(newRegisterHandler(registerRepo))

	body, _ := json.Marshal(dto.ApproveEntryRequest{Role: string(domain.RoleFede)})
	req := httptest.NewRequest(http.MethodPost, "/entries/entry-1/approve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ApprovalStatus != string(domain.ApprovalStatusPending) {
		t.Fatalf("expected still pending after one of two sign-offs, got %s", resp.ApprovalStatus)
	}
}

func TestRegisterHandler_Approve_UnknownRole(t *testing.T) {
	registerRepo := mocks.NewMockRegisterRepository()
	seedPendingEntry(t, registerRepo, 15000)

	router := registerRouter(newRegisterHandler(registerRepo))

	body, _ := json.Marshal(dto.ApproveEntryRequest{Role: "intern"})
	req := httptest.NewRequest(http.MethodPost, "/entries/entry-1/approve", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRegisterHandler_Reject(t *testing.T) {
	registerRepo := mocks.NewMockRegisterRepository()
	seedPendingEntry(t, registerRepo, 15000)

	router := registerRouter(newRegisterHandler(registerRepo))

	req := httptest.NewRequest(http.MethodPost, "/entries/entry-1/reject", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ApprovalStatus != string(domain.ApprovalStatusRejected) {
		t.Fatalf("expected rejected, got %s", resp.ApprovalStatus)
	}
}

func TestRegisterHandler_GetEntry_NotFound(t *testing.T) {
	router := registerRouter(newRegisterHandler(mocks.NewMockRegisterRepository()))

	req := httptest.NewRequest(http.MethodGet, "/entries/missing", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRegisterHandler_RecordSale(t *testing.T) {
	router := registerRouter(newRegisterHandler(mocks.NewMockRegisterRepository()))

	body, _ := json.Marshal(dto.RecordSaleRequest{
		Date:     time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC),
		SKU:      "vela-aromatica",
		Quantity: 2,
		Client:   "Maria Lopez",
		SoldARS:  decimal.NewFromInt(4500),
	})

	req := httptest.NewRequest(http.MethodPost, "/sales", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterEntryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Register != string(domain.RegisterShop) {
		t.Fatalf("expected sale in shop register, got %s", resp.Register)
	}
	if resp.Sale == nil || resp.Sale.SKU != "vela-aromatica" {
		t.Fatalf("expected sale details, got %+v", resp.Sale)
	}
}

func TestRegisterHandler_Summary(t *testing.T) {
	registerRepo := mocks.NewMockRegisterRepository()

	income, err := domain.NewMoneyPair(decimal.NewFromInt(3000), decimal.Zero)
	if err != nil {
		t.Fatalf("build income: %v", err)
	}
	entry, err := domain.NewCashRegisterEntry(
		"entry-ok",
		domain.RegisterGeneral,
		time.Date(2025, 11, 22, 0, 0, 0, 0, time.UTC),
		"venta de velas",
		income,
		domain.MoneyPair{},
		"user-1",
		time.Now().UTC(),
		domain.DefaultThresholds(),
	)
	if err != nil {
		t.Fatalf("build entry: %v", err)
	}
	if err := registerRepo.CreateEntry(context.Background(), entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	seedPendingEntry(t, registerRepo, 15000)

	router := registerRouter(newRegisterHandler(registerRepo))

	req := httptest.NewRequest(http.MethodGet, "/registers/general/summary", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.RegisterSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.EntryCount != 2 || resp.PendingCount != 1 {
		t.Fatalf("expected 2 entries with 1 pending, got %+v", resp)
	}
	if !resp.TotalIncome.ARS.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("expected pending expense excluded from totals, got income %s", resp.TotalIncome.ARS)
	}
}
