package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hermanas/caja/internal/adapter/http/dto"
	"github.com/hermanas/caja/internal/usecase"
)

// CashCountHandler handles cash count HTTP requests.
type CashCountHandler struct {
	cashCountUC *usecase.CashCountUseCase
}

// NewCashCountHandler creates a new CashCountHandler.
func NewCashCountHandler(cashCountUC *usecase.CashCountUseCase) *CashCountHandler {
	return &CashCountHandler{cashCountUC: cashCountUC}
}

// Create records a new cash count.
func (h *CashCountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCashCountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(actorFromRequest(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	count, err := h.cashCountUC.CreateCashCount(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create cash count", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CashCountFromDomain(count))
}

// Get retrieves a cash count by ID.
func (h *CashCountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing cash count ID", "")
		return
	}

	count, err := h.cashCountUC.GetCashCount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get cash count", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashCountFromDomain(count))
}

// List lists cash counts, optionally filtered by scope.
func (h *CashCountHandler) List(w http.ResponseWriter, r *http.Request) {
	counts, err := h.cashCountUC.ListCashCounts(r.Context(), usecase.ListCashCountsInput{
		Scope:  r.URL.Query().Get("scope"),
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cash counts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashCountsFromDomain(counts))
}
