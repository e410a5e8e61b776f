package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hermanas/caja/internal/adapter/http/dto"
	"github.com/hermanas/caja/internal/domain"
	"github.com/hermanas/caja/internal/usecase"
)

// RegisterHandler handles cash register HTTP requests.
type RegisterHandler struct {
	registerUC *usecase.RegisterUseCase
}

// NewRegisterHandler creates a new RegisterHandler.
func NewRegisterHandler(registerUC *usecase.RegisterUseCase) *RegisterHandler {
	return &RegisterHandler{registerUC: registerUC}
}

// CreateEntry records a movement in a register.
func (h *RegisterHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	register := domain.RegisterKind(chi.URLParam(r, "register"))

	var req dto.CreateRegisterEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(register, actorFromRequest(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	entry, err := h.registerUC.CreateEntry(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterEntryFromDomain(entry))
}

// RecordSale records a shop sale.
func (h *RegisterHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.registerUC.RecordSale(r.Context(), req.ToUseCaseInput(actorFromRequest(r)))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record sale", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RegisterEntryFromDomain(entry))
}

// GetEntry retrieves a register entry by ID.
func (h *RegisterHandler) GetEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.registerUC.GetEntry(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterEntryFromDomain(entry))
}

// ListEntries lists entries of one register.
func (h *RegisterHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	register := domain.RegisterKind(chi.URLParam(r, "register"))

	entries, err := h.registerUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		Register: register,
		Limit:    parseIntQuery(r, "limit", 20),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterEntriesFromDomain(entries))
}

// Approve records one role's sign-off on a pending entry.
func (h *RegisterHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	var req dto.ApproveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entry, err := h.registerUC.ApproveEntry(r.Context(), usecase.ApproveEntryInput{
		EntryID: id,
		Role:    domain.ApproverRole(req.Role),
		Actor:   actorFromRequest(r),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to approve entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterEntryFromDomain(entry))
}

// Reject administratively closes a pending entry.
func (h *RegisterHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.registerUC.RejectEntry(r.Context(), usecase.RejectEntryInput{
		EntryID: id,
		Actor:   actorFromRequest(r),
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to reject entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterEntryFromDomain(entry))
}

// Summary returns the balance summary of one register.
func (h *RegisterHandler) Summary(w http.ResponseWriter, r *http.Request) {
	register := domain.RegisterKind(chi.URLParam(r, "register"))
	scope := r.URL.Query().Get("scope")

	from, to := parsePeriod(r)
	summary, err := h.registerUC.Summarize(r.Context(), register, scope, from, to)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to summarize register", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RegisterSummaryFromUseCase(summary))
}

// parsePeriod reads optional from/to RFC 3339 query bounds.
func parsePeriod(r *http.Request) (time.Time, time.Time) {
	var from, to time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			from = t
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			to = t
		}
	}
	return from, to
}
