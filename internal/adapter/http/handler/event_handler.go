package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hermanas/caja/internal/adapter/http/dto"
	"github.com/hermanas/caja/internal/usecase"
)

// EventHandler handles event-related HTTP requests.
type EventHandler struct {
	eventUC *usecase.EventUseCase
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(eventUC *usecase.EventUseCase) *EventHandler {
	return &EventHandler{eventUC: eventUC}
}

// Create creates a new event.
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	event, err := h.eventUC.CreateEvent(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create event", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.EventFromDomain(event))
}

// Get retrieves an event by ID.
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing event ID", "")
		return
	}

	event, err := h.eventUC.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get event", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EventFromDomain(event))
}

// List lists events.
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventUC.ListEvents(r.Context(), usecase.ListEventsInput{
		Limit:  parseIntQuery(r, "limit", 20),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list events", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EventsFromDomain(events))
}

// AppendEntry appends a ledger movement to an event.
func (h *EventHandler) AppendEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing event ID", "")
		return
	}

	var req dto.AppendLedgerEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput(id, actorFromRequest(r))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	result, err := h.eventUC.AppendLedgerEntry(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to append entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.AppendEntryFromResult(result))
}

// ListEntries returns the full ledger of an event.
func (h *EventHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing event ID", "")
		return
	}

	event, err := h.eventUC.GetEvent(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get event", err.Error())
		return
	}

	entries := make([]*dto.LedgerEntryResponse, len(event.Entries))
	for i := range event.Entries {
		entries[i] = dto.LedgerEntryFromDomain(&event.Entries[i])
	}

	writeJSON(w, http.StatusOK, entries)
}

// GetSummary returns the derived balance and payment standing of an event.
func (h *EventHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing event ID", "")
		return
	}

	summary, err := h.eventUC.GetSummary(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EventSummaryFromUseCase(summary))
}
