package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/logging"
	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/services"
)

type EntryHandler struct {
	entryService services.EntryServiceInterface
}

func NewEntryHandler(entryService services.EntryServiceInterface) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

type CreateEntryRequest struct {
	Title   string      `json:"title"`
	Content string      `json:"content"`
	Tags    models.Mood `json:"tags"`
}

type UpdateEntryRequest struct {
	Title   *string      `json:"title"`
	Content *string      `json:"content"`
	Tags    *models.Mood `json:"tags"`
}

type EntryListResponse struct {
	Data []*models.Entry `json:"data"`
}

type SearchResponse struct {
	Data  []*models.Entry `json:"data"`
	Count int             `json:"count"`
	Query string          `json:"query"`
}

type DeleteEntryResponse struct {
	Message string        `json:"message"`
	Entry   *models.Entry `json:"entry"`
}

// writeEntryError maps entry service failures onto the API's status
// taxonomy. Ownership mismatches surface as plain not-found.
func writeEntryError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, services.ErrEntryNotFound):
		writeError(w, http.StatusNotFound, "Entry not found")
	case errors.Is(err, services.ErrTitleRequired):
		writeError(w, http.StatusBadRequest, "Title cannot be empty")
	case errors.Is(err, services.ErrContentRequired):
		writeError(w, http.StatusBadRequest, "Entry cannot be empty")
	case errors.Is(err, services.ErrInvalidMood):
		writeError(w, http.StatusBadRequest, "Invalid mood tag")
	case errors.Is(err, services.ErrEmptyQuery):
		writeError(w, http.StatusBadRequest, "Search query cannot be empty")
	default:
		logging.Error("Entry operation failed", map[string]interface{}{
			"action": action,
			"error":  err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "Failed to "+action)
	}
}

func (h *EntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Owner always comes from the verified token, never from the body.
	userID := GetUserIDFromContext(r.Context())

	entry, err := h.entryService.Create(r.Context(), models.CreateEntryParams{
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Tags,
		CreatedBy: userID,
	})
	if err != nil {
		writeEntryError(w, err, "create journal entry")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (h *EntryHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := GetUserIDFromContext(r.Context())

	entries, err := h.entryService.ListByOwner(r.Context(), userID)
	if err != nil {
		writeEntryError(w, err, "fetch journal entries")
		return
	}

	writeJSON(w, http.StatusOK, EntryListResponse{Data: entries})
}

func (h *EntryHandler) Get(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	userID := GetUserIDFromContext(r.Context())

	entry, err := h.entryService.GetByID(r.Context(), userID, entryID)
	if err != nil {
		writeEntryError(w, err, "fetch journal entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := GetUserIDFromContext(r.Context())

	entry, err := h.entryService.Update(r.Context(), userID, entryID, models.UpdateEntryParams{
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Tags,
	})
	if err != nil {
		writeEntryError(w, err, "update journal entry")
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *EntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	entryID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid entry ID")
		return
	}

	userID := GetUserIDFromContext(r.Context())

	entry, err := h.entryService.Delete(r.Context(), userID, entryID)
	if err != nil {
		writeEntryError(w, err, "delete journal entry")
		return
	}

	writeJSON(w, http.StatusOK, DeleteEntryResponse{
		Message: "Journal entry deleted successfully",
		Entry:   entry,
	})
}

func (h *EntryHandler) Search(w http.ResponseWriter, r *http.Request) {
	userID := GetUserIDFromContext(r.Context())
	query := strings.TrimSpace(r.URL.Query().Get("query"))

	entries, err := h.entryService.Search(r.Context(), userID, query)
	if err != nil {
		writeEntryError(w, err, "search journal entries")
		return
	}

	writeJSON(w, http.StatusOK, SearchResponse{
		Data:  entries,
		Count: len(entries),
		Query: query,
	})
}
