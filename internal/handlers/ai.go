package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/daybook-app/daybook/internal/models"
	"github.com/daybook-app/daybook/internal/services"
	"github.com/daybook-app/daybook/internal/services/ai"
)

// Number of recent entries handed to the summary collaborator.
const summaryEntryLimit = 10

// Summarizer is the external AI collaborator boundary. It returns opaque
// feedback text; the core never parses or caches it.
type Summarizer interface {
	Summarize(ctx context.Context, userID uuid.UUID, entries []*models.Entry) (string, error)
}

type AIHandler struct {
	entryService services.EntryServiceInterface
	summarizer   Summarizer
}

func NewAIHandler(entryService services.EntryServiceInterface, summarizer Summarizer) *AIHandler {
	return &AIHandler{
		entryService: entryService,
		summarizer:   summarizer,
	}
}

type SummaryResponse struct {
	Feedback string `json:"feedback"`
}

func (h *AIHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID := GetUserIDFromContext(r.Context())

	entries, err := h.entryService.Recent(r.Context(), userID, summaryEntryLimit)
	if err != nil {
		writeEntryError(w, err, "fetch journal entries")
		return
	}
	if len(entries) == 0 {
		writeError(w, http.StatusBadRequest, "No entries found for this user")
		return
	}

	feedback, err := h.summarizer.Summarize(r.Context(), userID, entries)
	if err != nil {
		status := http.StatusBadGateway
		msg := "Failed to generate AI feedback"

		switch {
		case errors.Is(err, ai.ErrAINotConfigured):
			status = http.StatusServiceUnavailable
			msg = "AI summary is not configured"
		case errors.Is(err, ai.ErrSafetyViolation):
			status = http.StatusBadRequest
			msg = "The summary was blocked by the provider's safety policies"
		case errors.Is(err, ai.ErrRateLimitExceeded):
			status = http.StatusTooManyRequests
			msg = "AI provider rate limit exceeded"
		}

		writeError(w, status, msg)
		return
	}

	writeJSON(w, http.StatusOK, SummaryResponse{Feedback: feedback})
}
