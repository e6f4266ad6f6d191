package handlers

import (
	"net/http"
	"strconv"

	"github.com/reyhanturkkal/Task-Management/internal/auth"
	"github.com/reyhanturkkal/Task-Management/internal/models"
	"github.com/reyhanturkkal/Task-Management/internal/services"
	"github.com/rs/zerolog/log"
)

// EventHandler handles HTTP requests for the activity feed.
type EventHandler struct {
	service services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(service services.EventServiceProvider) *EventHandler {
	return &EventHandler{service: service}
}

// GetRecent returns the authenticated user's recent activity.
func (h *EventHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.service.GetEventsForUser(user.ID, limit)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to retrieve events")
		writeError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}

	writeJSON(w, http.StatusOK, events)
}
