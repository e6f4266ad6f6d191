package handlers

import (
	"database/sql"
	"net/http"

	"github.com/rs/zerolog/log"
)

// HealthHandler reports whether the service can reach its database.
type HealthHandler struct {
	db *sql.DB
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(db *sql.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check pings the database and reports the result.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		log.Error().Err(err).Msg("Healthcheck database ping failed")
		writeMessage(w, http.StatusServiceUnavailable, "database unreachable")
		return
	}
	writeMessage(w, http.StatusOK, "ok")
}
