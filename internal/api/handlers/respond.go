package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reyhanturkkal/Task-Management/internal/errs"
	"github.com/rs/zerolog/log"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeMessage writes a {"message": ...} body.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// writeError maps a service error onto the HTTP taxonomy. Anything outside
// the known sentinels is logged and reported as a generic 500 so internals
// never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, errs.ErrUnauthenticated), errors.Is(err, errs.ErrUserNotFound):
		writeMessage(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, errs.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, errs.ErrConflict):
		writeMessage(w, http.StatusConflict, "already exists")
	case errors.Is(err, errs.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("Unexpected internal error")
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
