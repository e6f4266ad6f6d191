package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/reyhanturkkal/Task-Management/internal/auth"
	"github.com/reyhanturkkal/Task-Management/internal/errs"
	"github.com/reyhanturkkal/Task-Management/internal/metrics"
	"github.com/reyhanturkkal/Task-Management/internal/models"
	"github.com/reyhanturkkal/Task-Management/internal/services"
	"github.com/rs/zerolog/log"
)

// UserHandler handles HTTP requests for registration, sign-in and profiles.
type UserHandler struct {
	service  services.UserServiceProvider
	tokens   *auth.TokenService
	events   services.EventServiceProvider
	secureCk bool // set Secure on cookies in production
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.TokenService, events services.EventServiceProvider, secureCookies bool) *UserHandler {
	return &UserHandler{service: service, tokens: tokens, events: events, secureCk: secureCookies}
}

// AuthPayload defines the structure for sign-in requests.
type AuthPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterPayload defines the structure for sign-up requests.
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles new user sign-up.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.CreateUser(payload.Username, payload.Email, payload.Password)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register user")
		writeError(w, err)
		return
	}

	if err := h.events.CreateEvent("user.signup", "info", "account created", &user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to record signup event")
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{"user": user})
}

// Login handles sign-in: credential check, token issuance, and delivery via
// both the response body and an HttpOnly cookie. The cookie's Max-Age and
// the token's expiry claim come from the same TTL.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.service.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		metrics.RecordAuthAttempt(false)
		writeError(w, errs.ErrInvalidCredentials)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to issue token")
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}
	metrics.RecordAuthAttempt(true)

	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCk,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	if err := h.events.CreateEvent("user.signin", "info", "signed in", &user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to record signin event")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout clears the auth cookie. The token itself expires on its own claim.
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.CookieName,
		Value:    "",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCk,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	writeMessage(w, http.StatusOK, "signed out")
}

// GetMe returns the profile of the authenticated user.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		log.Error().Msg("Could not retrieve user from request context")
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateMe applies a partial profile update to the authenticated user.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	var update models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.service.UpdateProfile(user.ID, update)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("Failed to update profile")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": updated})
}

// DeleteMe deletes the authenticated user's account and all of their tasks.
// Every token ever issued for the account stops resolving from here on.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if err := h.service.DeleteUser(user.ID); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to delete user")
		writeError(w, err)
		return
	}

	writeMessage(w, http.StatusOK, "user and their tasks deleted")
}
