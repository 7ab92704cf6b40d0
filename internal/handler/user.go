// Package handler contains the HTTP layer: request decoding, claim
// extraction and response envelopes. No business rules live here — every
// decision is delegated to the service layer.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/tirgei/questioner/internal/auth"
	"github.com/tirgei/questioner/internal/service"
)

// UserHandler exposes registration, login and the token lifecycle.
type UserHandler struct {
	users  *service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users *service.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// HandleIndex responds with the API welcome message.
//
// HTTP: GET /
func (h *UserHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{Message: "Welcome to Questioner"})
}

// HandleRegister creates a new account and returns it (password excluded)
// together with a fresh access token and a refresh token.
//
// HTTP: POST /api/v1/register
func (h *UserHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var input service.RegisterInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.users.Register(input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Message:      "User created successfully",
		Data:         result.User,
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
	})
}

// HandleLogin authenticates a username/password pair and returns a token
// pair plus the user id.
//
// HTTP: POST /api/v1/login
func (h *UserHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var input service.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.users.Login(input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message:      "User logged in successfully",
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		UserID:       result.User.ID,
	})
}

// HandleRefresh mints a new, non-fresh access token for the identity in
// the validated refresh token.
//
// HTTP: POST /api/v1/token/refresh
// Auth: refresh token (RequireRefresh middleware)
func (h *UserHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		// Unreachable behind RequireRefresh, kept as a guard.
		writeJSON(w, http.StatusUnauthorized, Response{Message: "Missing authorization token"})
		return
	}

	access, err := h.users.Refresh(claims.UserID)
	if err != nil {
		h.logger.Error("token refresh failed",
			slog.Int("userID", claims.UserID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message:     "Token refreshed successfully",
		AccessToken: access,
	})
}

// HandleLogout revokes the presented access token's jti.
//
// HTTP: POST /api/v1/logout
// Auth: access token
func (h *UserHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Message: "Missing authorization token"})
		return
	}

	h.users.Logout(claims.JTI)

	writeJSON(w, http.StatusOK, Response{Message: "Logged out successfully"})
}
