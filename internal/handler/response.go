package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tirgei/questioner/internal/apperror"
)

// Response is the envelope every endpoint returns.
//
// Status always mirrors the HTTP status code; Data carries the resource on
// success; Errors carries per-field validation messages on 400s. The token
// fields are populated only by register/login/refresh, matching the wire
// contract consumed by existing clients.
type Response struct {
	Status       int                 `json:"status"`
	Message      string              `json:"message"`
	Data         any                 `json:"data,omitempty"`
	Errors       map[string][]string `json:"errors,omitempty"`
	AccessToken  string              `json:"access_token,omitempty"`
	RefreshToken string              `json:"refresh_token,omitempty"`
	UserID       int                 `json:"user_id,omitempty"`
}

// writeJSON sends the envelope with the given status code. Headers must be
// set before the first body write, so the order here is fixed.
func writeJSON(w http.ResponseWriter, status int, resp Response) {
	resp.Status = status
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Headers are already sent at this point; logging is all we can do.
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// writeError maps a domain error to its HTTP status and sends the envelope.
//
// The service layer knows nothing about HTTP; this is the single place
// where the apperror taxonomy becomes status codes. Unknown errors become
// an opaque 500 — internal details never reach the client.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, apperror.ErrUnauthorized):
			status = http.StatusUnauthorized
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
		}

		writeJSON(w, status, Response{
			Message: appErr.Message,
			Errors:  appErr.Fields,
		})
		return
	}

	writeJSON(w, http.StatusInternalServerError, Response{
		Message: "An internal error occurred",
	})
}

// decodeJSON decodes the request body into dst. A missing or malformed
// body fails with the same "No data provided" validation error the
// services raise for empty payloads, so both paths produce one response.
func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperror.Validation("No data provided", nil)
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.Validation("No data provided", nil)
	}
	return nil
}
