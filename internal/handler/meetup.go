package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tirgei/questioner/internal/auth"
	"github.com/tirgei/questioner/internal/service"
)

// MeetupHandler exposes meetup creation and lookup.
type MeetupHandler struct {
	meetups *service.MeetupService
	logger  *slog.Logger
}

// NewMeetupHandler creates a MeetupHandler.
func NewMeetupHandler(meetups *service.MeetupService, logger *slog.Logger) *MeetupHandler {
	return &MeetupHandler{meetups: meetups, logger: logger}
}

// HandleCreate records a new meetup owned by the authenticated user.
//
// HTTP: POST /api/v1/meetups
// Auth: access token
func (h *MeetupHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Message: "Missing authorization token"})
		return
	}

	var input service.MeetupInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	meetup, err := h.meetups.Create(input, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Message: "Meetup created successfully",
		Data:    meetup,
	})
}

// HandleList returns all meetups in insertion order.
//
// HTTP: GET /api/v1/meetups
func (h *MeetupHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Message: "Meetups retrieved successfully",
		Data:    h.meetups.ListAll(),
	})
}

// HandleGet returns a single meetup by id.
//
// HTTP: GET /api/v1/meetups/{id}
func (h *MeetupHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusNotFound, Response{Message: "Meetup not found"})
		return
	}

	meetup, err := h.meetups.FindByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "Meetup retrieved successfully",
		Data:    meetup,
	})
}

// pathID parses an integer URL parameter. A non-numeric id is treated the
// same as an id that matches nothing.
func pathID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}
