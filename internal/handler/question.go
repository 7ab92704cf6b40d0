package handler

import (
	"log/slog"
	"net/http"

	"github.com/tirgei/questioner/internal/auth"
	"github.com/tirgei/questioner/internal/service"
)

// QuestionHandler exposes question posting, voting and per-meetup listing.
type QuestionHandler struct {
	questions *service.QuestionService
	logger    *slog.Logger
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(questions *service.QuestionService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, logger: logger}
}

// HandleCreate posts a question against an existing meetup.
//
// HTTP: POST /api/v1/questions
// Auth: access token
func (h *QuestionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, Response{Message: "Missing authorization token"})
		return
	}

	var input service.QuestionInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	question, err := h.questions.Post(input, claims.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, Response{
		Message: "Question posted successfully",
		Data:    question,
	})
}

// HandleUpvote increments a question's vote tally.
//
// HTTP: PATCH /api/v1/questions/{id}/upvote
// Auth: access token
func (h *QuestionHandler) HandleUpvote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusNotFound, Response{Message: "Question not found"})
		return
	}

	question, err := h.questions.Upvote(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "Question upvoted successfully",
		Data:    question,
	})
}

// HandleDownvote decrements a question's vote tally.
//
// HTTP: PATCH /api/v1/questions/{id}/downvote
// Auth: access token
func (h *QuestionHandler) HandleDownvote(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusNotFound, Response{Message: "Question not found"})
		return
	}

	question, err := h.questions.Downvote(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "Question downvoted successfully",
		Data:    question,
	})
}

// HandleListByMeetup returns the questions posted against a meetup, in
// insertion order.
//
// HTTP: GET /api/v1/meetups/{id}/questions
func (h *QuestionHandler) HandleListByMeetup(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeJSON(w, http.StatusNotFound, Response{Message: "Meetup not found"})
		return
	}

	questions, err := h.questions.ListByMeetup(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Message: "Questions retrieved successfully",
		Data:    questions,
	})
}
