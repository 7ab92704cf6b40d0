package service

import (
	"log/slog"
	"strings"

	"github.com/tirgei/questioner/internal/apperror"
	"github.com/tirgei/questioner/internal/model"
	"github.com/tirgei/questioner/internal/store"
)

// QuestionInput is the payload accepted by Post.
type QuestionInput struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	MeetupID int    `json:"meetup_id"`
}

func (in QuestionInput) empty() bool {
	return in.Title == "" && in.Body == "" && in.MeetupID == 0
}

// QuestionService owns question records and their vote tallies.
//
// It cross-checks the meetup reference against MeetupService at posting
// time; after that no referential integrity is enforced (meetups are never
// deleted in this system).
type QuestionService struct {
	questions *store.Store[*model.Question]
	meetups   *MeetupService
	logger    *slog.Logger
}

// NewQuestionService creates a QuestionService backed by the given store.
func NewQuestionService(questions *store.Store[*model.Question], meetups *MeetupService, logger *slog.Logger) *QuestionService {
	return &QuestionService{questions: questions, meetups: meetups, logger: logger}
}

// Post validates and persists a new question with votes initialized to 0.
//
// Check order matters and is part of the contract:
//  1. a completely empty payload fails with "No data provided";
//  2. a missing meetup_id and a meetup_id that resolves to nothing both
//     fail with the same NotFound "Meetup not found";
//  3. then title/body presence is validated field by field.
func (s *QuestionService) Post(input QuestionInput, creatorID int) (*model.Question, error) {
	if input.empty() {
		return nil, apperror.Validation(msgNoData, nil)
	}

	if input.MeetupID == 0 || !s.meetups.Exists(input.MeetupID) {
		return nil, apperror.NotFound("Meetup not found")
	}

	fields := map[string][]string{}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = append(fields["title"], msgFieldRequired)
	}
	if strings.TrimSpace(input.Body) == "" {
		fields["body"] = append(fields["body"], msgFieldRequired)
	}
	if len(fields) > 0 {
		return nil, apperror.Validation(msgInvalidData, fields)
	}

	question := s.questions.Save(&model.Question{
		Title:     strings.TrimSpace(input.Title),
		Body:      strings.TrimSpace(input.Body),
		MeetupID:  input.MeetupID,
		CreatedBy: creatorID,
		Votes:     0,
	})

	s.logger.Info("question posted",
		slog.Int("questionID", question.ID),
		slog.Int("meetupID", question.MeetupID),
	)

	return question, nil
}

// Upvote increments the question's vote tally by exactly 1 and returns the
// updated record. Repeated calls accumulate; there is no upper bound.
func (s *QuestionService) Upvote(id int) (*model.Question, error) {
	return s.vote(id, +1)
}

// Downvote decrements the question's vote tally by exactly 1 and returns
// the updated record. The tally has no floor and may go negative.
func (s *QuestionService) Downvote(id int) (*model.Question, error) {
	return s.vote(id, -1)
}

func (s *QuestionService) vote(id, delta int) (*model.Question, error) {
	// The increment runs under the store lock so concurrent votes cannot
	// lose writes. ModifiedOn is intentionally left untouched.
	question, err := s.questions.Update(id, func(q *model.Question) {
		q.Votes += delta
	})
	if err != nil {
		return nil, apperror.NotFound("Question not found")
	}

	s.logger.Info("question vote recorded",
		slog.Int("questionID", id),
		slog.Int("delta", delta),
		slog.Int("votes", question.Votes),
	)

	return question, nil
}

// ListByMeetup returns all questions posted against the meetup, in
// insertion order. Fails with NotFound if the meetup itself does not exist
// — an existing meetup with no questions returns an empty list instead.
func (s *QuestionService) ListByMeetup(meetupID int) ([]*model.Question, error) {
	if !s.meetups.Exists(meetupID) {
		return nil, apperror.NotFound("Meetup not found")
	}

	questions := []*model.Question{}
	for _, q := range s.questions.All() {
		if q.MeetupID == meetupID {
			questions = append(questions, q)
		}
	}
	return questions, nil
}
