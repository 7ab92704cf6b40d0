package service

import (
	"errors"
	"testing"

	"github.com/tirgei/questioner/internal/apperror"
	"github.com/tirgei/questioner/internal/model"
	"github.com/tirgei/questioner/internal/store"
)

// newTestQuestionService returns a question service plus its meetup service
// so tests can create the meetups questions refer to.
func newTestQuestionService(t *testing.T) (*QuestionService, *MeetupService) {
	t.Helper()
	meetups := newTestMeetupService()
	questions := NewQuestionService(store.New[*model.Question](), meetups, testLogger())
	return questions, meetups
}

// postableQuestion creates a meetup and returns a question payload that
// references it.
func postableQuestion(t *testing.T, meetups *MeetupService) QuestionInput {
	t.Helper()
	meetup, err := meetups.Create(validMeetup(), 1)
	if err != nil {
		t.Fatalf("Create(meetup) error = %v", err)
	}
	return QuestionInput{
		Title:    "Intro to Go",
		Body:     "Are we covering the basics?",
		MeetupID: meetup.ID,
	}
}

func TestPost_Success(t *testing.T) {
	svc, meetups := newTestQuestionService(t)
	input := postableQuestion(t, meetups)

	question, err := svc.Post(input, 1)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if question.ID != 1 {
		t.Errorf("Question.ID = %d, want 1", question.ID)
	}
	if question.Votes != 0 {
		t.Errorf("Question.Votes = %d, want 0 at creation", question.Votes)
	}
	if question.MeetupID != input.MeetupID {
		t.Errorf("Question.MeetupID = %d, want %d", question.MeetupID, input.MeetupID)
	}
}

func TestPost_EmptyInput(t *testing.T) {
	svc, _ := newTestQuestionService(t)

	_, err := svc.Post(QuestionInput{}, 1)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Post(empty) error = %v, want ErrValidation", err)
	}
	if err.Error() != "No data provided" {
		t.Errorf("message = %q, want %q", err.Error(), "No data provided")
	}
}

func TestPost_UnknownMeetup(t *testing.T) {
	svc, _ := newTestQuestionService(t)

	_, err := svc.Post(QuestionInput{
		Title:    "Intro to Go",
		Body:     "Are we covering the basics?",
		MeetupID: 11,
	}, 1)

	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Post(meetup 11) error = %v, want ErrNotFound", err)
	}
	if err.Error() != "Meetup not found" {
		t.Errorf("message = %q, want %q", err.Error(), "Meetup not found")
	}
}

func TestPost_MissingMeetupID_SameAsUnknown(t *testing.T) {
	svc, _ := newTestQuestionService(t)

	// Omitting meetup_id entirely must produce the exact same failure as
	// referencing a meetup that does not exist.
	_, err := svc.Post(QuestionInput{
		Title: "Intro to Go",
		Body:  "Are we covering the basics?",
	}, 1)

	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Post(no meetup_id) error = %v, want ErrNotFound", err)
	}
	if err.Error() != "Meetup not found" {
		t.Errorf("message = %q, want %q", err.Error(), "Meetup not found")
	}
}

func TestPost_MissingBody(t *testing.T) {
	svc, meetups := newTestQuestionService(t)
	input := postableQuestion(t, meetups)
	input.Body = ""

	_, err := svc.Post(input, 1)

	var appErr *apperror.AppError
	if !errors.As(err, &appErr) || !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Post() error = %v, want validation AppError", err)
	}
	if len(appErr.Fields["body"]) == 0 {
		t.Errorf("no body field error: %v", appErr.Fields)
	}
}

func TestUpvote(t *testing.T) {
	svc, meetups := newTestQuestionService(t)
	question, err := svc.Post(postableQuestion(t, meetups), 1)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	voted, err := svc.Upvote(question.ID)
	if err != nil {
		t.Fatalf("Upvote() error = %v", err)
	}
	if voted.Votes != 1 {
		t.Errorf("Votes = %d after one upvote, want 1", voted.Votes)
	}
}

func TestUpvoteThenDownvote_NetZero(t *testing.T) {
	svc, meetups := newTestQuestionService(t)
	question, err := svc.Post(postableQuestion(t, meetups), 1)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if _, err := svc.Upvote(question.ID); err != nil {
		t.Fatalf("Upvote() error = %v", err)
	}
	voted, err := svc.Downvote(question.ID)
	if err != nil {
		t.Fatalf("Downvote() error = %v", err)
	}

	if voted.Votes != 0 {
		t.Errorf("Votes = %d after upvote+downvote, want 0", voted.Votes)
	}
}

func TestDownvote_CanGoNegative(t *testing.T) {
	svc, meetups := newTestQuestionService(t)
	question, err := svc.Post(postableQuestion(t, meetups), 1)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	if _, err := svc.Downvote(question.ID); err != nil {
		t.Fatalf("Downvote() error = %v", err)
	}
	voted, err := svc.Downvote(question.ID)
	if err != nil {
		t.Fatalf("Downvote() error = %v", err)
	}

	if voted.Votes != -2 {
		t.Errorf("Votes = %d after two downvotes, want -2 (no floor)", voted.Votes)
	}
}

func TestVote_UnknownQuestion(t *testing.T) {
	svc, _ := newTestQuestionService(t)

	for name, vote := range map[string]func(int) (*model.Question, error){
		"Upvote":   svc.Upvote,
		"Downvote": svc.Downvote,
	} {
		_, err := vote(3)
		if !errors.Is(err, apperror.ErrNotFound) {
			t.Errorf("%s(3) error = %v, want ErrNotFound", name, err)
		}
		if err.Error() != "Question not found" {
			t.Errorf("%s(3) message = %q, want %q", name, err.Error(), "Question not found")
		}
	}
}

func TestVote_DoesNotTouchModifiedOn(t *testing.T) {
	svc, meetups := newTestQuestionService(t)
	question, err := svc.Post(postableQuestion(t, meetups), 1)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	stamped := question.ModifiedOn

	voted, err := svc.Upvote(question.ID)
	if err != nil {
		t.Fatalf("Upvote() error = %v", err)
	}

	if !voted.ModifiedOn.Equal(stamped) {
		t.Error("vote updated ModifiedOn; it must stay at the creation value")
	}
}

func TestListByMeetup(t *testing.T) {
	svc, meetups := newTestQuestionService(t)
	input := postableQuestion(t, meetups)

	first, err := svc.Post(input, 1)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	second := input
	second.Title = "Chi routing"
	if _, err := svc.Post(second, 1); err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	questions, err := svc.ListByMeetup(input.MeetupID)
	if err != nil {
		t.Fatalf("ListByMeetup() error = %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("ListByMeetup() returned %d questions, want 2", len(questions))
	}
	if questions[0].ID != first.ID {
		t.Error("ListByMeetup() not in insertion order")
	}
}

func TestListByMeetup_FiltersOtherMeetups(t *testing.T) {
	svc, meetups := newTestQuestionService(t)
	input := postableQuestion(t, meetups)
	if _, err := svc.Post(input, 1); err != nil {
		t.Fatalf("Post() error = %v", err)
	}

	other, err := meetups.Create(validMeetup(), 1)
	if err != nil {
		t.Fatalf("Create(meetup) error = %v", err)
	}

	questions, err := svc.ListByMeetup(other.ID)
	if err != nil {
		t.Fatalf("ListByMeetup() error = %v", err)
	}
	if len(questions) != 0 {
		t.Errorf("ListByMeetup(other) returned %d questions, want 0", len(questions))
	}
}

func TestListByMeetup_UnknownMeetup(t *testing.T) {
	svc, _ := newTestQuestionService(t)

	_, err := svc.ListByMeetup(11)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("ListByMeetup(11) error = %v, want ErrNotFound", err)
	}
	if err.Error() != "Meetup not found" {
		t.Errorf("message = %q, want %q", err.Error(), "Meetup not found")
	}
}
